package api

import (
	"errors"
	"net/http"

	"github.com/blog-cms-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// statusFor maps the error taxonomy to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage hides store and render details from the client
func publicMessage(status int, err error) string {
	switch status {
	case http.StatusNotFound:
		return "not found"
	case http.StatusUnauthorized:
		return "not authorized"
	case http.StatusBadRequest:
		return err.Error()
	default:
		return "internal server error"
	}
}

// respondError writes the JSON error response for err
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
	}
	c.JSON(status, gin.H{"error": publicMessage(status, err)})
}
