package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuthHandler handles login and logout
type AuthHandler struct {
	services   *service.Services
	cookieName string
	log        zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(services *service.Services, cookieName string, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		services:   services,
		cookieName: cookieName,
		log:        log.With().Str("handler", "auth").Logger(),
	}
}

type loginForm struct {
	User     string `form:"user" json:"user"`
	Password string `form:"password" json:"password"`
}

// Login handles POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user and password are required"})
		return
	}

	id, err := h.services.Auth.Login(form.User, form.Password)
	if err != nil {
		if errors.Is(err, models.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		respondError(c, h.log, err)
		return
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookieName,
		Value:    id.String(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	c.Header("HX-Refresh", "true")
	c.JSON(http.StatusOK, gin.H{"status": "logged in"})
}

// Logout handles GET|POST /api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.services.Auth.Logout(identityFrom(c)); err != nil {
		respondError(c, h.log, err)
		return
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:    h.cookieName,
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
		MaxAge:  -1,
	})
	c.Header("HX-Redirect", "/")
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}
