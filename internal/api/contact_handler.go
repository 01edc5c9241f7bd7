package api

import (
	"fmt"
	"net/http"

	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ContactHandler handles contact form endpoints
type ContactHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(services *service.Services, log zerolog.Logger) *ContactHandler {
	return &ContactHandler{
		services: services,
		log:      log.With().Str("handler", "contact").Logger(),
	}
}

// Submit handles POST /api/contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var in models.ContactInput
	if err := c.ShouldBind(&in); err != nil {
		respondError(c, h.log, fmt.Errorf("%w: %w", models.ErrValidation, err))
		return
	}

	contact, err := h.services.Contact.Submit(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": contact.ID, "status": "received"})
}

// List handles GET /api/contact
func (h *ContactHandler) List(c *gin.Context) {
	contacts, err := h.services.Contact.List(c.Request.Context(), identityFrom(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}

// Get handles GET /api/contact/:id
func (h *ContactHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	contact, err := h.services.Contact.Get(c.Request.Context(), identityFrom(c), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

// Delete handles DELETE /api/contact/:id
func (h *ContactHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if err := h.services.Contact.Delete(c.Request.Context(), identityFrom(c), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
