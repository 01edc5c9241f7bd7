package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ParagraphHandler handles paragraph endpoints
type ParagraphHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewParagraphHandler creates a new ParagraphHandler
func NewParagraphHandler(services *service.Services, log zerolog.Logger) *ParagraphHandler {
	return &ParagraphHandler{
		services: services,
		log:      log.With().Str("handler", "paragraph").Logger(),
	}
}

// bindInput binds the paragraph form. Binding errors of non-admin callers
// are reported as authorization failures.
func (h *ParagraphHandler) bindInput(c *gin.Context, identity models.Identity) (*models.ParagraphInput, bool) {
	var in models.ParagraphInput
	if err := c.ShouldBind(&in); err != nil {
		if !identity.IsAdmin() {
			respondError(c, h.log, models.ErrUnauthorized)
			return nil, false
		}
		respondError(c, h.log, fmt.Errorf("%w: %w", models.ErrValidation, err))
		return nil, false
	}
	return &in, true
}

// Create handles POST /api/paragraph
func (h *ParagraphHandler) Create(c *gin.Context) {
	identity := identityFrom(c)
	in, ok := h.bindInput(c, identity)
	if !ok {
		return
	}

	p, err := h.services.Paragraph.Create(c.Request.Context(), identity, in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// Get handles GET /api/paragraph/:id and returns the raw content
func (h *ParagraphHandler) Get(c *gin.Context) {
	h.get(c, h.services.Paragraph.Get)
}

// GetRendered handles GET /api/paragraph/:id/rendered
func (h *ParagraphHandler) GetRendered(c *gin.Context) {
	h.get(c, h.services.Paragraph.GetRendered)
}

func (h *ParagraphHandler) get(c *gin.Context, fetch func(context.Context, models.Identity, int64) (*models.Paragraph, error)) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	p, err := fetch(c.Request.Context(), identityFrom(c), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Update handles PUT /api/paragraph/:id
func (h *ParagraphHandler) Update(c *gin.Context) {
	identity := identityFrom(c)
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	in, ok := h.bindInput(c, identity)
	if !ok {
		return
	}

	p, err := h.services.Paragraph.Update(c.Request.Context(), identity, id, in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /api/paragraph/:id
func (h *ParagraphHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if err := h.services.Paragraph.Delete(c.Request.Context(), identityFrom(c), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
