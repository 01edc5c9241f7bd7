package api

import (
	"fmt"
	"net/http"

	"github.com/blog-cms-api/internal/config"
	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// FileHandler handles media listing and upload
type FileHandler struct {
	services *service.Services
	cfg      config.MediaConfig
	log      zerolog.Logger
}

// NewFileHandler creates a new FileHandler
func NewFileHandler(services *service.Services, cfg config.MediaConfig, log zerolog.Logger) *FileHandler {
	return &FileHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "file").Logger(),
	}
}

// List handles GET /api/files
func (h *FileHandler) List(c *gin.Context) {
	files, err := h.services.Media.List(c.Request.Context(), identityFrom(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

// Upload handles POST /api/files/:id with a multipart body. Every file
// part is stored in the directory of article :id.
func (h *FileHandler) Upload(c *gin.Context) {
	identity := identityFrom(c)

	// Reject before the body is parsed into temp files
	if !identity.IsAdmin() {
		respondError(c, h.log, models.ErrUnauthorized)
		return
	}

	articleID, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if h.cfg.MaxUploadSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxUploadSize+1<<20)
	}
	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, h.log, fmt.Errorf("%w: multipart form expected: %w", models.ErrValidation, err))
		return
	}

	urls := make([]string, 0)
	for _, headers := range form.File {
		for _, header := range headers {
			f, err := header.Open()
			if err != nil {
				respondError(c, h.log, fmt.Errorf("%w: open upload: %w", models.ErrValidation, err))
				return
			}
			url, err := h.services.Media.Upload(c.Request.Context(), identity, articleID, header.Filename, f)
			f.Close()
			if err != nil {
				respondError(c, h.log, err)
				return
			}
			urls = append(urls, url)
		}
	}

	if len(urls) == 0 {
		respondError(c, h.log, fmt.Errorf("%w: no files in upload", models.ErrValidation))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"files": urls})
}
