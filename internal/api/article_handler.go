package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

type createArticleForm struct {
	Title string `form:"title" json:"title"`
}

// parseID reads a numeric path parameter
func parseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", models.ErrValidation, name)
	}
	return id, nil
}

// parseInt reads a non-negative integer path parameter
func parseInt(c *gin.Context, name string) (int, error) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", models.ErrValidation, name)
	}
	return n, nil
}

// Create handles POST /api/article
func (h *ArticleHandler) Create(c *gin.Context) {
	var form createArticleForm
	if err := c.ShouldBind(&form); err != nil {
		respondError(c, h.log, fmt.Errorf("%w: %w", models.ErrValidation, err))
		return
	}

	article, err := h.services.Article.Create(c.Request.Context(), identityFrom(c), form.Title)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, article)
}

// List handles GET /api/article
func (h *ArticleHandler) List(c *gin.Context) {
	articles, err := h.services.Article.List(c.Request.Context(), identityFrom(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

// ListPage handles GET /api/articles/:offset/:limit[/:tag]
func (h *ArticleHandler) ListPage(c *gin.Context) {
	offset, err := parseInt(c, "offset")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	limit, err := parseInt(c, "limit")
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	articles, err := h.services.Article.ListPage(c.Request.Context(), identityFrom(c), models.ArticleQuery{
		Tag:    c.Param("tag"),
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

// Get handles GET /api/article/:id where id is a numeric id or an alias
func (h *ArticleHandler) Get(c *gin.Context) {
	article, err := h.services.Article.Get(c.Request.Context(), identityFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Update handles PUT /api/article/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	identity := identityFrom(c)
	var in models.ArticleInput
	if err := c.ShouldBind(&in); err != nil {
		if !identity.IsAdmin() {
			respondError(c, h.log, models.ErrUnauthorized)
			return
		}
		respondError(c, h.log, fmt.Errorf("%w: %w", models.ErrValidation, err))
		return
	}

	article, err := h.services.Article.Update(c.Request.Context(), identity, c.Param("id"), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Delete handles DELETE /api/article/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	if err := h.services.Article.Delete(c.Request.Context(), identityFrom(c), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
