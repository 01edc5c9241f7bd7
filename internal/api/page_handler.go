package api

import (
	"net/http"

	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/service"
	"github.com/blog-cms-api/internal/view"
	"github.com/gin-gonic/gin"
	g "github.com/maragudk/gomponents"
	"github.com/rs/zerolog"
)

// PageHandler serves the public HTML pages
type PageHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(services *service.Services, log zerolog.Logger) *PageHandler {
	return &PageHandler{
		services: services,
		log:      log.With().Str("handler", "page").Logger(),
	}
}

func (h *PageHandler) render(c *gin.Context, status int, node g.Node) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := node.Render(c.Writer); err != nil {
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Failed to render page")
	}
}

func (h *PageHandler) renderError(c *gin.Context, identity models.Identity, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Page failed")
	}
	props := view.LayoutProps{Title: http.StatusText(status), IsAdmin: identity.IsAdmin()}
	h.render(c, status, view.ErrorPage(props, status, publicMessage(status, err)))
}

// recordPage counts a page view. Failures never block the page.
func (h *PageHandler) recordPage(c *gin.Context, page models.Page) {
	if err := h.services.Stats.RecordPageView(c.Request.Context(), page); err != nil {
		h.log.Warn().Err(err).Str("page", string(page)).Msg("Failed to record page view")
	}
}

// Home handles GET /
func (h *PageHandler) Home(c *gin.Context) {
	identity := identityFrom(c)
	h.recordPage(c, models.PageHome)

	articles, err := h.services.Article.List(c.Request.Context(), identity)
	if err != nil {
		h.renderError(c, identity, err)
		return
	}
	props := view.LayoutProps{Title: "Blog", IsAdmin: identity.IsAdmin()}
	h.render(c, http.StatusOK, view.HomePage(props, articles))
}

// About handles GET /about
func (h *PageHandler) About(c *gin.Context) {
	identity := identityFrom(c)
	h.recordPage(c, models.PageAbout)
	h.render(c, http.StatusOK, view.AboutPage(view.LayoutProps{Title: "About", IsAdmin: identity.IsAdmin()}))
}

// Donate handles GET /donate
func (h *PageHandler) Donate(c *gin.Context) {
	identity := identityFrom(c)
	h.recordPage(c, models.PageDonate)
	h.render(c, http.StatusOK, view.DonatePage(view.LayoutProps{Title: "Donate", IsAdmin: identity.IsAdmin()}))
}

// Article handles GET /article/:id where id is a numeric id or an alias
func (h *PageHandler) Article(c *gin.Context) {
	identity := identityFrom(c)

	article, err := h.services.Article.Get(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		h.renderError(c, identity, err)
		return
	}

	if err := h.services.Stats.RecordArticleView(c.Request.Context(), article.ID); err != nil {
		h.log.Warn().Err(err).Int64("article_id", article.ID).Msg("Failed to record article view")
	}

	props := view.LayoutProps{Title: article.Title, IsAdmin: identity.IsAdmin()}
	h.render(c, http.StatusOK, view.ArticlePage(props, article))
}

// NotFound renders the fallback page for unknown routes
func (h *PageHandler) NotFound(c *gin.Context) {
	h.renderError(c, identityFrom(c), models.ErrNotFound)
}
