package api

import (
	"net/http"
	"strconv"

	"github.com/blog-cms-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// StatsHandler handles the statistics endpoint
type StatsHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(services *service.Services, log zerolog.Logger) *StatsHandler {
	return &StatsHandler{
		services: services,
		log:      log.With().Str("handler", "stats").Logger(),
	}
}

// Overview handles GET /api/stats?days=N&top=M. Missing or invalid values
// fall back to the configured defaults.
func (h *StatsHandler) Overview(c *gin.Context) {
	days, _ := strconv.Atoi(c.Query("days"))
	top, _ := strconv.Atoi(c.Query("top"))

	overview, err := h.services.Stats.Overview(c.Request.Context(), identityFrom(c), days, top)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}
