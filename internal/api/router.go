package api

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/blog-cms-api/internal/auth"
	"github.com/blog-cms-api/internal/config"
	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	identityKey  = "identity"
	requestIDKey = "request_id"
)

// HealthChecker reports the health of the backing store
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
	Stats() sql.DBStats
}

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, resolver *auth.Resolver, db HealthChecker, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(requestIDMiddleware())
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())
	router.Use(identityMiddleware(resolver))

	// Handlers
	authHandler := NewAuthHandler(services, resolver.CookieName(), log)
	articleHandler := NewArticleHandler(services, log)
	paragraphHandler := NewParagraphHandler(services, log)
	statsHandler := NewStatsHandler(services, log)
	contactHandler := NewContactHandler(services, log)
	fileHandler := NewFileHandler(services, cfg.Media, log)
	pageHandler := NewPageHandler(services, log)

	// Health check
	router.GET("/health", healthCheck(db))

	// Static files and media uploads
	if cfg.Media.StaticDir != "" {
		router.Static("/static", cfg.Media.StaticDir)
	}

	// Pages
	router.GET("/", pageHandler.Home)
	router.GET("/about", pageHandler.About)
	router.GET("/donate", pageHandler.Donate)
	router.GET("/article/:id", pageHandler.Article)
	router.NoRoute(pageHandler.NotFound)

	// API
	api := router.Group("/api")
	{
		api.POST("/login", authHandler.Login)
		api.GET("/logout", authHandler.Logout)
		api.POST("/logout", authHandler.Logout)

		api.POST("/article", articleHandler.Create)
		api.GET("/article", articleHandler.List)
		api.GET("/article/:id", articleHandler.Get)
		api.PUT("/article/:id", articleHandler.Update)
		api.DELETE("/article/:id", articleHandler.Delete)
		api.GET("/articles/:offset/:limit", articleHandler.ListPage)
		api.GET("/articles/:offset/:limit/:tag", articleHandler.ListPage)

		api.POST("/paragraph", paragraphHandler.Create)
		api.GET("/paragraph/:id", paragraphHandler.Get)
		api.GET("/paragraph/:id/rendered", paragraphHandler.GetRendered)
		api.PUT("/paragraph/:id", paragraphHandler.Update)
		api.DELETE("/paragraph/:id", paragraphHandler.Delete)

		api.GET("/stats", statsHandler.Overview)

		api.POST("/contact", contactHandler.Submit)
		api.GET("/contact", contactHandler.List)
		api.GET("/contact/:id", contactHandler.Get)
		api.DELETE("/contact/:id", contactHandler.Delete)

		api.GET("/files", fileHandler.List)
		api.POST("/files/:id", fileHandler.Upload)
	}

	return router
}

// healthCheck returns the health status
func healthCheck(db HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		state := "healthy"
		dbState := "ok"
		var pool sql.DBStats

		if db != nil {
			pool = db.Stats()
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.HealthCheck(ctx); err != nil {
				status = http.StatusServiceUnavailable
				state = "unhealthy"
				dbState = err.Error()
			}
		}

		c.JSON(status, gin.H{
			"status":   state,
			"database": dbState,
			"pool": gin.H{
				"open_connections": pool.OpenConnections,
				"in_use":           pool.InUse,
				"idle":             pool.Idle,
				"wait_count":       pool.WaitCount,
			},
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "blog-cms-api",
		})
	}
}

// identityFrom returns the identity resolved for the request
func identityFrom(c *gin.Context) models.Identity {
	if v, ok := c.Get(identityKey); ok {
		if identity, ok := v.(models.Identity); ok {
			return identity
		}
	}
	return models.Anonymous()
}

// identityMiddleware resolves the caller from the session cookie
func identityMiddleware(resolver *auth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		values := c.Request.Header.Values("Cookie")
		identity := resolver.Resolve(strings.Join(values, "; "), len(values) > 0)
		c.Set(identityKey, identity)
		c.Next()
	}
}

// requestIDMiddleware propagates or assigns an X-Request-ID
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Interface("error", err).
					Str("request_id", c.GetString(requestIDKey)).
					Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("request_id", c.GetString(requestIDKey)).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Str("user_state", string(identityFrom(c).State)).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
