package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/blog-cms-api/internal/api"
	"github.com/blog-cms-api/internal/auth"
	"github.com/blog-cms-api/internal/config"
	"github.com/blog-cms-api/internal/database"
	"github.com/blog-cms-api/internal/repository"
	"github.com/blog-cms-api/internal/service"
	"github.com/blog-cms-api/internal/session"
	"github.com/blog-cms-api/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to a YAML or TOML config file")
	migrateDown := pflag.Bool("migrate-down", false, "roll back the last migration and exit")
	migrateTo := pflag.Uint("migrate-to", 0, "migrate to the given version and exit")
	pflag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLog := logger.New("info", "json")
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting blog server...")

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Migration commands run instead of the server
	switch {
	case *migrateDown:
		if err := db.MigrateDown(); err != nil {
			log.Fatal().Err(err).Msg("Failed to roll back migration")
		}
		return
	case pflag.CommandLine.Changed("migrate-to"):
		if err := db.MigrateToVersion(*migrateTo); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate")
		}
		return
	}

	if err := db.RunMigrations(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	if !cfg.Admin.AdminConfigured() {
		log.Warn().Msg("ADMIN_USER or ADMIN_PASSWORD is empty, login is disabled")
	}

	// Initialize repositories and services
	repos := repository.New(db)
	sessions := session.NewStore()
	services := service.NewServices(repos, sessions, cfg, log)

	if _, err := services.Stats.FindOrCreateToday(context.Background()); err != nil {
		log.Warn().Err(err).Msg("Failed to prepare today's stats row")
	}

	// Initialize router
	gin.SetMode(gin.ReleaseMode)
	resolver := auth.NewResolver(sessions, cfg.Server.CookieName)
	router := api.NewRouter(services, resolver, db, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
