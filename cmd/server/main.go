package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/radio-cms-api/internal/api"
	"github.com/radio-cms-api/internal/auth"
	"github.com/radio-cms-api/internal/config"
	"github.com/radio-cms-api/internal/database"
	"github.com/radio-cms-api/internal/memstore"
	"github.com/radio-cms-api/internal/repository"
	"github.com/radio-cms-api/internal/service"
	"github.com/radio-cms-api/pkg/logger"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	var repos *repository.Repositories
	switch cfg.Store {
	case config.StoreMemory:
		log.Warn().Msg("Using in-memory store, data will not survive a restart")
		repos = memstore.New()
	default:
		db, err := database.New(&cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()

		migrationsPath := os.Getenv("MIGRATIONS_PATH")
		if migrationsPath == "" {
			migrationsPath = "migrations"
		}
		if err := db.RunMigrations(migrationsPath); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}

		repos = repository.New(db)
	}

	sessions := auth.NewManager(&cfg.Admin)
	services := service.NewServices(repos, cfg, log)
	router := api.NewRouter(services, sessions, cfg, log)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
