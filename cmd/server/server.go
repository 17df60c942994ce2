package main

import (
	"context"
	"fmt"

	"github.com/Zarathale/ZaraSprite/chatlog/sessions"
	"github.com/Zarathale/ZaraSprite/internal/config"
	"github.com/Zarathale/ZaraSprite/internal/ingest"
	"github.com/Zarathale/ZaraSprite/internal/logger"
	"github.com/Zarathale/ZaraSprite/internal/ratelimit"
	"github.com/Zarathale/ZaraSprite/internal/storage/backend"
	"github.com/gin-gonic/gin"
)

// creates and configures a new server instance with all dependencies
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	store, err := backend.Open(ctx, cfg.StorageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	logger.Info("storage ready", "backend", backend.KindOf(cfg.StorageURL))

	rateLimit, err := ratelimit.Middleware(cfg.IngestRateLimit)
	if err != nil {
		store.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		return nil, err
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	server := &Server{
		config:      cfg,
		store:       store,
		coordinator: ingest.NewCoordinator(store, cfg.SessionTimeoutWindow),
		archiver:    sessions.NewArchiver(store.Sessions(), cfg.ArchiveAfter, cfg.ArchiveSchedule),
		rateLimit:   rateLimit,
		router:      gin.Default(),
	}

	RegisterRoutes(server.router, server)

	return server, nil
}
