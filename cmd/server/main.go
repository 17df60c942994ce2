package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Zarathale/ZaraSprite/internal/config"
	"github.com/Zarathale/ZaraSprite/internal/logger"
)

func main() {
	// load configuration from environment
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.FatalErr(err, "failed to load configuration")
	}

	logger.Configure(cfg.Environment, cfg.LogLevel)
	logger.Info("starting zarasprite chat log server",
		"session_timeout_window", cfg.SessionTimeoutWindow,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// create server with all dependencies
	srv, err := NewServer(ctx, cfg)
	if err != nil {
		logger.FatalErr(err, "failed to create server")
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      srv.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// start server in goroutine
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.FatalErr(err, "server failed to start")
		}
	}()

	// start session archiver; it stops when ctx is cancelled
	if err := srv.archiver.Start(ctx); err != nil {
		logger.FatalErr(err, "failed to start session archiver")
	}

	// wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// stop accepting events before the store goes away
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	cancel()
	srv.archiver.Stop()

	// close storage connection
	if err := srv.store.Close(); err != nil {
		logger.ErrorErr(err, "failed to close storage")
	}

	logger.Info("server stopped")
}
