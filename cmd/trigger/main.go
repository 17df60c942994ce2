package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/Zarathale/ZaraSprite/internal/config"
	"github.com/Zarathale/ZaraSprite/internal/llm"
	"github.com/Zarathale/ZaraSprite/internal/logger"
	"github.com/Zarathale/ZaraSprite/internal/trigger"
)

func main() {
	cfg, err := config.LoadTriggerEnvironment()
	if err != nil {
		logger.FatalErr(err, "failed to load configuration")
	}

	logger.Configure(cfg.Environment, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cursors trigger.CursorStore
	skipBacklog := false

	if cfg.RedisURL != "" {
		redisCursors, err := trigger.NewRedisCursorStoreFromURL(cfg.RedisURL, cfg.CursorKey)
		if err != nil {
			logger.FatalErr(err, "failed to connect to redis")
		}
		defer redisCursors.Close() //nolint:errcheck

		cursors = redisCursors
		logger.Info("trigger cursor persisted in redis", "key", cfg.CursorKey)
	} else {
		cursors = trigger.NewMemoryCursorStore()
		skipBacklog = true
		logger.Warn("REDIS_URL not set, trigger cursor kept in memory")
	}

	responder := llm.NewOpenAIResponder(llm.OpenAIConfig{
		APIKey: cfg.OpenAIKey,
		Model:  cfg.OpenAIModel,
	})

	worker := trigger.NewWorker(
		trigger.NewHTTPSource(cfg.ChatlogURL),
		responder,
		trigger.NewHTTPReplier(cfg.BotURL),
		cursors,
		cfg.PollInterval,
		cfg.BatchSize,
	)

	if skipBacklog {
		head, err := worker.SkipBacklog(ctx)
		if err != nil {
			logger.FatalErr(err, "failed to skip chat backlog")
		}
		logger.Info("skipped chat backlog", "cursor", head)
	}

	logger.Info("trigger consumer started",
		"chatlog_url", cfg.ChatlogURL,
		"model", responder.Model(),
		"poll_interval", cfg.PollInterval,
	)

	if err := worker.Run(ctx); err != nil {
		logger.ErrorErr(err, "trigger consumer stopped with error")
	}

	logger.Info("trigger consumer stopped")
}
