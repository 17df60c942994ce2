package config

import "time"

// settings for the ingestion server, read once at process start
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL"`
	Port        string `env:"PORT" envDefault:"8080"`

	// SQLite file path, or a postgres:// URL
	StorageURL string `env:"STORAGE_URL" envDefault:"data/chatlog.db"`

	SessionTimeoutWindow time.Duration `env:"SESSION_TIMEOUT_WINDOW" envDefault:"20m"`

	// sessions that started longer ago than this are archived by the scheduled job
	ArchiveAfter    time.Duration `env:"ARCHIVE_AFTER" envDefault:"24h"`
	ArchiveSchedule string        `env:"ARCHIVE_SCHEDULE" envDefault:"@every 10m"`

	// ulule/limiter format, e.g. "120-M" is 120 requests per minute per client
	IngestRateLimit string `env:"INGEST_RATE_LIMIT" envDefault:"120-M"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// settings for the trigger/response consumer
type TriggerConfig struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL"`

	// base URL of the ingestion server's API
	ChatlogURL string `env:"CHATLOG_URL" envDefault:"http://localhost:8080"`

	// endpoint of the in-game bot that relays replies to players
	BotURL string `env:"BOT_URL" envDefault:"http://localhost:3000/send"`

	OpenAIKey   string `env:"OPENAI_API_KEY"`
	OpenAIModel string `env:"OPENAI_MODEL" envDefault:"gpt-4o"`

	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"5s"`
	BatchSize    int           `env:"POLL_BATCH_SIZE" envDefault:"100"`

	// optional; without it the cursor is kept in memory and restarts resume from zero
	RedisURL  string `env:"REDIS_URL"`
	CursorKey string `env:"CURSOR_KEY" envDefault:"zarasprite:trigger:cursor"`
}
