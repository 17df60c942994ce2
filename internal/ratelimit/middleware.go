// Package ratelimit throttles ingest requests per client IP.
package ratelimit

import (
	"fmt"

	"github.com/Zarathale/ZaraSprite/internal/errors"
	"github.com/Zarathale/ZaraSprite/internal/logger"
	"github.com/gin-gonic/gin"
	limiter "github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// builds an in-memory per-IP limiter from a formatted rate such as "120-M"
func Middleware(formatted string) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", formatted, err)
	}

	instance := limiter.New(memory.NewStore(), rate)

	return mgin.NewMiddleware(instance,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			logger.Warn("ingest rate limit reached", "client_ip", c.ClientIP(), "path", c.FullPath())
			errors.TooManyRequests(c, "")
		}),
	), nil
}
