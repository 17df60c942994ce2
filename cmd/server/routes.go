package main

import (
	"github.com/Zarathale/ZaraSprite/api/rest/chat"
	"github.com/Zarathale/ZaraSprite/api/rest/health"
	"github.com/Zarathale/ZaraSprite/api/rest/messages"
	"github.com/Zarathale/ZaraSprite/api/rest/profiles"
	"github.com/Zarathale/ZaraSprite/internal/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(RequestLogger())
	router.Use(CORSMiddleware(server.config.CORSAllowedOrigins))
	router.GET("/health", health.Handler(server.store))

	// path the chathook plugin has always posted to
	chat.RegisterRoutes(router, "/receive", server.coordinator, server.rateLimit)

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		chat.RegisterRoutes(v1, "/chat", server.coordinator, server.rateLimit)
		messages.RegisterRoutes(v1, server.store.Messages())
		profiles.RegisterRoutes(v1, server.store.Profiles(), server.store.Sessions())
	}
}

// allows the configured browser origins to read the API
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}

	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
	}

	return cors.New(cfg)
}

// attaches a request-scoped logger to the request context
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		l := logger.With(
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"client_ip", c.ClientIP(),
		)
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), l))
		c.Next()
	}
}
