package chat

import (
	"time"

	"github.com/gin-gonic/gin"
)

// registers the ingest endpoint; middleware runs before the handler (rate limiting)
func RegisterRoutes(router gin.IRoutes, path string, ingester Ingester, middleware ...gin.HandlerFunc) {
	handlers := make([]gin.HandlerFunc, 0, len(middleware)+1)
	handlers = append(handlers, middleware...)
	handlers = append(handlers, IngestHandler(ingester, time.Now))

	router.POST(path, handlers...)
}
