package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const version = "1.0.0"

// returns the server health status, degraded when storage does not answer
func Handler(store Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, Response{
				Status:  "degraded",
				Service: "zarasprite",
				Storage: "unreachable",
				Version: version,
			})
			return
		}

		c.JSON(http.StatusOK, Response{
			Status:  "healthy",
			Service: "zarasprite",
			Storage: "ok",
			Version: version,
		})
	}
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}
