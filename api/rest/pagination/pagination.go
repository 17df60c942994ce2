// Package pagination parses the paging query parameters shared by list endpoints.
package pagination

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Params holds cursor pagination parameters from request
type Params struct {
	Since int64
	Limit int
}

// reads ?since and ?limit. since defaults to 0 and must not be negative; limit defaults to
// defaultLimit, must be positive, and is capped at maxLimit.
func FromQuery(c *gin.Context, defaultLimit, maxLimit int) (Params, error) {
	since, err := Cursor(c)
	if err != nil {
		return Params{}, err
	}

	limit, err := Limit(c, defaultLimit, maxLimit)
	if err != nil {
		return Params{}, err
	}

	return Params{Since: since, Limit: limit}, nil
}

func Cursor(c *gin.Context) (int64, error) {
	raw := c.Query("since")
	if raw == "" {
		return 0, nil
	}

	since, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || since < 0 {
		return 0, fmt.Errorf("since must be a non-negative integer cursor, got %q", raw)
	}

	return since, nil
}

func Limit(c *gin.Context, defaultLimit, maxLimit int) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return defaultLimit, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("limit must be a positive integer, got %q", raw)
	}

	return min(limit, maxLimit), nil
}
