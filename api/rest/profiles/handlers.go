package profiles

import (
	"net/http"

	"github.com/Zarathale/ZaraSprite/api/rest/pagination"
	"github.com/Zarathale/ZaraSprite/chatlog/profiles"
	"github.com/Zarathale/ZaraSprite/chatlog/sessions"
	"github.com/Zarathale/ZaraSprite/internal/errors"
	"github.com/gin-gonic/gin"
)

// GetProfileHandler returns a player's aggregate profile
func GetProfileHandler(repo profiles.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := repo.Get(c.Request.Context(), c.Param("username"))
		if err != nil {
			errors.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, profile)
	}
}

// ListSessionsHandler returns a player's sessions, newest first
func ListSessionsHandler(profileRepo profiles.Repository, sessionRepo sessions.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")

		limit, err := pagination.Limit(c, defaultSessionLimit, maxSessionLimit)
		if err != nil {
			errors.BadRequest(c, err.Error(), nil)
			return
		}

		// 404 for unknown players rather than an empty list
		if _, err := profileRepo.Get(c.Request.Context(), username); err != nil {
			errors.Respond(c, err)
			return
		}

		list, err := sessionRepo.ListByUsername(c.Request.Context(), username, limit)
		if err != nil {
			errors.Respond(c, err)
			return
		}

		if list == nil {
			list = []*sessions.Session{}
		}

		c.JSON(http.StatusOK, SessionsResponse{Username: username, Sessions: list})
	}
}
