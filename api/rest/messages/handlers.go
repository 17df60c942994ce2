package messages

import (
	"net/http"

	"github.com/Zarathale/ZaraSprite/api/rest/pagination"
	"github.com/Zarathale/ZaraSprite/chatlog/messages"
	"github.com/Zarathale/ZaraSprite/internal/errors"
	"github.com/gin-gonic/gin"
)

// RecentMessagesHandler returns messages recorded after the ?since cursor
func RecentMessagesHandler(repo messages.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		params, err := pagination.FromQuery(c, messages.DefaultPageSize, messages.MaxPageSize)
		if err != nil {
			errors.BadRequest(c, err.Error(), nil)
			return
		}

		page, err := messages.RecentMessages(c.Request.Context(), repo, params.Since, params.Limit)
		if err != nil {
			errors.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, page)
	}
}
