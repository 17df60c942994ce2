package messages

import (
	"github.com/Zarathale/ZaraSprite/chatlog/messages"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, repo messages.Repository) {
	router.GET("/messages", RecentMessagesHandler(repo))
}
