package profiles

import (
	"github.com/Zarathale/ZaraSprite/chatlog/profiles"
	"github.com/Zarathale/ZaraSprite/chatlog/sessions"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, profileRepo profiles.Repository, sessionRepo sessions.Repository) {
	router.GET("/profiles/:username", GetProfileHandler(profileRepo))
	router.GET("/profiles/:username/sessions", ListSessionsHandler(profileRepo, sessionRepo))
}
