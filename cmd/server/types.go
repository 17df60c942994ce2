package main

import (
	"github.com/Zarathale/ZaraSprite/chatlog/sessions"
	"github.com/Zarathale/ZaraSprite/internal/config"
	"github.com/Zarathale/ZaraSprite/internal/ingest"
	"github.com/Zarathale/ZaraSprite/internal/storage"
	"github.com/gin-gonic/gin"
)

// holds all dependencies and state for the API server
type Server struct {
	config      *config.Config
	store       storage.Store
	coordinator *ingest.Coordinator
	archiver    *sessions.Archiver
	rateLimit   gin.HandlerFunc
	router      *gin.Engine
}
