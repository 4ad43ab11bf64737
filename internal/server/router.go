package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/JaiGuptaIsHere/caption-generation/internal/handlers"
)

type RouterConfig struct {
	TranscribeHandler *handlers.TranscribeHandler
	CaptionsHandler   *handlers.CaptionsHandler
	RuntimeHandler    *handlers.RuntimeHandler
	FrontendURL       string
	MaxUploadBytes    int64
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	if cfg.MaxUploadBytes > 0 {
		router.MaxMultipartMemory = cfg.MaxUploadBytes
	}

	allowOrigins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}
	if cfg.FrontendURL != "" {
		allowOrigins = append(allowOrigins, cfg.FrontendURL)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/", handlers.Index)

	api := router.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/model", cfg.RuntimeHandler.ModelInfo)
		api.GET("/styles", cfg.CaptionsHandler.Styles)

		api.POST("/transcribe", cfg.TranscribeHandler.Transcribe)
		api.POST("/transcribe/demo", cfg.TranscribeHandler.TranscribeDemo)

		captionsGroup := api.Group("/captions")
		{
			captionsGroup.POST("/stats", cfg.CaptionsHandler.Stats)
			captionsGroup.POST("/validate", cfg.CaptionsHandler.Validate)
			captionsGroup.POST("/export/srt", cfg.CaptionsHandler.ExportSRT)
			captionsGroup.POST("/frame", cfg.CaptionsHandler.ResolveFrame)
		}
	}

	return router
}
