package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/JaiGuptaIsHere/caption-generation/internal/app"
	"github.com/JaiGuptaIsHere/caption-generation/internal/handlers"
	"github.com/JaiGuptaIsHere/caption-generation/internal/media"
	"github.com/JaiGuptaIsHere/caption-generation/internal/pkg/logger"
	"github.com/JaiGuptaIsHere/caption-generation/internal/render"
	"github.com/JaiGuptaIsHere/caption-generation/internal/server"
	"github.com/JaiGuptaIsHere/caption-generation/internal/transcribe"
	"github.com/JaiGuptaIsHere/caption-generation/internal/utils"
)

func main() {
	_ = godotenv.Load()

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Config
	log.Info("Loading configuration...")
	cfg := app.LoadConfig(log)

	// Media tooling
	extractor := media.NewExtractor(log)
	if err := extractor.AssertReady(); err != nil {
		log.Fatal("Audio extractor not ready", "error", err)
	}

	// Providers
	local := transcribe.NewLocalProvider(log, cfg.WhisperModelPath)
	var hosted transcribe.Provider
	if cfg.HostedConfigured() {
		log.Info("Hosted provider configured", "model", cfg.OpenAIModel)
		hosted = transcribe.NewHostedProvider(log, transcribe.HostedOptions{
			APIKey:     cfg.OpenAIAPIKey,
			BaseURL:    cfg.OpenAIBaseURL,
			Model:      cfg.OpenAIModel,
			Timeout:    cfg.OpenAITimeout,
			MaxRetries: cfg.OpenAIMaxRetries,
		})
	} else {
		log.Info("No hosted credential, local provider only")
	}
	orchestrator := transcribe.NewOrchestrator(log, hosted, local, extractor)

	// Style presets
	presets, err := render.LoadPresets(utils.GetEnv("STYLES_FILE", "", log))
	if err != nil {
		log.Fatal("Failed to load caption style presets", "error", err)
	}

	// Handlers
	transcribeHandler := handlers.NewTranscribeHandler(log, orchestrator, cfg.WorkDir, cfg.MaxUploadBytes)
	captionsHandler := handlers.NewCaptionsHandler(log, presets)
	runtimeHandler := handlers.NewRuntimeHandler(log, local, cfg.HostedConfigured())

	// Router
	router := server.NewRouter(server.RouterConfig{
		TranscribeHandler: transcribeHandler,
		CaptionsHandler:   captionsHandler,
		RuntimeHandler:    runtimeHandler,
		FrontendURL:       cfg.FrontendURL,
		MaxUploadBytes:    cfg.MaxUploadBytes,
	})

	log.Info("Server starting", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
