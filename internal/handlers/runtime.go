package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/JaiGuptaIsHere/caption-generation/internal/media"
	"github.com/JaiGuptaIsHere/caption-generation/internal/pkg/logger"
	"github.com/JaiGuptaIsHere/caption-generation/internal/transcribe"
)

// RuntimeHandler reports transcription runtime state: which providers are
// available and whether the local model has been loaded yet.
type RuntimeHandler struct {
	log              *logger.Logger
	local            *transcribe.LocalProvider
	hostedConfigured bool
}

func NewRuntimeHandler(log *logger.Logger, local *transcribe.LocalProvider, hostedConfigured bool) *RuntimeHandler {
	return &RuntimeHandler{
		log:              log.With("handler", "RuntimeHandler"),
		local:            local,
		hostedConfigured: hostedConfigured,
	}
}

// GET /api/model
func (h *RuntimeHandler) ModelInfo(c *gin.Context) {
	RespondOK(c, gin.H{
		"hostedConfigured": h.hostedConfigured,
		"localModel": gin.H{
			"path":         h.local.ModelPath(),
			"loaded":       h.local.ModelLoaded(),
			"sampleRateHz": media.SampleRateHz,
			"offline":      true,
			"supportedScripts": []string{
				"Latin (English)",
				"Devanagari (Hindi)",
			},
		},
	})
}
