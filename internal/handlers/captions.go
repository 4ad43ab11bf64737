package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JaiGuptaIsHere/caption-generation/internal/captions"
	"github.com/JaiGuptaIsHere/caption-generation/internal/pkg/logger"
	"github.com/JaiGuptaIsHere/caption-generation/internal/render"
)

// CaptionsHandler exposes the cue utilities: script statistics, encoding
// validation, SubRip export and per-frame caption resolution.
type CaptionsHandler struct {
	log     *logger.Logger
	presets map[render.Style]render.Preset
}

func NewCaptionsHandler(log *logger.Logger, presets map[render.Style]render.Preset) *CaptionsHandler {
	return &CaptionsHandler{
		log:     log.With("handler", "CaptionsHandler"),
		presets: presets,
	}
}

type cueListRequest struct {
	Captions []captions.Cue `json:"captions" binding:"required"`
}

// POST /api/captions/stats
func (h *CaptionsHandler) Stats(c *gin.Context) {
	var req cueListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondFailure(c, http.StatusBadRequest, "Invalid caption list", err, "Send {\"captions\": [...]}")
		return
	}
	RespondOK(c, captions.ComputeStats(req.Captions))
}

// POST /api/captions/validate
func (h *CaptionsHandler) Validate(c *gin.Context) {
	var req cueListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondFailure(c, http.StatusBadRequest, "Invalid caption list", err, "Send {\"captions\": [...]}")
		return
	}
	RespondOK(c, captions.Validate(req.Captions))
}

// POST /api/captions/export/srt
// Responds with the SubRip document as plain text.
func (h *CaptionsHandler) ExportSRT(c *gin.Context) {
	var req cueListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondFailure(c, http.StatusBadRequest, "Invalid caption list", err, "Send {\"captions\": [...]}")
		return
	}
	srt := captions.ToSRT(req.Captions)
	c.Header("Content-Disposition", `attachment; filename="captions.srt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(srt))
}

type frameRequest struct {
	Time       float64        `json:"time"`
	FrameIndex int            `json:"frame"`
	FPS        float64        `json:"fps"`
	Style      string         `json:"style"`
	Captions   []captions.Cue `json:"captions" binding:"required"`
}

// POST /api/captions/frame
// Resolves the active caption (and karaoke word states) at a presentation
// time. Either "time" or "frame"+"fps" selects the instant.
func (h *CaptionsHandler) ResolveFrame(c *gin.Context) {
	var req frameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondFailure(c, http.StatusBadRequest, "Invalid frame request", err, "Send {\"captions\": [...], \"style\": \"karaoke\", \"time\": 2.1}")
		return
	}

	style := render.Style(req.Style)
	if req.Style == "" {
		style = render.StyleBottom
	}
	if _, ok := h.presets[style]; !ok {
		RespondFailure(c, http.StatusBadRequest, "Unknown caption style", nil, "Use one of: bottom, top, karaoke")
		return
	}

	var frame render.Frame
	if req.FPS > 0 {
		frame = render.ResolveAtFrame(req.FrameIndex, req.FPS, req.Captions, style)
	} else {
		frame = render.Resolve(req.Time, req.Captions, style)
	}
	RespondOK(c, frame)
}

// GET /api/styles
func (h *CaptionsHandler) Styles(c *gin.Context) {
	RespondOK(c, h.presets)
}
