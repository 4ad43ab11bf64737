package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/JaiGuptaIsHere/caption-generation/internal/captions"
	"github.com/JaiGuptaIsHere/caption-generation/internal/media"
	"github.com/JaiGuptaIsHere/caption-generation/internal/pkg/logger"
	"github.com/JaiGuptaIsHere/caption-generation/internal/transcribe"
)

const defaultSuggestion = "Try a shorter video or check the backend logs"

type TranscribeHandler struct {
	log            *logger.Logger
	orchestrator   *transcribe.Orchestrator
	workDir        string
	maxUploadBytes int64
}

func NewTranscribeHandler(log *logger.Logger, orch *transcribe.Orchestrator, workDir string, maxUploadBytes int64) *TranscribeHandler {
	return &TranscribeHandler{
		log:            log.With("handler", "TranscribeHandler"),
		orchestrator:   orch,
		workDir:        workDir,
		maxUploadBytes: maxUploadBytes,
	}
}

type transcribeMetadata struct {
	Method         string `json:"method"`
	ProcessingTime string `json:"processingTime"`
	CaptionCount   int    `json:"captionCount"`
	VideoFile      string `json:"videoFile"`
	Note           string `json:"note,omitempty"`
}

type transcribeResponse struct {
	Success  bool               `json:"success"`
	Message  string             `json:"message"`
	Captions []captions.Cue     `json:"captions"`
	Metadata transcribeMetadata `json:"metadata"`
}

// POST /api/transcribe
// Accepts a multipart video upload, runs the transcription pipeline and
// returns display-ready captions. The uploaded file is request-scoped and
// removed on every exit path.
func (h *TranscribeHandler) Transcribe(c *gin.Context) {
	file, err := c.FormFile("video")
	if err != nil {
		RespondFailure(c, http.StatusBadRequest, "No video file provided", err, "Attach the video as multipart field \"video\"")
		return
	}
	if file.Size > h.maxUploadBytes {
		RespondFailure(c, http.StatusRequestEntityTooLarge, "Video file too large", fmt.Errorf("%d bytes exceeds limit of %d", file.Size, h.maxUploadBytes), "Upload a smaller video")
		return
	}

	h.log.Info("Transcribing video", "file", file.Filename, "size_mb", fmt.Sprintf("%.2f", float64(file.Size)/(1024*1024)))

	if err := os.MkdirAll(h.workDir, 0o755); err != nil {
		RespondFailure(c, http.StatusInternalServerError, "Failed to generate captions", err, defaultSuggestion)
		return
	}
	ext := filepath.Ext(file.Filename)
	if ext == "" {
		ext = ".mp4"
	}
	tempPath := filepath.Join(h.workDir, "upload-"+uuid.NewString()+ext)
	if err := c.SaveUploadedFile(file, tempPath); err != nil {
		RespondFailure(c, http.StatusInternalServerError, "Failed to generate captions", err, defaultSuggestion)
		return
	}
	defer func() {
		if rmErr := os.Remove(tempPath); rmErr != nil {
			h.log.Warn("Failed to clean up upload", "path", tempPath, "error", rmErr)
		}
	}()

	result, err := h.orchestrator.Transcribe(c.Request.Context(), tempPath)
	if err != nil {
		var extractionErr *media.ExtractionError
		if errors.As(err, &extractionErr) {
			RespondFailure(c, http.StatusBadRequest, "Could not read audio from video", err, "Upload a valid video file with an audio track")
			return
		}
		RespondFailure(c, http.StatusInternalServerError, "Failed to generate captions", err, defaultSuggestion)
		return
	}

	RespondOK(c, transcribeResponse{
		Success:  true,
		Message:  "Captions generated successfully",
		Captions: result.Captions,
		Metadata: transcribeMetadata{
			Method:         result.Method,
			ProcessingTime: fmt.Sprintf("%.2fs", result.ProcessingTimeSeconds),
			CaptionCount:   len(result.Captions),
			VideoFile:      file.Filename,
		},
	})
}

// POST /api/transcribe/demo
// Returns pre-generated captions so the preview flow can be exercised
// without any speech backend.
func (h *TranscribeHandler) TranscribeDemo(c *gin.Context) {
	file, err := c.FormFile("video")
	if err != nil {
		RespondFailure(c, http.StatusBadRequest, "No video file provided", err, "Attach the video as multipart field \"video\"")
		return
	}

	cues := demoCaptions()
	RespondOK(c, transcribeResponse{
		Success:  true,
		Message:  "Captions generated successfully (Demo mode)",
		Captions: cues,
		Metadata: transcribeMetadata{
			Method:         "demo",
			ProcessingTime: "0.00s",
			CaptionCount:   len(cues),
			VideoFile:      file.Filename,
			Note:           "Demo mode uses pre-generated captions; no speech model runs",
		},
	})
}

func demoCaptions() []captions.Cue {
	cue := func(start, end float64, text, lang string) captions.Cue {
		return captions.Cue{Start: start, End: end, Text: text, Source: captions.SourceDemo, Language: lang}
	}
	return []captions.Cue{
		cue(0, 3, "Welcome to our video platform", "english"),
		cue(3, 6, "यह एक demonstration है", captions.LanguageHinglish),
		cue(6, 9, "This shows caption styles", "english"),
		cue(9, 12, "आप bottom, top या karaoke चुन सकते हैं", captions.LanguageHinglish),
		cue(12, 15, "Export करने के लिए button click करें", captions.LanguageHinglish),
		cue(15, 18, "Thank you for watching", "english"),
	}
}
