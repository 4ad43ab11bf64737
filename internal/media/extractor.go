package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/JaiGuptaIsHere/caption-generation/internal/pkg/logger"
)

// Every downstream speech model consumes this rate; it is not negotiated at
// runtime.
const (
	SampleRateHz = 16000
	Channels     = 1
)

// ExtractionError means the container could not be decoded or carries no
// audio track. It is fatal for the request; the orchestrator never falls back
// past it.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("audio extraction failed for %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Extractor shells out to ffmpeg to turn an uploaded video into a mono
// 16 kHz PCM WAV file. Deleting the output is the caller's responsibility.
type Extractor struct {
	log        *logger.Logger
	ffmpegPath string
	timeout    time.Duration
}

func NewExtractor(log *logger.Logger) *Extractor {
	return &Extractor{
		log:        log.With("service", "AudioExtractor"),
		ffmpegPath: "ffmpeg",
		timeout:    10 * time.Minute,
	}
}

// AssertReady verifies the ffmpeg binary is resolvable before the server
// starts taking uploads.
func (e *Extractor) AssertReady() error {
	if _, err := exec.LookPath(e.ffmpegPath); err != nil {
		return fmt.Errorf("missing required binary %q in PATH: %w", e.ffmpegPath, err)
	}
	return nil
}

// Extract writes the waveform file adjacent to the input video and returns
// its path.
func (e *Extractor) Extract(ctx context.Context, videoPath string) (string, error) {
	if videoPath == "" {
		return "", &ExtractionError{Path: videoPath, Err: fmt.Errorf("videoPath required")}
	}
	if _, err := os.Stat(videoPath); err != nil {
		return "", &ExtractionError{Path: videoPath, Err: err}
	}

	base := strings.TrimSuffix(videoPath, filepath.Ext(videoPath))
	outPath := base + "_audio.wav"

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.ffmpegPath,
		"-y",
		"-i", videoPath,
		"-vn",
		"-ac", fmt.Sprint(Channels),
		"-ar", fmt.Sprint(SampleRateHz),
		"-f", "wav",
		outPath,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		// ffmpeg leaves partial output behind on failure
		_ = os.Remove(outPath)
		e.log.Error("ffmpeg failed", "video", videoPath, "error", err, "output", tail(string(out), 400))
		return "", &ExtractionError{Path: videoPath, Err: fmt.Errorf("ffmpeg: %w", err)}
	}

	info, err := os.Stat(outPath)
	if err != nil || info.Size() == 0 {
		_ = os.Remove(outPath)
		return "", &ExtractionError{Path: videoPath, Err: fmt.Errorf("no audio produced")}
	}

	e.log.Debug("Audio extracted", "video", videoPath, "waveform", outPath, "bytes", info.Size())
	return outPath, nil
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
