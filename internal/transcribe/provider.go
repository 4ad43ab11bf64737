// Package transcribe holds the transcription pipeline core: the pluggable
// provider capability, the hosted and local Whisper variants, and the
// orchestrator that selects between them and applies the fallback policy.
package transcribe

import (
	"context"

	"github.com/JaiGuptaIsHere/caption-generation/internal/captions"
)

// Input is the tagged provider input: the hosted variant consumes the raw
// media file directly, the local variant consumes an extracted waveform.
type Input struct {
	// MediaPath points at the uploaded video (hosted variant).
	MediaPath string
	// Samples is a mono 16 kHz waveform in [-1, 1] (local variant).
	Samples []float32
}

// Result carries a provider's raw output before segmentation. Text is the
// whole-utterance transcript, used when no timestamped chunks are available.
type Result struct {
	Chunks []captions.RawChunk
	Text   string
}

// Provider is a pluggable speech-to-text backend.
type Provider interface {
	Name() string
	Transcribe(ctx context.Context, in Input) (Result, error)
}
