package transcribe

import (
	"context"
	"math"
	"os"
	"time"

	"github.com/JaiGuptaIsHere/caption-generation/internal/captions"
	"github.com/JaiGuptaIsHere/caption-generation/internal/media"
	"github.com/JaiGuptaIsHere/caption-generation/internal/pkg/logger"
)

// Method tags reported to callers.
const (
	MethodHosted         = "hosted"
	MethodHostedFallback = "hosted-fallback-to-local"
	MethodLocal          = "local"
)

// Extractor produces a waveform file from a video. Satisfied by
// media.Extractor.
type Extractor interface {
	Extract(ctx context.Context, videoPath string) (string, error)
}

// Orchestration is the outcome of one transcription request.
type Orchestration struct {
	Captions              []captions.Cue `json:"captions"`
	Method                string         `json:"method"`
	ProcessingTimeSeconds float64        `json:"processingTimeSeconds"`
}

// Orchestrator selects a provider, executes it, classifies failures and
// decides fallback. It is the only component allowed to make that decision.
type Orchestrator struct {
	log       *logger.Logger
	hosted    Provider // nil when no hosted credential is configured
	local     Provider
	extractor Extractor

	// readWaveform is swappable for tests.
	readWaveform func(path string) ([]float32, error)
}

// NewOrchestrator wires the fallback chain. Pass hosted as nil when no valid
// credential exists; the orchestrator then goes straight to the local
// provider.
func NewOrchestrator(log *logger.Logger, hosted, local Provider, extractor Extractor) *Orchestrator {
	return &Orchestrator{
		log:          log.With("service", "Orchestrator"),
		hosted:       hosted,
		local:        local,
		extractor:    extractor,
		readWaveform: media.ReadWaveform,
	}
}

// Transcribe runs the extraction-transcription-segmentation chain for one
// video. Hosted capacity failures (auth, quota, rate limit) transparently
// retry via the local provider; every other hosted failure propagates
// unchanged.
func (o *Orchestrator) Transcribe(ctx context.Context, videoPath string) (Orchestration, error) {
	started := time.Now()

	if o.hosted == nil {
		o.log.Info("No hosted credential configured, using local provider", "video", videoPath)
		cues, err := o.transcribeLocal(ctx, videoPath)
		if err != nil {
			return Orchestration{}, err
		}
		return o.done(cues, MethodLocal, started), nil
	}

	o.log.Info("Attempting hosted provider", "video", videoPath)
	res, err := o.hosted.Transcribe(ctx, Input{MediaPath: videoPath})
	hostedElapsed := time.Since(started)
	if err == nil {
		o.log.Info("Hosted transcription succeeded", "elapsed", hostedElapsed.String())
		cues := captions.Segment(res.Chunks, res.Text, captions.SourceHosted)
		return o.done(cues, MethodHosted, started), nil
	}
	if !FallbackEligible(err) {
		o.log.Error("Hosted provider failed without fallback", "elapsed", hostedElapsed.String(), "error", err)
		return Orchestration{}, err
	}

	o.log.Warn("Hosted provider out of capacity, falling back to local", "elapsed", hostedElapsed.String(), "error", err)
	cues, localErr := o.transcribeLocal(ctx, videoPath)
	if localErr != nil {
		return Orchestration{}, localErr
	}
	return o.done(cues, MethodHostedFallback, started), nil
}

// transcribeLocal runs extraction plus local decode. The waveform file is
// request-scoped: it is removed on every exit path once the provider has
// consumed it (or failed to).
func (o *Orchestrator) transcribeLocal(ctx context.Context, videoPath string) ([]captions.Cue, error) {
	started := time.Now()

	wavPath, err := o.extractor.Extract(ctx, videoPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rmErr := os.Remove(wavPath); rmErr != nil {
			o.log.Warn("Failed to clean up waveform file", "path", wavPath, "error", rmErr)
		}
	}()

	samples, err := o.readWaveform(wavPath)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	res, err := o.local.Transcribe(ctx, Input{Samples: samples})
	elapsed := time.Since(started)
	if err != nil {
		o.log.Error("Local transcription failed", "elapsed", elapsed.String(), "error", err)
		return nil, err
	}

	o.log.Info("Local transcription succeeded", "elapsed", elapsed.String(), "chunks", len(res.Chunks))
	return captions.Segment(res.Chunks, res.Text, captions.SourceLocal), nil
}

func (o *Orchestrator) done(cues []captions.Cue, method string, started time.Time) Orchestration {
	elapsed := math.Round(time.Since(started).Seconds()*100) / 100
	o.log.Info("Transcription request complete",
		"method", method,
		"captions", len(cues),
		"processing_time_seconds", elapsed,
	)
	return Orchestration{
		Captions:              cues,
		Method:                method,
		ProcessingTimeSeconds: elapsed,
	}
}
