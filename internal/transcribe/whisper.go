package transcribe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	whisper "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"

	"github.com/JaiGuptaIsHere/caption-generation/internal/captions"
	"github.com/JaiGuptaIsHere/caption-generation/internal/media"
	"github.com/JaiGuptaIsHere/caption-generation/internal/pkg/logger"
)

// Decode configuration for the local model. Values are fixed for the mixed
// Hindi/English domain, not negotiated at runtime.
const (
	// decodeWindowSeconds is the length of one decode window.
	decodeWindowSeconds = 30
	// decodeStrideSeconds is the overlap between consecutive windows.
	decodeStrideSeconds = 5
	// decodeCandidates is the width of the candidate search.
	decodeCandidates = 5
	// decodeTemperature keeps decoding greedy.
	decodeTemperature = 0.0
	// decodeLanguage biases the model toward the Hindi/English domain.
	decodeLanguage = "hi"
)

// whisperDecoder wraps a loaded whisper.cpp model. Decoding runs over
// 30-second windows with 5 seconds of overlap; word-level timestamps come
// from single-word segment splitting.
type whisperDecoder struct {
	log   *logger.Logger
	model whisper.Model
}

func newWhisperDecoder(modelPath string, log *logger.Logger) (decoder, error) {
	model, err := whisper.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("load whisper model %s: %w", modelPath, err)
	}
	return &whisperDecoder{log: log, model: model}, nil
}

func (d *whisperDecoder) Close() error {
	return d.model.Close()
}

func (d *whisperDecoder) Decode(ctx context.Context, samples []float32) (Result, error) {
	if len(samples) == 0 {
		return Result{}, nil
	}

	window := decodeWindowSeconds * media.SampleRateHz
	step := (decodeWindowSeconds - decodeStrideSeconds) * media.SampleRateHz
	overlap := decodeStrideSeconds * media.SampleRateHz

	var (
		res  Result
		text strings.Builder
	)

	for off := 0; off == 0 || off < len(samples); off += step {
		if err := ctx.Err(); err != nil {
			return Result{}, &DecodeError{Err: err}
		}

		end := off + window
		if end > len(samples) {
			end = len(samples)
		}

		chunks, windowText, err := d.decodeWindow(samples[off:end], off, off > 0, overlap)
		if err != nil {
			return Result{}, &DecodeError{Err: err}
		}
		res.Chunks = append(res.Chunks, chunks...)
		if windowText != "" {
			if text.Len() > 0 {
				text.WriteString(" ")
			}
			text.WriteString(windowText)
		}

		if end == len(samples) {
			break
		}
	}

	res.Text = text.String()
	d.log.Debug("Local decode complete", "chunks", len(res.Chunks), "samples", len(samples))
	return res, nil
}

// decodeWindow transcribes one window. For windows after the first, segments
// falling entirely inside the leading overlap were already produced by the
// previous window's tail and are dropped.
func (d *whisperDecoder) decodeWindow(window []float32, offsetSamples int, skipOverlap bool, overlapSamples int) ([]captions.RawChunk, string, error) {
	wctx, err := d.model.NewContext()
	if err != nil {
		return nil, "", fmt.Errorf("new whisper context: %w", err)
	}
	if err := wctx.SetLanguage(decodeLanguage); err != nil {
		return nil, "", fmt.Errorf("set language: %w", err)
	}
	wctx.SetTranslate(false)
	wctx.SetTemperature(decodeTemperature)
	wctx.SetBeamSize(decodeCandidates)
	wctx.SetTokenTimestamps(true)
	wctx.SetSplitOnWord(true)
	wctx.SetMaxSegmentLength(1)

	if err := wctx.Process(window, nil, nil, nil); err != nil {
		return nil, "", fmt.Errorf("process window: %w", err)
	}

	base := float64(offsetSamples) / media.SampleRateHz
	overlapSeconds := float64(overlapSamples) / media.SampleRateHz

	var (
		chunks []captions.RawChunk
		text   strings.Builder
	)
	for {
		seg, err := wctx.NextSegment()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, "", fmt.Errorf("read segment: %w", err)
		}

		segStart := seg.Start.Seconds()
		segEnd := seg.End.Seconds()
		if skipOverlap && segEnd <= overlapSeconds {
			continue
		}

		start := base + segStart
		stop := base + segEnd
		chunks = append(chunks, captions.RawChunk{
			Text:  seg.Text,
			Start: &start,
			End:   &stop,
		})
		if t := strings.TrimSpace(seg.Text); t != "" {
			if text.Len() > 0 {
				text.WriteString(" ")
			}
			text.WriteString(t)
		}
	}
	return chunks, text.String(), nil
}
