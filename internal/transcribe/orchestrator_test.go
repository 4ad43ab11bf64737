package transcribe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/JaiGuptaIsHere/caption-generation/internal/captions"
	"github.com/JaiGuptaIsHere/caption-generation/internal/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("production")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

type fakeProvider struct {
	name   string
	res    Result
	err    error
	calls  int
	inputs []Input
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Transcribe(_ context.Context, in Input) (Result, error) {
	p.calls++
	p.inputs = append(p.inputs, in)
	if p.err != nil {
		return Result{}, p.err
	}
	return p.res, nil
}

// fakeExtractor writes a real file so the cleanup path has something to remove.
type fakeExtractor struct {
	dir     string
	err     error
	wavPath string
}

func (e *fakeExtractor) Extract(_ context.Context, _ string) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	path := filepath.Join(e.dir, "audio.wav")
	if err := os.WriteFile(path, []byte("not a real waveform"), 0o644); err != nil {
		return "", err
	}
	e.wavPath = path
	return path, nil
}

func f64(v float64) *float64 { return &v }

func chunkResult(text string) Result {
	return Result{
		Chunks: []captions.RawChunk{{Text: text, Start: f64(0), End: f64(2)}},
		Text:   text,
	}
}

func stubWaveform(o *Orchestrator) {
	o.readWaveform = func(string) ([]float32, error) {
		return make([]float32, 16000), nil
	}
}

func TestOrchestrator_HostedSuccess(t *testing.T) {
	hosted := &fakeProvider{name: "hosted", res: chunkResult("namaste doston")}
	local := &fakeProvider{name: "local"}
	o := NewOrchestrator(testLogger(t), hosted, local, &fakeExtractor{dir: t.TempDir()})

	out, err := o.Transcribe(context.Background(), "video.mp4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Method != MethodHosted {
		t.Errorf("method = %q, want %q", out.Method, MethodHosted)
	}
	if local.calls != 0 {
		t.Errorf("local provider called %d times, want 0", local.calls)
	}
	if len(out.Captions) != 1 || out.Captions[0].Source != captions.SourceHosted {
		t.Fatalf("unexpected captions: %+v", out.Captions)
	}
	if hosted.inputs[0].MediaPath != "video.mp4" {
		t.Errorf("hosted input = %+v, want media path", hosted.inputs[0])
	}
}

func TestOrchestrator_QuotaErrorFallsBack(t *testing.T) {
	hosted := &fakeProvider{name: "hosted", err: &QuotaError{Err: errors.New("insufficient_quota")}}
	local := &fakeProvider{name: "local", res: chunkResult("offline kaam karta hai")}
	ext := &fakeExtractor{dir: t.TempDir()}
	o := NewOrchestrator(testLogger(t), hosted, local, ext)
	stubWaveform(o)

	out, err := o.Transcribe(context.Background(), "video.mp4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Method != MethodHostedFallback {
		t.Errorf("method = %q, want %q", out.Method, MethodHostedFallback)
	}
	if hosted.calls != 1 || local.calls != 1 {
		t.Errorf("calls hosted=%d local=%d, want 1 and 1", hosted.calls, local.calls)
	}
	if out.Captions[0].Source != captions.SourceLocal {
		t.Errorf("caption source = %q, want %q", out.Captions[0].Source, captions.SourceLocal)
	}
	if len(local.inputs[0].Samples) == 0 {
		t.Error("local provider should receive waveform samples")
	}
	if _, statErr := os.Stat(ext.wavPath); !os.IsNotExist(statErr) {
		t.Errorf("waveform file not cleaned up: %v", statErr)
	}
}

func TestOrchestrator_AuthAndRateLimitFallBack(t *testing.T) {
	for _, hostedErr := range []error{
		&AuthError{Err: errors.New("invalid api key")},
		&RateLimitedError{Err: errors.New("rate limited")},
	} {
		hosted := &fakeProvider{name: "hosted", err: hostedErr}
		local := &fakeProvider{name: "local", res: chunkResult("theek hai")}
		o := NewOrchestrator(testLogger(t), hosted, local, &fakeExtractor{dir: t.TempDir()})
		stubWaveform(o)

		out, err := o.Transcribe(context.Background(), "video.mp4")
		if err != nil {
			t.Fatalf("%T: unexpected error: %v", hostedErr, err)
		}
		if out.Method != MethodHostedFallback {
			t.Errorf("%T: method = %q, want %q", hostedErr, out.Method, MethodHostedFallback)
		}
	}
}

func TestOrchestrator_RemoteErrorDoesNotFallBack(t *testing.T) {
	hostedErr := &RemoteError{StatusCode: 500, Body: "server exploded"}
	hosted := &fakeProvider{name: "hosted", err: hostedErr}
	local := &fakeProvider{name: "local", res: chunkResult("should not run")}
	o := NewOrchestrator(testLogger(t), hosted, local, &fakeExtractor{dir: t.TempDir()})

	_, err := o.Transcribe(context.Background(), "video.mp4")
	if err == nil {
		t.Fatal("expected hosted error to propagate")
	}
	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("error = %v, want *RemoteError", err)
	}
	if local.calls != 0 {
		t.Errorf("local provider called %d times, want 0", local.calls)
	}
}

func TestOrchestrator_NoHostedCredentialGoesLocal(t *testing.T) {
	local := &fakeProvider{name: "local", res: chunkResult("bina key ke")}
	ext := &fakeExtractor{dir: t.TempDir()}
	o := NewOrchestrator(testLogger(t), nil, local, ext)
	stubWaveform(o)

	out, err := o.Transcribe(context.Background(), "video.mp4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Method != MethodLocal {
		t.Errorf("method = %q, want %q", out.Method, MethodLocal)
	}
	if _, statErr := os.Stat(ext.wavPath); !os.IsNotExist(statErr) {
		t.Errorf("waveform file not cleaned up: %v", statErr)
	}
}

func TestOrchestrator_ExtractionErrorPropagates(t *testing.T) {
	extractErr := errors.New("ffmpeg not found")
	o := NewOrchestrator(testLogger(t), nil, &fakeProvider{name: "local"}, &fakeExtractor{err: extractErr})

	_, err := o.Transcribe(context.Background(), "video.mp4")
	if !errors.Is(err, extractErr) {
		t.Fatalf("error = %v, want extraction error", err)
	}
}

func TestOrchestrator_WaveformCleanedUpOnLocalFailure(t *testing.T) {
	local := &fakeProvider{name: "local", err: &DecodeError{Err: errors.New("decode blew up")}}
	ext := &fakeExtractor{dir: t.TempDir()}
	o := NewOrchestrator(testLogger(t), nil, local, ext)
	stubWaveform(o)

	_, err := o.Transcribe(context.Background(), "video.mp4")
	if err == nil {
		t.Fatal("expected local failure to propagate")
	}
	if _, statErr := os.Stat(ext.wavPath); !os.IsNotExist(statErr) {
		t.Errorf("waveform file not cleaned up after failure: %v", statErr)
	}
}

func TestOrchestrator_UnreadableWaveformIsDecodeError(t *testing.T) {
	o := NewOrchestrator(testLogger(t), nil, &fakeProvider{name: "local"}, &fakeExtractor{dir: t.TempDir()})
	o.readWaveform = func(string) ([]float32, error) {
		return nil, errors.New("bad RIFF header")
	}

	_, err := o.Transcribe(context.Background(), "video.mp4")
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("error = %v, want *DecodeError", err)
	}
}
