package transcribe

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/JaiGuptaIsHere/caption-generation/internal/pkg/logger"
)

type fakeDecoder struct {
	res Result
	err error
}

func (d *fakeDecoder) Decode(_ context.Context, _ []float32) (Result, error) {
	if d.err != nil {
		return Result{}, d.err
	}
	return d.res, nil
}

func (d *fakeDecoder) Close() error { return nil }

func TestLocalProvider_LoadsModelOnce(t *testing.T) {
	var loads int32
	p := NewLocalProvider(testLogger(t), "models/whisper-tiny.bin")
	p.load = func(modelPath string, _ *logger.Logger) (decoder, error) {
		atomic.AddInt32(&loads, 1)
		// Hold the flight open long enough for every goroutine to join it.
		time.Sleep(50 * time.Millisecond)
		return &fakeDecoder{res: chunkResult("ek hi baar load hua")}, nil
	}

	if p.ModelLoaded() {
		t.Fatal("model should not be loaded before first use")
	}

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = p.Transcribe(context.Background(), Input{Samples: make([]float32, 16000)})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("request %d failed: %v", i, err)
		}
	}
	if got := atomic.LoadInt32(&loads); got != 1 {
		t.Errorf("model loaded %d times, want 1", got)
	}
	if !p.ModelLoaded() {
		t.Error("model should be loaded after first use")
	}
}

func TestLocalProvider_ReusesLoadedModel(t *testing.T) {
	var loads int32
	p := NewLocalProvider(testLogger(t), "models/whisper-tiny.bin")
	p.load = func(string, *logger.Logger) (decoder, error) {
		atomic.AddInt32(&loads, 1)
		return &fakeDecoder{res: chunkResult("cached")}, nil
	}

	for i := 0; i < 3; i++ {
		if _, err := p.Transcribe(context.Background(), Input{}); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if loads != 1 {
		t.Errorf("model loaded %d times across sequential calls, want 1", loads)
	}
}

func TestLocalProvider_LoadFailureIsModelLoadError(t *testing.T) {
	loadErr := errors.New("model file missing")
	p := NewLocalProvider(testLogger(t), "models/nope.bin")
	p.load = func(string, *logger.Logger) (decoder, error) {
		return nil, loadErr
	}

	_, err := p.Transcribe(context.Background(), Input{})
	var mlErr *ModelLoadError
	if !errors.As(err, &mlErr) {
		t.Fatalf("error = %v, want *ModelLoadError", err)
	}
	if !errors.Is(err, loadErr) {
		t.Errorf("error should wrap the underlying load failure, got %v", err)
	}
	if p.ModelLoaded() {
		t.Error("failed load must not mark the model as loaded")
	}
}

func TestLocalProvider_LoadRetriedAfterFailure(t *testing.T) {
	calls := 0
	p := NewLocalProvider(testLogger(t), "models/whisper-tiny.bin")
	p.load = func(string, *logger.Logger) (decoder, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("transient io error")
		}
		return &fakeDecoder{res: chunkResult("dusri koshish")}, nil
	}

	if _, err := p.Transcribe(context.Background(), Input{}); err == nil {
		t.Fatal("first call should fail")
	}
	if _, err := p.Transcribe(context.Background(), Input{}); err != nil {
		t.Fatalf("second call should retry the load: %v", err)
	}
	if calls != 2 {
		t.Errorf("load called %d times, want 2", calls)
	}
}
