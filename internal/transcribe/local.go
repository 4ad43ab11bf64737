package transcribe

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/JaiGuptaIsHere/caption-generation/internal/pkg/logger"
)

// decoder is the loaded in-process speech model.
type decoder interface {
	Decode(ctx context.Context, samples []float32) (Result, error)
	Close() error
}

// LocalProvider runs an in-process Whisper model. The model is loaded lazily
// on first use; if N concurrent requests are the first to need it, exactly
// one load occurs and all N await its completion. The loaded instance lives
// for the rest of the process.
type LocalProvider struct {
	log       *logger.Logger
	modelPath string

	// load is swappable for tests.
	load func(modelPath string, log *logger.Logger) (decoder, error)

	group singleflight.Group
	mu    sync.RWMutex
	dec   decoder
}

func NewLocalProvider(log *logger.Logger, modelPath string) *LocalProvider {
	return &LocalProvider{
		log:       log.With("service", "LocalProvider"),
		modelPath: modelPath,
		load:      newWhisperDecoder,
	}
}

func (p *LocalProvider) Name() string { return "local" }

func (p *LocalProvider) Transcribe(ctx context.Context, in Input) (Result, error) {
	dec, err := p.decoder()
	if err != nil {
		return Result{}, err
	}
	return dec.Decode(ctx, in.Samples)
}

// ModelLoaded reports whether the model has been initialized yet.
func (p *LocalProvider) ModelLoaded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.dec != nil
}

// ModelPath returns the configured model file location.
func (p *LocalProvider) ModelPath() string { return p.modelPath }

func (p *LocalProvider) decoder() (decoder, error) {
	p.mu.RLock()
	dec := p.dec
	p.mu.RUnlock()
	if dec != nil {
		return dec, nil
	}

	v, err, _ := p.group.Do("model", func() (interface{}, error) {
		// A racing request may have finished the load between the read lock
		// and joining the flight.
		p.mu.RLock()
		existing := p.dec
		p.mu.RUnlock()
		if existing != nil {
			return existing, nil
		}

		p.log.Info("Loading local speech model", "model_path", p.modelPath)
		loaded, loadErr := p.load(p.modelPath, p.log)
		if loadErr != nil {
			return nil, &ModelLoadError{Err: loadErr}
		}
		p.mu.Lock()
		p.dec = loaded
		p.mu.Unlock()
		p.log.Info("Local speech model loaded")
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(decoder), nil
}
