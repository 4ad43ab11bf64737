package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/JaiGuptaIsHere/caption-generation/internal/captions"
	"github.com/JaiGuptaIsHere/caption-generation/internal/pkg/httpx"
	"github.com/JaiGuptaIsHere/caption-generation/internal/pkg/logger"
)

// hostedLanguageHint biases the speech service toward the mixed
// Hindi/English domain. Fixed, not configurable.
const hostedLanguageHint = "hi"

// HostedOptions configure the hosted Whisper API provider.
type HostedOptions struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}

// HostedProvider calls the OpenAI audio transcription API with segment-level
// timestamps. It must only be constructed when a credential is configured;
// the orchestrator owns that check.
type HostedProvider struct {
	log        *logger.Logger
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	maxRetries int
}

func NewHostedProvider(log *logger.Logger, opts HostedOptions) *HostedProvider {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	model := opts.Model
	if model == "" {
		model = "whisper-1"
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 180 * time.Second
	}
	return &HostedProvider{
		log:        log.With("service", "HostedProvider"),
		apiKey:     opts.APIKey,
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: opts.MaxRetries,
	}
}

func (p *HostedProvider) Name() string { return "hosted" }

type verboseTranscription struct {
	Text     string `json:"text"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

func (p *HostedProvider) Transcribe(ctx context.Context, in Input) (Result, error) {
	if in.MediaPath == "" {
		return Result{}, &RemoteError{Err: fmt.Errorf("media path required")}
	}

	body, contentType, err := p.buildForm(in.MediaPath)
	if err != nil {
		return Result{}, &RemoteError{Err: err}
	}

	raw, err := p.post(ctx, body, contentType)
	if err != nil {
		return Result{}, err
	}

	var tr verboseTranscription
	if err := json.Unmarshal(raw, &tr); err != nil {
		return Result{}, &RemoteError{Err: fmt.Errorf("decode transcription response: %w", err)}
	}

	res := Result{Text: strings.TrimSpace(tr.Text)}
	for _, seg := range tr.Segments {
		start, end := seg.Start, seg.End
		res.Chunks = append(res.Chunks, captions.RawChunk{
			Text:  seg.Text,
			Start: &start,
			End:   &end,
		})
	}
	p.log.Debug("Hosted transcription complete", "segments", len(res.Chunks), "text_len", len(res.Text))
	return res, nil
}

func (p *HostedProvider) buildForm(mediaPath string) ([]byte, string, error) {
	f, err := os.Open(mediaPath)
	if err != nil {
		return nil, "", fmt.Errorf("open media: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"model":                     p.model,
		"response_format":           "verbose_json",
		"language":                  hostedLanguageHint,
		"timestamp_granularities[]": "segment",
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}

	fw, err := mw.CreateFormFile("file", filepath.Base(mediaPath))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(fw, f); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), mw.FormDataContentType(), nil
}

// post sends the request, classifying failures into the provider error
// taxonomy. Transient server-side failures are retried with backoff; the
// capacity-class errors (auth, quota, rate limit) are returned immediately so
// the orchestrator can decide fallback.
func (p *HostedProvider) post(ctx context.Context, body []byte, contentType string) ([]byte, error) {
	backoff := 1 * time.Second

	for attempt := 0; ; attempt++ {
		if ctx.Err() != nil {
			return nil, &RemoteError{Err: ctx.Err()}
		}

		resp, raw, err := p.postOnce(ctx, body, contentType)
		if err == nil {
			return raw, nil
		}
		if !httpx.IsRetryableError(err) || attempt == p.maxRetries {
			return nil, err
		}

		sleepFor := httpx.JitterSleep(httpx.RetryAfterDuration(resp, backoff, 10*time.Second))
		p.log.Warn("Hosted request retrying",
			"attempt", attempt+1,
			"max_retries", p.maxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)
		time.Sleep(sleepFor)
		backoff *= 2
	}
}

func (p *HostedProvider) postOnce(ctx context.Context, body []byte, contentType string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/v1/audio/transcriptions", bytes.NewReader(body))
	if err != nil {
		return nil, nil, &RemoteError{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, nil, &RemoteError{Err: err}
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, &RemoteError{Err: readErr}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, classifyHostedStatus(resp.StatusCode, string(raw))
	}
	return resp, raw, nil
}

func classifyHostedStatus(status int, body string) error {
	httpErr := fmt.Errorf("http %d: %s", status, body)
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &AuthError{Err: httpErr}
	case status == http.StatusTooManyRequests && strings.Contains(body, "insufficient_quota"):
		return &QuotaError{Err: httpErr}
	case status == http.StatusTooManyRequests:
		return &RateLimitedError{Err: httpErr}
	default:
		return &RemoteError{StatusCode: status, Body: body}
	}
}
