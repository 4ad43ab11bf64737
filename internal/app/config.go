package app

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/JaiGuptaIsHere/caption-generation/internal/pkg/logger"
	"github.com/JaiGuptaIsHere/caption-generation/internal/utils"
)

const defaultMaxUploadBytes = 100 * 1024 * 1024

type Config struct {
	Port        string
	FrontendURL string

	// Hosted provider (OpenAI Whisper API)
	OpenAIAPIKey     string
	OpenAIBaseURL    string
	OpenAIModel      string
	OpenAITimeout    time.Duration
	OpenAIMaxRetries int

	// Local provider (whisper.cpp)
	WhisperModelPath string

	WorkDir        string
	MaxUploadBytes int64

	hostedConfigured bool
}

// LoadConfig reads the process configuration once at startup. Hosted
// credential validity (presence and key format) is decided here and cached
// for the life of the process.
func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:             utils.GetEnv("PORT", "5000", log),
		FrontendURL:      utils.GetEnv("FRONTEND_URL", "", log),
		OpenAIAPIKey:     strings.TrimSpace(utils.GetEnv("OPENAI_API_KEY", "", log)),
		OpenAIBaseURL:    strings.TrimRight(utils.GetEnv("OPENAI_BASE_URL", "https://api.openai.com", log), "/"),
		OpenAIModel:      utils.GetEnv("OPENAI_WHISPER_MODEL", "whisper-1", log),
		OpenAITimeout:    time.Duration(utils.GetEnvAsInt("OPENAI_TIMEOUT_SECONDS", 180, log)) * time.Second,
		OpenAIMaxRetries: utils.GetEnvAsInt("OPENAI_MAX_RETRIES", 2, log),
		WhisperModelPath: utils.GetEnv("WHISPER_MODEL_PATH", filepath.Join(".cache", "ggml-tiny.bin"), log),
		WorkDir:          utils.GetEnv("WORK_DIR", filepath.Join(os.TempDir(), "caption-generation"), log),
		MaxUploadBytes:   utils.GetEnvAsInt64("MAX_UPLOAD_BYTES", defaultMaxUploadBytes, log),
	}
	cfg.hostedConfigured = validHostedKey(cfg.OpenAIAPIKey)
	if cfg.OpenAIAPIKey != "" && !cfg.hostedConfigured {
		log.Warn("OPENAI_API_KEY present but not a usable key, hosted provider disabled")
	}
	return cfg
}

// HostedConfigured reports whether a usable hosted-provider credential was
// present at startup.
func (c Config) HostedConfigured() bool {
	return c.hostedConfigured
}

func validHostedKey(key string) bool {
	if key == "" || key == "your_openai_api_key_here" {
		return false
	}
	return strings.HasPrefix(key, "sk-")
}
