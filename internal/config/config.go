package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Default configuration values.
const (
	defaultPort            = 8080
	defaultDataDir         = "/data/reels"
	defaultTranscriberURL  = "http://transcription:5000"
	defaultLLMURL          = "http://llm-processor:11434"
	defaultLLMModel        = "llama3.2:3b"
	defaultLLMTimeout      = 240 * time.Second
	defaultTranscribeTO    = 10 * time.Second
	defaultAttempts        = 3
	defaultRetryDelay      = 2 * time.Second
	defaultCacheClearEvery = 5 * time.Minute
)

// Config holds the application configuration.
type Config struct {
	Port            int
	DataDir         string
	ResolverEnabled bool

	TranscriberURL       string
	TranscribeTimeout    time.Duration
	TranscribeAttempts   int
	TranscribeRetryDelay time.Duration

	LLMURL     string
	LLMModel   string
	LLMTimeout time.Duration

	CacheClearInterval time.Duration
}

// Load reads configuration from the environment, applying defaults for
// anything unset.
func Load() (*Config, error) {
	cfg := &Config{
		Port:                 envInt("PORT", defaultPort),
		DataDir:              envOr("DATA_DIR", defaultDataDir),
		ResolverEnabled:      envBool("RESOLVER_ENABLED", true),
		TranscriberURL:       envOr("TRANSCRIBER_URL", defaultTranscriberURL),
		TranscribeTimeout:    envDuration("TRANSCRIBE_TIMEOUT", defaultTranscribeTO),
		TranscribeAttempts:   envInt("TRANSCRIBE_ATTEMPTS", defaultAttempts),
		TranscribeRetryDelay: envDuration("TRANSCRIBE_RETRY_DELAY", defaultRetryDelay),
		LLMURL:               envOr("LLM_URL", defaultLLMURL),
		LLMModel:             envOr("LLM_MODEL", defaultLLMModel),
		LLMTimeout:           envDuration("LLM_TIMEOUT", defaultLLMTimeout),
		CacheClearInterval:   envDuration("CACHE_CLEAR_INTERVAL", defaultCacheClearEvery),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot run
// with.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data dir is required")
	}
	if c.TranscribeAttempts < 1 {
		return fmt.Errorf("transcribe attempts must be at least 1, got %d", c.TranscribeAttempts)
	}
	if c.CacheClearInterval <= 0 {
		return fmt.Errorf("cache clear interval must be positive, got %s", c.CacheClearInterval)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
