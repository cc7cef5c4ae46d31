package transliteration

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMissingAPIKey is returned when a remote backend has no credentials
	ErrMissingAPIKey = errors.New("API key not configured")
	// ErrEmptyResponse is returned when a backend produced no usable text
	ErrEmptyResponse = errors.New("empty response from transliteration backend")
)

// Service defines the interface for transliteration backends
type Service interface {
	// Simplify converts traditional characters in text to simplified ones
	Simplify(ctx context.Context, text string) (string, error)

	// Transcribe returns the pinyin segments of text in reading order
	Transcribe(ctx context.Context, text string) ([]string, error)

	// Name returns the backend name
	Name() string
}

// Config holds the configuration for creating a Service
type Config struct {
	Provider string // "local", "openai" or "gemini"

	OpenAIKey   string
	OpenAIModel string

	GeminiKey   string
	GeminiModel string

	// Circuit breaker settings for remote backends
	BreakerFailures uint32
	BreakerTimeout  time.Duration

	// EnableCache memoizes results for repeated inputs within a run
	EnableCache bool
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Provider:        "local",
		OpenAIModel:     "gpt-4o-mini",
		GeminiModel:     "gemini-2.0-flash",
		BreakerFailures: 3,
		BreakerTimeout:  30 * time.Second,
		EnableCache:     true,
	}
}

// NewService creates the backend selected by config.Provider, wrapped in the
// configured decorators.
func NewService(ctx context.Context, config *Config) (Service, error) {
	if config == nil {
		config = DefaultConfig()
	}

	var svc Service

	switch config.Provider {
	case "local", "":
		local, err := NewLocal()
		if err != nil {
			return nil, err
		}
		svc = local

	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("openai: %w", ErrMissingAPIKey)
		}
		completer := NewOpenAICompleter(config.OpenAIKey, config.OpenAIModel)
		svc = NewBreaker(NewLLM("openai", completer), config.BreakerFailures, config.BreakerTimeout)

	case "gemini":
		completer, err := NewGeminiCompleter(ctx, config.GeminiKey, config.GeminiModel)
		if err != nil {
			return nil, err
		}
		svc = NewBreaker(NewLLM("gemini", completer), config.BreakerFailures, config.BreakerTimeout)

	default:
		return nil, fmt.Errorf("unknown transliteration provider: %s", config.Provider)
	}

	if config.EnableCache {
		svc = NewCache(svc)
	}

	return svc, nil
}
