package transliteration

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "local", config.Provider)
	assert.Equal(t, "gpt-4o-mini", config.OpenAIModel)
	assert.Equal(t, "gemini-2.0-flash", config.GeminiModel)
	assert.True(t, config.EnableCache)
	assert.EqualValues(t, 3, config.BreakerFailures)
}

func TestNewService(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		wantName string
		wantErr  error
	}{
		{
			name:     "default is local",
			config:   nil,
			wantName: "local",
		},
		{
			name:     "openai with key",
			config:   &Config{Provider: "openai", OpenAIKey: "test-key", OpenAIModel: "gpt-4o-mini"},
			wantName: "openai",
		},
		{
			name:    "openai without key",
			config:  &Config{Provider: "openai"},
			wantErr: ErrMissingAPIKey,
		},
		{
			name:    "gemini without key",
			config:  &Config{Provider: "gemini"},
			wantErr: ErrMissingAPIKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewService(context.Background(), tt.config)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, svc.Name())
		})
	}
}

func TestNewService_Unknown(t *testing.T) {
	_, err := NewService(context.Background(), &Config{Provider: "babelfish"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transliteration provider")
}

func TestNewService_CacheWrapping(t *testing.T) {
	svc, err := NewService(context.Background(), &Config{Provider: "local", EnableCache: true})
	require.NoError(t, err)
	_, ok := svc.(*Cache)
	assert.True(t, ok, "expected cache decorator, got %T", svc)

	svc, err = NewService(context.Background(), &Config{Provider: "local"})
	require.NoError(t, err)
	_, ok = svc.(*Local)
	assert.True(t, ok, "expected bare local service, got %T", svc)
}

func TestOpenAICompleter_NoAPIKey(t *testing.T) {
	completer := NewOpenAICompleter("", "")

	_, err := completer.Complete(context.Background(), simplifyInstruction, "你好")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestOpenAI_Integration(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	svc := NewLLM("openai", NewOpenAICompleter(apiKey, "gpt-4o-mini"))

	simplified, err := svc.Simplify(context.Background(), "你今年幾歲？")
	require.NoError(t, err)
	assert.Contains(t, simplified, "岁")

	segments, err := svc.Transcribe(context.Background(), simplified)
	require.NoError(t, err)
	assert.NotEmpty(t, segments)
	t.Logf("pinyin for %q: %v", simplified, segments)
}

func TestGemini_Integration(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: GEMINI_API_KEY not set")
	}

	completer, err := NewGeminiCompleter(context.Background(), apiKey, "")
	require.NoError(t, err)
	svc := NewLLM("gemini", completer)

	segments, err := svc.Transcribe(context.Background(), "你好")
	require.NoError(t, err)
	assert.NotEmpty(t, segments)
}
