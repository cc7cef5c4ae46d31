package models

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// ErrMissingAPIKey is returned when no OpenAI API key is configured
var ErrMissingAPIKey = errors.New("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure openai.api_key in .hanzicloze.yaml")

// Model families that cannot answer chat completions
var nonChatMarkers = []string{"tts", "audio", "realtime", "transcribe", "search", "image", "dall-e", "embedding", "whisper", "moderation"}

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister
func NewLister(apiKey string) *Lister {
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
	}
}

// NewListerWithBaseURL creates a lister talking to an OpenAI compatible API
func NewListerWithBaseURL(apiKey, baseURL string) *Lister {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(config),
	}
}

// ChatModels filters model IDs down to sorted chat completion models
func ChatModels(ids []string) []string {
	chatModels := []string{}

	for _, id := range ids {
		if !isChatModel(id) {
			continue
		}
		chatModels = append(chatModels, id)
	}

	sort.Strings(chatModels)
	return chatModels
}

func isChatModel(id string) bool {
	for _, marker := range nonChatMarkers {
		if strings.Contains(id, marker) {
			return false
		}
	}
	return strings.HasPrefix(id, "gpt") || strings.HasPrefix(id, "o1") ||
		strings.HasPrefix(id, "o3") || strings.HasPrefix(id, "o4") || strings.Contains(id, "chat")
}

// ListAvailableModels writes the chat models usable for transliteration
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer) error {
	if l.apiKey == "" {
		return ErrMissingAPIKey
	}

	// List models
	models, err := l.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	ids := make([]string, 0, len(models.Models))
	for _, model := range models.Models {
		ids = append(ids, model.ID)
	}
	chatModels := ChatModels(ids)

	fmt.Fprintln(w, "Chat models usable with --provider openai --openai-model:")
	if len(chatModels) == 0 {
		fmt.Fprintln(w, "  No chat models found")
		return nil
	}
	for _, model := range chatModels {
		fmt.Fprintf(w, "  %s\n", model)
	}

	return nil
}
