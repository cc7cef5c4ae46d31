package transliteration

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiCompleter sends completions to the Gemini API
type GeminiCompleter struct {
	model  string
	client *genai.Client
}

// NewGeminiCompleter creates a new Gemini completer
func NewGeminiCompleter(ctx context.Context, apiKey, model string) (*GeminiCompleter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: %w", ErrMissingAPIKey)
	}
	if model == "" {
		model = DefaultConfig().GeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiCompleter{
		model:  model,
		client: client,
	}, nil
}

// Complete sends instruction as system instruction and input as content
func (c *GeminiCompleter) Complete(ctx context.Context, instruction, input string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.1),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(input), config)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini: %w", ErrEmptyResponse)
	}
	return text, nil
}
