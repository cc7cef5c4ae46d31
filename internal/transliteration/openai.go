package transliteration

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAICompleter sends completions to the OpenAI chat API
type OpenAICompleter struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewOpenAICompleter creates a new OpenAI chat completer
func NewOpenAICompleter(apiKey, model string) *OpenAICompleter {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAICompleter{
		apiKey: apiKey,
		model:  model,
		client: openai.NewClient(apiKey),
	}
}

// NewOpenAICompleterWithBaseURL creates a completer for an OpenAI compatible
// endpoint such as a local proxy.
func NewOpenAICompleterWithBaseURL(apiKey, model, baseURL string) *OpenAICompleter {
	completer := NewOpenAICompleter(apiKey, model)

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL
	completer.client = openai.NewClientWithConfig(config)

	return completer
}

// Complete sends instruction as system message and input as user message
func (c *OpenAICompleter) Complete(ctx context.Context, instruction, input string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("openai: %w", ErrMissingAPIKey)
	}

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: instruction,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: input,
			},
		},
		Temperature: 0.1,
		MaxTokens:   500,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: %w", ErrEmptyResponse)
	}

	return resp.Choices[0].Message.Content, nil
}
