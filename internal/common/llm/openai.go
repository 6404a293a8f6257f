package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIGenerator uses the Chat Completions API.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator creates a generator; baseURL may be empty for the public API.
func NewOpenAIGenerator(apiKey, model, baseURL string) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: api key is required")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIGenerator{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

func (g *OpenAIGenerator) Name() string  { return "openai" }
func (g *OpenAIGenerator) Model() string { return g.model }

// WithModel returns a generator sharing the client but targeting model.
func (g *OpenAIGenerator) WithModel(model string) Generator {
	return &OpenAIGenerator{client: g.client, model: model}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string, opts *GenerateOptions) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	if opts != nil {
		if opts.Temperature != nil {
			req.Temperature = *opts.Temperature
		}
		if opts.TopP != nil {
			req.TopP = *opts.TopP
		}
		req.MaxTokens = int(opts.MaxOutputTokens)
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai generate: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}
