package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// GeminiGenerator calls the Gemini API through the official genai client.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// GeminiOptions configures the genai client. BaseURL and HTTPClient are
// optional and mostly useful against a local endpoint.
type GeminiOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

func NewGeminiGenerator(ctx context.Context, opts GeminiOptions) (*GeminiGenerator, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}

	cc := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &GeminiGenerator{client: client, model: strings.TrimPrefix(opts.Model, "models/")}, nil
}

func (g *GeminiGenerator) Name() string  { return "gemini" }
func (g *GeminiGenerator) Model() string { return g.model }

// WithModel returns a generator sharing the client but targeting model.
func (g *GeminiGenerator) WithModel(model string) Generator {
	return &GeminiGenerator{client: g.client, model: strings.TrimPrefix(model, "models/")}
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, opts *GenerateOptions) (string, error) {
	var cfg *genai.GenerateContentConfig
	if opts != nil {
		cfg = &genai.GenerateContentConfig{
			Temperature:     opts.Temperature,
			TopP:            opts.TopP,
			MaxOutputTokens: opts.MaxOutputTokens,
		}
	}

	content := genai.NewContentFromText(prompt, genai.RoleUser)
	resp, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{content}, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var result strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			result.WriteString(part.Text)
		}
	}

	if result.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return result.String(), nil
}
