package llm

import (
	"context"
	"fmt"
	"strings"

	httpclient "supplychain-insights/internal/common/http"
)

// HTTPGenerator calls a GenAI gateway exposing POST /api/ai/generate.
type HTTPGenerator struct {
	client  *httpclient.Client
	baseURL string
	apiKey  string
	model   string
}

func NewHTTPGenerator(baseURL, apiKey, model string, maxBody int64) *HTTPGenerator {
	return &HTTPGenerator{
		// No client timeout; callers bound each call with a context.
		client:  httpclient.NewClient(0).WithMaxBody(maxBody),
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
	}
}

func (g *HTTPGenerator) Name() string  { return "http" }
func (g *HTTPGenerator) Model() string { return g.model }

// WithModel returns a generator sharing the client but targeting model.
func (g *HTTPGenerator) WithModel(model string) Generator {
	clone := *g
	clone.model = model
	return &clone
}

type generateRequest struct {
	Prompt      string   `json:"prompt"`
	Model       string   `json:"model,omitempty"`
	MaxTokens   int32    `json:"max_tokens,omitempty"`
	Temperature *float32 `json:"temperature,omitempty"`
	TopP        *float32 `json:"top_p,omitempty"`
}

type generateResponse struct {
	Text string `json:"text"`
}

func (g *HTTPGenerator) Generate(ctx context.Context, prompt string, opts *GenerateOptions) (string, error) {
	reqBody := generateRequest{Prompt: prompt, Model: g.model}
	if opts != nil {
		reqBody.MaxTokens = opts.MaxOutputTokens
		reqBody.Temperature = opts.Temperature
		reqBody.TopP = opts.TopP
	}

	headers := map[string]string{}
	if g.apiKey != "" {
		headers["Authorization"] = "Bearer " + g.apiKey
	}

	var resp generateResponse
	if err := g.client.PostJSON(ctx, g.baseURL+"/api/ai/generate", headers, reqBody, &resp); err != nil {
		return "", fmt.Errorf("genai gateway: %w", err)
	}
	if strings.TrimSpace(resp.Text) == "" {
		return "", ErrEmptyResponse
	}
	return resp.Text, nil
}
