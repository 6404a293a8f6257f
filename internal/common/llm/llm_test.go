package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplychain-insights/internal/common/config"
	"supplychain-insights/internal/common/logger"
)

func TestHTTPGenerator(t *testing.T) {
	var got generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/generate", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(generateResponse{Text: "forecast"})
	}))
	defer server.Close()

	g := NewHTTPGenerator(server.URL+"/", "secret", "default", 1024)
	text, err := g.Generate(context.Background(), "classify this", &GenerateOptions{
		Temperature:     Float32(0.7),
		TopP:            Float32(0.9),
		MaxOutputTokens: 1024,
	})

	require.NoError(t, err)
	assert.Equal(t, "forecast", text)
	assert.Equal(t, "classify this", got.Prompt)
	assert.Equal(t, int32(1024), got.MaxTokens)
	require.NotNil(t, got.TopP)
	assert.InDelta(t, 0.9, *got.TopP, 1e-6)
}

func TestHTTPGenerator_EmptyText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"text":"   "}`))
	}))
	defer server.Close()

	_, err := NewHTTPGenerator(server.URL, "", "default", 1024).Generate(context.Background(), "x", nil)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestOpenAIGenerator(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"))

		var req struct {
			Model     string `json:"model"`
			MaxTokens int    `json:"max_tokens"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		assert.Equal(t, 256, req.MaxTokens)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","model":"gpt-4o-mini",
			"choices":[{"index":0,"message":{"role":"assistant","content":"{\"intent\":\"shipping\"}"},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	g, err := NewOpenAIGenerator("sk-test", "gpt-4o-mini", server.URL+"/v1")
	require.NoError(t, err)

	text, err := g.Generate(context.Background(), "q", &GenerateOptions{MaxOutputTokens: 256})
	require.NoError(t, err)
	assert.Equal(t, `{"intent":"shipping"}`, text)
	assert.Equal(t, "openai", g.Name())
}

func TestGeminiGenerator(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "gemini-2.0-flash:generateContent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Demand "},{"text":"is rising."}]}}]}`))
	}))
	defer server.Close()

	g, err := NewGeminiGenerator(context.Background(), GeminiOptions{
		APIKey:  "test-key",
		Model:   "models/gemini-2.0-flash",
		BaseURL: server.URL + "/",
	})
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", g.Model())

	text, err := g.Generate(context.Background(), "q", &GenerateOptions{Temperature: Float32(0.7)})
	require.NoError(t, err)
	assert.Equal(t, "Demand is rising.", text)
}

func TestNewGeminiGenerator_RequiresKey(t *testing.T) {
	_, err := NewGeminiGenerator(context.Background(), GeminiOptions{Model: "gemini-2.0-flash"})
	assert.Error(t, err)
}

type probeStub struct {
	model   string
	working map[string]bool
	calls   *[]string
}

func (p *probeStub) Generate(ctx context.Context, prompt string, opts *GenerateOptions) (string, error) {
	*p.calls = append(*p.calls, p.model)
	if p.working[p.model] {
		return "ok", nil
	}
	return "", errors.New("404 model not found")
}
func (p *probeStub) Name() string  { return "stub" }
func (p *probeStub) Model() string { return p.model }
func (p *probeStub) WithModel(model string) Generator {
	return &probeStub{model: model, working: p.working, calls: p.calls}
}

func TestProbe(t *testing.T) {
	var calls []string
	base := &probeStub{model: "a", working: map[string]bool{"c": true, "d": true}, calls: &calls}

	g, err := Probe(context.Background(), base, []string{"a", "b", "c", "d"}, time.Second, logger.NewTestLogger(t))
	require.NoError(t, err)
	assert.Equal(t, "c", g.Model())
	assert.Equal(t, []string{"a", "b", "c"}, calls)

	calls = nil
	_, err = Probe(context.Background(), base, []string{"a", "b"}, time.Second, nil)
	assert.ErrorIs(t, err, ErrNoWorkingModel)
}

func TestNewGenerator_Disabled(t *testing.T) {
	g, err := NewGenerator(context.Background(), config.AIConfig{Provider: config.ProviderNone}, nil)
	assert.NoError(t, err)
	assert.Nil(t, g)
}

func TestNewGenerator_HTTPWithoutProbe(t *testing.T) {
	g, err := NewGenerator(context.Background(), config.AIConfig{
		Provider:         config.ProviderHTTP,
		BaseURL:          "http://genai.local",
		Models:           []string{"default"},
		MaxResponseBytes: 4096,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "http", g.Name())
	assert.Equal(t, "default", g.Model())
}
