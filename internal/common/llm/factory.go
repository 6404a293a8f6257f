package llm

import (
	"context"
	"fmt"

	"supplychain-insights/internal/common/config"
	"supplychain-insights/internal/common/logger"
)

// ModelSwitcher is implemented by generators that can target another model
// while sharing their client.
type ModelSwitcher interface {
	WithModel(model string) Generator
}

// NewGenerator builds the configured provider. It returns (nil, nil) when no
// provider is configured. With probing enabled, candidate models are tried in
// order and the first that answers is kept; ErrNoWorkingModel means AI must
// be treated as unavailable.
func NewGenerator(ctx context.Context, cfg config.AIConfig, log logger.Logger) (Generator, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	if len(cfg.Models) == 0 {
		return nil, fmt.Errorf("ai.models is empty")
	}

	var base Generator
	switch cfg.Provider {
	case config.ProviderGemini:
		g, err := NewGeminiGenerator(ctx, GeminiOptions{APIKey: cfg.APIKey, Model: cfg.Models[0], BaseURL: cfg.BaseURL})
		if err != nil {
			return nil, err
		}
		base = g
	case config.ProviderOpenAI:
		g, err := NewOpenAIGenerator(cfg.APIKey, cfg.Models[0], cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		base = g
	case config.ProviderHTTP:
		base = NewHTTPGenerator(cfg.BaseURL, cfg.APIKey, cfg.Models[0], int64(cfg.MaxResponseBytes))
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if !cfg.ProbeOnStartup {
		return base, nil
	}
	return Probe(ctx, base, cfg.Models, config.GetDuration(cfg.ProbeTimeout), log)
}
