package formatinsights

import (
	"time"

	"supplychain-insights/internal/common/config"
)

type Config struct {
	Timeout         time.Duration
	Temperature     float32
	TopP            float32
	MaxOutputTokens int32
	// MinLength is exclusive: a narrative must be longer to replace the insights.
	MinLength    int
	TextLimit    int
	SummaryLimit int
	CacheTTL     time.Duration
}

func LoadConfig(ai config.AIConfig) *Config {
	cfg := &Config{
		Timeout:         config.GetDuration(ai.FormatTimeout),
		Temperature:     float32(ai.Temperature),
		TopP:            float32(ai.TopP),
		MaxOutputTokens: int32(ai.MaxOutputTokens),
		MinLength:       20,
		TextLimit:       500,
		SummaryLimit:    2000,
		CacheTTL:        config.GetDuration(ai.CacheTTL),
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.7
	}
	if cfg.TopP <= 0 {
		cfg.TopP = 0.9
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = 1024
	}
	return cfg
}
