package classifyintent

import (
	"time"

	"supplychain-insights/internal/common/config"
)

type Config struct {
	Timeout          time.Duration
	MaxResponseBytes int
}

func LoadConfig(ai config.AIConfig) *Config {
	cfg := &Config{
		Timeout:          config.GetDuration(ai.ClassifyTimeout),
		MaxResponseBytes: ai.MaxResponseBytes,
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxResponseBytes <= 0 {
		cfg.MaxResponseBytes = 64 * 1024
	}
	return cfg
}
