package answerquestion

import (
	"time"

	"supplychain-insights/internal/common/config"
)

type Config struct {
	// Timeout bounds one job end to end. HTTP requests are bounded by the
	// server's request timeout instead.
	Timeout       time.Duration
	MaxJobsActive int
}

func LoadConfig(worker config.WorkerConfig) *Config {
	cfg := &Config{
		Timeout:       config.GetDuration(worker.Timeout),
		MaxJobsActive: worker.MaxJobsActive,
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	if cfg.MaxJobsActive <= 0 {
		cfg.MaxJobsActive = 5
	}
	return cfg
}

func DefaultConfig() *Config {
	return LoadConfig(config.WorkerConfig{})
}
