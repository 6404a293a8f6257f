package sendalert

import (
	"fmt"
	"time"

	"supplychain-insights/internal/common/config"
)

type Config struct {
	Enabled      bool
	TopicARN     string
	MinRiskCount int
	Timeout      time.Duration
	EmailEnabled bool
	EmailFrom    string
	EmailTo      []string
}

func LoadConfig(cfg config.AlertsConfig) *Config {
	c := &Config{
		Enabled:      cfg.Enabled,
		TopicARN:     cfg.TopicARN,
		MinRiskCount: cfg.MinRiskCount,
		Timeout:      10 * time.Second,
		EmailEnabled: cfg.Email.Enabled,
		EmailFrom:    cfg.Email.From,
		EmailTo:      cfg.Email.To,
	}
	if c.MinRiskCount <= 0 {
		c.MinRiskCount = 1
	}
	return c
}

func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.TopicARN == "" {
		return fmt.Errorf("alerts.topic_arn is required when alerts are enabled")
	}
	if c.EmailEnabled {
		if !isValidEmail(c.EmailFrom) {
			return fmt.Errorf("invalid alerts.email.from address: %q", c.EmailFrom)
		}
		if len(c.EmailTo) == 0 {
			return fmt.Errorf("alerts.email.to needs at least one recipient")
		}
		for _, addr := range c.EmailTo {
			if !isValidEmail(addr) {
				return fmt.Errorf("invalid alerts.email.to address: %q", addr)
			}
		}
	}
	return nil
}
