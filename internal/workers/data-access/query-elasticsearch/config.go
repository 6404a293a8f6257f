package queryelasticsearch

import "time"

type Config struct {
	Timeout time.Duration
	// DefaultSize is the hit count requested when a dataset sets no limit.
	DefaultSize int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:     30 * time.Second,
		DefaultSize: 10000,
	}
}
