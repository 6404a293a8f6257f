package querypostgresql

import "time"

type Config struct {
	Timeout time.Duration
	// DefaultLimit caps rows when a dataset sets no limit. Zero means no cap.
	DefaultLimit int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      30 * time.Second,
		DefaultLimit: 50000,
	}
}
