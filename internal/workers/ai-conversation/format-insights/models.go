package formatinsights

import (
	"context"
	"time"
)

// NarrativeCache stores generated narratives. *database.RedisClient
// implements it.
type NarrativeCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

// summaryItem is the condensed form of one insight sent to the generator.
type summaryItem struct {
	Type string                 `json:"type"`
	Text string                 `json:"text"`
	Data map[string]interface{} `json:"data,omitempty"`
}
