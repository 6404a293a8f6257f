package database

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"supplychain-insights/internal/common/config"
)

// ElasticsearchClient wraps the search client that backs indexed datasets.
type ElasticsearchClient struct {
	Client       *elasticsearch.Client
	QueryTimeout time.Duration
}

func NewElasticsearch(cfg config.ElasticsearchConfig) (*ElasticsearchClient, error) {
	addresses := cfg.Addresses
	if len(addresses) == 0 && cfg.URL != "" {
		addresses = []string{cfg.URL}
	}
	return newElasticsearch(elasticsearch.Config{
		Addresses: addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	}, config.GetDuration(cfg.QueryTimeout))
}

// NewElasticsearchWithTransport is used by tests to point the client at a fake.
func NewElasticsearchWithTransport(address string, transport http.RoundTripper, queryTimeout time.Duration) (*ElasticsearchClient, error) {
	return newElasticsearch(elasticsearch.Config{
		Addresses: []string{address},
		Transport: transport,
	}, queryTimeout)
}

func newElasticsearch(esCfg elasticsearch.Config, queryTimeout time.Duration) (*ElasticsearchClient, error) {
	es, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}
	if queryTimeout <= 0 {
		queryTimeout = 10 * time.Second
	}
	return &ElasticsearchClient{Client: es, QueryTimeout: queryTimeout}, nil
}

func (c *ElasticsearchClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := c.Client.Ping(c.Client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch ping error: %s", res.Status())
	}
	return nil
}
