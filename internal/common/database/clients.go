package database

import (
	"context"
	"errors"
	"fmt"

	"supplychain-insights/internal/common/config"
	"supplychain-insights/internal/common/logger"
)

// Clients holds the optional storage backends. A nil field means the backend
// is disabled in config.
type Clients struct {
	Postgres      *PostgresClient
	Elasticsearch *ElasticsearchClient
	Redis         *RedisClient
}

// Open connects every enabled backend and pings it. A backend that cannot be
// reached is an error; the caller decides whether to run without it.
func Open(ctx context.Context, cfg config.DatabaseConfig, log logger.Logger) (*Clients, error) {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	c := &Clients{}

	if cfg.Postgres.Enabled {
		pg, err := NewPostgres(cfg.Postgres)
		if err != nil {
			return c, err
		}
		if err := pg.Ping(ctx); err != nil {
			_ = pg.Close()
			return c, fmt.Errorf("postgres ping failed: %w", err)
		}
		c.Postgres = pg
		log.Info("Postgres connected", map[string]interface{}{"host": cfg.Postgres.Host, "database": cfg.Postgres.Database})
	}

	if cfg.Elasticsearch.Enabled {
		es, err := NewElasticsearch(cfg.Elasticsearch)
		if err != nil {
			return c, err
		}
		if err := es.Ping(ctx); err != nil {
			return c, err
		}
		c.Elasticsearch = es
		log.Info("Elasticsearch connected", map[string]interface{}{"url": cfg.Elasticsearch.GetURL()})
	}

	if cfg.Redis.Enabled {
		rc := NewRedis(cfg.Redis)
		if err := rc.Ping(ctx); err != nil {
			_ = rc.Close()
			return c, err
		}
		c.Redis = rc
		log.Info("Redis connected", map[string]interface{}{"address": cfg.Redis.Address})
	}

	return c, nil
}

func (c *Clients) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Postgres != nil {
		errs = append(errs, c.Postgres.Close())
	}
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	return errors.Join(errs...)
}
