package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"supplychain-insights/internal/common/config"
)

// PostgresClient wraps the SQL connection that backs postgres datasets.
type PostgresClient struct {
	DB           *sql.DB
	QueryTimeout time.Duration
}

// NewPostgres opens a pooled connection. sql.Open does not dial, so callers
// should Ping before relying on it.
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	if cfg.MaxConnections > 0 {
		db.SetMaxOpenConns(cfg.MaxConnections)
	}
	if cfg.MaxIdle > 0 {
		db.SetMaxIdleConns(cfg.MaxIdle)
	}
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return NewPostgresFromDB(db, config.GetDuration(cfg.QueryTimeout)), nil
}

// NewPostgresFromDB wraps an existing handle, e.g. one from sqlmock.
func NewPostgresFromDB(db *sql.DB, queryTimeout time.Duration) *PostgresClient {
	if queryTimeout <= 0 {
		queryTimeout = 30 * time.Second
	}
	return &PostgresClient{DB: db, QueryTimeout: queryTimeout}
}

func (c *PostgresClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// Query runs a row-returning statement bounded by the client's query timeout.
// The returned cancel func must be called once rows are drained.
func (c *PostgresClient) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, context.CancelFunc, error) {
	qctx, cancel := context.WithTimeout(ctx, c.QueryTimeout)
	rows, err := c.DB.QueryContext(qctx, query, args...)
	if err != nil {
		cancel()
		return nil, func() {}, err
	}
	return rows, cancel, nil
}
