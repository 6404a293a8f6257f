package querypostgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"supplychain-insights/internal/common/dataset"
	"supplychain-insights/internal/common/logger"
)

const (
	SourceKind = "postgres"
)

var (
	ErrMissingTable         = errors.New("MISSING_TABLE")
	ErrQueryExecutionFailed = errors.New("QUERY_EXECUTION_FAILED")
)

// Handler serves datasets stored as Postgres tables.
type Handler struct {
	config *Config
	db     *sql.DB
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Handler{
		config: config,
		db:     db,
		logger: log.WithFields(map[string]interface{}{"source": SourceKind}),
	}
}

// Load implements dataset.Source. Every value is read back as text so the
// table looks the same as one loaded from CSV; NULL becomes "".
func (h *Handler) Load(ctx context.Context, spec dataset.Spec) (*dataset.Table, error) {
	plan, err := h.buildQuery(spec)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	start := time.Now()
	rows, err := h.db.QueryContext(ctx, plan.SQL, plan.Args...)
	if err != nil {
		return nil, h.mapError(ctx, spec, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}

	table := &dataset.Table{Name: spec.Name, Columns: columns}
	for rows.Next() {
		cells := make([]sql.NullString, len(columns))
		dest := make([]interface{}, len(columns))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %v", ErrQueryExecutionFailed, spec.Name, err)
		}

		row := make([]string, len(columns))
		for i, c := range cells {
			if c.Valid {
				row[i] = c.String
			}
		}
		table.Rows = append(table.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, h.mapError(ctx, spec, err)
	}

	h.logger.Debug("dataset loaded", map[string]interface{}{
		"dataset":  spec.Name,
		"table":    spec.Table,
		"rows":     table.Len(),
		"duration": time.Since(start).Milliseconds(),
	})
	return table, nil
}

func (h *Handler) buildQuery(spec dataset.Spec) (queryPlan, error) {
	if spec.Table == "" {
		return queryPlan{}, fmt.Errorf("%w: dataset %s", ErrMissingTable, spec.Name)
	}

	cols := "*"
	if len(spec.Columns) > 0 {
		quoted := make([]string, len(spec.Columns))
		for i, c := range spec.Columns {
			quoted[i] = pq.QuoteIdentifier(c)
		}
		cols = strings.Join(quoted, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s", cols, quoteTable(spec.Table))

	limit := spec.Limit
	if limit <= 0 {
		limit = h.config.DefaultLimit
	}
	if limit > 0 {
		b.WriteString(" LIMIT $1")
		return queryPlan{SQL: b.String(), Args: []interface{}{limit}}, nil
	}
	return queryPlan{SQL: b.String()}, nil
}

// quoteTable quotes each part of a schema-qualified name.
func quoteTable(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}

func (h *Handler) mapError(ctx context.Context, spec dataset.Spec, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", dataset.ErrQueryTimeout, spec.Name)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "42P01" {
		return fmt.Errorf("%w: %s (table %s)", dataset.ErrDatasetNotFound, spec.Name, spec.Table)
	}
	return fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
}
