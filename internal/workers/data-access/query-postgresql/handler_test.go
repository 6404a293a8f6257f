package querypostgresql

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"supplychain-insights/internal/common/dataset"
	"supplychain-insights/internal/common/logger"
)

func createTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	h := NewHandler(&Config{Timeout: 5 * time.Second, DefaultLimit: 100}, db, logger.NewZapAdapter(zaptest.NewLogger(t)))
	return h, mock, db
}

func TestHandler_Load_Success(t *testing.T) {
	h, mock, db := createTestHandler(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "courier_partner", "delivery_time_days" FROM "logistics"."transportations" LIMIT $1`)).
		WithArgs(500).
		WillReturnRows(sqlmock.NewRows([]string{"courier_partner", "delivery_time_days"}).
			AddRow("BlueDart", 2.5).
			AddRow("Delhivery", nil))

	table, err := h.Load(context.Background(), dataset.Spec{
		Name:    "transportations_sample",
		Table:   "logistics.transportations",
		Columns: []string{"courier_partner", "delivery_time_days"},
		Limit:   500,
	})
	require.NoError(t, err)

	assert.Equal(t, "transportations_sample", table.Name)
	assert.Equal(t, []string{"courier_partner", "delivery_time_days"}, table.Columns)
	assert.Equal(t, [][]string{{"BlueDart", "2.5"}, {"Delhivery", ""}}, table.Rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Load_DefaultLimitAndStar(t *testing.T) {
	h, mock, db := createTestHandler(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders" LIMIT $1`)).
		WithArgs(100).
		WillReturnRows(sqlmock.NewRows([]string{"category"}).AddRow("Electronics"))

	table, err := h.Load(context.Background(), dataset.Spec{Name: "orders_sample", Table: "orders"})
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Load_Errors(t *testing.T) {
	t.Run("missing table name", func(t *testing.T) {
		h, _, db := createTestHandler(t)
		defer db.Close()

		_, err := h.Load(context.Background(), dataset.Spec{Name: "orders_sample"})
		assert.ErrorIs(t, err, ErrMissingTable)
	})

	t.Run("undefined table", func(t *testing.T) {
		h, mock, db := createTestHandler(t)
		defer db.Close()

		mock.ExpectQuery("SELECT").WillReturnError(&pq.Error{Code: "42P01", Message: "relation does not exist"})

		_, err := h.Load(context.Background(), dataset.Spec{Name: "orders_sample", Table: "orders"})
		assert.ErrorIs(t, err, dataset.ErrDatasetNotFound)
	})

	t.Run("timeout", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		h := NewHandler(&Config{Timeout: 10 * time.Millisecond}, db, nil)

		mock.ExpectQuery("SELECT").WillDelayFor(time.Second).
			WillReturnRows(sqlmock.NewRows([]string{"category"}))

		_, err = h.Load(context.Background(), dataset.Spec{Name: "orders_sample", Table: "orders"})
		assert.ErrorIs(t, err, dataset.ErrQueryTimeout)
	})

	t.Run("generic failure", func(t *testing.T) {
		h, mock, db := createTestHandler(t)
		defer db.Close()

		mock.ExpectQuery("SELECT").WillReturnError(sql.ErrConnDone)

		_, err := h.Load(context.Background(), dataset.Spec{Name: "orders_sample", Table: "orders"})
		assert.ErrorIs(t, err, ErrQueryExecutionFailed)
	})
}
