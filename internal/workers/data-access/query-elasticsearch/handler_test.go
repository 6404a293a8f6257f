package queryelasticsearch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"supplychain-insights/internal/common/dataset"
	"supplychain-insights/internal/common/logger"
)

func createTestHandler(t *testing.T, fn http.HandlerFunc) *Handler {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		fn(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{server.URL}})
	require.NoError(t, err)

	return NewHandler(&Config{Timeout: 5 * time.Second, DefaultSize: 50}, client, logger.NewZapAdapter(zaptest.NewLogger(t)))
}

const reviewsResponse = `{
	"took": 3,
	"hits": {
		"total": {"value": 2},
		"hits": [
			{"_source": {"review_text": "Great delivery", "rating": 5, "verified": true}},
			{"_source": {"review_text": "Late again", "rating": 1.5, "tags": ["late"]}}
		]
	}
}`

func TestHandler_Load_UnionColumns(t *testing.T) {
	var gotBody map[string]interface{}
	h := createTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customer_reviews/_search", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("size"))
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		_, _ = w.Write([]byte(reviewsResponse))
	})

	table, err := h.Load(context.Background(), dataset.Spec{Name: "customer_reviews_sample", Index: "customer_reviews"})
	require.NoError(t, err)

	assert.Contains(t, gotBody, "query")
	assert.Equal(t, []string{"rating", "review_text", "tags", "verified"}, table.Columns)
	assert.Equal(t, [][]string{
		{"5", "Great delivery", "", "true"},
		{"1.5", "Late again", `["late"]`, ""},
	}, table.Rows)
}

func TestHandler_Load_ConfiguredColumns(t *testing.T) {
	h := createTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10", r.URL.Query().Get("size"))
		assert.Equal(t, "review_text,rating", r.URL.Query().Get("_source_includes"))
		_, _ = w.Write([]byte(reviewsResponse))
	})

	table, err := h.Load(context.Background(), dataset.Spec{
		Name:    "customer_reviews_sample",
		Index:   "customer_reviews",
		Columns: []string{"review_text", "rating"},
		Limit:   10,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"review_text", "rating"}, table.Columns)
	assert.Equal(t, []string{"Late again", "1.5"}, table.Rows[1])
}

func TestHandler_Load_Errors(t *testing.T) {
	t.Run("missing index", func(t *testing.T) {
		h := createTestHandler(t, func(w http.ResponseWriter, r *http.Request) {})
		_, err := h.Load(context.Background(), dataset.Spec{Name: "customer_reviews_sample"})
		assert.ErrorIs(t, err, ErrMissingIndex)
	})

	t.Run("index not found", func(t *testing.T) {
		h := createTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"type":"index_not_found_exception","reason":"no such index"},"status":404}`))
		})
		_, err := h.Load(context.Background(), dataset.Spec{Name: "customer_reviews_sample", Index: "missing"})
		assert.ErrorIs(t, err, dataset.ErrDatasetNotFound)
	})

	t.Run("server error", func(t *testing.T) {
		h := createTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"type":"search_phase_execution_exception","reason":"all shards failed"},"status":400}`))
		})
		_, err := h.Load(context.Background(), dataset.Spec{Name: "customer_reviews_sample", Index: "customer_reviews"})
		assert.ErrorIs(t, err, ErrSearchQueryFailed)
		assert.ErrorContains(t, err, "all shards failed")
	})
}
