package queryelasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"supplychain-insights/internal/common/dataset"
	"supplychain-insights/internal/common/logger"
)

const (
	SourceKind = "elasticsearch"
)

var (
	ErrSearchQueryFailed = errors.New("SEARCH_QUERY_FAILED")
	ErrMissingIndex      = errors.New("index name is required")
)

// Handler serves datasets stored as Elasticsearch indices. Each hit's
// _source becomes one row.
type Handler struct {
	config *Config
	client *elasticsearch.Client
	logger logger.Logger
}

func NewHandler(config *Config, client *elasticsearch.Client, log logger.Logger) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Handler{
		config: config,
		client: client,
		logger: log.WithFields(map[string]interface{}{"source": SourceKind}),
	}
}

// Load implements dataset.Source. Columns follow spec.Columns when set,
// otherwise the sorted union of every field seen.
func (h *Handler) Load(ctx context.Context, spec dataset.Spec) (*dataset.Table, error) {
	index := spec.Index
	if index == "" {
		return nil, fmt.Errorf("%w: dataset %s", ErrMissingIndex, spec.Name)
	}

	size := spec.Limit
	if size <= 0 {
		size = h.config.DefaultSize
	}

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	opts := []func(*esapi.SearchRequest){
		h.client.Search.WithContext(ctx),
		h.client.Search.WithIndex(index),
		h.client.Search.WithBody(bytes.NewReader(matchAll)),
		h.client.Search.WithSize(size),
	}
	if len(spec.Columns) > 0 {
		opts = append(opts, h.client.Search.WithSourceIncludes(spec.Columns...))
	}

	res, err := h.client.Search(opts...)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", dataset.ErrQueryTimeout, spec.Name)
		}
		return nil, fmt.Errorf("%w: %v", ErrSearchQueryFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s (index %s)", dataset.ErrDatasetNotFound, spec.Name, index)
	}
	if res.IsError() {
		var e errorResponse
		if err := json.NewDecoder(res.Body).Decode(&e); err == nil && e.Error.Reason != "" {
			return nil, fmt.Errorf("%w: [%s] %s", ErrSearchQueryFailed, e.Error.Type, e.Error.Reason)
		}
		return nil, fmt.Errorf("%w: %s", ErrSearchQueryFailed, res.Status())
	}

	var parsed searchResponse
	dec := json.NewDecoder(res.Body)
	dec.UseNumber()
	if err := dec.Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrSearchQueryFailed, err)
	}

	table := flatten(spec, parsed)
	h.logger.Debug("dataset loaded", map[string]interface{}{
		"dataset":   spec.Name,
		"index":     index,
		"rows":      table.Len(),
		"totalHits": parsed.Hits.Total.Value,
		"took":      parsed.Took,
	})
	return table, nil
}

func flatten(spec dataset.Spec, resp searchResponse) *dataset.Table {
	columns := spec.Columns
	if len(columns) == 0 {
		seen := make(map[string]struct{})
		for _, hit := range resp.Hits.Hits {
			for k := range hit.Source {
				if _, ok := seen[k]; !ok {
					seen[k] = struct{}{}
					columns = append(columns, k)
				}
			}
		}
		sort.Strings(columns)
	}

	table := &dataset.Table{Name: spec.Name, Columns: columns}
	for _, hit := range resp.Hits.Hits {
		row := make([]string, len(columns))
		for i, c := range columns {
			row[i] = cellString(hit.Source[c])
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func cellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
