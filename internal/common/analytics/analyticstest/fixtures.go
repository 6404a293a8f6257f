// Package analyticstest builds in-memory datasets and model registries for
// handler tests.
package analyticstest

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"supplychain-insights/internal/common/dataset"
	"supplychain-insights/internal/common/logger"
	"supplychain-insights/internal/common/predictor"
)

// Table parses CSV text with a header row.
func Table(t testing.TB, name, csv string) *dataset.Table {
	t.Helper()
	table, err := dataset.ReadCSV(context.Background(), name, strings.NewReader(csv), 0)
	require.NoError(t, err)
	return table
}

// Catalog serves the given tables by name; any other name is not found.
func Catalog(tables ...*dataset.Table) *dataset.Catalog {
	byName := make(map[string]*dataset.Table, len(tables))
	for _, tb := range tables {
		byName[tb.Name] = tb
	}
	src := dataset.SourceFunc(func(ctx context.Context, spec dataset.Spec) (*dataset.Table, error) {
		tb, ok := byName[spec.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", dataset.ErrDatasetNotFound, spec.Name)
		}
		return tb, nil
	})

	c := dataset.NewCatalog()
	for name := range byName {
		c.Register(dataset.Spec{Name: name, Kind: "memory"}, src)
	}
	return c
}

// Models returns a registry over fixed predictors; any other name is not found.
func Models(t testing.TB, models map[string]predictor.Predictor) *predictor.Registry {
	return predictor.NewRegistry(predictor.LoaderFunc(func(ctx context.Context, name string) (predictor.Predictor, error) {
		p, ok := models[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", predictor.ErrModelNotFound, name)
		}
		return p, nil
	}), logger.NewTestLogger(t))
}

// Constant predicts v for every row.
func Constant(v float64) predictor.Predictor {
	return predictor.PredictorFunc(func(rows []predictor.Features) ([]float64, error) {
		out := make([]float64, len(rows))
		for i := range out {
			out[i] = v
		}
		return out, nil
	})
}

// Ramp predicts start + step*row["day"].
func Ramp(start, step float64) predictor.Predictor {
	return predictor.PredictorFunc(func(rows []predictor.Features) ([]float64, error) {
		out := make([]float64, len(rows))
		for i, r := range rows {
			out[i] = start + step*r["day"]
		}
		return out, nil
	})
}
