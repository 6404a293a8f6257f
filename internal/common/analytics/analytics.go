// Package analytics holds the plumbing shared by the analytics handlers:
// dataset and model access with error classification, plus number
// formatting for insight text.
package analytics

import (
	"context"
	"errors"

	"supplychain-insights/internal/common/dataset"
	errs "supplychain-insights/internal/common/errors"
	"supplychain-insights/internal/common/predictor"
)

// DataLoader loads a named dataset. *dataset.Catalog implements it.
type DataLoader interface {
	Load(ctx context.Context, name string) (*dataset.Table, error)
}

// ModelProvider resolves named predictors. *predictor.Registry implements it.
type ModelProvider interface {
	Get(ctx context.Context, name string) (predictor.Predictor, error)
	GetFirst(ctx context.Context, names ...string) (predictor.Predictor, string, error)
}

// LoadTable loads a dataset and classifies any failure.
func LoadTable(ctx context.Context, data DataLoader, name string) (*dataset.Table, error) {
	t, err := data.Load(ctx, name)
	if err != nil {
		return nil, DatasetError(name, err)
	}
	return t, nil
}

// LoadModel returns the first of names that loads.
func LoadModel(ctx context.Context, models ModelProvider, names ...string) (predictor.Predictor, string, error) {
	p, name, err := models.GetFirst(ctx, names...)
	if err != nil {
		last := ""
		if len(names) > 0 {
			last = names[len(names)-1]
		}
		return nil, "", ModelError(last, err)
	}
	return p, name, nil
}

// DatasetError maps dataset sentinels onto StandardErrors.
func DatasetError(name string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, dataset.ErrDatasetNotFound):
		return errs.NewDatasetNotFoundError(name, err)
	case errors.Is(err, dataset.ErrQueryTimeout), errors.Is(err, context.DeadlineExceeded):
		return errs.NewQueryTimeoutError(name)
	default:
		return errs.NewAnalysisFailedError(name, err)
	}
}

// ModelError maps predictor sentinels onto StandardErrors.
func ModelError(name string, err error) error {
	if errors.Is(err, predictor.ErrModelNotFound) {
		return errs.NewModelNotFoundError(name, err)
	}
	return errs.NewModelLoadFailedError(name, err)
}
