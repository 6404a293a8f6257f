package analytics

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"supplychain-insights/internal/common/dataset"
	errs "supplychain-insights/internal/common/errors"
	"supplychain-insights/internal/common/predictor"
)

func TestCommas(t *testing.T) {
	tests := map[float64]string{
		0:          "0",
		999:        "999",
		1000:       "1,000",
		1234567.8:  "1,234,568",
		-45210.2:   "-45,210",
		100000000:  "100,000,000",
	}
	for in, want := range tests {
		assert.Equal(t, want, Commas(in), "Commas(%v)", in)
	}
	assert.Equal(t, "₹12,500", Rupees(12500))
}

func TestTop(t *testing.T) {
	assert.Equal(t, []int{1, 2}, Top([]int{1, 2, 3}, 2))
	assert.Equal(t, []int{1}, Top([]int{1}, 3))
}

func TestErrorMapping(t *testing.T) {
	notFound := DatasetError("orders_sample", fmt.Errorf("%w: orders_sample", dataset.ErrDatasetNotFound))
	assert.ErrorIs(t, notFound, &errs.StandardError{Code: errs.ErrCodeDatasetNotFound})

	timeout := DatasetError("orders_sample", dataset.ErrQueryTimeout)
	assert.ErrorIs(t, timeout, &errs.StandardError{Code: errs.ErrCodeQueryTimeout})

	column := DatasetError("orders_sample", dataset.ErrColumnNotFound)
	assert.ErrorIs(t, column, &errs.StandardError{Code: errs.ErrCodeAnalysisFailed})

	assert.NoError(t, DatasetError("x", nil))

	model := ModelError("model_orders", predictor.ErrModelNotFound)
	assert.ErrorIs(t, model, &errs.StandardError{Code: errs.ErrCodeModelNotFound})
	assert.ErrorIs(t, model, predictor.ErrModelNotFound)
}

func TestLoadModel(t *testing.T) {
	reg := predictor.NewRegistry(predictor.LoaderFunc(func(ctx context.Context, name string) (predictor.Predictor, error) {
		return nil, fmt.Errorf("%w: %s", predictor.ErrModelNotFound, name)
	}), nil)

	_, _, err := LoadModel(context.Background(), reg, "model_a", "model_b")
	assert.ErrorIs(t, err, &errs.StandardError{Code: errs.ErrCodeModelNotFound})
	assert.Contains(t, err.Error(), "model_b")
}
