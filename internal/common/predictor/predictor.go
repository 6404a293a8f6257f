package predictor

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrModelNotFound    = errors.New("model not found")
	ErrUnknownModelKind = errors.New("unknown model kind")
)

// Features is one input row. Categorical features are passed as their
// numeric codes.
type Features map[string]float64

// Predictor turns feature rows into one value per row.
type Predictor interface {
	Predict(rows []Features) ([]float64, error)
}

// PredictorFunc adapts a function to Predictor.
type PredictorFunc func(rows []Features) ([]float64, error)

func (f PredictorFunc) Predict(rows []Features) ([]float64, error) {
	return f(rows)
}

const (
	KindLinear   = "linear"
	KindConstant = "constant"
)

// Spec is the on-disk description of a model.
type Spec struct {
	Kind         string                        `json:"kind" yaml:"kind"`
	Intercept    float64                       `json:"intercept" yaml:"intercept"`
	Coefficients map[string]float64            `json:"coefficients,omitempty" yaml:"coefficients,omitempty"`
	Tables       map[string]map[string]float64 `json:"tables,omitempty" yaml:"tables,omitempty"`
	Min          *float64                      `json:"min,omitempty" yaml:"min,omitempty"`
}

// Build validates the spec and returns a Predictor for it.
func (s Spec) Build() (Predictor, error) {
	switch s.Kind {
	case KindConstant:
		return &linearModel{intercept: s.Intercept, min: s.Min}, nil
	case KindLinear, "":
		return &linearModel{
			intercept:    s.Intercept,
			coefficients: s.Coefficients,
			tables:       s.Tables,
			min:          s.Min,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownModelKind, s.Kind)
	}
}

// linearModel computes intercept + sum(coef*x) + sum(table[x]). Table keys are
// the feature value formatted without trailing zeros, so month 12 is "12".
type linearModel struct {
	intercept    float64
	coefficients map[string]float64
	tables       map[string]map[string]float64
	min          *float64
}

func (m *linearModel) Predict(rows []Features) ([]float64, error) {
	out := make([]float64, len(rows))
	for i, row := range rows {
		y := m.intercept
		for name, w := range m.coefficients {
			y += w * row[name]
		}
		for name, table := range m.tables {
			v, ok := row[name]
			if !ok {
				continue
			}
			y += table[strconv.FormatFloat(v, 'f', -1, 64)]
		}
		if m.min != nil && y < *m.min {
			y = *m.min
		}
		out[i] = y
	}
	return out, nil
}
