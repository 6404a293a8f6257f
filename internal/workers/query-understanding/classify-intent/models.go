package classifyintent

import (
	"context"

	"supplychain-insights/internal/models"
)

const (
	SourceAI      = "ai"
	SourceKeyword = "keyword"
)

// Classifier maps a question to an intent and its parameters.
type Classifier interface {
	Classify(ctx context.Context, question string) (*Classification, error)
	Name() string
}

type Classification struct {
	Intent models.Intent
	Params models.ParamSet
	Source string
}

// Resolution is what the pipeline acts on. FallbackReason is set when the
// AI classifier was configured but its answer was not used.
type Resolution struct {
	Intent         models.Intent   `json:"intent"`
	Params         models.ParamSet `json:"params"`
	Source         string          `json:"source"`
	FallbackReason string          `json:"fallbackReason,omitempty"`
}

// aiResponse is the JSON object the model is asked to produce. Percentage may
// come back as a number or a numeric string.
type aiResponse struct {
	Intent     string      `json:"intent"`
	Quarter    string      `json:"quarter"`
	Percentage interface{} `json:"percentage"`
	Timeframe  string      `json:"timeframe"`
}

const aiResponseSchema = `{
	"type": "object",
	"properties": {
		"intent":     {"type": ["string", "null"]},
		"quarter":    {"type": ["string", "null"]},
		"percentage": {"type": ["number", "string", "null"]},
		"timeframe":  {"type": ["string", "null"]}
	}
}`
