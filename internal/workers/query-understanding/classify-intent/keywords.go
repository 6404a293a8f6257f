package classifyintent

import (
	"context"
	"strings"

	"supplychain-insights/internal/models"
	extractparams "supplychain-insights/internal/workers/query-understanding/extract-params"
)

type keywordRule struct {
	intent   models.Intent
	keywords []string
}

// Evaluated in order; the first rule with any substring match wins.
var keywordRules = []keywordRule{
	{models.IntentForecast, []string{
		"forecast", "predict", "demand", "q4", "q1", "q2", "q3", "quarter", "next",
		"future", "trend", "seasonal", "increase expected", "december", "will", "look like",
	}},
	{models.IntentInventory, []string{
		"inventory", "stock", "adjust", "boost", "stockout", "sufficient", "category",
		"increase by", "surge", "need",
	}},
	{models.IntentShipping, []string{
		"shipping", "delivery", "delay", "transport", "courier", "partner", "late",
	}},
	{models.IntentSentiment, []string{
		"sentiment", "review", "customer", "feedback", "positive", "negative", "trending",
	}},
	{models.IntentWarehouse, []string{
		"warehouse", "processing", "efficiency", "operation", "storage",
	}},
}

// ClassifyKeywords picks an intent by case-insensitive substring matching.
// Matching is plain substring, so "trending" contains "trend" and resolves
// to forecast.
func ClassifyKeywords(question string) models.Intent {
	q := strings.ToLower(question)
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(q, kw) {
				return rule.intent
			}
		}
	}
	return models.IntentGeneral
}

// KeywordClassifier never fails.
type KeywordClassifier struct{}

func (KeywordClassifier) Name() string { return SourceKeyword }

func (KeywordClassifier) Classify(_ context.Context, question string) (*Classification, error) {
	return &Classification{
		Intent: ClassifyKeywords(question),
		Params: extractparams.Extract(question),
		Source: SourceKeyword,
	}, nil
}
