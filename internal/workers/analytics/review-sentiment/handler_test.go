package reviewsentiment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplychain-insights/internal/common/analytics/analyticstest"
	errs "supplychain-insights/internal/common/errors"
	"supplychain-insights/internal/common/logger"
	"supplychain-insights/internal/common/sentiment"
	"supplychain-insights/internal/models"
)

type stubScorer map[string]float64

func (s stubScorer) Score(text string) sentiment.Scores {
	return sentiment.Scores{Compound: s[text]}
}

var scorer = stubScorer{"great": 0.8, "bad": -0.6, "ok": 0, "awful": -0.7}

const reviewsCSV = `review_id,review_text,rating
1,great,5
2,bad,1
3,ok,3
4,great,4
5,,2
6,awful,
`

func newHandler(t *testing.T, config *Config, csv string) *Handler {
	data := analyticstest.Catalog(analyticstest.Table(t, "customer_reviews_sample", csv))
	return NewHandler(config, scorer, data, logger.NewTestLogger(t))
}

func TestAnalyze(t *testing.T) {
	h := newHandler(t, nil, reviewsCSV)

	got, err := h.Analyze(context.Background(), "what do customers think", models.ParamSet{})
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, models.InsightSentiment, got[0].Type)
	assert.Equal(t, models.SentimentData{
		Overall:       "Positive",
		Status:        StatusHealthy,
		PositivePct:   40,
		NegativePct:   40,
		NeutralPct:    20,
		CompoundScore: 0.06,
		SampleSize:    5,
	}, got[0].Data)
	assert.Contains(t, got[0].Text, "**0.060**")

	assert.Equal(t, models.InsightRatingBreakdown, got[1].Type)
	ratings := got[1].Data.(models.RatingBreakdownData)
	assert.InDelta(t, 3, ratings.AvgRating, 1e-9)
	assert.Equal(t, HealthFair, ratings.Health)
	assert.Equal(t, 2, ratings.HighRatings)
	assert.Equal(t, 2, ratings.LowRatings)
	assert.InDelta(t, 33.33, ratings.HighRatingPct, 1e-9)
	assert.InDelta(t, 0, ratings.NPS, 1e-9)
	assert.Equal(t, map[string]int{"1": 1, "2": 1, "3": 1, "4": 1, "5": 1}, ratings.RatingDistribution)
	assert.Contains(t, got[1].Text, "⭐⭐⭐⭐⭐ (5-star): **1** reviews")

	assert.Equal(t, models.InsightCriticalIssues, got[2].Type)
	assert.Equal(t, models.CriticalIssuesData{CriticalCount: 2, CriticalPct: 33.33}, got[2].Data)
	assert.Contains(t, got[2].Text, "₹10,000")
}

func TestAnalyze_SampleCapAndNoRatings(t *testing.T) {
	h := newHandler(t, &Config{ReviewsDataset: "customer_reviews_sample", SampleSize: 2},
		"review_text\nbad\nawful\ngreat\n")

	got, err := h.Analyze(context.Background(), "reviews", models.ParamSet{})
	require.NoError(t, err)
	require.Len(t, got, 1)

	data := got[0].Data.(models.SentimentData)
	assert.Equal(t, 2, data.SampleSize)
	assert.Equal(t, StatusCritical, data.Status)
	assert.InDelta(t, 100, data.NegativePct, 1e-9)
}

func TestAnalyze_NoLowRatings(t *testing.T) {
	h := newHandler(t, nil, "review_text,rating\nok,4\nok,5\n")

	got, err := h.Analyze(context.Background(), "reviews", models.ParamSet{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, StatusAtRisk, got[0].Data.(models.SentimentData).Status)
	assert.Equal(t, HealthExcellent, got[1].Data.(models.RatingBreakdownData).Health)
}

func TestAnalyze_MissingTextColumn(t *testing.T) {
	h := newHandler(t, nil, "rating\n5\n")

	got, err := h.Analyze(context.Background(), "reviews", models.ParamSet{})
	assert.Empty(t, got)
	assert.ErrorIs(t, err, &errs.StandardError{Code: errs.ErrCodeAnalysisFailed})
}

func TestAnalyze_DatasetMissing(t *testing.T) {
	h := NewHandler(nil, nil, analyticstest.Catalog(), nil)

	_, err := h.Analyze(context.Background(), "reviews", models.ParamSet{})
	assert.ErrorIs(t, err, &errs.StandardError{Code: errs.ErrCodeDatasetNotFound})
}

func TestRatingHealth(t *testing.T) {
	assert.Equal(t, HealthExcellent, ratingHealth(4))
	assert.Equal(t, HealthGood, ratingHealth(3.5))
	assert.Equal(t, HealthFair, ratingHealth(3))
	assert.Equal(t, HealthPoor, ratingHealth(2.99))
}
