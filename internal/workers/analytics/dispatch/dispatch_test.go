package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplychain-insights/internal/common/logger"
	"supplychain-insights/internal/models"
)

func insight(text string) models.Insight {
	return models.NewInsight(text, models.SeasonalData{Quarter: "Q4"})
}

func TestDispatch_General(t *testing.T) {
	called := false
	d := New(nil, logger.NewTestLogger(t), Route{
		Intent: models.IntentForecast,
		Analyzer: AnalyzerFunc(func(ctx context.Context, q string, p models.ParamSet) ([]models.Insight, error) {
			called = true
			return nil, nil
		}),
	})

	got := d.Dispatch(context.Background(), models.IntentGeneral, "asdf qwer zxcv", models.ParamSet{})
	require.Len(t, got, 1)
	assert.Equal(t, models.InsightGeneral, got[0].Type)
	assert.Contains(t, got[0].Text, "I can help you with")
	assert.Equal(t, models.GeneralData{}, got[0].Data)
	assert.False(t, called)

	unrouted := d.Dispatch(context.Background(), models.IntentWarehouse, "q", models.ParamSet{})
	require.Len(t, unrouted, 1)
	assert.Equal(t, models.InsightGeneral, unrouted[0].Type)
}

func TestDispatch_PassesParams(t *testing.T) {
	surge := 0.35
	d := New(nil, nil, Route{
		Intent: models.IntentInventory,
		Analyzer: AnalyzerFunc(func(ctx context.Context, q string, p models.ParamSet) ([]models.Insight, error) {
			assert.Equal(t, "boost stock", q)
			assert.InDelta(t, 0.35, p.SurgeOr(0.2), 1e-9)
			return []models.Insight{insight("a"), insight("b")}, nil
		}),
	})

	got := d.Dispatch(context.Background(), models.IntentInventory, "boost stock", models.ParamSet{SurgePct: &surge})
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Text)
}

func TestDispatch_ErrorTruncatesAfterPartialResults(t *testing.T) {
	d := New(nil, nil, Route{
		Intent:     models.IntentShipping,
		ErrorTitle: "Shipping Analysis Error",
		Analyzer: AnalyzerFunc(func(ctx context.Context, q string, p models.ParamSet) ([]models.Insight, error) {
			return []models.Insight{insight("first")}, errors.New("transport data unavailable")
		}),
	})

	got := d.Dispatch(context.Background(), models.IntentShipping, "q", models.ParamSet{})
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Text)
	assert.True(t, got[1].IsError())
	assert.Contains(t, got[1].Text, "Shipping Analysis Error")
	assert.Contains(t, got[1].Text, "transport data unavailable")
	assert.Equal(t, models.ErrorData{Error: "transport data unavailable"}, got[1].Data)
}

func TestDispatch_RecoversPanics(t *testing.T) {
	d := New(nil, nil, Route{
		Intent: models.IntentWarehouse,
		Analyzer: AnalyzerFunc(func(ctx context.Context, q string, p models.ParamSet) ([]models.Insight, error) {
			var m map[string]int
			m["boom"] = 1
			return nil, nil
		}),
	})

	got := d.Dispatch(context.Background(), models.IntentWarehouse, "q", models.ParamSet{})
	require.Len(t, got, 1)
	assert.True(t, got[0].IsError())
	assert.Contains(t, got[0].Text, "Analysis Error")
}

func TestDispatch_EmptyResultIsError(t *testing.T) {
	d := New(nil, nil, Route{
		Intent: models.IntentSentiment,
		Analyzer: AnalyzerFunc(func(ctx context.Context, q string, p models.ParamSet) ([]models.Insight, error) {
			return nil, nil
		}),
	})

	got := d.Dispatch(context.Background(), models.IntentSentiment, "q", models.ParamSet{})
	require.Len(t, got, 1)
	assert.Equal(t, models.ErrorData{Error: ErrNoInsights.Error()}, got[0].Data)
	assert.Equal(t, []models.Intent{models.IntentSentiment}, d.Intents())
}
