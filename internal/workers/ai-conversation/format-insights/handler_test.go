package formatinsights

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplychain-insights/internal/common/config"
	"supplychain-insights/internal/common/database"
	"supplychain-insights/internal/common/llm"
	"supplychain-insights/internal/common/logger"
	"supplychain-insights/internal/common/metrics"
	"supplychain-insights/internal/models"
)

const narrative = "📊 Demand is rising steadily over the next quarter, so build stock early."

func forecastInsights() []models.Insight {
	return []models.Insight{
		models.NewInsight("**📈 Demand Forecast**", models.ForecastData{Model: "model_seasonal", Days: 90, AvgDemand: 120.5, Strength: "Strong"}),
		models.NewInsight("**🎄 Seasonal Outlook**", models.SeasonalData{Quarter: "Q4", ExpectedIncrease: 0.3, PeakMonth: 12}),
	}
}

type recorder struct {
	calls  int
	prompt string
	opts   *llm.GenerateOptions
	reply  string
	err    error
}

func (r *recorder) generator() llm.Generator {
	return llm.GeneratorFunc(func(ctx context.Context, prompt string, opts *llm.GenerateOptions) (string, error) {
		r.calls++
		r.prompt = prompt
		r.opts = opts
		return r.reply, r.err
	})
}

func newFormatter(t *testing.T, gen llm.Generator) *Formatter {
	return NewFormatter(LoadConfig(config.AIConfig{}), gen, logger.NewTestLogger(t))
}

func TestFormat_Enhanced(t *testing.T) {
	rec := &recorder{reply: "  " + narrative + "\n"}
	f := newFormatter(t, rec.generator())
	in := forecastInsights()

	got := f.Format(context.Background(), "forecast demand for Q4", in, models.IntentForecast)

	require.Len(t, got, 1)
	assert.Equal(t, models.InsightAIEnhanced, got[0].Type)
	assert.Equal(t, narrative, got[0].Text)
	assert.Equal(t, models.AIEnhancedData{
		OriginalInsightsCount: 2,
		EnhancedBy:            "func",
		RawInsights:           in,
	}, got[0].Data)

	require.NotNil(t, rec.opts)
	assert.InDelta(t, 0.7, *rec.opts.Temperature, 1e-6)
	assert.InDelta(t, 0.9, *rec.opts.TopP, 1e-6)
	assert.Equal(t, int32(1024), rec.opts.MaxOutputTokens)

	assert.Contains(t, rec.prompt, `"forecast demand for Q4"`)
	assert.Contains(t, rec.prompt, `"type": "forecast"`)
	assert.Contains(t, rec.prompt, `"avg_demand": 120.5`)
	assert.NotContains(t, rec.prompt, "forecast_sample")
}

func TestFormat_Skipped(t *testing.T) {
	rec := &recorder{reply: narrative}
	f := newFormatter(t, rec.generator())

	errInsights := []models.Insight{models.NewErrorInsight("Forecast Analysis Error", errors.New("model missing"))}
	assert.Equal(t, errInsights, f.Format(context.Background(), "q", errInsights, models.IntentForecast))

	general := []models.Insight{models.NewGeneralInsight("I can help you with")}
	assert.Equal(t, general, f.Format(context.Background(), "hi", general, models.IntentGeneral))

	assert.Empty(t, f.Format(context.Background(), "q", nil, models.IntentForecast))
	assert.Zero(t, rec.calls)

	in := forecastInsights()
	assert.Equal(t, in, newFormatter(t, nil).Format(context.Background(), "q", in, models.IntentForecast))
}

func TestFormat_FallsBack(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
	}{
		{"generation error", "", errors.New("503 unavailable")},
		{"timeout", "", context.DeadlineExceeded},
		{"too short", "Demand rises.", nil},
		{"exactly twenty", strings.Repeat("a", 20), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{reply: tt.reply, err: tt.err}
			in := forecastInsights()
			got := newFormatter(t, rec.generator()).Format(context.Background(), "q", in, models.IntentForecast)
			assert.Equal(t, in, got)
			assert.Equal(t, 1, rec.calls)
		})
	}
}

func TestFormat_GeneratorPanicFallsBack(t *testing.T) {
	gen := llm.GeneratorFunc(func(ctx context.Context, prompt string, opts *llm.GenerateOptions) (string, error) {
		var seen map[string]int
		seen[prompt]++
		return narrative, nil
	})
	in := forecastInsights()
	before := testutil.ToFloat64(metrics.FormatterOutcomes.WithLabelValues(metrics.OutcomeFallback))

	var got []models.Insight
	require.NotPanics(t, func() {
		got = newFormatter(t, gen).Format(context.Background(), "q", in, models.IntentForecast)
	})
	assert.Equal(t, in, got)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.FormatterOutcomes.WithLabelValues(metrics.OutcomeFallback)))
}

func TestFormat_CachesNarrative(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	defer rc.Close()

	rec := &recorder{reply: narrative}
	f := NewFormatter(LoadConfig(config.AIConfig{CacheTTL: 60000}), rec.generator(), logger.NewTestLogger(t)).WithCache(rc)

	first := f.Format(context.Background(), "forecast Q4", forecastInsights(), models.IntentForecast)
	second := f.Format(context.Background(), "forecast Q4", forecastInsights(), models.IntentForecast)

	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, first, second)
	require.Len(t, mr.Keys(), 1)
	assert.True(t, strings.HasPrefix(mr.Keys()[0], cacheKeyPrefix))
	assert.Equal(t, time.Minute, mr.TTL(mr.Keys()[0]))
}

type brokenCache struct{ gets, sets int }

func (c *brokenCache) Get(ctx context.Context, key string) (string, bool, error) {
	c.gets++
	return "", false, errors.New("connection refused")
}

func (c *brokenCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.sets++
	return errors.New("connection refused")
}

func TestFormat_CacheErrorsIgnored(t *testing.T) {
	cache := &brokenCache{}
	rec := &recorder{reply: narrative}
	f := NewFormatter(LoadConfig(config.AIConfig{CacheTTL: 60000}), rec.generator(), nil).WithCache(cache)

	got := f.Format(context.Background(), "q", forecastInsights(), models.IntentForecast)
	require.Len(t, got, 1)
	assert.Equal(t, models.InsightAIEnhanced, got[0].Type)
	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, 1, cache.gets)
	assert.Equal(t, 1, cache.sets)
}

func TestFormat_CacheDisabledWithoutTTL(t *testing.T) {
	cache := &brokenCache{}
	rec := &recorder{reply: narrative}
	newFormatter(t, rec.generator()).WithCache(cache).
		Format(context.Background(), "q", forecastInsights(), models.IntentForecast)
	assert.Zero(t, cache.gets)
}

func TestSummarize(t *testing.T) {
	f := newFormatter(t, nil)
	f.config.SummaryLimit = 120

	long := strings.Repeat("é", 600)
	summary, err := f.summarize([]models.Insight{
		models.NewInsight(long, models.InventoryData{{Category: "Electronics"}}),
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(summary), 120)
	assert.True(t, strings.HasPrefix(summary, "[\n  {\n    \"type\": \"inventory\""))
	assert.NotContains(t, summary, "Electronics")

	fields, err := scalarFields(models.StockoutRiskData{HighRiskCategories: []string{"Toys"}, RiskCount: 1})
	require.NoError(t, err)
	assert.Len(t, fields, 1)
	assert.Contains(t, fields, "risk_count")

	assert.Equal(t, 500, len([]rune(truncate(long, 500))))
}
