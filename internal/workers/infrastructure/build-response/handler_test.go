package buildresponse

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "supplychain-insights/internal/common/errors"
	"supplychain-insights/internal/common/logger"
	"supplychain-insights/internal/models"
	classifyintent "supplychain-insights/internal/workers/query-understanding/classify-intent"
)

func fixedBuilder(t *testing.T) *Builder {
	ist := time.FixedZone("IST", 5*3600+1800)
	return NewBuilder(nil, logger.NewTestLogger(t)).
		WithClock(func() time.Time { return time.Date(2026, 10, 19, 9, 30, 0, 123000000, ist) }).
		WithIDGenerator(func() string { return "req-1" })
}

func TestBuild(t *testing.T) {
	b := fixedBuilder(t)
	surge := 0.2
	res := &classifyintent.Resolution{
		Intent: models.IntentInventory,
		Params: models.ParamSet{SurgePct: &surge},
		Source: classifyintent.SourceKeyword,
	}
	insights := []models.Insight{
		models.NewInsight("plan", models.InventoryData{{Category: "Electronics"}}),
		models.NewInsight("risk", models.StockoutRiskData{HighRiskCategories: []string{}, RiskCount: 0}),
	}

	resp, err := b.Build("If demand increases by 20%, how much stock?", res, insights)
	require.NoError(t, err)

	assert.Equal(t, "req-1", resp.RequestID)
	assert.Equal(t, models.IntentInventory, resp.Intent)
	assert.Equal(t, "2026-10-19T09:30:00.123+05:30", resp.Timestamp)
	require.Len(t, resp.Insights, 2)
	assert.Equal(t, "plan", resp.Insights[0].Text)
	assert.Equal(t, "risk", resp.Insights[1].Text)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"params":{"surge_pct":0.2}`)
}

func TestBuild_EmptyParamsAndInsights(t *testing.T) {
	resp, err := fixedBuilder(t).Build("hello", &classifyintent.Resolution{Intent: models.IntentGeneral}, nil)
	require.NoError(t, err)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"params":{}`)
	assert.Contains(t, string(raw), `"insights":[]`)
}

func TestBuild_RejectsInvalidEnvelope(t *testing.T) {
	b := fixedBuilder(t)

	_, err := b.Build("", &classifyintent.Resolution{Intent: models.IntentGeneral}, nil)
	assert.ErrorIs(t, err, ErrInvalidEnvelope)

	_, err = b.Build("q", &classifyintent.Resolution{Intent: "pricing"}, nil)
	assert.ErrorIs(t, err, ErrInvalidEnvelope)

	_, err = b.Build("q", nil, nil)
	assert.ErrorIs(t, err, ErrInvalidEnvelope)
}

func TestBuildError(t *testing.T) {
	b := fixedBuilder(t)

	missing := b.BuildError(errs.NewQuestionMissingError())
	assert.Equal(t, "No question provided", missing.Error)
	require.Len(t, missing.Insights, 1)
	assert.Equal(t, models.InsightError, missing.Insights[0].Type)
	assert.Equal(t, models.ErrorData{Error: "No question provided"}, missing.Insights[0].Data)

	raw, err := json.Marshal(missing)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"insights":[{"type":"error"`)

	outer := b.BuildError(errors.New("dispatcher exploded"))
	assert.Contains(t, outer.Error, "dispatcher exploded")
	require.Len(t, outer.Insights, 1)
	assert.True(t, outer.Insights[0].IsError())
	assert.Equal(t, models.ErrorData{Error: "dispatcher exploded"}, outer.Insights[0].Data)
}
