package answerquestion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "supplychain-insights/internal/common/errors"
	"supplychain-insights/internal/common/logger"
	"supplychain-insights/internal/common/observability"
	"supplychain-insights/internal/models"
	"supplychain-insights/internal/workers/analytics/dispatch"
	sendalert "supplychain-insights/internal/workers/communication/send-alert"
	buildresponse "supplychain-insights/internal/workers/infrastructure/build-response"
	classifyintent "supplychain-insights/internal/workers/query-understanding/classify-intent"
)

var fixedTime = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

type recordingAnalyzer struct {
	calls    int
	question string
	params   models.ParamSet
	insights []models.Insight
	err      error
}

func (a *recordingAnalyzer) Analyze(ctx context.Context, question string, params models.ParamSet) ([]models.Insight, error) {
	a.calls++
	a.question = question
	a.params = params
	return a.insights, a.err
}

type recordingAlerts struct {
	insights []models.Insight
}

func (a *recordingAlerts) Notify(ctx context.Context, question string, insights []models.Insight) []sendalert.Delivery {
	a.insights = insights
	return nil
}

type failingBuilder struct {
	*buildresponse.Builder
}

func (failingBuilder) Build(string, *classifyintent.Resolution, []models.Insight) (*models.ChatResponse, error) {
	return nil, buildresponse.ErrInvalidEnvelope
}

func newBuilder(t *testing.T) *buildresponse.Builder {
	return buildresponse.NewBuilder(buildresponse.LoadConfig(), logger.NewTestLogger(t)).
		WithClock(func() time.Time { return fixedTime }).
		WithIDGenerator(func() string { return "req-1" })
}

func newHandler(t *testing.T, analyzers map[models.Intent]*recordingAnalyzer, alerts AlertNotifier) *Handler {
	log := logger.NewTestLogger(t)

	var routes []dispatch.Route
	for intent, a := range analyzers {
		routes = append(routes, dispatch.Route{Intent: intent, Analyzer: a})
	}

	return NewHandler(DefaultConfig(), Dependencies{
		Resolver:      classifyintent.NewResolver(nil, log),
		Dispatcher:    dispatch.New(nil, log, routes...),
		Builder:       newBuilder(t),
		Alerts:        alerts,
		Observability: observability.New("test", observability.WithRegisterer(prometheus.NewRegistry())),
		Logger:        log,
	})
}

func TestExecute_MissingQuestion(t *testing.T) {
	shipping := &recordingAnalyzer{}
	h := newHandler(t, map[models.Intent]*recordingAnalyzer{models.IntentShipping: shipping}, nil)

	for _, q := range []string{"", "   \n\t"} {
		resp, err := h.Execute(context.Background(), &Input{Question: q})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, &errs.StandardError{Code: errs.ErrCodeQuestionMissing})
	}
	_, err := h.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, &errs.StandardError{Code: errs.ErrCodeQuestionMissing})

	assert.Zero(t, shipping.calls)

	envelope := h.ErrorResponse(err)
	assert.Equal(t, "No question provided", envelope.Error)
	require.Len(t, envelope.Insights, 1)
	assert.Equal(t, models.ErrorData{Error: "No question provided"}, envelope.Insights[0].Data)
}

func TestExecute_KeywordRouting(t *testing.T) {
	shipping := &recordingAnalyzer{insights: []models.Insight{
		models.NewInsight("**🚚 Shipping**", models.ShippingData{CourierCount: 4}),
		models.NewInsight("**🏆 Best Couriers**", models.BestCouriersData{}),
	}}
	h := newHandler(t, map[models.Intent]*recordingAnalyzer{models.IntentShipping: shipping}, nil)

	const asked = "  Which courier partners cause delays?  "
	resp, err := h.Execute(context.Background(), &Input{Question: asked})
	require.NoError(t, err)

	assert.Equal(t, 1, shipping.calls)
	assert.Equal(t, asked, shipping.question)
	assert.Equal(t, "req-1", resp.RequestID)
	assert.Equal(t, asked, resp.Question)
	assert.Equal(t, models.IntentShipping, resp.Intent)
	assert.True(t, resp.Params.IsEmpty())
	assert.Equal(t, fixedTime.Format(time.RFC3339Nano), resp.Timestamp)
	require.Len(t, resp.Insights, 2)
	assert.Equal(t, models.InsightShipping, resp.Insights[0].Type)
	assert.Equal(t, models.InsightBestCouriers, resp.Insights[1].Type)
}

func TestExecute_ParamsReachAnalyzer(t *testing.T) {
	inventory := &recordingAnalyzer{insights: []models.Insight{
		models.NewInsight("**📦 Inventory**", models.InventoryData{}),
	}}
	h := newHandler(t, map[models.Intent]*recordingAnalyzer{models.IntentInventory: inventory}, nil)

	resp, err := h.Execute(context.Background(), &Input{Question: "Is stock sufficient for a 30% surge?"})
	require.NoError(t, err)

	require.NotNil(t, inventory.params.SurgePct)
	assert.InDelta(t, 0.3, *inventory.params.SurgePct, 1e-9)
	assert.Equal(t, inventory.params, resp.Params)
}

func TestExecute_AnalyzerFailureStaysInsideResponse(t *testing.T) {
	warehouse := &recordingAnalyzer{err: errs.NewModelNotFoundError("model_warehouse", nil)}
	h := newHandler(t, map[models.Intent]*recordingAnalyzer{models.IntentWarehouse: warehouse}, nil)

	resp, err := h.Execute(context.Background(), &Input{Question: "How efficient is each warehouse?"})
	require.NoError(t, err)

	require.Len(t, resp.Insights, 1)
	assert.True(t, resp.Insights[0].IsError())
	assert.Contains(t, resp.Insights[0].Text, "model_warehouse")
}

func TestExecute_GeneralQuestion(t *testing.T) {
	h := newHandler(t, nil, nil)

	resp, err := h.Execute(context.Background(), &Input{Question: "hello there"})
	require.NoError(t, err)

	assert.Equal(t, models.IntentGeneral, resp.Intent)
	require.Len(t, resp.Insights, 1)
	assert.Equal(t, models.InsightGeneral, resp.Insights[0].Type)
}

func TestExecute_AlertsSeeDispatchedInsights(t *testing.T) {
	risk := models.NewInsight("**⚠️ Stockout Risk**", models.StockoutRiskData{RiskCount: 2})
	inventory := &recordingAnalyzer{insights: []models.Insight{
		models.NewInsight("**📦 Inventory**", models.InventoryData{}),
		risk,
	}}
	alerts := &recordingAlerts{}
	h := newHandler(t, map[models.Intent]*recordingAnalyzer{models.IntentInventory: inventory}, alerts)

	_, err := h.Execute(context.Background(), &Input{Question: "Do we have enough inventory?"})
	require.NoError(t, err)

	require.Len(t, alerts.insights, 2)
	assert.Equal(t, models.InsightStockoutRisk, alerts.insights[1].Type)
}

func TestExecute_BuildFailure(t *testing.T) {
	log := logger.NewTestLogger(t)
	h := NewHandler(nil, Dependencies{
		Resolver:   classifyintent.NewResolver(nil, log),
		Dispatcher: dispatch.New(nil, log),
		Builder:    failingBuilder{newBuilder(t)},
		Logger:     log,
	})

	resp, err := h.Execute(context.Background(), &Input{Question: "hi"})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, &errs.StandardError{Code: errs.ErrCodeInternal})
	assert.True(t, errors.Is(err, buildresponse.ErrInvalidEnvelope))

	envelope := h.ErrorResponse(err)
	require.Len(t, envelope.Insights, 1)
	assert.Contains(t, envelope.Insights[0].Text, "**Error**")
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	assert.Equal(t, 5, cfg.MaxJobsActive)
}
