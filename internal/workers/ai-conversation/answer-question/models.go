package answerquestion

import (
	"context"

	"supplychain-insights/internal/common/logger"
	"supplychain-insights/internal/common/observability"
	"supplychain-insights/internal/models"
	sendalert "supplychain-insights/internal/workers/communication/send-alert"
	classifyintent "supplychain-insights/internal/workers/query-understanding/classify-intent"
)

// Input is the job payload and the HTTP request body.
type Input struct {
	Question string `json:"question"`
}

// Output is written back to the process instance on completion.
type Output struct {
	Response *models.ChatResponse `json:"response"`
}

type IntentResolver interface {
	Resolve(ctx context.Context, question string) classifyintent.Resolution
}

type InsightDispatcher interface {
	Dispatch(ctx context.Context, intent models.Intent, question string, params models.ParamSet) []models.Insight
}

type InsightFormatter interface {
	Format(ctx context.Context, question string, insights []models.Insight, intent models.Intent) []models.Insight
}

type ResponseBuilder interface {
	Build(question string, res *classifyintent.Resolution, insights []models.Insight) (*models.ChatResponse, error)
	BuildError(err error) *models.ErrorResponse
}

type AlertNotifier interface {
	Notify(ctx context.Context, question string, insights []models.Insight) []sendalert.Delivery
}

// Dependencies wires the pipeline stages. Alerts and Observability may be nil.
type Dependencies struct {
	Resolver      IntentResolver
	Dispatcher    InsightDispatcher
	Formatter     InsightFormatter
	Builder       ResponseBuilder
	Alerts        AlertNotifier
	Observability *observability.Observability
	Logger        logger.Logger
}
