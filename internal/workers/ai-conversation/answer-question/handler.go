package answerquestion

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	errs "supplychain-insights/internal/common/errors"
	"supplychain-insights/internal/common/logger"
	"supplychain-insights/internal/common/metrics"
	"supplychain-insights/internal/models"
	classifyintent "supplychain-insights/internal/workers/query-understanding/classify-intent"
)

const (
	TaskType = "answer-question"
)

// Handler runs the question pipeline: resolve, dispatch, alert, format, build.
// It serves both the HTTP surface (Execute) and the Zeebe worker (Handle).
type Handler struct {
	config       *Config
	deps         Dependencies
	tracer       trace.Tracer
	errorHandler *errs.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, deps Dependencies) *Handler {
	if config == nil {
		config = DefaultConfig()
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config:       config,
		deps:         deps,
		tracer:       deps.Observability.Tracing().Tracer(TaskType),
		errorHandler: errs.NewErrorHandler(log),
		logger:       log,
	}
}

// Execute answers one question. The only outer failures are a missing
// question and an envelope that cannot be built; analysis failures are
// reported as error insights inside the response.
func (h *Handler) Execute(ctx context.Context, input *Input) (resp *models.ChatResponse, err error) {
	start := time.Now()
	intent := "unknown"
	defer func() {
		status := "ok"
		if err != nil {
			status = string(errs.Classify(err).Code)
		}
		if h.deps.Observability != nil {
			h.deps.Observability.RecordQuestion(ctx, intent, status, time.Since(start))
		}
	}()

	ctx, span := h.tracer.Start(ctx, "answer-question")
	defer span.End()

	// Whitespace only counts as missing; the question itself is passed on as asked.
	question := ""
	if input != nil {
		question = input.Question
	}
	if strings.TrimSpace(question) == "" {
		err = errs.NewQuestionMissingError()
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	res := h.resolve(ctx, question)
	intent = res.Intent.String()
	span.SetAttributes(attribute.String("intent", intent), attribute.String("source", res.Source))

	insights := h.dispatch(ctx, question, res.Intent, res.Params)
	h.notify(ctx, question, insights)
	insights = h.format(ctx, question, insights, res.Intent)

	_, buildSpan := h.tracer.Start(ctx, "build")
	resp, err = h.deps.Builder.Build(question, &res, insights)
	buildSpan.End()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, errs.NewInternalError(err)
	}

	h.logger.Info("question answered", map[string]interface{}{
		"requestId": resp.RequestID,
		"intent":    intent,
		"source":    res.Source,
		"insights":  len(resp.Insights),
		"duration":  time.Since(start).String(),
	})
	return resp, nil
}

// ErrorResponse renders an Execute failure as the error envelope.
func (h *Handler) ErrorResponse(err error) *models.ErrorResponse {
	return h.deps.Builder.BuildError(err)
}

func (h *Handler) resolve(ctx context.Context, question string) (res classifyintent.Resolution) {
	ctx, span := h.tracer.Start(ctx, "resolve")
	defer span.End()

	res = h.deps.Resolver.Resolve(ctx, question)
	if res.FallbackReason != "" {
		span.SetAttributes(attribute.String("fallback_reason", res.FallbackReason))
	}
	return res
}

func (h *Handler) dispatch(ctx context.Context, question string, intent models.Intent, params models.ParamSet) []models.Insight {
	ctx, span := h.tracer.Start(ctx, "dispatch", trace.WithAttributes(attribute.String("intent", intent.String())))
	defer span.End()

	insights := h.deps.Dispatcher.Dispatch(ctx, intent, question, params)
	span.SetAttributes(attribute.Int("insights", len(insights)))
	return insights
}

func (h *Handler) notify(ctx context.Context, question string, insights []models.Insight) {
	if h.deps.Alerts == nil {
		return
	}
	ctx, span := h.tracer.Start(ctx, "alerts")
	defer span.End()

	deliveries := h.deps.Alerts.Notify(ctx, question, insights)
	span.SetAttributes(attribute.Int("deliveries", len(deliveries)))
}

func (h *Handler) format(ctx context.Context, question string, insights []models.Insight, intent models.Intent) []models.Insight {
	if h.deps.Formatter == nil {
		return insights
	}
	ctx, span := h.tracer.Start(ctx, "format")
	defer span.End()

	out := h.deps.Formatter.Format(ctx, question, insights, intent)
	span.SetAttributes(attribute.Bool("enhanced", len(out) == 1 && out[0].Type == models.InsightAIEnhanced))
	return out
}

// Handle is the Zeebe entry point for the answer-question service task.
func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.fail(ctx, client, job, errs.NewInvalidRequestError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	resp, err := h.Execute(ctx, &input)
	if err != nil {
		h.fail(ctx, client, job, err)
		return
	}

	cmd, err := client.NewCompleteJobCommand().JobKey(job.Key).VariablesFromObject(Output{Response: resp})
	if err != nil {
		h.fail(ctx, client, job, errs.NewInternalError(err))
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	h.logger.Info("job completed", map[string]interface{}{
		"jobKey":    job.Key,
		"requestId": resp.RequestID,
	})
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errs.Classify(err).Code)).Inc()
	h.errorHandler.HandleJobError(ctx, client, job, err)
}
