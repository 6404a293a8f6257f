package dispatch

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"supplychain-insights/internal/common/logger"
	"supplychain-insights/internal/common/metrics"
	"supplychain-insights/internal/models"
	"supplychain-insights/pkg/registry"
)

var ErrNoInsights = errors.New("analysis produced no insights")

// Analyzer answers questions for one intent. On failure it returns the
// insights produced so far together with the error.
type Analyzer interface {
	Analyze(ctx context.Context, question string, params models.ParamSet) ([]models.Insight, error)
}

// AnalyzerFunc adapts a function to Analyzer.
type AnalyzerFunc func(ctx context.Context, question string, params models.ParamSet) ([]models.Insight, error)

func (f AnalyzerFunc) Analyze(ctx context.Context, question string, params models.ParamSet) ([]models.Insight, error) {
	return f(ctx, question, params)
}

// Route binds an intent to its analyzer. ErrorTitle heads the error insight
// when the analyzer fails.
type Route struct {
	Intent     models.Intent
	Analyzer   Analyzer
	ErrorTitle string
}

type Dispatcher struct {
	routes   map[models.Intent]Route
	registry *registry.CapabilityRegistry
	logger   logger.Logger
}

func New(reg *registry.CapabilityRegistry, log logger.Logger, routes ...Route) *Dispatcher {
	if reg == nil {
		reg = registry.DefaultRegistry()
	}
	d := &Dispatcher{
		routes:   make(map[models.Intent]Route, len(routes)),
		registry: reg,
		logger:   logger.ForComponent(log, "dispatch"),
	}
	for _, r := range routes {
		if r.ErrorTitle == "" {
			r.ErrorTitle = "Analysis Error"
		}
		d.routes[r.Intent] = r
	}
	return d
}

// Dispatch never fails: analyzer errors and panics become a trailing error
// insight after whatever the analyzer produced before failing.
func (d *Dispatcher) Dispatch(ctx context.Context, intent models.Intent, question string, params models.ParamSet) []models.Insight {
	route, ok := d.routes[intent]
	if intent == models.IntentGeneral || !ok {
		return []models.Insight{models.NewGeneralInsight(d.registry.HelpText())}
	}

	start := time.Now()
	insights, err := d.run(ctx, route, question, params)
	metrics.HandlerDuration.WithLabelValues(intent.String()).Observe(time.Since(start).Seconds())

	if err == nil && len(insights) == 0 {
		err = ErrNoInsights
	}
	if err != nil {
		d.logger.Error("analysis failed", map[string]interface{}{
			"intent":  intent,
			"partial": len(insights),
			"error":   err.Error(),
		})
		insights = append(insights, models.NewErrorInsight(route.ErrorTitle, err))
	}
	return insights
}

func (d *Dispatcher) run(ctx context.Context, route Route, question string, params models.ParamSet) (insights []models.Insight, err error) {
	defer func() {
		if r := recover(); r != nil {
			metrics.HandlerErrors.WithLabelValues(route.Intent.String(), "panic").Inc()
			d.logger.Error("analyzer panicked", map[string]interface{}{
				"intent": route.Intent,
				"panic":  fmt.Sprint(r),
				"stack":  string(debug.Stack()),
			})
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()

	insights, err = route.Analyzer.Analyze(ctx, question, params)
	if err != nil {
		metrics.HandlerErrors.WithLabelValues(route.Intent.String(), "error").Inc()
	}
	return insights, err
}

// Intents lists the intents with a registered analyzer.
func (d *Dispatcher) Intents() []models.Intent {
	var out []models.Intent
	for _, intent := range models.Intents {
		if _, ok := d.routes[intent]; ok {
			out = append(out, intent)
		}
	}
	return out
}
