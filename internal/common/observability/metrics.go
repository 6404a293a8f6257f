package observability

import (
	"context"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider   *metric.MeterProvider
	meter           otelmetric.Meter
	requestCounter  otelmetric.Int64Counter
	requestDuration otelmetric.Float64Histogram

	tracing *Tracing
}

// Option customises New.
type Option func(*options)

type options struct {
	registerer promclient.Registerer
	tracing    *Tracing
}

// WithRegisterer registers the exporter on reg instead of the default registry.
func WithRegisterer(reg promclient.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithTracing attaches a tracer provider whose lifecycle is tied to Shutdown.
func WithTracing(t *Tracing) Option {
	return func(o *options) { o.tracing = t }
}

// New builds an OpenTelemetry meter exported through Prometheus. Exporter
// failures degrade to no-op recording.
func New(serviceName string, opts ...Option) *Observability {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	obs := &Observability{tracing: o.tracing}

	var exporterOpts []otelprom.Option
	if o.registerer != nil {
		exporterOpts = append(exporterOpts, otelprom.WithRegisterer(o.registerer))
	}
	exporter, err := otelprom.New(exporterOpts...)
	if err != nil {
		otel.Handle(err)
		return obs
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	requestCounter, _ := meter.Int64Counter(
		"questions.processed",
		otelmetric.WithDescription("Number of questions processed"),
	)

	requestDuration, _ := meter.Float64Histogram(
		"questions.duration",
		otelmetric.WithDescription("Question processing duration"),
		otelmetric.WithUnit("ms"),
	)

	obs.meterProvider = provider
	obs.meter = meter
	obs.requestCounter = requestCounter
	obs.requestDuration = requestDuration
	return obs
}

// RecordQuestion counts one answered question.
func (o *Observability) RecordQuestion(ctx context.Context, intent, status string, duration time.Duration) {
	attrs := otelmetric.WithAttributes(
		attribute.String("intent", intent),
		attribute.String("status", status),
	)
	if o.requestCounter != nil {
		o.requestCounter.Add(ctx, 1, attrs)
	}
	if o.requestDuration != nil {
		o.requestDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
}

// Tracing returns the attached tracer provider, or a no-op one.
func (o *Observability) Tracing() *Tracing {
	if o == nil || o.tracing == nil {
		return NewNoopTracing()
	}
	return o.tracing
}

func (o *Observability) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if o.meterProvider != nil {
		_ = o.meterProvider.Shutdown(ctx)
	}
	if o.tracing != nil {
		_ = o.tracing.Shutdown(ctx)
	}
}
