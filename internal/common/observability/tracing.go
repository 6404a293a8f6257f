package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Tracing owns the tracer provider used for pipeline spans.
type Tracing struct {
	provider trace.TracerProvider
	shutdown func(context.Context) error
}

// TracingConfig mirrors the tracing section of the application config.
type TracingConfig struct {
	ServiceName    string
	JaegerEndpoint string
	SampleRatio    float64
	// Exporter overrides the Jaeger exporter, mainly for tests.
	Exporter sdktrace.SpanExporter
}

// NewTracing builds an SDK tracer provider. Spans are exported to Jaeger when
// an endpoint is set and only sampled otherwise.
func NewTracing(cfg TracingConfig) (*Tracing, error) {
	res := resource.NewSchemaless(attribute.String("service.name", cfg.ServiceName))

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
	}

	exporter := cfg.Exporter
	if exporter == nil && cfg.JaegerEndpoint != "" {
		exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(cfg.JaegerEndpoint)))
		if err != nil {
			return nil, fmt.Errorf("create jaeger exporter: %w", err)
		}
		exporter = exp
	}
	if exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	provider := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(provider)

	return &Tracing{provider: provider, shutdown: provider.Shutdown}, nil
}

// NewNoopTracing returns a provider that records nothing.
func NewNoopTracing() *Tracing {
	return &Tracing{
		provider: noop.NewTracerProvider(),
		shutdown: func(context.Context) error { return nil },
	}
}

// Tracer returns a named tracer.
func (t *Tracing) Tracer(name string) trace.Tracer {
	if t == nil || t.provider == nil {
		return noop.NewTracerProvider().Tracer(name)
	}
	return t.provider.Tracer(name)
}

func (t *Tracing) Shutdown(ctx context.Context) error {
	if t == nil || t.shutdown == nil {
		return nil
	}
	return t.shutdown(ctx)
}
