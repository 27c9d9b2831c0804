package telemetry

import (
	"context"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/vovakirdan/gridstate/internal/fsm"
)

const serviceVersion = "0.1.0"

// Setup installs a global tracer provider exporting over OTLP HTTP.
// The exporter reads the standard OTEL_EXPORTER_OTLP_* environment variables.
// The returned function flushes and stops the provider.
func Setup(ctx context.Context, serviceName string) (shutdown func(context.Context) error, err error) {
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
			attribute.String("host.name", hostname()),
			attribute.String("os.type", runtime.GOOS),
			attribute.String("process.runtime.version", runtime.Version()),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Tracer returns a named tracer from the global provider.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer("gridstate/" + name)
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}

// SpanObserver adds one span event per transition to a session span.
type SpanObserver struct {
	span trace.Span
}

// NewSpanObserver returns an observer recording onto span.
func NewSpanObserver(span trace.Span) *SpanObserver {
	return &SpanObserver{span: span}
}

// OnTransition implements fsm.Observer.
func (o *SpanObserver) OnTransition(t fsm.Transition) {
	o.span.AddEvent("state.transition", trace.WithAttributes(
		attribute.String("state.from", t.From.String()),
		attribute.String("state.to", t.To.String()),
		attribute.Int64("state.tick", int64(t.Tick)),
		attribute.Int("state.lives", t.Lives),
	))
	if t.To.IsTerminal() {
		o.span.SetAttributes(attribute.String("session.final_state", t.To.String()))
	}
}
