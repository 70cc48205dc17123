// Package telemetry builds the OpenTelemetry tracer/meter pair revctl
// uses to instrument map builds: a span per build carrying the node
// count as an attribute, and a counter of builds. Plans are not
// instrumented.
package telemetry

import (
	"context"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/revgraph-dev/revgraph/internal/revgraph"

// Providers bundles the tracer/meter pair revctl hands to command
// bodies, plus the shutdown hook that flushes the stdout exporters.
type Providers struct {
	Tracer   trace.Tracer
	Meter    metric.Meter
	Shutdown func(context.Context) error
}

// Setup builds stdout-exporting trace and metric providers suitable for
// local/dev use; there is no collector dependency, matching this
// codebase's default "observe locally, ship to a collector only when
// configured" posture. Pass io.Discard to silence output entirely.
func Setup(traceWriter, metricWriter io.Writer) (*Providers, error) {
	traceExporter, err := stdouttrace.New(stdouttrace.WithWriter(traceWriter))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(traceExporter))
	otel.SetTracerProvider(tp)

	metricExporter, err := stdoutmetric.New(stdoutmetric.WithWriter(metricWriter))
	if err != nil {
		return nil, err
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)))
	otel.SetMeterProvider(mp)

	return &Providers{
		Tracer: tp.Tracer(instrumentationName),
		Meter:  mp.Meter(instrumentationName),
		Shutdown: func(ctx context.Context) error {
			if err := tp.Shutdown(ctx); err != nil {
				return err
			}
			return mp.Shutdown(ctx)
		},
	}, nil
}

// Noop returns providers backed by the global no-op implementations,
// for callers (library consumers, unit tests) that never call Setup.
func Noop() *Providers {
	return &Providers{
		Tracer:   otel.Tracer(instrumentationName),
		Meter:    otel.Meter(instrumentationName),
		Shutdown: func(context.Context) error { return nil },
	}
}
