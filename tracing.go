// Copyright OpenInference Authors
// SPDX-License-Identifier: Apache-2.0
// The full text of the Apache license is available in the LICENSE file at
// the root of the repo.

package openinference

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/contrib/exporters/autoexport"
	"go.opentelemetry.io/contrib/propagators/autoprop"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// scopeName is the instrumentation scope of tracers created by this package.
const scopeName = "openinference-go"

// Tracing is an instrumented tracing graph: a wrapped tracer plus ownership
// of whatever SDK machinery was created for it.
type Tracing interface {
	// Tracer returns an instrumented tracer. Spans it starts mask attributes
	// and merge ambient context attributes.
	Tracer() trace.Tracer
	// Shutdown flushes and stops the underlying provider, if this Tracing
	// created one.
	Shutdown(context.Context) error
}

// Ensure NoopTracing implements Tracing.
var _ Tracing = NoopTracing{}

// NoopTracing is a Tracing that records nothing. Returned by
// NewTracingFromEnv when tracing is disabled.
type NoopTracing struct{}

// Tracer implements the same method as documented on Tracing.
func (NoopTracing) Tracer() trace.Tracer {
	return noopTracer
}

// Shutdown implements the same method as documented on Tracing.
func (NoopTracing) Shutdown(context.Context) error {
	return nil
}

var _ Tracing = (*tracingImpl)(nil)

type tracingImpl struct {
	tracer *Tracer
	// shutdown is nil when we didn't create the provider.
	shutdown func(context.Context) error
}

// Tracer implements the same method as documented on Tracing.
func (t *tracingImpl) Tracer() trace.Tracer {
	return t.tracer
}

// Shutdown implements the same method as documented on Tracing.
func (t *tracingImpl) Shutdown(ctx context.Context) error {
	if t.shutdown != nil {
		return t.shutdown(ctx)
	}
	return nil
}

// NewTracing wraps an existing native tracer into a Tracing graph, applying
// the given trace-configuration options on top of the environment. The
// caller retains ownership of the provider; Shutdown is a no-op. A noop
// native tracer short-circuits to NoopTracing.
func NewTracing(tracer trace.Tracer, opts ...TraceConfigOption) Tracing {
	// Check if the tracer is a no-op by checking its type.
	if _, ok := tracer.(noop.Tracer); ok {
		return NoopTracing{}
	}
	return &tracingImpl{
		tracer:   NewTracer(tracer, WithTraceConfig(NewTraceConfig(opts...))),
		shutdown: nil, // shutdown is nil when we didn't create the provider.
	}
}

// NewTracingFromEnv configures OpenTelemetry tracing based on environment
// variables, with an instrumented tracer on top. Returns a tracing graph
// that is noop when disabled. The trace-configuration options are applied
// on top of the OPENINFERENCE_* environment variables.
//
// The console exporter ("OTEL_TRACES_EXPORTER=console") writes synchronously
// to stdout; any other exporter selection is delegated to autoexport with a
// batch processor tunable via the usual OTEL_BSP_* variables.
func NewTracingFromEnv(ctx context.Context, stdout io.Writer, opts ...TraceConfigOption) (Tracing, error) {
	// Return no-op tracing if disabled or no exporter/endpoint is configured.
	exporter := os.Getenv("OTEL_TRACES_EXPORTER")
	if os.Getenv("OTEL_SDK_DISABLED") == "true" || exporter == "none" ||
		(exporter == "" && os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" &&
			os.Getenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT") == "") {
		return NoopTracing{}, nil
	}

	// Create resource with service name, defaulting to "openinference-go" if
	// not set. First create default resource, then one from env, then our
	// fallback. The merge order ensures env vars override our default.
	defaultRes := resource.Default()
	envRes, err := resource.New(ctx,
		resource.WithFromEnv(),      // Read OTEL_SERVICE_NAME and OTEL_RESOURCE_ATTRIBUTES.
		resource.WithTelemetrySDK(), // Add telemetry SDK info.
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource from env: %w", err)
	}

	// Only set our default if service.name wasn't set via env.
	fallbackRes := resource.NewSchemaless(
		semconv.ServiceName(scopeName),
	)

	// Merge in order: default -> fallback -> env (env takes precedence).
	res, err := resource.Merge(defaultRes, fallbackRes)
	if err != nil {
		return nil, fmt.Errorf("failed to merge default resources: %w", err)
	}
	res, err = resource.Merge(res, envRes)
	if err != nil {
		return nil, fmt.Errorf("failed to merge env resource: %w", err)
	}

	// Create the tracer provider, special casing console for sync and tests.
	var tp *sdktrace.TracerProvider
	if exporter == "console" {
		stdoutExporter, err := stdouttrace.New(stdouttrace.WithWriter(stdout))
		if err != nil {
			return nil, fmt.Errorf("failed to create console exporter: %w", err)
		}
		tp = sdktrace.NewTracerProvider(
			sdktrace.WithSyncer(stdoutExporter),
			sdktrace.WithResource(res),
		)
	} else { // Configure exporter via ENV variables like OTEL_TRACES_EXPORTER.
		autoExporter, err := autoexport.NewSpanExporter(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create exporter: %w", err)
		}
		// Configure batcher via ENV variables like OTEL_BSP_SCHEDULE_DELAY.
		tp = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(autoExporter),
			sdktrace.WithResource(res),
		)
	}

	// Configure propagation via the OTEL_PROPAGATORS ENV variable.
	otel.SetTextMapPropagator(autoprop.NewTextMapPropagator())

	return &tracingImpl{
		tracer:   NewTracer(tp.Tracer(scopeName), WithTraceConfig(NewTraceConfig(opts...))),
		shutdown: tp.Shutdown, // we have to shut down what we create.
	}, nil
}
