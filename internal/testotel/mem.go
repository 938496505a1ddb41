// Copyright OpenInference Authors
// SPDX-License-Identifier: Apache-2.0
// The full text of the Apache license is available in the LICENSE file at
// the root of the repo.

// Package testotel provides test utilities for OpenTelemetry tracing tests.
package testotel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// NewInMemoryTracer returns a native tracer whose spans are exported
// synchronously to the returned in-memory exporter. Ended spans are
// available from the exporter immediately, no flush needed.
func NewInMemoryTracer() (oteltrace.Tracer, *tracetest.InMemoryExporter) {
	exporter := tracetest.NewInMemoryExporter()
	tp := trace.NewTracerProvider(trace.WithSyncer(exporter))
	return tp.Tracer("test"), exporter
}

// RecordWithTracer executes fn with a native in-memory tracer and returns
// every span recorded, oldest first. fn owns starting and ending spans.
func RecordWithTracer(t testing.TB, fn func(tracer oteltrace.Tracer)) []tracetest.SpanStub {
	t.Helper()
	tracer, exporter := NewInMemoryTracer()
	fn(tracer)
	spans := exporter.GetSpans()
	for i := range spans {
		clearTimestamps(&spans[i])
	}
	return spans
}

// RecordWithSpan executes the provided function with a native span and
// returns the recorded span. The function should return true if it ended
// the span itself.
func RecordWithSpan(t testing.TB, fn func(span oteltrace.Span) bool) tracetest.SpanStub {
	t.Helper()
	tracer, exporter := NewInMemoryTracer()
	_, span := tracer.Start(t.Context(), "test", oteltrace.WithSpanKind(oteltrace.SpanKindInternal))

	if !fn(span) {
		span.End()
	}

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	actualSpan := spans[0]
	clearTimestamps(&actualSpan)
	return actualSpan
}

// clearTimestamps zeroes a recorded span's timestamps for comparison.
func clearTimestamps(s *tracetest.SpanStub) {
	s.StartTime = time.Time{}
	s.EndTime = time.Time{}
	for i := range s.Events {
		s.Events[i].Time = time.Time{}
	}
}
