// Copyright OpenInference Authors
// SPDX-License-Identifier: Apache-2.0
// The full text of the Apache license is available in the LICENSE file at
// the root of the repo.

package openinference

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Ensure Span implements trace.Span.
var _ trace.Span = (*Span)(nil)

// Span decorates a native OpenTelemetry span so that every attribute write
// passes through the masking engine before reaching it. All other span
// operations delegate to the native span unchanged, so a *Span is a drop-in
// replacement wherever a trace.Span is expected.
//
// A Span is bound to exactly one native span for its whole lifetime and
// shares its TraceConfig with the Tracer that created it. It adds no
// buffering and no lifecycle states of its own.
type Span struct {
	trace.Span
	config *TraceConfig
}

// NewSpan wraps a native span with the given trace configuration. Most
// callers obtain wrapped spans from a Tracer instead.
func NewSpan(span trace.Span, config *TraceConfig) *Span {
	return &Span{Span: span, config: config}
}

// SetAttributes masks every attribute and records the survivors on the
// native span. Attributes whose masking outcome is omission are not passed
// through at all, so the native span never sees their keys.
func (s *Span) SetAttributes(kvs ...attribute.KeyValue) {
	masked := MaskAttributes(s.config, kvs)
	if len(masked) == 0 {
		return
	}
	s.Span.SetAttributes(masked...)
}

// Unwrap returns the native span this wrapper delegates to.
func (s *Span) Unwrap() trace.Span {
	return s.Span
}
