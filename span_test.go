// Copyright OpenInference Authors
// SPDX-License-Identifier: Apache-2.0
// The full text of the Apache license is available in the LICENSE file at
// the root of the repo.

package openinference

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/openinference/openinference-go/internal/testotel"
)

func TestSpan_SetAttributesMasks(t *testing.T) {
	config := NewTraceConfig(WithHideInputs(true))

	recorded := testotel.RecordWithSpan(t, func(span oteltrace.Span) bool {
		wrapped := NewSpan(span, config)
		wrapped.SetAttributes(
			attribute.String(InputValue, "secret"),
			attribute.String(InputMimeType, MimeTypeJSON),
			attribute.String(LLMModelName, "gpt-4"),
		)
		return false
	})

	// The native span saw the redacted value, the untouched attribute, and
	// never saw the omitted key.
	require.Equal(t, []attribute.KeyValue{
		attribute.String(InputValue, RedactedValue),
		attribute.String(LLMModelName, "gpt-4"),
	}, recorded.Attributes)
}

func TestSpan_SetAttributesAllOmitted(t *testing.T) {
	config := NewTraceConfig(WithHideInputs(true))

	recorded := testotel.RecordWithSpan(t, func(span oteltrace.Span) bool {
		wrapped := NewSpan(span, config)
		wrapped.SetAttributes(attribute.String(InputMimeType, MimeTypeJSON))
		return false
	})

	require.Empty(t, recorded.Attributes)
}

func TestSpan_PassThroughOperations(t *testing.T) {
	config := NewTraceConfig(WithHideInputs(true))

	recorded := testotel.RecordWithSpan(t, func(span oteltrace.Span) bool {
		wrapped := NewSpan(span, config)
		wrapped.SetName("renamed")
		wrapped.AddEvent("note", oteltrace.WithAttributes(attribute.String("detail", "kept")))
		wrapped.SetStatus(codes.Ok, "")
		require.True(t, wrapped.IsRecording())
		require.Equal(t, wrapped.Unwrap().SpanContext(), wrapped.SpanContext())
		wrapped.End()
		return true
	})

	require.Equal(t, "renamed", recorded.Name)
	require.Len(t, recorded.Events, 1)
	require.Equal(t, "note", recorded.Events[0].Name)
	require.Equal(t, codes.Ok, recorded.Status.Code)
}
