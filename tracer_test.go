// Copyright OpenInference Authors
// SPDX-License-Identifier: Apache-2.0
// The full text of the Apache license is available in the LICENSE file at
// the root of the repo.

package openinference

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/openinference/openinference-go/internal/testotel"
)

func TestTracer_StartMasksExplicitAttributes(t *testing.T) {
	spans := testotel.RecordWithTracer(t, func(native oteltrace.Tracer) {
		tracer := NewTracer(native, WithTraceConfig(NewTraceConfig(WithHideInputs(true))))
		_, span := tracer.Start(t.Context(), "x", oteltrace.WithAttributes(
			attribute.String(InputValue, "secret"),
			attribute.String(InputMimeType, MimeTypeJSON),
		))
		span.End()
	})

	require.Len(t, spans, 1)
	require.Equal(t, []attribute.KeyValue{
		attribute.String(InputValue, RedactedValue),
	}, spans[0].Attributes)
}

func TestTracer_StartMergesContextAttributes(t *testing.T) {
	ctx := WithSession(t.Context(), "session-1")
	ctx = WithUser(ctx, "user-1")

	spans := testotel.RecordWithTracer(t, func(native oteltrace.Tracer) {
		tracer := NewTracer(native)
		_, span := tracer.Start(ctx, "x", oteltrace.WithAttributes(
			attribute.String(LLMModelName, "gpt-4"),
		))
		span.End()
	})

	require.Len(t, spans, 1)
	require.Equal(t, []attribute.KeyValue{
		attribute.String(SessionID, "session-1"),
		attribute.String(UserID, "user-1"),
		attribute.String(LLMModelName, "gpt-4"),
	}, spans[0].Attributes)
}

func TestTracer_ExplicitAttributesWinOverContext(t *testing.T) {
	ctx := WithSession(t.Context(), "from-context")

	spans := testotel.RecordWithTracer(t, func(native oteltrace.Tracer) {
		tracer := NewTracer(native)
		_, span := tracer.Start(ctx, "x", oteltrace.WithAttributes(
			attribute.String(SessionID, "from-options"),
		))
		span.End()
	})

	require.Len(t, spans, 1)
	// Context attributes are applied first, so the explicit value is the
	// later write and wins when the key is read back.
	attrs := attrMap(spans[0])
	require.Equal(t, "from-options", attrs[SessionID].AsString())
}

func TestTracer_ContextAttributesAreMasked(t *testing.T) {
	ctx := WithMetadata(t.Context(), map[string]any{"tenant": "acme"})
	ctx = WithSession(ctx, "session-1")

	spans := testotel.RecordWithTracer(t, func(native oteltrace.Tracer) {
		// metadata survives; input messages from options are dropped.
		tracer := NewTracer(native, WithTraceConfig(NewTraceConfig(WithHideInputMessages(true))))
		_, span := tracer.Start(ctx, "x", oteltrace.WithAttributes(
			attribute.String(InputMessageAttribute(0, MessageContent), "secret"),
		))
		span.End()
	})

	require.Len(t, spans, 1)
	require.Equal(t, []attribute.KeyValue{
		attribute.String(Metadata, `{"tenant":"acme"}`),
		attribute.String(SessionID, "session-1"),
	}, spans[0].Attributes)
}

func TestTracer_NestedStartPreservesParentChild(t *testing.T) {
	spans := testotel.RecordWithTracer(t, func(native oteltrace.Tracer) {
		tracer := NewTracer(native)
		ctx, parent := tracer.Start(t.Context(), "parent")
		childCtx, child := tracer.Start(ctx, "child")

		// The context carries the wrapper, not the native span.
		require.Same(t, child, oteltrace.SpanFromContext(childCtx))

		child.End()
		parent.End()
	})

	require.Len(t, spans, 2) // child exported first (ended first).
	child, parent := spans[0], spans[1]
	require.Equal(t, "child", child.Name)
	require.Equal(t, "parent", parent.Name)
	require.Equal(t, parent.SpanContext.TraceID(), child.SpanContext.TraceID())
	require.Equal(t, parent.SpanContext.SpanID(), child.Parent.SpanID())
}

func TestTracer_StartOptionsReapplied(t *testing.T) {
	link := oteltrace.Link{SpanContext: oteltrace.NewSpanContext(oteltrace.SpanContextConfig{
		TraceID: oteltrace.TraceID{1},
		SpanID:  oteltrace.SpanID{2},
	})}

	spans := testotel.RecordWithTracer(t, func(native oteltrace.Tracer) {
		tracer := NewTracer(native)
		_, span := tracer.Start(t.Context(), "x",
			oteltrace.WithSpanKind(oteltrace.SpanKindProducer),
			oteltrace.WithLinks(link),
		)
		span.End()
	})

	require.Len(t, spans, 1)
	require.Equal(t, oteltrace.SpanKindProducer, spans[0].SpanKind)
	require.Len(t, spans[0].Links, 1)
	require.Equal(t, link.SpanContext.TraceID(), spans[0].Links[0].SpanContext.TraceID())
}

func TestTracer_SuppressedContext(t *testing.T) {
	spans := testotel.RecordWithTracer(t, func(native oteltrace.Tracer) {
		tracer := NewTracer(native)
		ctx := WithTracingSuppressed(t.Context())
		_, span := tracer.Start(ctx, "invisible")
		require.False(t, span.IsRecording())
		span.End()
	})

	require.Empty(t, spans)
}

func TestTracer_KindStarters(t *testing.T) {
	tests := []struct {
		name           string
		start          func(*Tracer, context.Context) (context.Context, oteltrace.Span)
		wantKind       string
		wantNativeKind oteltrace.SpanKind
	}{
		{
			name:           "llm",
			start:          func(tr *Tracer, ctx context.Context) (context.Context, oteltrace.Span) { return tr.StartLLMSpan(ctx, "s") },
			wantKind:       SpanKindLLM,
			wantNativeKind: oteltrace.SpanKindClient,
		},
		{
			name:           "chain",
			start:          func(tr *Tracer, ctx context.Context) (context.Context, oteltrace.Span) { return tr.StartChainSpan(ctx, "s") },
			wantKind:       SpanKindChain,
			wantNativeKind: oteltrace.SpanKindInternal,
		},
		{
			name:           "tool",
			start:          func(tr *Tracer, ctx context.Context) (context.Context, oteltrace.Span) { return tr.StartToolSpan(ctx, "s") },
			wantKind:       SpanKindTool,
			wantNativeKind: oteltrace.SpanKindInternal,
		},
		{
			name:           "agent",
			start:          func(tr *Tracer, ctx context.Context) (context.Context, oteltrace.Span) { return tr.StartAgentSpan(ctx, "s") },
			wantKind:       SpanKindAgent,
			wantNativeKind: oteltrace.SpanKindInternal,
		},
		{
			name: "retriever",
			start: func(tr *Tracer, ctx context.Context) (context.Context, oteltrace.Span) {
				return tr.StartRetrieverSpan(ctx, "s")
			},
			wantKind:       SpanKindRetriever,
			wantNativeKind: oteltrace.SpanKindInternal,
		},
		{
			name: "embedding",
			start: func(tr *Tracer, ctx context.Context) (context.Context, oteltrace.Span) {
				return tr.StartEmbeddingSpan(ctx, "s")
			},
			wantKind:       SpanKindEmbedding,
			wantNativeKind: oteltrace.SpanKindClient,
		},
		{
			name: "reranker",
			start: func(tr *Tracer, ctx context.Context) (context.Context, oteltrace.Span) {
				return tr.StartRerankerSpan(ctx, "s")
			},
			wantKind:       SpanKindReranker,
			wantNativeKind: oteltrace.SpanKindInternal,
		},
		{
			name: "guardrail",
			start: func(tr *Tracer, ctx context.Context) (context.Context, oteltrace.Span) {
				return tr.StartGuardrailSpan(ctx, "s")
			},
			wantKind:       SpanKindGuardrail,
			wantNativeKind: oteltrace.SpanKindInternal,
		},
		{
			name: "evaluator",
			start: func(tr *Tracer, ctx context.Context) (context.Context, oteltrace.Span) {
				return tr.StartEvaluatorSpan(ctx, "s")
			},
			wantKind:       SpanKindEvaluator,
			wantNativeKind: oteltrace.SpanKindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans := testotel.RecordWithTracer(t, func(native oteltrace.Tracer) {
				tracer := NewTracer(native)
				_, span := tt.start(tracer, t.Context())
				span.End()
			})

			require.Len(t, spans, 1)
			require.Equal(t, tt.wantNativeKind, spans[0].SpanKind)
			attrs := attrMap(spans[0])
			require.Equal(t, tt.wantKind, attrs[SpanKind].AsString())
		})
	}
}

func TestTracer_KindStarterAllowsNativeKindOverride(t *testing.T) {
	spans := testotel.RecordWithTracer(t, func(native oteltrace.Tracer) {
		tracer := NewTracer(native)
		_, span := tracer.StartLLMSpan(t.Context(), "s", oteltrace.WithSpanKind(oteltrace.SpanKindInternal))
		span.End()
	})

	require.Len(t, spans, 1)
	require.Equal(t, oteltrace.SpanKindInternal, spans[0].SpanKind)
	require.Equal(t, SpanKindLLM, attrMap(spans[0])[SpanKind].AsString())
}

// attrMap indexes a recorded span's attributes by key.
func attrMap(s tracetest.SpanStub) map[string]attribute.Value {
	m := make(map[string]attribute.Value, len(s.Attributes))
	for _, kv := range s.Attributes {
		m[string(kv.Key)] = kv.Value
	}
	return m
}
