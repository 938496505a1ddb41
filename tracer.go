// Copyright OpenInference Authors
// SPDX-License-Identifier: Apache-2.0
// The full text of the Apache license is available in the LICENSE file at
// the root of the repo.

package openinference

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Ensure Tracer implements trace.Tracer.
var _ trace.Tracer = (*Tracer)(nil)

// Tracer decorates a native OpenTelemetry tracer. Spans it starts are
// wrapped in Span so every attribute write is masked, and ambient context
// attributes (session id, user id, metadata, tags, prompt template) are
// merged in at span-creation time.
//
// The Tracer shares one read-only TraceConfig across every span it creates;
// concurrent use from multiple goroutines needs no synchronization.
type Tracer struct {
	trace.Tracer
	config *TraceConfig
}

// TracerOption configures a Tracer.
type TracerOption func(*Tracer)

// WithTraceConfig sets the trace configuration used by the Tracer and every
// span it creates. Defaults to NewTraceConfig(), i.e. environment variables
// and hard-coded defaults.
func WithTraceConfig(config *TraceConfig) TracerOption {
	return func(t *Tracer) { t.config = config }
}

// NewTracer wraps a native tracer.
func NewTracer(tracer trace.Tracer, opts ...TracerOption) *Tracer {
	t := &Tracer{Tracer: tracer}
	for _, opt := range opts {
		opt(t)
	}
	if t.config == nil {
		t.config = NewTraceConfig()
	}
	return t
}

// noopTracer backs suppressed contexts so the span chain stays intact
// while nothing is recorded.
var noopTracer = noop.NewTracerProvider().Tracer("")

// Start starts a wrapped span. The returned context carries the wrapper, so
// nested Start calls preserve the native tracer's parent/child relationship.
//
// Attributes resolve in two layers before masking: ambient context
// attributes first, then any attributes from the span-start options, so an
// explicit attribute wins on key collision. The native span is started
// without attributes so the native tracer cannot record them unmasked; the
// merged set is applied through the wrapper instead.
func (t *Tracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if IsTracingSuppressed(ctx) {
		return noopTracer.Start(ctx, name)
	}

	cfg := trace.NewSpanStartConfig(opts...)

	contextAttrs := ContextAttributes(ctx)
	attrs := make([]attribute.KeyValue, 0, len(contextAttrs)+len(cfg.Attributes()))
	attrs = append(attrs, contextAttrs...)
	attrs = append(attrs, cfg.Attributes()...)

	// Re-apply every start option except the attributes.
	startOpts := make([]trace.SpanStartOption, 0, 4)
	if cfg.SpanKind() != trace.SpanKindUnspecified {
		startOpts = append(startOpts, trace.WithSpanKind(cfg.SpanKind()))
	}
	if !cfg.Timestamp().IsZero() {
		startOpts = append(startOpts, trace.WithTimestamp(cfg.Timestamp()))
	}
	if len(cfg.Links()) > 0 {
		startOpts = append(startOpts, trace.WithLinks(cfg.Links()...))
	}
	if cfg.NewRoot() {
		startOpts = append(startOpts, trace.WithNewRoot())
	}
	ctx, native := t.Tracer.Start(ctx, name, startOpts...)
	span := NewSpan(native, t.config)
	span.SetAttributes(attrs...)
	return trace.ContextWithSpan(ctx, span), span
}

// startKindSpan prepends the fixed OpenInference span-kind attribute and a
// fixed native span kind, then delegates to Start. Caller options come
// after the fixed ones, so an explicit trace.WithSpanKind overrides the
// native kind.
func (t *Tracer) startKindSpan(ctx context.Context, name, oiKind string, nativeKind trace.SpanKind, opts []trace.SpanStartOption) (context.Context, trace.Span) {
	fixed := []trace.SpanStartOption{
		trace.WithSpanKind(nativeKind),
		trace.WithAttributes(attribute.String(SpanKind, oiKind)),
	}
	return t.Start(ctx, name, append(fixed, opts...)...)
}

// StartLLMSpan starts a span for a Large Language Model call. LLM calls
// cross a provider boundary, so the native span kind is CLIENT.
func (t *Tracer) StartLLMSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.startKindSpan(ctx, name, SpanKindLLM, trace.SpanKindClient, opts)
}

// StartChainSpan starts a span for a sequence of linked operations.
func (t *Tracer) StartChainSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.startKindSpan(ctx, name, SpanKindChain, trace.SpanKindInternal, opts)
}

// StartToolSpan starts a span for a tool or function invocation.
func (t *Tracer) StartToolSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.startKindSpan(ctx, name, SpanKindTool, trace.SpanKindInternal, opts)
}

// StartAgentSpan starts a span for an agent reasoning loop.
func (t *Tracer) StartAgentSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.startKindSpan(ctx, name, SpanKindAgent, trace.SpanKindInternal, opts)
}

// StartRetrieverSpan starts a span for a document retrieval operation.
func (t *Tracer) StartRetrieverSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.startKindSpan(ctx, name, SpanKindRetriever, trace.SpanKindInternal, opts)
}

// StartEmbeddingSpan starts a span for an embedding call. Like LLM calls,
// embedding calls cross a provider boundary, so the native span kind is
// CLIENT.
func (t *Tracer) StartEmbeddingSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.startKindSpan(ctx, name, SpanKindEmbedding, trace.SpanKindClient, opts)
}

// StartRerankerSpan starts a span for a document reranking operation.
func (t *Tracer) StartRerankerSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.startKindSpan(ctx, name, SpanKindReranker, trace.SpanKindInternal, opts)
}

// StartGuardrailSpan starts a span for a guardrail or safety check.
func (t *Tracer) StartGuardrailSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.startKindSpan(ctx, name, SpanKindGuardrail, trace.SpanKindInternal, opts)
}

// StartEvaluatorSpan starts a span for an evaluation of model output.
func (t *Tracer) StartEvaluatorSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.startKindSpan(ctx, name, SpanKindEvaluator, trace.SpanKindInternal, opts)
}
