// Copyright OpenInference Authors
// SPDX-License-Identifier: Apache-2.0
// The full text of the Apache license is available in the LICENSE file at
// the root of the repo.

package openinference

import (
	"context"
	"encoding/json"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
)

type (
	contextAttrsKey    struct{}
	suppressTracingKey struct{}
)

// contextWithAttrs appends attributes to the ambient set carried by ctx.
// Later writes for the same key win when the set is eventually recorded,
// matching the last-write-wins semantics of span attributes.
func contextWithAttrs(ctx context.Context, kvs ...attribute.KeyValue) context.Context {
	existing := ContextAttributes(ctx)
	merged := make([]attribute.KeyValue, 0, len(existing)+len(kvs))
	merged = append(merged, existing...)
	merged = append(merged, kvs...)
	return context.WithValue(ctx, contextAttrsKey{}, merged)
}

// ContextAttributes returns the ambient attributes carried by ctx, in the
// order they were attached. Tracers merge these into every span they start,
// before any explicit span-start attributes.
func ContextAttributes(ctx context.Context) []attribute.KeyValue {
	kvs, _ := ctx.Value(contextAttrsKey{}).([]attribute.KeyValue)
	return kvs
}

// WithSession associates a session id with ctx. Spans started under the
// returned context carry the session.id attribute.
func WithSession(ctx context.Context, sessionID string) context.Context {
	return contextWithAttrs(ctx, attribute.String(SessionID, sessionID))
}

// WithUser associates a user id with ctx. Spans started under the returned
// context carry the user.id attribute.
func WithUser(ctx context.Context, userID string) context.Context {
	return contextWithAttrs(ctx, attribute.String(UserID, userID))
}

// WithMetadata associates arbitrary metadata with ctx, serialized to JSON
// under the metadata attribute. If the metadata cannot be serialized, the
// attribute is dropped and ctx is returned unchanged; span creation is
// never aborted by bad metadata.
func WithMetadata(ctx context.Context, metadata map[string]any) context.Context {
	serialized, err := json.Marshal(metadata)
	if err != nil {
		return ctx
	}
	return contextWithAttrs(ctx, attribute.String(Metadata, string(serialized)))
}

// WithMetadataJSON is like WithMetadata but accepts pre-serialized JSON.
// Invalid JSON is dropped rather than recorded.
func WithMetadataJSON(ctx context.Context, raw string) context.Context {
	if !gjson.Valid(raw) {
		return ctx
	}
	return contextWithAttrs(ctx, attribute.String(Metadata, raw))
}

// WithTags associates user-defined tags with ctx, serialized as a JSON array
// under the tag.tags attribute.
func WithTags(ctx context.Context, tags ...string) context.Context {
	serialized, err := json.Marshal(tags)
	if err != nil {
		return ctx
	}
	return contextWithAttrs(ctx, attribute.String(TagTags, string(serialized)))
}

// WithPromptTemplate associates prompt-template fields with ctx. Empty
// template or version strings are skipped. Variables are JSON-serialized;
// a serialization failure drops the variables attribute only, keeping the
// template and version.
func WithPromptTemplate(ctx context.Context, template, version string, variables map[string]any) context.Context {
	kvs := make([]attribute.KeyValue, 0, 3)
	if template != "" {
		kvs = append(kvs, attribute.String(LLMPromptTemplate, template))
	}
	if version != "" {
		kvs = append(kvs, attribute.String(LLMPromptTemplateVersion, version))
	}
	if variables != nil {
		if serialized, err := json.Marshal(variables); err == nil {
			kvs = append(kvs, attribute.String(LLMPromptTemplateVariables, string(serialized)))
		}
	}
	if len(kvs) == 0 {
		return ctx
	}
	return contextWithAttrs(ctx, kvs...)
}

// WithTracingSuppressed marks ctx so that tracers start unrecorded spans
// under it. Instrumentation uses this to avoid tracing its own internal
// calls, e.g. a framework adapter invoking the model a second time for a
// guardrail check.
func WithTracingSuppressed(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressTracingKey{}, true)
}

// IsTracingSuppressed reports whether tracing is suppressed in ctx.
func IsTracingSuppressed(ctx context.Context) bool {
	suppressed, _ := ctx.Value(suppressTracingKey{}).(bool)
	return suppressed
}
