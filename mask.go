// Copyright OpenInference Authors
// SPDX-License-Identifier: Apache-2.0
// The full text of the Apache license is available in the LICENSE file at
// the root of the repo.

package openinference

import (
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

// maskOutcome is what a matched masking rule does to an attribute.
type maskOutcome int

const (
	// maskRedact keeps the key and replaces the value with RedactedValue.
	maskRedact maskOutcome = iota
	// maskOmit drops the attribute entirely, key included.
	maskOmit
)

// maskRule pairs a pure predicate over (config, key, value) with the outcome
// applied when the predicate matches.
type maskRule struct {
	name    string
	matches func(config *TraceConfig, key string, value attribute.Value) bool
	outcome maskOutcome
}

// maskingRules is evaluated top to bottom and the first matching rule decides
// the outcome; an attribute matching no rule is kept unchanged. Order is
// load-bearing: the coarse whole-value and whole-message rules precede the
// per-field text/image rules, so one coarse flag hides everything under its
// prefix without the fine flags set, while a fine flag alone redacts
// selectively. The list is initialized once and never mutated.
var maskingRules = []maskRule{
	{
		name: "hide-inputs-value",
		matches: func(config *TraceConfig, key string, _ attribute.Value) bool {
			return config.HideInputs && key == InputValue
		},
		outcome: maskRedact,
	},
	{
		name: "hide-inputs-mime-type",
		matches: func(config *TraceConfig, key string, _ attribute.Value) bool {
			return config.HideInputs && key == InputMimeType
		},
		outcome: maskOmit,
	},
	{
		name: "hide-outputs-value",
		matches: func(config *TraceConfig, key string, _ attribute.Value) bool {
			return config.HideOutputs && key == OutputValue
		},
		outcome: maskRedact,
	},
	{
		name: "hide-outputs-mime-type",
		matches: func(config *TraceConfig, key string, _ attribute.Value) bool {
			return config.HideOutputs && key == OutputMimeType
		},
		outcome: maskOmit,
	},
	{
		name: "hide-input-messages",
		matches: func(config *TraceConfig, key string, _ attribute.Value) bool {
			return (config.HideInputs || config.HideInputMessages) && strings.Contains(key, LLMInputMessages)
		},
		outcome: maskOmit,
	},
	{
		name: "hide-output-messages",
		matches: func(config *TraceConfig, key string, _ attribute.Value) bool {
			return (config.HideOutputs || config.HideOutputMessages) && strings.Contains(key, LLMOutputMessages)
		},
		outcome: maskOmit,
	},
	{
		// Whole-message content only: "message.content" is a prefix of
		// "message.contents", so the structured content-part array must be
		// excluded here and handled by the per-part rules below.
		name: "hide-input-text",
		matches: func(config *TraceConfig, key string, _ attribute.Value) bool {
			return config.HideInputText && strings.Contains(key, LLMInputMessages) &&
				strings.Contains(key, MessageContent) && !strings.Contains(key, MessageContents)
		},
		outcome: maskRedact,
	},
	{
		name: "hide-output-text",
		matches: func(config *TraceConfig, key string, _ attribute.Value) bool {
			return config.HideOutputText && strings.Contains(key, LLMOutputMessages) &&
				strings.Contains(key, MessageContent) && !strings.Contains(key, MessageContents)
		},
		outcome: maskRedact,
	},
	{
		name: "hide-input-text-part",
		matches: func(config *TraceConfig, key string, _ attribute.Value) bool {
			return config.HideInputText && strings.Contains(key, LLMInputMessages) &&
				strings.Contains(key, MessageContentText)
		},
		outcome: maskRedact,
	},
	{
		name: "hide-output-text-part",
		matches: func(config *TraceConfig, key string, _ attribute.Value) bool {
			return config.HideOutputText && strings.Contains(key, LLMOutputMessages) &&
				strings.Contains(key, MessageContentText)
		},
		outcome: maskRedact,
	},
	{
		name: "hide-input-images",
		matches: func(config *TraceConfig, key string, _ attribute.Value) bool {
			return config.HideInputImages && strings.Contains(key, LLMInputMessages) &&
				strings.Contains(key, MessageContentImage)
		},
		outcome: maskOmit,
	},
	{
		name: "redact-long-base64-image",
		matches: func(config *TraceConfig, key string, value attribute.Value) bool {
			if value.Type() != attribute.STRING {
				return false
			}
			url := value.AsString()
			return isBase64URL(url) && len(url) > config.Base64ImageMaxLength &&
				strings.Contains(key, LLMInputMessages) && strings.HasSuffix(key, ImageURL)
		},
		outcome: maskRedact,
	},
	{
		name: "hide-embedding-vectors",
		matches: func(config *TraceConfig, key string, _ attribute.Value) bool {
			return config.HideEmbeddingVectors && strings.Contains(key, EmbeddingVector)
		},
		outcome: maskOmit,
	},
	{
		name: "hide-embeddings-text",
		matches: func(config *TraceConfig, key string, _ attribute.Value) bool {
			return config.HideEmbeddingsText && strings.Contains(key, EmbeddingText)
		},
		outcome: maskOmit,
	},
	{
		name: "hide-invocation-parameters",
		matches: func(config *TraceConfig, key string, _ attribute.Value) bool {
			return config.HideLLMInvocationParameters && key == LLMInvocationParameters
		},
		outcome: maskOmit,
	},
	{
		name: "hide-prompts",
		matches: func(config *TraceConfig, key string, _ attribute.Value) bool {
			return config.HidePrompts && strings.Contains(key, LLMPrompts)
		},
		outcome: maskRedact,
	},
	{
		name: "hide-choices",
		matches: func(config *TraceConfig, key string, _ attribute.Value) bool {
			return config.HideChoices && strings.Contains(key, LLMChoices)
		},
		outcome: maskRedact,
	},
}

// MaskAttribute applies the masking rules to a single attribute under the
// given config. It returns the attribute to record and true, or the zero
// attribute and false when the attribute must not be recorded at all.
// Redaction replaces the value, whatever its type, with the string
// RedactedValue under the same key.
//
// Masking is a total, pure function of (config, key, value): it never fails,
// and re-masking an already masked attribute returns it unchanged.
func MaskAttribute(config *TraceConfig, kv attribute.KeyValue) (attribute.KeyValue, bool) {
	key := string(kv.Key)
	for i := range maskingRules {
		if !maskingRules[i].matches(config, key, kv.Value) {
			continue
		}
		if maskingRules[i].outcome == maskOmit {
			return attribute.KeyValue{}, false
		}
		return attribute.String(key, RedactedValue), true
	}
	return kv, true
}

// MaskAttributes applies MaskAttribute to every attribute in kvs and returns
// the attributes that survive. Omitted attributes are absent from the result
// entirely, not present with an empty value.
func MaskAttributes(config *TraceConfig, kvs []attribute.KeyValue) []attribute.KeyValue {
	if len(kvs) == 0 {
		return nil
	}
	masked := make([]attribute.KeyValue, 0, len(kvs))
	for _, kv := range kvs {
		if m, ok := MaskAttribute(config, kv); ok {
			masked = append(masked, m)
		}
	}
	return masked
}

// isBase64URL checks if a URL is a base64 data URL.
func isBase64URL(url string) bool {
	return strings.HasPrefix(url, "data:image/") && strings.Contains(url, "base64")
}
