// Copyright OpenInference Authors
// SPDX-License-Identifier: Apache-2.0
// The full text of the Apache license is available in the LICENSE file at
// the root of the repo.

package openinference

import (
	"os"
	"strconv"
)

// Environment variable names for trace configuration.
// These environment variables control the privacy and observability settings
// for OpenInference tracing.
// See: https://github.com/Arize-ai/openinference/blob/main/spec/configuration.md
const (
	// EnvHideInputs is the environment variable for TraceConfig.HideInputs.
	EnvHideInputs = "OPENINFERENCE_HIDE_INPUTS"
	// EnvHideOutputs is the environment variable for TraceConfig.HideOutputs.
	EnvHideOutputs = "OPENINFERENCE_HIDE_OUTPUTS"
	// EnvHideInputMessages is the environment variable for TraceConfig.HideInputMessages.
	EnvHideInputMessages = "OPENINFERENCE_HIDE_INPUT_MESSAGES"
	// EnvHideOutputMessages is the environment variable for TraceConfig.HideOutputMessages.
	EnvHideOutputMessages = "OPENINFERENCE_HIDE_OUTPUT_MESSAGES"
	// EnvHideInputImages is the environment variable for TraceConfig.HideInputImages.
	EnvHideInputImages = "OPENINFERENCE_HIDE_INPUT_IMAGES"
	// EnvHideInputText is the environment variable for TraceConfig.HideInputText.
	EnvHideInputText = "OPENINFERENCE_HIDE_INPUT_TEXT"
	// EnvHideOutputText is the environment variable for TraceConfig.HideOutputText.
	EnvHideOutputText = "OPENINFERENCE_HIDE_OUTPUT_TEXT"
	// EnvHideEmbeddingVectors is the environment variable for TraceConfig.HideEmbeddingVectors.
	EnvHideEmbeddingVectors = "OPENINFERENCE_HIDE_EMBEDDING_VECTORS"
	// EnvBase64ImageMaxLength is the environment variable for TraceConfig.Base64ImageMaxLength.
	EnvBase64ImageMaxLength = "OPENINFERENCE_BASE64_IMAGE_MAX_LENGTH"
	// EnvHideLLMInvocationParameters is the environment variable for TraceConfig.HideLLMInvocationParameters.
	EnvHideLLMInvocationParameters = "OPENINFERENCE_HIDE_LLM_INVOCATION_PARAMETERS"
	// EnvHideEmbeddingsText is the environment variable for TraceConfig.HideEmbeddingsText.
	EnvHideEmbeddingsText = "OPENINFERENCE_HIDE_EMBEDDINGS_TEXT"
	// EnvHidePrompts is the environment variable for TraceConfig.HidePrompts.
	// Hides LLM prompts (completions API).
	EnvHidePrompts = "OPENINFERENCE_HIDE_PROMPTS"
	// EnvHideChoices is the environment variable for TraceConfig.HideChoices.
	// Hides LLM choices (completions API outputs).
	EnvHideChoices = "OPENINFERENCE_HIDE_CHOICES"
)

// Default values for trace configuration.
const (
	defaultHideInputs                  = false
	defaultHideOutputs                 = false
	defaultHideInputMessages           = false
	defaultHideOutputMessages          = false
	defaultHideInputImages             = false
	defaultHideInputText               = false
	defaultHideOutputText              = false
	defaultHideEmbeddingVectors        = false
	defaultBase64ImageMaxLength        = 32000
	defaultHideLLMInvocationParameters = false
	defaultHideEmbeddingsText          = false
	defaultHidePrompts                 = false
	defaultHideChoices                 = false
)

// RedactedValue is the value used when content is hidden for privacy.
const RedactedValue = "__REDACTED__"

// TraceConfig helps you modify the observability level of your tracing.
// For instance, you may want to keep sensitive information from being logged
// for security reasons, or you may want to limit the size of the base64
// encoded images to reduce payloads.
//
// Use NewTraceConfig to construct one. A TraceConfig is read-only after
// construction and is safe for concurrent use by every tracer and span that
// shares it.
//
// This implementation follows the OpenInference configuration specification:
// https://github.com/Arize-ai/openinference/blob/main/spec/configuration.md
type TraceConfig struct {
	// HideInputs controls whether input values and messages are hidden.
	// When true, input.value is redacted and all input messages are omitted.
	HideInputs bool
	// HideOutputs controls whether output values and messages are hidden.
	// When true, output.value is redacted and all output messages are omitted.
	HideOutputs bool
	// HideInputMessages controls whether all input messages are hidden.
	// Input messages are hidden if either HideInputs OR HideInputMessages is true.
	HideInputMessages bool
	// HideOutputMessages controls whether all output messages are hidden.
	// Output messages are hidden if either HideOutputs OR HideOutputMessages is true.
	HideOutputMessages bool
	// HideInputImages controls whether images from input messages are hidden.
	// Only applies when input messages are not already hidden.
	HideInputImages bool
	// HideInputText controls whether text from input messages is hidden.
	// Only applies when input messages are not already hidden.
	HideInputText bool
	// HideOutputText controls whether text from output messages is hidden.
	// Only applies when output messages are not already hidden.
	HideOutputText bool
	// HideEmbeddingVectors controls whether embedding vectors are hidden.
	// When true, embedding.embeddings.N.embedding.vector attributes are omitted.
	HideEmbeddingVectors bool
	// Base64ImageMaxLength limits the characters of a base64 encoding of an image.
	// Image urls longer than this are redacted.
	Base64ImageMaxLength int
	// HideLLMInvocationParameters controls whether LLM invocation parameters
	// are hidden. This is independent of HideInputs.
	HideLLMInvocationParameters bool
	// HideEmbeddingsText controls whether embedding input text is hidden.
	// When true, embedding.embeddings.N.embedding.text attributes are omitted.
	HideEmbeddingsText bool
	// HidePrompts controls whether LLM prompts are hidden.
	// Only applies to completions API (not chat completions).
	// When true, llm.prompts.N.prompt.text attributes contain "__REDACTED__".
	HidePrompts bool
	// HideChoices controls whether LLM choices are hidden.
	// Only applies to completions API outputs (not chat completions).
	// When true, llm.choices.N.completion.text attributes contain "__REDACTED__".
	HideChoices bool
}

// TraceConfigOption overrides a single TraceConfig field, taking precedence
// over the corresponding environment variable.
type TraceConfigOption func(*TraceConfig)

// WithHideInputs overrides TraceConfig.HideInputs.
func WithHideInputs(hide bool) TraceConfigOption {
	return func(c *TraceConfig) { c.HideInputs = hide }
}

// WithHideOutputs overrides TraceConfig.HideOutputs.
func WithHideOutputs(hide bool) TraceConfigOption {
	return func(c *TraceConfig) { c.HideOutputs = hide }
}

// WithHideInputMessages overrides TraceConfig.HideInputMessages.
func WithHideInputMessages(hide bool) TraceConfigOption {
	return func(c *TraceConfig) { c.HideInputMessages = hide }
}

// WithHideOutputMessages overrides TraceConfig.HideOutputMessages.
func WithHideOutputMessages(hide bool) TraceConfigOption {
	return func(c *TraceConfig) { c.HideOutputMessages = hide }
}

// WithHideInputImages overrides TraceConfig.HideInputImages.
func WithHideInputImages(hide bool) TraceConfigOption {
	return func(c *TraceConfig) { c.HideInputImages = hide }
}

// WithHideInputText overrides TraceConfig.HideInputText.
func WithHideInputText(hide bool) TraceConfigOption {
	return func(c *TraceConfig) { c.HideInputText = hide }
}

// WithHideOutputText overrides TraceConfig.HideOutputText.
func WithHideOutputText(hide bool) TraceConfigOption {
	return func(c *TraceConfig) { c.HideOutputText = hide }
}

// WithHideEmbeddingVectors overrides TraceConfig.HideEmbeddingVectors.
func WithHideEmbeddingVectors(hide bool) TraceConfigOption {
	return func(c *TraceConfig) { c.HideEmbeddingVectors = hide }
}

// WithBase64ImageMaxLength overrides TraceConfig.Base64ImageMaxLength.
func WithBase64ImageMaxLength(maxLength int) TraceConfigOption {
	return func(c *TraceConfig) { c.Base64ImageMaxLength = maxLength }
}

// WithHideLLMInvocationParameters overrides TraceConfig.HideLLMInvocationParameters.
func WithHideLLMInvocationParameters(hide bool) TraceConfigOption {
	return func(c *TraceConfig) { c.HideLLMInvocationParameters = hide }
}

// WithHideEmbeddingsText overrides TraceConfig.HideEmbeddingsText.
func WithHideEmbeddingsText(hide bool) TraceConfigOption {
	return func(c *TraceConfig) { c.HideEmbeddingsText = hide }
}

// WithHidePrompts overrides TraceConfig.HidePrompts.
func WithHidePrompts(hide bool) TraceConfigOption {
	return func(c *TraceConfig) { c.HidePrompts = hide }
}

// WithHideChoices overrides TraceConfig.HideChoices.
func WithHideChoices(hide bool) TraceConfigOption {
	return func(c *TraceConfig) { c.HideChoices = hide }
}

// NewTraceConfig creates a new TraceConfig. Each field resolves in order:
// explicit option, environment variable, hard-coded default. Malformed
// environment values fall back to the default; construction never fails.
//
// See: https://github.com/Arize-ai/openinference/blob/main/spec/configuration.md
func NewTraceConfig(opts ...TraceConfigOption) *TraceConfig {
	config := &TraceConfig{
		HideInputs:                  getBoolEnv(EnvHideInputs, defaultHideInputs),
		HideOutputs:                 getBoolEnv(EnvHideOutputs, defaultHideOutputs),
		HideInputMessages:           getBoolEnv(EnvHideInputMessages, defaultHideInputMessages),
		HideOutputMessages:          getBoolEnv(EnvHideOutputMessages, defaultHideOutputMessages),
		HideInputImages:             getBoolEnv(EnvHideInputImages, defaultHideInputImages),
		HideInputText:               getBoolEnv(EnvHideInputText, defaultHideInputText),
		HideOutputText:              getBoolEnv(EnvHideOutputText, defaultHideOutputText),
		HideEmbeddingVectors:        getBoolEnv(EnvHideEmbeddingVectors, defaultHideEmbeddingVectors),
		Base64ImageMaxLength:        getIntEnv(EnvBase64ImageMaxLength, defaultBase64ImageMaxLength),
		HideLLMInvocationParameters: getBoolEnv(EnvHideLLMInvocationParameters, defaultHideLLMInvocationParameters),
		HideEmbeddingsText:          getBoolEnv(EnvHideEmbeddingsText, defaultHideEmbeddingsText),
		HidePrompts:                 getBoolEnv(EnvHidePrompts, defaultHidePrompts),
		HideChoices:                 getBoolEnv(EnvHideChoices, defaultHideChoices),
	}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// getEnv reads a value from an environment variable and parses it using the provided parser.
// Returns defaultValue if the variable is not set or cannot be parsed.
func getEnv[T any](key string, defaultValue T, parse func(string) (T, error)) T {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := parse(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getBoolEnv reads a boolean value from an environment variable.
// Returns defaultValue if the variable is not set or cannot be parsed.
func getBoolEnv(key string, defaultValue bool) bool {
	return getEnv(key, defaultValue, strconv.ParseBool)
}

// getIntEnv reads an integer value from an environment variable.
// Returns defaultValue if the variable is not set or cannot be parsed.
func getIntEnv(key string, defaultValue int) int {
	return getEnv(key, defaultValue, strconv.Atoi)
}
