// Copyright OpenInference Authors
// SPDX-License-Identifier: Apache-2.0
// The full text of the Apache license is available in the LICENSE file at
// the root of the repo.

// Package openinference instruments OpenTelemetry tracing with the
// OpenInference semantic conventions for LLM and agent applications.
//
// The package provides the reusable core shared by all OpenInference
// instrumentation: a TraceConfig of privacy flags resolved from explicit
// options and environment variables, an attribute masking engine driven by an
// ordered rule list, and Span/Tracer wrappers that funnel every attribute
// write through the masking engine before delegating to the native
// OpenTelemetry types. Framework-specific adapters are intentionally out of
// scope; they build on the key registry and wrappers defined here.
package openinference

import "fmt"

// OpenInference Span Kind constants.
//
// These constants define the type of operation represented by a span.
// Reference: https://github.com/Arize-ai/openinference/blob/main/spec/semantic_conventions.md
const (
	// SpanKind identifies the type of operation (required for all OpenInference spans).
	SpanKind = "openinference.span.kind"

	// SpanKindLLM indicates a Large Language Model operation.
	SpanKindLLM = "LLM"

	// SpanKindChain indicates a sequence of linked operations.
	SpanKindChain = "CHAIN"

	// SpanKindTool indicates a tool or function invocation.
	SpanKindTool = "TOOL"

	// SpanKindAgent indicates an agent reasoning loop.
	SpanKindAgent = "AGENT"

	// SpanKindRetriever indicates a document retrieval operation.
	SpanKindRetriever = "RETRIEVER"

	// SpanKindEmbedding indicates an Embedding operation.
	SpanKindEmbedding = "EMBEDDING"

	// SpanKindReranker indicates a document reranking operation.
	SpanKindReranker = "RERANKER"

	// SpanKindGuardrail indicates a guardrail or safety check.
	SpanKindGuardrail = "GUARDRAIL"

	// SpanKindEvaluator indicates an evaluation of model output.
	SpanKindEvaluator = "EVALUATOR"
)

// LLM Operation constants.
//
// These constants define attributes for Large Language Model operations
// following OpenInference semantic conventions.
// Reference: https://github.com/Arize-ai/openinference/blob/main/spec/semantic_conventions.md#llm-spans
const (
	// LLMSystem identifies the AI system/product (e.g., "openai").
	LLMSystem = "llm.system"

	// LLMModelName specifies the model name (e.g., "gpt-4", "gpt-3.5-turbo").
	LLMModelName = "llm.model_name"

	// LLMInvocationParameters contains the invocation parameters as JSON string.
	LLMInvocationParameters = "llm.invocation_parameters"
)

// LLMSystem Values.
const (
	// LLMSystemOpenAI for OpenAI systems.
	LLMSystemOpenAI = "openai"

	// LLMSystemAnthropic for Anthropic systems.
	LLMSystemAnthropic = "anthropic"
)

// Input/Output constants.
//
// These constants define attributes for capturing input and output data.
// Reference: https://github.com/Arize-ai/openinference/blob/main/spec/semantic_conventions.md#inputoutput
const (
	// InputValue contains the input data as a string (typically JSON).
	InputValue = "input.value"

	// InputMimeType specifies the MIME type of the input data.
	InputMimeType = "input.mime_type"

	// OutputValue contains the output data as a string (typically JSON).
	OutputValue = "output.value"

	// OutputMimeType specifies the MIME type of the output data.
	OutputMimeType = "output.mime_type"

	// MimeTypeJSON for JSON content.
	MimeTypeJSON = "application/json"

	// MimeTypeText for plain text content.
	MimeTypeText = "text/plain"
)

// Completions API constants (Legacy Text Completion).
//
// These constants define attributes for the legacy completions API, distinct from chat completions.
// Reference: https://github.com/Arize-ai/openinference/blob/main/spec/semantic_conventions.md#completions-api-legacy-text-completion
const (
	// LLMPrompts prefix for prompt attributes in completions API.
	// Usage: llm.prompts.{index}.prompt.text
	LLMPrompts = "llm.prompts"

	// LLMChoices prefix for completion choice attributes in completions API.
	// Usage: llm.choices.{index}.completion.text
	LLMChoices = "llm.choices"
)

// LLM Message constants.
//
// These constants define attributes for LLM input and output messages using
// flattened attribute format. Messages are indexed starting from 0.
// Reference: https://github.com/Arize-ai/openinference/blob/main/spec/semantic_conventions.md#llm-spans
const (
	// LLMInputMessages prefix for input message attributes.
	// Usage: llm.input_messages.{index}.message.role, llm.input_messages.{index}.message.content.
	LLMInputMessages = "llm.input_messages"

	// LLMOutputMessages prefix for output message attributes.
	// Usage: llm.output_messages.{index}.message.role, llm.output_messages.{index}.message.content.
	LLMOutputMessages = "llm.output_messages"

	// MessageRole suffix for message role (e.g., "user", "assistant", "system").
	MessageRole = "message.role"

	// MessageContent suffix for whole-message text content.
	MessageContent = "message.content"

	// MessageContents suffix for the structured content-part array.
	// Each part is flattened as message.contents.{index}.message_content.{field}.
	MessageContents = "message.contents"

	// MessageContentText suffix for a text content part.
	MessageContentText = "message_content.text"

	// MessageContentImage suffix for an image content part.
	MessageContentImage = "message_content.image"

	// ImageURL suffix for the url of an image content part.
	// Full key shape: ...message_content.image.image.url.
	ImageURL = "image.url"
)

// Token Count constants.
//
// These constants define attributes for token usage tracking.
// Reference: https://github.com/Arize-ai/openinference/blob/main/spec/semantic_conventions.md#llm-spans
const (
	// LLMTokenCountPrompt contains the number of tokens in the prompt.
	LLMTokenCountPrompt = "llm.token_count.prompt" // #nosec G101

	// LLMTokenCountCompletion contains the number of tokens in the completion.
	LLMTokenCountCompletion = "llm.token_count.completion" // #nosec G101

	// LLMTokenCountTotal contains the total number of tokens.
	LLMTokenCountTotal = "llm.token_count.total" // #nosec G101
)

// Extended Token Count constants.
//
// These constants define additional token count attributes for detailed usage
// tracking, such as cache efficiency and multimodal token consumption.
// Reference: OpenInference specification and Python OpenAI instrumentation.
const (
	// LLMTokenCountPromptCacheHit represents the number of prompt tokens
	// successfully retrieved from cache (cache hits).
	LLMTokenCountPromptCacheHit = "llm.token_count.prompt_details.cache_read" // #nosec G101

	// LLMTokenCountPromptAudio represents the number of audio tokens in the prompt.
	LLMTokenCountPromptAudio = "llm.token_count.prompt_details.audio" // #nosec G101

	// LLMTokenCountCompletionReasoning represents the number of tokens used for
	// reasoning or chain-of-thought processes in the completion.
	LLMTokenCountCompletionReasoning = "llm.token_count.completion_details.reasoning" // #nosec G101

	// LLMTokenCountCompletionAudio represents the number of audio tokens in the
	// completion.
	LLMTokenCountCompletionAudio = "llm.token_count.completion_details.audio" // #nosec G101
)

// Tool Call constants.
//
// These constants define attributes for function/tool calling in LLM operations.
// Reference: Python OpenAI instrumentation (not in core spec).
const (
	// LLMTools contains the list of available tools as JSON.
	// Format: llm.tools.{index}.tool.json_schema.
	LLMTools = "llm.tools"

	// MessageToolCalls prefix for tool calls in messages.
	// Format: message.tool_calls.{index}.tool_call.{attribute}.
	MessageToolCalls = "message.tool_calls"

	// ToolCallID suffix for tool call ID.
	ToolCallID = "tool_call.id"

	// ToolCallFunctionName suffix for function name in a tool call.
	ToolCallFunctionName = "tool_call.function.name"

	// ToolCallFunctionArguments suffix for function arguments as JSON string.
	ToolCallFunctionArguments = "tool_call.function.arguments"
)

// Embedding Operation constants.
//
// These constants define attributes for Embedding operations.
// Reference: https://github.com/Arize-ai/openinference/blob/main/spec/embedding_spans.md
const (
	// EmbeddingModelName specifies the name of the embedding model.
	// Example: "text-embedding-3-small"
	EmbeddingModelName = "embedding.model_name"

	// EmbeddingInvocationParameters contains the invocation parameters as JSON string.
	// This includes parameters sent to the model excluding input.
	EmbeddingInvocationParameters = "embedding.invocation_parameters"

	// EmbeddingEmbeddings is the prefix for embedding data attributes in batch operations.
	// Forms the base for nested attributes like embedding.embeddings.{index}.embedding.text
	// and embedding.embeddings.{index}.embedding.vector.
	EmbeddingEmbeddings = "embedding.embeddings"

	// EmbeddingText suffix for embedding input text.
	EmbeddingText = "embedding.text"

	// EmbeddingVector suffix for an embedding output vector.
	EmbeddingVector = "embedding.vector"
)

// Context attribute constants.
//
// These constants define attributes sourced from the active context rather
// than from a single request or response. They associate spans with the
// surrounding session, user, and prompt template.
// Reference: https://github.com/Arize-ai/openinference/blob/main/spec/semantic_conventions.md
const (
	// SessionID is the id of the session the span belongs to.
	SessionID = "session.id"

	// UserID is the id of the user driving the session.
	UserID = "user.id"

	// Metadata contains arbitrary request metadata as a JSON string.
	Metadata = "metadata"

	// TagTags contains user-defined tags as a JSON array string.
	TagTags = "tag.tags"

	// LLMPromptTemplate is the template string used to construct the prompt.
	LLMPromptTemplate = "llm.prompt_template.template"

	// LLMPromptTemplateVersion is the version of the prompt template.
	LLMPromptTemplateVersion = "llm.prompt_template.version"

	// LLMPromptTemplateVariables contains the template variables as a JSON string.
	LLMPromptTemplateVariables = "llm.prompt_template.variables"
)

// Exception event constants.
//
// These constants follow the OpenTelemetry exception semantic conventions;
// the event name MUST be "exception".
const (
	// ExceptionEventName is the name of the exception event.
	ExceptionEventName = "exception"

	// ExceptionType is the error type, e.g. "RateLimitError".
	ExceptionType = "exception.type"

	// ExceptionMessage is the error message.
	ExceptionMessage = "exception.message"
)

// InputMessageAttribute creates an attribute key for input messages.
func InputMessageAttribute(index int, suffix string) string {
	return fmt.Sprintf("%s.%d.%s", LLMInputMessages, index, suffix)
}

// OutputMessageAttribute creates an attribute key for output messages.
func OutputMessageAttribute(index int, suffix string) string {
	return fmt.Sprintf("%s.%d.%s", LLMOutputMessages, index, suffix)
}

// InputMessageContentAttribute creates an attribute key for input message content.
func InputMessageContentAttribute(messageIndex, contentIndex int, suffix string) string {
	return fmt.Sprintf("%s.%d.%s.%d.%s", LLMInputMessages, messageIndex, MessageContents, contentIndex, suffix)
}

// OutputMessageContentAttribute creates an attribute key for output message content.
func OutputMessageContentAttribute(messageIndex, contentIndex int, suffix string) string {
	return fmt.Sprintf("%s.%d.%s.%d.%s", LLMOutputMessages, messageIndex, MessageContents, contentIndex, suffix)
}

// OutputMessageToolCallAttribute creates an attribute key for a tool call.
func OutputMessageToolCallAttribute(messageIndex, toolCallIndex int, suffix string) string {
	return fmt.Sprintf("%s.%d.%s.%d.%s", LLMOutputMessages, messageIndex, MessageToolCalls, toolCallIndex, suffix)
}

// EmbeddingTextAttribute creates an attribute key for embedding input text.
// Format: embedding.embeddings.{index}.embedding.text
//
// Text attributes are populated ONLY when the input is already text (strings).
// Token IDs (pre-tokenized integer arrays) are NOT decoded to text: the same
// token IDs represent different text across tokenizers, and the serving model
// behind an OpenAI-compatible endpoint is unknown at runtime.
func EmbeddingTextAttribute(index int) string {
	return fmt.Sprintf("%s.%d.%s", EmbeddingEmbeddings, index, EmbeddingText)
}

// EmbeddingVectorAttribute creates an attribute key for embedding output vector.
// Format: embedding.embeddings.{index}.embedding.vector
//
// Vector attributes MUST contain float arrays, regardless of the API response
// format; base64-encoded responses are decoded before recording.
func EmbeddingVectorAttribute(index int) string {
	return fmt.Sprintf("%s.%d.%s", EmbeddingEmbeddings, index, EmbeddingVector)
}

// PromptTextAttribute creates an attribute key for prompt text in completions API.
// Format: llm.prompts.{index}.prompt.text
//
// The nested structure (.prompt.text) uses a discriminated union pattern that
// mirrors llm.input_messages and llm.output_messages, allowing for future
// expansion.
func PromptTextAttribute(index int) string {
	return fmt.Sprintf("%s.%d.prompt.text", LLMPrompts, index)
}

// ChoiceTextAttribute creates an attribute key for completion choice text.
// Format: llm.choices.{index}.completion.text
func ChoiceTextAttribute(index int) string {
	return fmt.Sprintf("%s.%d.completion.text", LLMChoices, index)
}

// ImageURLAttribute creates an attribute key for the url of an image content
// part in an input message.
// Format: llm.input_messages.{i}.message.contents.{j}.message_content.image.image.url
func ImageURLAttribute(messageIndex, contentIndex int) string {
	return InputMessageContentAttribute(messageIndex, contentIndex, MessageContentImage+"."+ImageURL)
}
