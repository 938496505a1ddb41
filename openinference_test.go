// Copyright OpenInference Authors
// SPDX-License-Identifier: Apache-2.0
// The full text of the Apache license is available in the LICENSE file at
// the root of the repo.

package openinference

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAttributeKeyBuilders(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{
			name: "input message role",
			key:  InputMessageAttribute(0, MessageRole),
			want: "llm.input_messages.0.message.role",
		},
		{
			name: "input message content",
			key:  InputMessageAttribute(2, MessageContent),
			want: "llm.input_messages.2.message.content",
		},
		{
			name: "output message content",
			key:  OutputMessageAttribute(1, MessageContent),
			want: "llm.output_messages.1.message.content",
		},
		{
			name: "structured input text part",
			key:  InputMessageContentAttribute(0, 1, MessageContentText),
			want: "llm.input_messages.0.message.contents.1.message_content.text",
		},
		{
			name: "structured output text part",
			key:  OutputMessageContentAttribute(3, 0, MessageContentText),
			want: "llm.output_messages.3.message.contents.0.message_content.text",
		},
		{
			name: "tool call function name",
			key:  OutputMessageToolCallAttribute(0, 2, ToolCallFunctionName),
			want: "llm.output_messages.0.message.tool_calls.2.tool_call.function.name",
		},
		{
			name: "embedding text",
			key:  EmbeddingTextAttribute(4),
			want: "embedding.embeddings.4.embedding.text",
		},
		{
			name: "embedding vector",
			key:  EmbeddingVectorAttribute(0),
			want: "embedding.embeddings.0.embedding.vector",
		},
		{
			name: "prompt text",
			key:  PromptTextAttribute(1),
			want: "llm.prompts.1.prompt.text",
		},
		{
			name: "choice text",
			key:  ChoiceTextAttribute(0),
			want: "llm.choices.0.completion.text",
		},
		{
			name: "image url",
			key:  ImageURLAttribute(1, 2),
			want: "llm.input_messages.1.message.contents.2.message_content.image.image.url",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.key)
		})
	}
}
