// Copyright OpenInference Authors
// SPDX-License-Identifier: Apache-2.0
// The full text of the Apache license is available in the LICENSE file at
// the root of the repo.

package openinference

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// RecordSpanError records an error response from a model provider on the
// span: an exception event typed by HTTP status code, and an error span
// status. Token counts and masking are unaffected; the caller still owns
// ending the span.
func RecordSpanError(span trace.Span, statusCode int, body string) {
	// Determine error type based on status code.
	var errorType string
	switch statusCode {
	case 400:
		errorType = "BadRequestError"
	case 401:
		errorType = "AuthenticationError"
	case 403:
		errorType = "PermissionDeniedError"
	case 404:
		errorType = "NotFoundError"
	case 429:
		errorType = "RateLimitError"
	case 500, 502, 503:
		errorType = "InternalServerError"
	default:
		errorType = "Error"
	}

	errorMsg := fmt.Sprintf("Error code: %d", statusCode)
	if len(body) > 0 {
		errorMsg = fmt.Sprintf("Error code: %d - %s", statusCode, body)
	}

	span.AddEvent(ExceptionEventName, trace.WithAttributes(
		attribute.String(ExceptionType, errorType),
		attribute.String(ExceptionMessage, errorMsg),
	))

	span.SetStatus(codes.Error, errorMsg)
}
