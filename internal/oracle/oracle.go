// Package oracle abstracts the language model used for command
// interpretation. Callers depend on the Oracle interface; the gemini
// subpackage provides the production implementation.
package oracle

import (
	"context"
	"strings"
)

// Oracle produces a completion for a prompt. Implementations return the raw
// model output; callers own parsing.
type Oracle interface {
	// Complete sends the prompt and returns the model's text response.
	Complete(ctx context.Context, prompt string) (string, error)

	// Healthy reports whether the backend is reachable and configured.
	Healthy(ctx context.Context) error
}

// FailureCategory describes why a model call failed, so the caller can pick
// a user-facing message without inspecting raw errors.
type FailureCategory string

const (
	FailureConnectivity FailureCategory = "connectivity"
	FailureQuota        FailureCategory = "quota"
	FailureTimeout      FailureCategory = "timeout"
	FailureUnknown      FailureCategory = "unknown"
)

// Categorize maps a model call error onto a failure category by inspecting
// the error text. Precedence: connectivity, then quota, then timeout.
func Categorize(err error) FailureCategory {
	if err == nil {
		return FailureUnknown
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key") || strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") || strings.Contains(msg, "network") ||
		strings.Contains(msg, "unauthorized") || strings.Contains(msg, "401") || strings.Contains(msg, "403"):
		return FailureConnectivity
	case strings.Contains(msg, "quota") || strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "resource exhausted") || strings.Contains(msg, "429"):
		return FailureQuota
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out") ||
		strings.Contains(msg, "deadline exceeded"):
		return FailureTimeout
	default:
		return FailureUnknown
	}
}

// UserMessage returns the message shown to end users for a failure category.
func UserMessage(cat FailureCategory) string {
	switch cat {
	case FailureConnectivity:
		return "I'm having trouble reaching the AI service. Please check the configuration and try again."
	case FailureQuota:
		return "The AI service is over its usage limit right now. Please try again in a little while."
	case FailureTimeout:
		return "The AI service took too long to respond. Please try again."
	default:
		return "Something went wrong while processing your request. Please try again."
	}
}
