package llm

import (
	"context"
	"errors"

	"bertmill/hyrox-app/internal/domain"
)

// ErrNotConfigured is returned by every call when no API key was present at
// process start. The upstream is never contacted in that state.
var ErrNotConfigured = errors.New("llm: API key not configured")

// Request is one completion request to the upstream provider. Sampling
// parameters are fixed by the caller's route, never by the end user.
type Request struct {
	System      string
	Messages    []domain.ChatMessage
	MaxTokens   int
	Temperature float64
}

// Client defines the interface for upstream chat-completion calls.
// This enables testing with mocks.
type Client interface {
	// Complete waits for the full completion and returns its text.
	Complete(ctx context.Context, req Request) (string, error)

	// Stream requests an incremental completion and invokes fn once per
	// content delta, strictly in the order the upstream produced them.
	// A non-nil error from fn stops the stream.
	Stream(ctx context.Context, req Request, fn func(token string) error) error
}
