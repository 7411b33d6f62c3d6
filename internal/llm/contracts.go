package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/joseph-ayodele/text-structurer/internal/common"
)

// ErrMissingCredentials is returned before any network I/O when the client
// has no account or token configured. It wraps common.ErrUnavailable.
var ErrMissingCredentials = fmt.Errorf("llm: missing service credentials: %w", common.ErrUnavailable)

// ErrEmptyCompletion means the service answered but produced no text.
var ErrEmptyCompletion = errors.New("llm: empty completion")

// Roles used in chat messages.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the provider-neutral shape of one generation call.
// A nil Temperature leaves the provider default in place; zero is a real
// request for greedy decoding.
type CompletionRequest struct {
	Model       string    `json:"model,omitempty"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature *float32  `json:"temperature,omitempty"`
}

// Client is the interface the pipeline depends on.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, req CompletionRequest) (string, error)

func (f ClientFunc) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	return f(ctx, req)
}
