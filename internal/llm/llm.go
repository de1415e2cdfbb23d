package llm

import (
	"context"
	"errors"
)

// Turn is one prior conversation entry sent along with a completion request.
type Turn struct {
	Role    string
	Content string
}

// ErrEmptyCompletion is returned when the provider answers without any text.
var ErrEmptyCompletion = errors.New("llm: empty completion from model")

// Client is the single external completion collaborator: one prompt plus
// history in, free text out. Implementations may fail; callers treat any
// error as fatal for the whole request.
type Client interface {
	Name() string
	Complete(ctx context.Context, systemPrompt string, history []Turn, userMessage string) (string, error)
	Close() error
}
