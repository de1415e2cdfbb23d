package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	genai "google.golang.org/genai"
)

// turnRole maps a stored history role onto the wire role. Anything that is
// not the user is replayed as the model side of the conversation.
func turnRole(role string) genai.Role {
	if role == "user" {
		return genai.RoleUser
	}
	return genai.RoleModel
}

// GeminiClient is a thin wrapper around the official genai client.
type GeminiClient struct {
	cli   *genai.Client
	model string
	rl    *rpsLimiter
}

// GeminiOptions tune the client beyond the required credentials.
type GeminiOptions struct {
	// RPS throttles outgoing requests; <= 0 disables the limiter.
	RPS   float64
	Burst int
}

// NewGeminiClient constructs a completion client. The API key is required:
// the pipeline must not be built without working credentials.
func NewGeminiClient(ctx context.Context, apiKey, model string, opts GeminiOptions) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("llm: gemini api key is required")
	}
	if strings.TrimSpace(model) == "" {
		model = "gemini-2.0-flash"
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: create gemini client: %w", err)
	}
	return &GeminiClient{
		cli:   cli,
		model: model,
		rl:    newRPSLimiter(opts.RPS, opts.Burst),
	}, nil
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.model }

func (g *GeminiClient) Close() error {
	if g.rl != nil {
		g.rl.Stop()
	}
	return nil
}

// Complete issues exactly one chat completion. Prior turns are replayed as
// history; the user message is the final content. Transient provider errors
// are retried with backoff, but a request that never succeeds surfaces the
// last error to the caller.
func (g *GeminiClient) Complete(ctx context.Context, systemPrompt string, history []Turn, userMessage string) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		contents = append(contents, genai.NewContentFromText(turn.Content, turnRole(turn.Role)))
	}
	contents = append(contents, genai.NewContentFromText(userMessage, genai.RoleUser))

	cfg := &genai.GenerateContentConfig{}
	if strings.TrimSpace(systemPrompt) != "" {
		cfg.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	return completeWithRetry(ctx, completeAttempts, completeRetryBase, func() (string, error) {
		// Each API call consumes a limiter token.
		if err := g.rl.Acquire(ctx); err != nil {
			return "", err
		}
		resp, err := g.cli.Models.GenerateContent(ctx, g.model, contents, cfg)
		if err != nil {
			return "", err
		}
		if text := resp.Text(); strings.TrimSpace(text) != "" {
			return text, nil
		}
		return "", ErrEmptyCompletion
	})
}

const (
	completeAttempts  = 3
	completeRetryBase = 300 * time.Millisecond
)

// completeWithRetry runs fn up to attempts times with doubling backoff
// between attempts. No backoff is taken after the final attempt; the last
// error is returned as-is.
func completeWithRetry(ctx context.Context, attempts int, base time.Duration, fn func() (string, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		text, err := fn()
		if err == nil {
			return text, nil
		}
		lastErr = err
		if attempt == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(base << attempt):
		}
	}
	return "", lastErr
}
