package llm

import (
	"context"
	"sync"
)

// FakeClient returns canned replies for offline use and tests. When the
// script is exhausted it repeats the last entry.
type FakeClient struct {
	mu      sync.Mutex
	replies []string
	calls   int

	// Err, when set, is returned from every Complete call.
	Err error

	// LastSystemPrompt and LastHistory capture the most recent request for
	// assertions.
	LastSystemPrompt string
	LastHistory      []Turn
	LastUserMessage  string
}

func NewFakeClient(replies ...string) *FakeClient {
	if len(replies) == 0 {
		replies = []string{"fake reply"}
	}
	return &FakeClient{replies: replies}
}

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

// Calls reports how many completions were requested.
func (f *FakeClient) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *FakeClient) Complete(_ context.Context, systemPrompt string, history []Turn, userMessage string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.LastSystemPrompt = systemPrompt
	f.LastHistory = append([]Turn(nil), history...)
	f.LastUserMessage = userMessage
	if f.Err != nil {
		return "", f.Err
	}
	i := f.calls - 1
	if i >= len(f.replies) {
		i = len(f.replies) - 1
	}
	return f.replies[i], nil
}
