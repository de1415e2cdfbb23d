package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	genai "google.golang.org/genai"
)

func TestTurnRole(t *testing.T) {
	if got := turnRole("user"); got != genai.RoleUser {
		t.Fatalf("turnRole(user) = %v", got)
	}
	if got := turnRole("assistant"); got != genai.RoleModel {
		t.Fatalf("turnRole(assistant) = %v", got)
	}
	if got := turnRole(""); got != genai.RoleModel {
		t.Fatalf("turnRole(empty) = %v", got)
	}
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	if _, err := NewGeminiClient(context.Background(), "  ", "", GeminiOptions{}); err == nil {
		t.Fatal("blank API key accepted")
	}
}

func TestCompleteWithRetry_SuccessStopsRetrying(t *testing.T) {
	calls := 0
	text, err := completeWithRetry(context.Background(), 3, time.Millisecond, func() (string, error) {
		calls++
		return "ok", nil
	})
	if err != nil || text != "ok" {
		t.Fatalf("text=%q err=%v", text, err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestCompleteWithRetry_ReturnsLastError(t *testing.T) {
	wantErr := errors.New("provider down")
	calls := 0
	_, err := completeWithRetry(context.Background(), 3, time.Millisecond, func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("earlier failure")
		}
		return "", wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

// The final attempt must surface its error immediately instead of waiting
// out one more backoff period.
func TestCompleteWithRetry_NoBackoffAfterFinalAttempt(t *testing.T) {
	start := time.Now()
	_, err := completeWithRetry(context.Background(), 1, 5*time.Second, func() (string, error) {
		return "", errors.New("always fails")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("single attempt took %v, backoff should not run", elapsed)
	}
}

func TestCompleteWithRetry_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := completeWithRetry(ctx, 3, time.Hour, func() (string, error) {
		return "", errors.New("fail")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
