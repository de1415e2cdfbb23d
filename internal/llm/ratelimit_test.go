package llm

import (
	"context"
	"testing"
	"time"
)

func TestRPSLimiter_DisabledWhenRateZero(t *testing.T) {
	l := newRPSLimiter(0, 5)
	if l != nil {
		t.Fatal("rps 0 should disable the limiter")
	}
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("nil limiter Acquire: %v", err)
	}
	l.Stop()
}

func TestRPSLimiter_BurstAvailableImmediately(t *testing.T) {
	l := newRPSLimiter(0.001, 3)
	defer l.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	for i := 0; i < 3; i++ {
		if err := l.Acquire(ctx); err != nil {
			t.Fatalf("burst token %d: %v", i, err)
		}
	}
}

func TestRPSLimiter_AcquireAfterStop(t *testing.T) {
	l := newRPSLimiter(0.001, 1)
	_ = l.Acquire(context.Background())
	l.Stop()
	if err := l.Acquire(context.Background()); err == nil {
		t.Fatal("Acquire after Stop should fail")
	}
}
