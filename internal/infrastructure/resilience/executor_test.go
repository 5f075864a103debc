package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
)

func TestExecuteRetriesTemporaryFailure(t *testing.T) {
	exec := NewExecutor(Config{
		RetryMaxAttempts:    3,
		RetryInitialBackoff: 1 * time.Millisecond,
		RetryMaxBackoff:     2 * time.Millisecond,
		RetryMultiplier:     2,
		BreakerEnabled:      false,
	})

	attempts := 0
	errTemp := errors.New("temporary")
	err := exec.Execute(context.Background(), "ollama_embed", func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errTemp
		}
		return nil
	}, func(err error) ErrorClassification {
		return ErrorClassification{
			Retryable:     errors.Is(err, errTemp),
			RecordFailure: true,
		}
	})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestExecuteDoesNotRetryPermanentFailure(t *testing.T) {
	exec := NewExecutor(Config{
		RetryMaxAttempts:    3,
		RetryInitialBackoff: 1 * time.Millisecond,
		RetryMaxBackoff:     2 * time.Millisecond,
		RetryMultiplier:     2,
		BreakerEnabled:      false,
	})

	attempts := 0
	errPermanent := errors.New("permanent")
	err := exec.Execute(context.Background(), "rerank", func(context.Context) error {
		attempts++
		return errPermanent
	}, func(error) ErrorClassification {
		return ErrorClassification{
			Retryable:     false,
			RecordFailure: false,
		}
	})
	if !errors.Is(err, errPermanent) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestExecuteOpensCircuitAfterFailures(t *testing.T) {
	exec := NewExecutor(Config{
		RetryMaxAttempts:        1,
		RetryInitialBackoff:     1 * time.Millisecond,
		RetryMaxBackoff:         1 * time.Millisecond,
		RetryMultiplier:         2,
		BreakerEnabled:          true,
		BreakerMinRequests:      2,
		BreakerFailureRatio:     0.5,
		BreakerOpenTimeout:      50 * time.Millisecond,
		BreakerHalfOpenMaxCalls: 1,
	})

	errTemp := errors.New("temporary")
	classifier := func(error) ErrorClassification {
		return ErrorClassification{
			Retryable:     false,
			RecordFailure: true,
		}
	}

	for i := 0; i < 2; i++ {
		err := exec.Execute(context.Background(), "ollama_generate", func(context.Context) error {
			return errTemp
		}, classifier)
		if !errors.Is(err, errTemp) {
			t.Fatalf("expected temporary error on iteration %d, got %v", i, err)
		}
	}

	err := exec.Execute(context.Background(), "ollama_generate", func(context.Context) error {
		t.Fatalf("circuit should be open and must not call operation")
		return nil
	}, classifier)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("expected open state error, got %v", err)
	}
	if !IsCircuitOpen(err) {
		t.Fatalf("IsCircuitOpen should report open state for %v", err)
	}
}

func TestExecuteKeepsBreakersPerOperation(t *testing.T) {
	exec := NewExecutor(Config{
		RetryMaxAttempts:        1,
		RetryInitialBackoff:     1 * time.Millisecond,
		RetryMaxBackoff:         1 * time.Millisecond,
		RetryMultiplier:         2,
		BreakerEnabled:          true,
		BreakerMinRequests:      2,
		BreakerFailureRatio:     0.5,
		BreakerOpenTimeout:      50 * time.Millisecond,
		BreakerHalfOpenMaxCalls: 1,
	})

	errTemp := errors.New("temporary")
	classifier := func(error) ErrorClassification {
		return ErrorClassification{Retryable: false, RecordFailure: true}
	}

	for i := 0; i < 3; i++ {
		_ = exec.Execute(context.Background(), "ollama_embed", func(context.Context) error {
			return errTemp
		}, classifier)
	}

	err := exec.Execute(context.Background(), "rerank", func(context.Context) error {
		return nil
	}, classifier)
	if err != nil {
		t.Fatalf("failures on one operation must not trip another, got %v", err)
	}
}

func TestExecuteRateLimiterThrottles(t *testing.T) {
	exec := NewExecutor(Config{
		RetryMaxAttempts:    1,
		RetryInitialBackoff: 1 * time.Millisecond,
		RetryMaxBackoff:     1 * time.Millisecond,
		RetryMultiplier:     2,
		BreakerEnabled:      false,
		RatePerSecond:       100,
		RateBurst:           1,
	})

	start := time.Now()
	for i := 0; i < 3; i++ {
		err := exec.Execute(context.Background(), "ollama_embed", func(context.Context) error {
			return nil
		}, nil)
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
	}
	// Burst of 1 at 100 rps means the second and third calls each wait
	// roughly 10ms for a token.
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Fatalf("expected rate limiting to spread calls, finished in %s", elapsed)
	}
}

func TestExecuteRateLimiterHonoursCancellation(t *testing.T) {
	exec := NewExecutor(Config{
		RetryMaxAttempts: 1,
		BreakerEnabled:   false,
		RatePerSecond:    0.001,
		RateBurst:        1,
	})

	ctx, cancel := context.WithCancel(context.Background())
	if err := exec.Execute(ctx, "slow", func(context.Context) error { return nil }, nil); err != nil {
		t.Fatalf("first call should pass on burst token, got %v", err)
	}
	cancel()

	err := exec.Execute(ctx, "slow", func(context.Context) error {
		t.Fatalf("operation must not run after cancellation")
		return nil
	}, nil)
	if err == nil {
		t.Fatalf("expected context error while waiting for a token")
	}
}
