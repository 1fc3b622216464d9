package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDo_Success(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return nil
	}

	ctx := context.Background()
	err := Do(ctx, operation)

	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt, got: %d", attempts)
	}
}

func TestDo_SuccessAfterRetries(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary error")
		}
		return nil
	}

	ctx := context.Background()
	err := Do(ctx, operation, WithDelay(10*time.Millisecond))

	if err != nil {
		t.Errorf("Expected no error after retries, got: %v", err)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got: %d", attempts)
	}
}

func TestDo_AttemptBound(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return errors.New("persistent error")
	}

	ctx := context.Background()
	err := Do(ctx, operation,
		WithMaxAttempts(3),
		WithDelay(10*time.Millisecond))

	if err == nil {
		t.Error("Expected error after exhausting attempts, got nil")
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got: %d", attempts)
	}
}

func TestDo_FixedDelay(t *testing.T) {
	t.Parallel()
	attempts := 0
	start := time.Now()
	operation := func() error {
		attempts++
		return errors.New("still failing")
	}

	ctx := context.Background()
	err := Do(ctx, operation,
		WithMaxAttempts(3),
		WithFixedDelay(20*time.Millisecond))

	if err == nil {
		t.Error("Expected error, got nil")
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got: %d", attempts)
	}
	// Two fixed delays of 20ms each; a 2.0 multiplier would take 60ms.
	if elapsed := time.Since(start); elapsed > 55*time.Millisecond {
		t.Errorf("Fixed delay not honored, elapsed: %v", elapsed)
	}
}

func TestDo_ContextCancellation(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return errors.New("error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, operation, WithDelay(10*time.Millisecond))

	if err == nil {
		t.Error("Expected error from cancelled context, got nil")
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt before cancellation, got: %d", attempts)
	}
}

func TestDo_FatalError(t *testing.T) {
	t.Parallel()
	attempts := 0
	fatalErr := errors.New("invalid argument")
	operation := func() error {
		attempts++
		return Fatal(fatalErr)
	}

	ctx := context.Background()
	err := Do(ctx, operation, WithDelay(10*time.Millisecond))

	if err == nil {
		t.Error("Expected fatal error, got nil")
	}
	if !errors.Is(err, fatalErr) {
		t.Errorf("Expected wrapped fatal error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected no retries for fatal error, got %d attempts", attempts)
	}
}

func TestFatal_Nil(t *testing.T) {
	t.Parallel()
	if Fatal(nil) != nil {
		t.Error("Fatal(nil) should return nil")
	}
}

func TestIsFatal(t *testing.T) {
	t.Parallel()
	plain := errors.New("plain")
	if IsFatal(plain) {
		t.Error("plain error should not be fatal")
	}
	if !IsFatal(Fatal(plain)) {
		t.Error("wrapped error should be fatal")
	}
}
