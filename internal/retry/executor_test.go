package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errUnavailable = &StatusError{URL: "http://schema.test/ard.xsd", StatusCode: 503}
	errNotFound    = &StatusError{URL: "http://schema.test/ard.xsd", StatusCode: 404}
)

// flakyOperation fails with failWith until it has been called succeedOn times.
type flakyOperation struct {
	calls     int
	succeedOn int
	failWith  error
}

func (f *flakyOperation) run(context.Context) error {
	f.calls++
	if f.calls >= f.succeedOn {
		return nil
	}
	return f.failWith
}

func fastBackoff(maxAttempts int) *ExponentialBackoff {
	return NewExponentialBackoff(maxAttempts, WithInitialDelay(time.Millisecond), WithJitter(0))
}

func TestExecutor_Execute(t *testing.T) {
	tests := []struct {
		name        string
		maxAttempts int
		op          *flakyOperation
		wantErr     error
		wantCalls   int
	}{
		{"first attempt succeeds", 3, &flakyOperation{succeedOn: 1}, nil, 1},
		{"succeeds after retries", 5, &flakyOperation{succeedOn: 4, failWith: errUnavailable}, nil, 4},
		{"fatal error is not retried", 5, &flakyOperation{succeedOn: 99, failWith: errNotFound}, errNotFound, 1},
		{"retries exhausted", 3, &flakyOperation{succeedOn: 99, failWith: errUnavailable}, errUnavailable, 4},
		{"no retries", 0, &flakyOperation{succeedOn: 99, failWith: errUnavailable}, errUnavailable, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			executor := NewExecutor(NewHTTPErrorClassifier(), fastBackoff(tt.maxAttempts))

			err := executor.Execute(context.Background(), tt.op.run)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Equal(t, tt.wantCalls, tt.op.calls)
		})
	}
}

func TestExecutor_Execute_TransientThenFatal(t *testing.T) {
	calls := 0
	executor := NewExecutor(NewHTTPErrorClassifier(), fastBackoff(5))

	err := executor.Execute(context.Background(), func(context.Context) error {
		calls++
		if calls == 1 {
			return errUnavailable
		}
		return errNotFound
	})

	assert.ErrorIs(t, err, errNotFound)
	assert.Equal(t, 2, calls)
}

func TestExecutor_Execute_ContextCancelledDuringWait(t *testing.T) {
	executor := NewExecutor(NewHTTPErrorClassifier(),
		NewExponentialBackoff(10, WithInitialDelay(time.Second), WithJitter(0)))

	ctx, cancel := context.WithCancel(context.Background())
	op := &flakyOperation{succeedOn: 99, failWith: errUnavailable}
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := executor.Execute(ctx, op.run)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, op.calls)
	assert.Less(t, time.Since(start), 900*time.Millisecond)
}

func TestExecutor_WithOnRetry(t *testing.T) {
	base := NewExecutor(NewHTTPErrorClassifier(), fastBackoff(3))

	var attempts []int
	var delays []time.Duration
	executor := base.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		assert.True(t, errors.Is(err, errUnavailable))
		attempts = append(attempts, attempt)
		delays = append(delays, delay)
	})

	op := &flakyOperation{succeedOn: 3, failWith: errUnavailable}
	require.NoError(t, executor.Execute(context.Background(), op.run))

	assert.Equal(t, []int{0, 1}, attempts)
	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond}, delays)
	assert.Nil(t, base.onRetry, "the original executor keeps no callback")
}

func TestNewExecutor_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewExecutor(nil, fastBackoff(1)) })
	assert.Panics(t, func() { NewExecutor(NewHTTPErrorClassifier(), nil) })
}
