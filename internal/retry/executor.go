package retry

import (
	"context"
	"time"

	"github.com/vvka-141/ardmeta/pkg/ardmeta"
)

// Executor runs an operation until it succeeds, fails fatally, or the
// strategy's attempts are used up. It is safe for concurrent use.
type Executor struct {
	classifier ardmeta.ErrorClassifier
	strategy   ardmeta.BackoffStrategy
	onRetry    func(attempt int, err error, delay time.Duration)
}

// NewExecutor panics if classifier or strategy is nil.
func NewExecutor(classifier ardmeta.ErrorClassifier, strategy ardmeta.BackoffStrategy) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{classifier: classifier, strategy: strategy}
}

// WithOnRetry returns a copy of e that calls callback before each wait.
// The receiver is left unchanged.
func (e *Executor) WithOnRetry(callback func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = callback
	return &clone
}

// Execute returns nil on the first success, otherwise the last error seen.
// A negative MaxAttempts retries until ctx is done.
func (e *Executor) Execute(ctx context.Context, operation func(ctx context.Context) error) error {
	err := operation(ctx)
	maxRetries := e.strategy.MaxAttempts()

	for retry := 0; err != nil && e.classifier.IsTransient(err); retry++ {
		if maxRetries >= 0 && retry >= maxRetries {
			break
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		delay := e.strategy.NextDelay(retry)
		if e.onRetry != nil {
			e.onRetry(retry, err, delay)
		}
		if waitErr := sleep(ctx, delay); waitErr != nil {
			return waitErr
		}

		err = operation(ctx)
	}
	return err
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
