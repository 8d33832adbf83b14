package ardmeta

import "time"

// ErrorClassifier decides whether a failed schema download may be retried.
type ErrorClassifier interface {
	// IsTransient reports whether err is worth another attempt.
	IsTransient(err error) bool
}

// BackoffStrategy spaces out download attempts.
type BackoffStrategy interface {
	// NextDelay returns the wait before retry number attempt, counting from 0.
	NextDelay(attempt int) time.Duration

	// MaxAttempts is the retry budget: 0 disables retries, a negative value
	// retries until the context ends.
	MaxAttempts() int
}
