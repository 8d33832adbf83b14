// Package retry re-runs operations that fail with transient errors, waiting
// between attempts according to a backoff strategy.
//
// It is used to fetch remote schema documents, where a dropped connection or
// a 503 from the schema host should not fail validation outright.
//
// # Example Usage
//
//	executor := retry.NewExecutor(retry.NewHTTPErrorClassifier(), retry.NewExponentialBackoff(3))
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return fetchSchema(ctx)
//	})
//
// # Error Classification
//
// HTTPErrorClassifier treats network failures and the status codes 408, 429
// and 5xx (reported as *StatusError) as transient. Everything else, including
// context cancellation, stops the retry loop.
package retry
