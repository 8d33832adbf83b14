package schema

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/vvka-141/ardmeta/internal/retry"
	"github.com/vvka-141/ardmeta/pkg/ardmeta"
)

// maxSchemaSize bounds a downloaded schema.
const maxSchemaSize = 8 << 20

// Fetcher downloads remote schemas into a cache directory.
type Fetcher struct {
	Client   *http.Client
	Executor *retry.Executor
	CacheDir string
	Logger   ardmeta.Logger
}

// NewFetcher uses a 30s HTTP client and retries transient failures with
// the default backoff.
func NewFetcher(cacheDir string, logger ardmeta.Logger) *Fetcher {
	return &Fetcher{
		Client: &http.Client{Timeout: 30 * time.Second},
		Executor: retry.NewExecutor(retry.NewHTTPErrorClassifier(),
			retry.NewExponentialBackoff(ardmeta.DefaultRetryMaxAttempts,
				retry.WithInitialDelay(ardmeta.DefaultRetryInitialDelay),
				retry.WithMaxDelay(ardmeta.DefaultRetryMaxDelay))),
		CacheDir: cacheDir,
		Logger:   logger,
	}
}

// Fetch returns a local path holding the schema at url, downloading it
// unless a cached copy is already present.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := os.MkdirAll(f.CacheDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: schema cache: %v", ardmeta.ErrValidatorUnavailable, err)
	}

	name := path.Base(url)
	if name == "" || name == "/" || name == "." {
		name = "schema.xsd"
	}
	dest := filepath.Join(f.CacheDir, name)
	if _, err := os.Stat(dest); err == nil {
		f.Logger.Verbose("Using cached schema %s", dest)
		return dest, nil
	}

	executor := f.Executor.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		f.Logger.Warn("schema download failed (attempt %d): %v; retrying in %v", attempt+1, err, delay)
	})

	var body []byte
	err := executor.Execute(ctx, func(ctx context.Context) error {
		var err error
		body, err = f.get(ctx, url)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("%w: download %s: %v", ardmeta.ErrValidatorUnavailable, url, err)
	}

	tmp := filepath.Join(f.CacheDir, "."+name+"."+uuid.NewString())
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return "", fmt.Errorf("%w: schema cache: %v", ardmeta.ErrValidatorUnavailable, err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("%w: schema cache: %v", ardmeta.ErrValidatorUnavailable, err)
	}
	f.Logger.Verbose("Downloaded schema %s to %s", url, dest)
	return dest, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &retry.StatusError{URL: url, StatusCode: resp.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSchemaSize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > maxSchemaSize {
		return nil, fmt.Errorf("schema larger than %d bytes", maxSchemaSize)
	}
	return body, nil
}
