package schema

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/ardmeta/internal/logging"
)

func TestChecker_LocalSchema(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "ard.xsd")
	require.NoError(t, os.WriteFile(schemaPath, []byte(schemaBody), 0o644))

	var args []string
	c := &Checker{
		Locator: Locator{Getenv: env(map[string]string{EnvSchema: schemaPath})},
		Lint:    XMLLint{LookPath: foundAt("xmllint"), Run: helperRun(0, "", &args)},
		Logger:  logging.NewNullLogger(),
	}

	require.NoError(t, c.Validate(context.Background(), "tile.xml"))
	assert.Contains(t, args, schemaPath)
}

func TestChecker_RemoteSchemaIsFetched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(schemaBody))
	}))
	defer srv.Close()

	c := &Checker{
		Locator: Locator{URL: srv.URL + "/ard.xsd", Getenv: env(nil), Stat: fakeStat()},
		Fetcher: testFetcher(t, 0),
		Logger:  logging.NewNullLogger(),
	}

	path, err := c.SchemaPath(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(c.Fetcher.CacheDir, "ard.xsd"), path)
}
