package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/ardmeta/internal/config"
	"github.com/vvka-141/ardmeta/internal/schema"
	"github.com/vvka-141/ardmeta/pkg/ardmeta"
)

// fakeValidator records the documents it was asked to check.
type fakeValidator struct {
	mu    sync.Mutex
	calls []string
	errs  map[string]error
	err   error
}

func (f *fakeValidator) Validate(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, path)
	if err, ok := f.errs[filepath.Base(path)]; ok {
		return err
	}
	return f.err
}

func useValidator(t *testing.T, v schema.Validator) {
	t.Helper()
	original := newValidator
	newValidator = func(config.Settings, ardmeta.Logger) schema.Validator { return v }
	t.Cleanup(func() { newValidator = original })
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// runCLI executes the root command with args and returns everything it printed.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	stdout, stderr, err := execute(t, args...)
	return stdout + stderr, err
}

// execute runs the root command keeping stdout and stderr apart.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("ARDMETA_PLAIN", "1")
	t.Setenv(schema.EnvSchema, "")
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// copyFixture places testdata/tile.xml in a fresh directory.
func copyFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "tile.xml"))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "tile.xml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
