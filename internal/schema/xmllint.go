package schema

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/vvka-141/ardmeta/pkg/ardmeta"
)

// DefaultCommand is the validator executable looked up on PATH.
const DefaultCommand = "xmllint"

// XMLLint validates documents by running xmllint --noout --schema.
type XMLLint struct {
	Command string

	LookPath func(string) (string, error)
	// Run executes the command and returns its combined output.
	Run func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// Validate checks docPath against schemaPath. A missing tool yields
// ErrValidatorUnavailable; a rejected document yields ErrSchemaViolation
// carrying the tool's diagnostics.
func (x XMLLint) Validate(ctx context.Context, schemaPath, docPath string) error {
	command := x.Command
	if command == "" {
		command = DefaultCommand
	}
	lookPath := x.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	run := x.Run
	if run == nil {
		run = runCommand
	}

	bin, err := lookPath(command)
	if err != nil {
		return fmt.Errorf("%w: %s not found: %v", ardmeta.ErrValidatorUnavailable, command, err)
	}

	out, err := run(ctx, bin, "--noout", "--schema", schemaPath, docPath)
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %v", ardmeta.ErrValidatorUnavailable, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// xmllint exits 3 and 4 when the document is invalid, 5 when the
		// schema itself cannot be compiled
		if exitErr.ExitCode() == 5 {
			return fmt.Errorf("%w: schema %s could not be loaded: %s",
				ardmeta.ErrValidatorUnavailable, schemaPath, strings.TrimSpace(string(out)))
		}
		return fmt.Errorf("%w: %s: %s", ardmeta.ErrSchemaViolation, docPath, strings.TrimSpace(string(out)))
	}
	return fmt.Errorf("%w: running %s: %v", ardmeta.ErrValidatorUnavailable, command, err)
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	var buf bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	return buf.Bytes(), err
}
