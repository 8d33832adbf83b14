package schema

import (
	"context"
	"time"

	"github.com/vvka-141/ardmeta/pkg/ardmeta"
)

// Validator checks a document file against the ARD grammar.
type Validator interface {
	Validate(ctx context.Context, docPath string) error
}

// Checker is the Validator used by the command line: it resolves the
// schema, fetches it when remote, then runs xmllint with a timeout.
type Checker struct {
	Locator Locator
	Fetcher *Fetcher
	Lint    XMLLint
	Timeout time.Duration
	Logger  ardmeta.Logger
}

var _ Validator = (*Checker)(nil)

// SchemaPath resolves the schema to a local file.
func (c *Checker) SchemaPath(ctx context.Context) (string, error) {
	src, err := c.Locator.Resolve()
	if err != nil {
		return "", err
	}
	c.Logger.Verbose("Schema source: %s (%s)", src.Location, src.Origin)
	if !src.IsRemote() {
		return src.Location, nil
	}
	return c.Fetcher.Fetch(ctx, src.Location)
}

func (c *Checker) Validate(ctx context.Context, docPath string) error {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = ardmeta.DefaultValidateTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	schemaPath, err := c.SchemaPath(ctx)
	if err != nil {
		return err
	}
	if err := c.Lint.Validate(ctx, schemaPath, docPath); err != nil {
		return err
	}
	c.Logger.Verbose("%s conforms to %s", docPath, schemaPath)
	return nil
}
