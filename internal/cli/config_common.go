package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/ardmeta/internal/config"
	"github.com/vvka-141/ardmeta/internal/logging"
	"github.com/vvka-141/ardmeta/internal/retry"
	"github.com/vvka-141/ardmeta/internal/schema"
	"github.com/vvka-141/ardmeta/pkg/ardmeta"
)

// validationFlags are shared by every command that checks its input
// against the schema.
type validationFlags struct {
	schemaPath string
	noValidate bool
}

func addValidationFlags(cmd *cobra.Command, flags *validationFlags) {
	cmd.Flags().StringVar(&flags.schemaPath, "schema", "", "Schema file (overrides schema.path in ardmeta.yaml; $ARD_SCHEMA still wins)")
	cmd.Flags().BoolVar(&flags.noValidate, "no-validate", false, "Skip schema validation of the input document")
}

// newValidator builds the schema validator for a command. Tests replace it.
var newValidator = func(s config.Settings, logger ardmeta.Logger) schema.Validator {
	fetcher := schema.NewFetcher(s.SchemaCacheDir, logger)
	fetcher.Executor = retry.NewExecutor(retry.NewHTTPErrorClassifier(),
		retry.NewExponentialBackoff(s.RetryMaxAttempts,
			retry.WithInitialDelay(s.RetryInitialDelay),
			retry.WithMaxDelay(s.RetryMaxDelay)))

	return &schema.Checker{
		Locator: schema.Locator{ConfigPath: s.SchemaPath, URL: s.SchemaURL},
		Fetcher: fetcher,
		Lint:    schema.XMLLint{Command: s.ValidatorCommand},
		Timeout: s.ValidateTimeout,
		Logger:  logger,
	}
}

// loadProjectConfig loads godotenv and project configuration.
// An explicit --config path must exist; ./ardmeta.yaml is optional.
func loadProjectConfig(configPath string) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	if configPath != "" {
		cfg, err := config.LoadFile(configPath)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("%w: %s does not exist", ardmeta.ErrInvalidConfig, configPath)
			}
			return nil, fmt.Errorf("failed to load %s: %w", configPath, err)
		}
		return cfg, nil
	}

	cfg, err := config.Load(".")
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil // Config file not found is not an error
		}
		return nil, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}
	return cfg, nil
}

// commandEnv is what every document command starts from.
type commandEnv struct {
	settings config.Settings
	logger   *logging.ConsoleLogger
}

func newCommandEnv(cmd *cobra.Command, flags *validationFlags) (*commandEnv, error) {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewWriterLogger(cmd.ErrOrStderr(), verbose)

	cfg, err := loadProjectConfig(getConfigFlag(cmd))
	if err != nil {
		return nil, err
	}
	settings, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}
	if flags != nil && flags.schemaPath != "" {
		settings.SchemaPath = flags.schemaPath
	}

	logger.Verbose("Validator: %s (timeout %s)", settings.ValidatorCommand, settings.ValidateTimeout)
	return &commandEnv{settings: settings, logger: logger}, nil
}

// validateInput checks path against the schema unless validation was
// switched off.
func (e *commandEnv) validateInput(ctx context.Context, flags *validationFlags, path string) error {
	if flags.noValidate {
		e.logger.Verbose("Skipping schema validation of %s", path)
		return nil
	}
	if err := newValidator(e.settings, e.logger).Validate(ctx, path); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// commandContext returns the command's context, or Background when the
// command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
