package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/ardmeta/internal/metadata"
	"github.com/vvka-141/ardmeta/internal/tui"
	"github.com/vvka-141/ardmeta/pkg/ardmeta"
)

var validateFlags validationFlags

var validateCmd = &cobra.Command{
	Use:   "validate <document>",
	Short: "Check a metadata document against the ARD schema",
	Long: `Validate runs xmllint against the ARD schema, then maps the document and
applies the checks the schema cannot express: the tile scene count matches the
scene sections, UTM zones fit the datum, and every band names its product and
line/sample dimensions consistently.

The schema is taken from $ARD_SCHEMA, then schema.path in ardmeta.yaml, then
the ARD product library install location, then the published URL (downloaded
once into the cache directory).`,
	Example: `  ardmeta validate LC08_CU_003009_20130415_20170729_C01_V01.xml
  ardmeta validate tile.xml --schema ./ard_metadata_v1_0.xsd
  ardmeta validate tile.xml --no-validate   # semantic checks only`,
	Args: requireDocument,
	RunE: runValidate,
}

func init() {
	addValidationFlags(validateCmd, &validateFlags)
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	env, err := newCommandEnv(cmd, &validateFlags)
	if err != nil {
		return err
	}

	if err := env.validateInput(commandContext(cmd), &validateFlags, path); err != nil {
		return err
	}

	doc, err := metadata.ParseFile(path, env.logger)
	if err != nil {
		return err
	}

	result := metadata.Validate(doc)
	mode := tui.DetectMode()
	if result.HasErrors() {
		for _, msg := range result.Errors {
			env.logger.Error("%s", msg)
		}
		return fmt.Errorf("%w: %s: %d semantic error(s)", ardmeta.ErrSchemaViolation, path, len(result.Errors))
	}

	fmt.Fprintln(cmd.OutOrStdout(), tui.Status(mode, true, fmt.Sprintf("%s successfully validated", path)))
	return nil
}
