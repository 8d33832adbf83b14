package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/ardmeta/internal/config"
	"github.com/vvka-141/ardmeta/internal/metadata"
	"github.com/vvka-141/ardmeta/internal/tui"
	"github.com/vvka-141/ardmeta/pkg/ardmeta"
)

var (
	appendFlags  validationFlags
	appendBands  string
	appendCount  int
	appendSuffix string
	appendOutput string
)

var appendCmd = &cobra.Command{
	Use:   "append <document>",
	Short: "Rewrite a document with extra tile bands",
	Long: `Append parses the document and writes it back out with additional bands
added after the existing tile bands. The input document is never modified.

Bands come from a YAML file (--bands, or append.bands_file in ardmeta.yaml);
without one, --count placeholder bands named band1..bandN are added.

The output goes to {base}{suffix}.xml next to the input unless --output is
given. When a schema is available the output is validated too.`,
	Example: `  ardmeta append tile.xml
  ardmeta append tile.xml --bands extra_bands.yaml --output tile_ext.xml
  ardmeta append tile.xml --count 5 --suffix _plus5`,
	Args: requireDocument,
	RunE: runAppend,
}

func init() {
	addValidationFlags(appendCmd, &appendFlags)
	appendCmd.Flags().StringVar(&appendBands, "bands", "", "YAML file listing the bands to append")
	appendCmd.Flags().IntVar(&appendCount, "count", 0, "Number of placeholder bands when no band file is given (default from config, 3)")
	appendCmd.Flags().StringVar(&appendSuffix, "suffix", "", "Suffix inserted before .xml in the output name (default _new)")
	appendCmd.Flags().StringVarP(&appendOutput, "output", "o", "", "Output file (overrides --suffix)")
	rootCmd.AddCommand(appendCmd)
}

func runAppend(cmd *cobra.Command, args []string) error {
	path := args[0]
	env, err := newCommandEnv(cmd, &appendFlags)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	if err := env.validateInput(ctx, &appendFlags, path); err != nil {
		return err
	}

	doc, err := metadata.ParseFile(path, env.logger)
	if err != nil {
		return err
	}

	extra, err := appendedBands(cmd, env.settings)
	if err != nil {
		return err
	}

	suffix := env.settings.AppendSuffix
	if appendSuffix != "" {
		suffix = appendSuffix
	}
	out := appendOutput
	if out == "" {
		out = appendedPath(path, suffix)
	}
	if filepath.Clean(out) == filepath.Clean(path) {
		return fmt.Errorf("%w: output %s would overwrite the input document", ardmeta.ErrInvalidConfig, out)
	}

	if err := metadata.AppendFile(out, doc, extra); err != nil {
		return err
	}
	env.logger.Verbose("Wrote %d tile band(s) to %s", len(doc.Tile.Bands)+len(extra), out)

	if !appendFlags.noValidate {
		err := newValidator(env.settings, env.logger).Validate(ctx, out)
		switch {
		case errors.Is(err, ardmeta.ErrValidatorUnavailable):
			env.logger.Warn("Output not validated: %v", err)
		case err != nil:
			return fmt.Errorf("%s: %w", out, err)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), tui.Status(tui.DetectMode(), true,
		fmt.Sprintf("Appended %d band(s): %s", len(extra), out)))
	return nil
}

// appendedBands loads the band file when one is configured, otherwise
// generates placeholder bands.
func appendedBands(cmd *cobra.Command, s config.Settings) ([]metadata.Band, error) {
	bandsFile := s.AppendBandsFile
	if appendBands != "" {
		bandsFile = appendBands
	}
	if bandsFile != "" {
		return config.LoadBands(bandsFile)
	}

	count := s.AppendBandCount
	if cmd.Flags().Changed("count") {
		count = appendCount
	}
	if count <= 0 {
		return nil, fmt.Errorf("%w: --count must be positive, got %d", ardmeta.ErrInvalidConfig, count)
	}
	return config.DefaultBands(count), nil
}

// appendedPath inserts suffix before the extension: tile.xml -> tile_new.xml.
func appendedPath(path, suffix string) string {
	ext := filepath.Ext(path)
	if !strings.EqualFold(ext, ".xml") {
		return path + suffix + ".xml"
	}
	return strings.TrimSuffix(path, ext) + suffix + ext
}
