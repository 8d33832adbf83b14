package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ardmeta",
	Short: "Read, check and rewrite ARD tile metadata",
	Long: asciiLogo + `

ardmeta works with the XML metadata that accompanies a USGS Analysis Ready
Data tile: one document describing the tile and up to three contributing
scenes, each with per-band imaging metadata.

Documents are checked against the ARD schema with xmllint, mapped into a typed
model, and written back in canonical form.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Document failed to parse or could not be written
  12 - Document does not conform to the schema
  13 - Schema or validator unavailable
  14 - Band raster could not be read or written`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for ardmeta")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().String("config", "", "Path to ardmeta.yaml (default: ./ardmeta.yaml when present)")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

func getConfigFlag(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return ""
	}
	return path
}

// requireDocument validates that exactly one document argument is provided.
func requireDocument(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <document>

Usage: %s

Example:
  %s LE07_CU_019002_19991006_20170307_C01_V01.xml`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}
