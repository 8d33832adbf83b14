package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vvka-141/ardmeta/internal/metadata"
	"github.com/vvka-141/ardmeta/internal/raster"
	"github.com/vvka-141/ardmeta/internal/tui"
	"github.com/vvka-141/ardmeta/pkg/ardmeta"
)

var (
	roundtripFlags     validationFlags
	roundtripOutputDir string
)

// newRasterIO is the band raster reader and writer. Tests replace it.
var newRasterIO = func() raster.IO { return raster.NewTIFF() }

var roundtripCmd = &cobra.Command{
	Use:   "roundtrip <document>",
	Short: "Copy every tile band raster and attach its geolocation",
	Long: `Roundtrip reads the raster named by each tile band's file_name (relative to
the document), checks it against the band's data type and dimensions, and
writes it again into the output directory with an ESRI world file (.tfw)
derived from the tile projection. The rewritten TIFFs carry no GeoTIFF
GeoKeys; the geolocation lives only in the .tfw file beside each raster.

The output directory defaults to raster.output_dir in ardmeta.yaml, or
"output" next to the document.`,
	Example: `  ardmeta roundtrip tile.xml
  ardmeta roundtrip tile.xml --output-dir /tmp/ard-check --no-validate`,
	Args: requireDocument,
	RunE: runRoundtrip,
}

func init() {
	addValidationFlags(roundtripCmd, &roundtripFlags)
	roundtripCmd.Flags().StringVar(&roundtripOutputDir, "output-dir", "", "Directory receiving the rewritten rasters")
	rootCmd.AddCommand(roundtripCmd)
}

func runRoundtrip(cmd *cobra.Command, args []string) error {
	path := args[0]
	env, err := newCommandEnv(cmd, &roundtripFlags)
	if err != nil {
		return err
	}

	if err := env.validateInput(commandContext(cmd), &roundtripFlags, path); err != nil {
		return err
	}

	doc, err := metadata.ParseFile(path, env.logger)
	if err != nil {
		return err
	}

	docDir := filepath.Dir(path)
	outDir := env.settings.RasterOutputDir
	if roundtripOutputDir != "" {
		outDir = roundtripOutputDir
	}
	outDir = resolveRelative(docDir, outDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ardmeta.ErrRasterIO, err)
	}

	rio := newRasterIO()
	proj := doc.Tile.Global.Projection
	out := cmd.OutOrStdout()
	for i, band := range doc.Tile.Bands {
		if band.FileName == metadata.FillString || band.FileName == "" {
			return fmt.Errorf("%w: band %d (%s) has no file_name", ardmeta.ErrRasterIO, i+1, band.Name)
		}
		fmt.Fprintf(out, "Processing band %d: %s\n", i, band.FileName)

		tags, err := raster.GeoTagsFor(proj, band)
		if err != nil {
			return fmt.Errorf("band %s: %w", band.Name, err)
		}

		img, err := rio.Read(resolveRelative(docDir, band.FileName), band)
		if err != nil {
			return err
		}
		dst := filepath.Join(outDir, filepath.Base(band.FileName))
		if err := rio.Write(dst, band, img); err != nil {
			return err
		}
		if err := raster.WriteWorldFile(dst, tags); err != nil {
			return err
		}
		env.logger.Verbose("%s: EPSG %d, %s", dst, tags.EPSG, tags.Citation)
	}

	fmt.Fprintln(out, tui.Status(tui.DetectMode(), true,
		fmt.Sprintf("Wrote %d band raster(s) to %s", len(doc.Tile.Bands), outDir)))
	return nil
}

func resolveRelative(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
