package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vvka-141/ardmeta/internal/checksum"
	"github.com/vvka-141/ardmeta/internal/metadata"
	"github.com/vvka-141/ardmeta/internal/tui"
)

var (
	parseFlags validationFlags
	parseJSON  bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <document>",
	Short: "Parse a metadata document and summarize it",
	Long: `Parse validates the document against the ARD schema, maps it into the typed
model, and prints the namespace, scene count and a summary of the tile and
each scene. With --json the full model is written to stdout instead.

Unknown fields and foreign-namespace elements are reported as warnings and
do not fail the parse.`,
	Example: `  ardmeta parse tile.xml
  ardmeta parse tile.xml --json | jq '.tile.global.projection_information'`,
	Args: requireDocument,
	RunE: runParse,
}

func init() {
	addValidationFlags(parseCmd, &parseFlags)
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Write the parsed model as JSON")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	env, err := newCommandEnv(cmd, &parseFlags)
	if err != nil {
		return err
	}

	if err := env.validateInput(commandContext(cmd), &parseFlags, path); err != nil {
		return err
	}

	doc, err := metadata.ParseFile(path, env.logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if parseJSON {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	sums := checksum.New()

	fmt.Fprintf(out, "ARD metadata namespace: %s\n", doc.Namespace)
	fmt.Fprintf(out, "Number of scenes in the tile: %d\n", doc.NScenes())

	mode := tui.DetectMode()
	sections := append([]tui.Section{tileSummary(doc)}, sceneSummaries(doc)...)
	sections = append(sections, tui.Section{
		Title: "Checksums",
		Rows: []tui.Row{
			{Label: "sha256", Value: sums.CalculateRaw(content)},
			{Label: "normalized", Value: sums.CalculateNormalized(content)},
		},
	})
	fmt.Fprint(out, tui.RenderSummary(mode, sections...))

	if n := env.logger.Warnings(); n > 0 {
		fmt.Fprintln(out, tui.Warning(mode, fmt.Sprintf("%d warning(s) reported while parsing", n)))
	}
	fmt.Fprintln(out, tui.Status(mode, true, "File successfully parsed"))
	return nil
}

func tileSummary(doc *metadata.Document) tui.Section {
	g := doc.Tile.Global
	proj := g.Projection
	projection := proj.Kind().String()
	if zone, ok := proj.UTMZone(); ok {
		projection += " zone " + strconv.Itoa(zone)
	}
	return tui.Section{
		Title: "Tile",
		Rows: []tui.Row{
			{Label: "product_id", Value: g.ProductID},
			{Label: "satellite", Value: g.Satellite},
			{Label: "acquisition_date", Value: g.AcquisitionDate},
			{Label: "tile_grid", Value: fmt.Sprintf("h%03d v%03d", g.H, g.V)},
			{Label: "projection", Value: projection},
			{Label: "datum", Value: proj.Datum.String()},
			{Label: "grid_origin", Value: proj.GridOrigin.String()},
			{Label: "bands", Value: strconv.Itoa(len(doc.Tile.Bands))},
		},
	}
}

func sceneSummaries(doc *metadata.Document) []tui.Section {
	sections := make([]tui.Section, 0, len(doc.Scenes))
	for i, scene := range doc.Scenes {
		g := scene.Global
		sections = append(sections, tui.Section{
			Title: fmt.Sprintf("Scene %d", i+1),
			Rows: []tui.Row{
				{Label: "scene_id", Value: g.SceneID},
				{Label: "product_id", Value: g.ProductID},
				{Label: "wrs", Value: fmt.Sprintf("path %d row %d", g.WRS.Path, g.WRS.Row)},
				{Label: "elevation_source", Value: g.ElevationSource.String()},
				{Label: "bands", Value: strconv.Itoa(len(scene.Bands))},
			},
		})
	}
	return sections
}
