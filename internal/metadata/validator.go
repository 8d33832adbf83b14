package metadata

import "fmt"

// Validate performs semantic checks that the document grammar cannot express.
// It checks:
//   - scene_count against the number of scene sections
//   - datum against the projection and UTM zone
//   - nlines and nsamps are set together on every band
//   - every band names its product and band name
//
// It never fails on structure; a document that parsed is always checkable.
func Validate(doc *Document) ValidationResult {
	result := ValidationResult{Valid: true, Errors: []string{}}

	g := doc.Tile.Global
	if g.SceneCount != FillInt && g.SceneCount != doc.NScenes() {
		result.AddError(
			"scene_count is %d but the document has %d scene sections.\n"+
				"  Update scene_count to match the scenes that contributed to the tile.",
			g.SceneCount, doc.NScenes())
	}

	if err := g.Projection.CheckDatum(); err != nil {
		result.AddError("tile projection: %v", err)
	}

	checkBands(&result, "tile", doc.Tile.Bands)
	for i, s := range doc.Scenes {
		checkBands(&result, sceneLabel(i), s.Bands)
	}

	return result
}

func checkBands(result *ValidationResult, section string, bands []Band) {
	for i, b := range bands {
		if (b.NLines == FillInt) != (b.NSamps == FillInt) {
			result.AddError(
				"%s band %d (%s): nlines and nsamps must be given together.\n"+
					"  Set both dimensions or neither.", section, i+1, b.Name)
		}
		if b.Product == FillString {
			result.AddError("%s band %d: product attribute is undefined", section, i+1)
		}
		if b.Name == FillString {
			result.AddError("%s band %d: name attribute is undefined", section, i+1)
		}
	}
}

func sceneLabel(i int) string {
	return fmt.Sprintf("scene %d", i+1)
}
