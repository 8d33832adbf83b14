package metadata

// Document identity.
const (
	// Namespace is the XML namespace of ARD metadata documents.
	Namespace = "http://ard.cr.usgs.gov/v1"

	// SchemaVersion is written to the version attribute of ard_metadata.
	SchemaVersion = "1.0"

	// SchemaURL is the published location of the version 1.0 schema.
	SchemaURL = "http://espa.cr.usgs.gov/schema/ard/ard_metadata_v1_0.xsd"

	xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"
)

// Fixed limits.
const (
	MaxScenes      = 3
	MaxBands       = 100
	MaxStackDepth  = 1000
	MaxFieldLength = 2048
)

// Sentinel values marking an unset optional field.
const (
	FillInt    = -3333
	FillFloat  = -3333.0
	FillString = "undefined"
	Epsilon    = 0.00001
)

// Element names with structural meaning during traversal.
const (
	elemRoot   = "ard_metadata"
	elemTile   = "tile_metadata"
	elemScene  = "scene_metadata"
	elemGlobal = "global_metadata"
	elemBands  = "bands"
	elemBand   = "band"
	elemIndex  = "index"
)

// IsFillFloat reports whether v holds the float sentinel.
func IsFillFloat(v float64) bool {
	d := v - FillFloat
	return d <= Epsilon && d >= -Epsilon
}
