package metadata

import (
	"fmt"
	"strings"
)

// Document is an ARD tile metadata document held fully in memory.
type Document struct {
	Namespace string         `json:"namespace"`
	Version   string         `json:"version"`
	Tile      TileSection    `json:"tile"`
	Scenes    []SceneSection `json:"scenes"`
}

// NScenes returns the number of populated scene sections.
func (d *Document) NScenes() int {
	return len(d.Scenes)
}

// TileSection is the tile-wide metadata and the tile's bands.
type TileSection struct {
	Global TileGlobal `json:"global"`
	Bands  []Band     `json:"bands"`
}

// SceneSection is the metadata of one contributing scene.
type SceneSection struct {
	Global SceneGlobal `json:"global"`
	Bands  []Band      `json:"bands"`
}

// Bounds is the geographic bounding box of the tile in degrees.
type Bounds struct {
	West  float64 `json:"west"`
	East  float64 `json:"east"`
	North float64 `json:"north"`
	South float64 `json:"south"`
}

// TileGlobal holds the shared fields of the tile section.
type TileGlobal struct {
	DataProvider     string     `json:"data_provider"`
	Satellite        string     `json:"satellite"`
	Instrument       string     `json:"instrument"`
	Level1Collection string     `json:"level1_collection"`
	ARDVersion       string     `json:"ard_version"`
	Region           string     `json:"region"`
	AcquisitionDate  string     `json:"acquisition_date"`
	ProductID        string     `json:"product_id"`
	ProductionDate   string     `json:"production_date"`
	Bounds           Bounds     `json:"bounding_coordinates"`
	Projection       Projection `json:"projection_information"`
	OrientationAngle float64    `json:"orientation_angle"`
	H                int        `json:"htile"`
	V                int        `json:"vtile"`
	SceneCount       int        `json:"scene_count"`
	CloudCover       float64    `json:"cloud_cover"`
	CloudShadow      float64    `json:"cloud_shadow"`
	SnowIce          float64    `json:"snow_ice"`
	Fill             float64    `json:"fill"`
}

// WRS locates a scene on the Worldwide Reference System.
type WRS struct {
	System int `json:"system"`
	Path   int `json:"path"`
	Row    int `json:"row"`
}

// SceneGlobal holds the shared fields of a scene section.
type SceneGlobal struct {
	DataProvider         string          `json:"data_provider"`
	Satellite            string          `json:"satellite"`
	Instrument           string          `json:"instrument"`
	AcquisitionDate      string          `json:"acquisition_date"`
	SceneCenterTime      string          `json:"scene_center_time"`
	Level1ProductionDate string          `json:"level1_production_date"`
	WRS                  WRS             `json:"wrs"`
	RequestID            string          `json:"request_id"`
	SceneID              string          `json:"scene_id"`
	ProductID            string          `json:"product_id"`
	ElevationSource      ElevationSource `json:"elevation_source"`
	SensorMode           SensorMode      `json:"sensor_mode"`
	EphemerisType        EphemerisType   `json:"ephemeris_type"`
	CPFName              string          `json:"cpf_name"`
	LPGSMetadataFile     string          `json:"lpgs_metadata_file"`
	GeometricRMSEModel   float64         `json:"geometric_rmse_model"`
	GeometricRMSEModelX  float64         `json:"geometric_rmse_model_x"`
	GeometricRMSEModelY  float64         `json:"geometric_rmse_model_y"`
}

// ClassValue describes one class code of a classification band.
type ClassValue struct {
	Code        int    `json:"num"`
	Description string `json:"description"`
}

// Band is the metadata for one raster band.
type Band struct {
	Product        string         `json:"product"`
	Source         string         `json:"source"`
	Name           string         `json:"name"`
	Category       string         `json:"category"`
	DataType       DataType       `json:"data_type"`
	NLines         int            `json:"nlines"`
	NSamps         int            `json:"nsamps"`
	FillValue      int64          `json:"fill_value"`
	SaturateValue  int            `json:"saturate_value"`
	ScaleFactor    float64        `json:"scale_factor"`
	AddOffset      float64        `json:"add_offset"`
	ShortName      string         `json:"short_name"`
	LongName       string         `json:"long_name"`
	FileName       string         `json:"file_name"`
	PixelSizeX     float64        `json:"pixel_size_x"`
	PixelSizeY     float64        `json:"pixel_size_y"`
	PixelUnits     string         `json:"pixel_units"`
	ResampleMethod ResampleMethod `json:"resample_method"`
	DataUnits      string         `json:"data_units"`
	ValidMin       float64        `json:"valid_min"`
	ValidMax       float64        `json:"valid_max"`
	// Bits[i] describes bit i of the band value.
	Bits           []string     `json:"bitmap_description,omitempty"`
	Classes        []ClassValue `json:"class_values,omitempty"`
	AppVersion     string       `json:"app_version"`
	ProductionDate string       `json:"production_date"`
}

// NewDocument returns an empty document in the ARD namespace.
func NewDocument() *Document {
	return &Document{
		Namespace: Namespace,
		Version:   SchemaVersion,
		Tile:      TileSection{Global: NewTileGlobal()},
	}
}

// NewTileGlobal returns tile shared fields with every value unset.
func NewTileGlobal() TileGlobal {
	return TileGlobal{
		DataProvider:     FillString,
		Satellite:        FillString,
		Instrument:       FillString,
		Level1Collection: FillString,
		ARDVersion:       FillString,
		Region:           FillString,
		AcquisitionDate:  FillString,
		ProductID:        FillString,
		ProductionDate:   FillString,
		Bounds:           Bounds{West: FillFloat, East: FillFloat, North: FillFloat, South: FillFloat},
		Projection:       NewProjection(),
		OrientationAngle: FillFloat,
		H:                FillInt,
		V:                FillInt,
		SceneCount:       FillInt,
		CloudCover:       FillFloat,
		CloudShadow:      FillFloat,
		SnowIce:          FillFloat,
		Fill:             FillFloat,
	}
}

// NewSceneGlobal returns scene shared fields with every value unset.
func NewSceneGlobal() SceneGlobal {
	return SceneGlobal{
		DataProvider:         FillString,
		Satellite:            FillString,
		Instrument:           FillString,
		AcquisitionDate:      FillString,
		SceneCenterTime:      FillString,
		Level1ProductionDate: FillString,
		WRS:                  WRS{System: FillInt, Path: FillInt, Row: FillInt},
		RequestID:            FillString,
		SceneID:              FillString,
		ProductID:            FillString,
		ElevationSource:      ElevationUnset,
		SensorMode:           SensorModeUnset,
		EphemerisType:        EphemerisUnset,
		CPFName:              FillString,
		LPGSMetadataFile:     FillString,
		GeometricRMSEModel:   FillFloat,
		GeometricRMSEModelX:  FillFloat,
		GeometricRMSEModelY:  FillFloat,
	}
}

// NewBand returns a band with every optional value unset.
func NewBand() Band {
	return Band{
		Product:        FillString,
		Source:         FillString,
		Name:           FillString,
		Category:       FillString,
		DataType:       DataTypeUint8,
		NLines:         FillInt,
		NSamps:         FillInt,
		FillValue:      FillInt,
		SaturateValue:  FillInt,
		ScaleFactor:    FillFloat,
		AddOffset:      FillFloat,
		ShortName:      FillString,
		LongName:       FillString,
		FileName:       FillString,
		PixelSizeX:     FillFloat,
		PixelSizeY:     FillFloat,
		PixelUnits:     FillString,
		ResampleMethod: ResampleNone,
		DataUnits:      FillString,
		ValidMin:       FillFloat,
		ValidMax:       FillFloat,
		AppVersion:     FillString,
		ProductionDate: FillString,
	}
}

// ValidationResult contains the outcome of semantic document checks.
// If Valid is false, Errors contains human-readable error messages.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// AddError appends an error message to the validation result and marks it as invalid.
func (v *ValidationResult) AddError(format string, args ...interface{}) {
	v.Valid = false
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

// HasErrors returns true if the validation result contains errors.
func (v *ValidationResult) HasErrors() bool {
	return len(v.Errors) > 0
}

// ErrorString returns all validation errors joined with semicolons.
func (v *ValidationResult) ErrorString() string {
	return strings.Join(v.Errors, "; ")
}
