package metadata

import (
	"encoding/json"
	"fmt"

	"github.com/vvka-141/ardmeta/pkg/ardmeta"
)

// DataType is the pixel data type of a band.
type DataType int

const (
	DataTypeInt8 DataType = iota
	DataTypeUint8
	DataTypeInt16
	DataTypeUint16
	DataTypeInt32
	DataTypeUint32
	DataTypeFloat32
	DataTypeFloat64
)

var dataTypeNames = enumNames[DataType]{
	{DataTypeInt8, "INT8"},
	{DataTypeUint8, "UINT8"},
	{DataTypeInt16, "INT16"},
	{DataTypeUint16, "UINT16"},
	{DataTypeInt32, "INT32"},
	{DataTypeUint32, "UINT32"},
	{DataTypeFloat32, "FLOAT32"},
	{DataTypeFloat64, "FLOAT64"},
}

func (d DataType) String() string { return dataTypeNames.name(d) }

// BitsPerSample returns the storage width of one pixel.
func (d DataType) BitsPerSample() int {
	switch d {
	case DataTypeInt8, DataTypeUint8:
		return 8
	case DataTypeInt16, DataTypeUint16:
		return 16
	case DataTypeInt32, DataTypeUint32, DataTypeFloat32:
		return 32
	case DataTypeFloat64:
		return 64
	}
	return 0
}

// ResampleMethod is the resampling used to produce a band.
type ResampleMethod int

const (
	ResampleCubicConvolution ResampleMethod = iota
	ResampleNearestNeighbor
	ResampleBilinear
	ResampleNone
)

var resampleNames = enumNames[ResampleMethod]{
	{ResampleCubicConvolution, "cubic convolution"},
	{ResampleNearestNeighbor, "nearest neighbor"},
	{ResampleBilinear, "bilinear"},
	{ResampleNone, "none"},
}

func (r ResampleMethod) String() string { return resampleNames.name(r) }

// ElevationSource is the DEM used for terrain correction of a scene.
type ElevationSource int

const (
	ElevationUnset ElevationSource = FillInt
	ElevationNED   ElevationSource = iota - 1
	ElevationSRTM
	ElevationGTOPO30
	ElevationGLS2000
	ElevationRAMP
)

var elevationNames = enumNames[ElevationSource]{
	{ElevationNED, "NED"},
	{ElevationSRTM, "SRTM"},
	{ElevationGTOPO30, "GTOPO30"},
	{ElevationGLS2000, "GLS2000"},
	{ElevationRAMP, "RAMP"},
}

func (e ElevationSource) String() string { return elevationNames.name(e) }

// SensorMode is the scan mode of the acquiring instrument.
type SensorMode int

const (
	SensorModeUnset  SensorMode = FillInt
	SensorModeBumper SensorMode = 0
	SensorModeSAM    SensorMode = 1
)

var sensorModeNames = enumNames[SensorMode]{
	{SensorModeBumper, "BUMPER"},
	{SensorModeSAM, "SAM"},
}

func (s SensorMode) String() string { return sensorModeNames.name(s) }

// EphemerisType tells whether definitive or predictive ephemeris was used.
type EphemerisType int

const (
	EphemerisUnset      EphemerisType = FillInt
	EphemerisDefinitive EphemerisType = 0
	EphemerisPredictive EphemerisType = 1
)

var ephemerisNames = enumNames[EphemerisType]{
	{EphemerisDefinitive, "DEFINITIVE"},
	{EphemerisPredictive, "PREDICTIVE"},
}

func (e EphemerisType) String() string { return ephemerisNames.name(e) }

// Datum codes follow the GCTP numbering.
type Datum int

const (
	DatumNone  Datum = -1
	DatumNAD83 Datum = 219
	DatumNAD27 Datum = 225
	DatumWGS84 Datum = 317
)

var datumNames = enumNames[Datum]{
	{DatumWGS84, "WGS84"},
	{DatumNAD27, "NAD27"},
	{DatumNAD83, "NAD83"},
}

func (d Datum) String() string {
	if d == DatumNone {
		return "none"
	}
	return datumNames.name(d)
}

// ProjectionKind codes follow the GCTP numbering.
type ProjectionKind int

const (
	ProjectionUnset  ProjectionKind = FillInt
	ProjectionGeo    ProjectionKind = 0
	ProjectionUTM    ProjectionKind = 1
	ProjectionAlbers ProjectionKind = 3
	ProjectionPS     ProjectionKind = 6
	ProjectionSin    ProjectionKind = 16
)

var projectionNames = enumNames[ProjectionKind]{
	{ProjectionGeo, "GEO"},
	{ProjectionUTM, "UTM"},
	{ProjectionAlbers, "AEA"},
	{ProjectionPS, "PS"},
	{ProjectionSin, "SIN"},
}

func (p ProjectionKind) String() string { return projectionNames.name(p) }

// GridOrigin tells whether corner points locate pixel corners or pixel centers.
type GridOrigin int

const (
	GridOriginUnset  GridOrigin = FillInt
	GridOriginUL     GridOrigin = 0
	GridOriginCenter GridOrigin = 1
)

var gridOriginNames = enumNames[GridOrigin]{
	{GridOriginUL, "UL"},
	{GridOriginCenter, "CENTER"},
}

func (g GridOrigin) String() string { return gridOriginNames.name(g) }

// enumNames maps enumeration values to their document spelling.
type enumNames[T comparable] []struct {
	value T
	text  string
}

func (e enumNames[T]) name(v T) string {
	for _, n := range e {
		if n.value == v {
			return n.text
		}
	}
	return FillString
}

func (e enumNames[T]) parse(s string) (T, bool) {
	for _, n := range e {
		if n.text == s {
			return n.value, true
		}
	}
	var zero T
	return zero, false
}

// The JSON summary printed by the CLI uses document spellings.

func (d DataType) MarshalJSON() ([]byte, error)        { return json.Marshal(d.String()) }
func (r ResampleMethod) MarshalJSON() ([]byte, error)  { return json.Marshal(r.String()) }
func (e ElevationSource) MarshalJSON() ([]byte, error) { return json.Marshal(e.String()) }
func (s SensorMode) MarshalJSON() ([]byte, error)      { return json.Marshal(s.String()) }
func (e EphemerisType) MarshalJSON() ([]byte, error)   { return json.Marshal(e.String()) }
func (d Datum) MarshalJSON() ([]byte, error)           { return json.Marshal(d.String()) }
func (p ProjectionKind) MarshalJSON() ([]byte, error)  { return json.Marshal(p.String()) }
func (g GridOrigin) MarshalJSON() ([]byte, error)      { return json.Marshal(g.String()) }

// ParseDataType returns the data type spelled s, such as "UINT16".
func ParseDataType(s string) (DataType, error) {
	if v, ok := dataTypeNames.parse(s); ok {
		return v, nil
	}
	return 0, fmt.Errorf("%w: data type %q", ardmeta.ErrUnsupportedEnumValue, s)
}

// ParseResampleMethod returns the resampling method spelled s, such as "nearest neighbor".
func ParseResampleMethod(s string) (ResampleMethod, error) {
	if v, ok := resampleNames.parse(s); ok {
		return v, nil
	}
	return 0, fmt.Errorf("%w: resample method %q", ardmeta.ErrUnsupportedEnumValue, s)
}
