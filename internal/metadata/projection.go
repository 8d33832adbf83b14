package metadata

import (
	"fmt"

	"github.com/vvka-141/ardmeta/pkg/ardmeta"
)

// Point is a projection-space coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Projection describes the tile grid's map projection.
// The projection kind is carried by the concrete Params type, so a
// parameter set can never disagree with the kind it is filed under.
type Projection struct {
	Params     ProjectionParams `json:"params"`
	Datum      Datum            `json:"datum"`
	Units      string           `json:"units"`
	UL         Point            `json:"ul"`
	LR         Point            `json:"lr"`
	GridOrigin GridOrigin       `json:"grid_origin"`
}

// ProjectionParams is implemented by one type per projection kind.
type ProjectionParams interface {
	Kind() ProjectionKind
}

// GeographicParams has no parameters; coordinates are longitude/latitude.
type GeographicParams struct{}

// UTMParams holds the zone; a negative zone is in the southern hemisphere.
type UTMParams struct {
	Zone int `json:"zone_code"`
}

// AlbersParams holds Albers Equal-Area parameters.
type AlbersParams struct {
	StandardParallel1 float64 `json:"standard_parallel1"`
	StandardParallel2 float64 `json:"standard_parallel2"`
	CentralMeridian   float64 `json:"central_meridian"`
	OriginLatitude    float64 `json:"origin_latitude"`
	FalseEasting      float64 `json:"false_easting"`
	FalseNorthing     float64 `json:"false_northing"`
}

// PolarStereographicParams holds Polar Stereographic parameters.
type PolarStereographicParams struct {
	LongitudePole     float64 `json:"longitude_pole"`
	LatitudeTrueScale float64 `json:"latitude_true_scale"`
	FalseEasting      float64 `json:"false_easting"`
	FalseNorthing     float64 `json:"false_northing"`
}

// SinusoidalParams holds Sinusoidal parameters.
type SinusoidalParams struct {
	SphereRadius    float64 `json:"sphere_radius"`
	CentralMeridian float64 `json:"central_meridian"`
	FalseEasting    float64 `json:"false_easting"`
	FalseNorthing   float64 `json:"false_northing"`
}

func (GeographicParams) Kind() ProjectionKind         { return ProjectionGeo }
func (UTMParams) Kind() ProjectionKind                { return ProjectionUTM }
func (AlbersParams) Kind() ProjectionKind             { return ProjectionAlbers }
func (PolarStereographicParams) Kind() ProjectionKind { return ProjectionPS }
func (SinusoidalParams) Kind() ProjectionKind         { return ProjectionSin }

// NewProjection returns a projection with every field unset.
func NewProjection() Projection {
	return Projection{
		Datum:      DatumNone,
		Units:      FillString,
		UL:         Point{X: FillFloat, Y: FillFloat},
		LR:         Point{X: FillFloat, Y: FillFloat},
		GridOrigin: GridOriginUnset,
	}
}

// Kind returns the projection kind, or ProjectionUnset when no parameters are set.
func (p Projection) Kind() ProjectionKind {
	if p.Params == nil {
		return ProjectionUnset
	}
	return p.Params.Kind()
}

// UTMZone returns the signed zone number for UTM projections.
func (p Projection) UTMZone() (int, bool) {
	utm, ok := p.Params.(UTMParams)
	return utm.Zone, ok
}

// datumZoneRange lists the northern UTM zones each North American datum covers.
var datumZoneRange = map[Datum][2]int{
	DatumNAD27: {3, 22},
	DatumNAD83: {3, 23},
}

// CheckDatum enforces the datum constraints: NAD27 and NAD83 are only
// valid with UTM in their bounded northern zone ranges.
func (p Projection) CheckDatum() error {
	switch p.Datum {
	case DatumNone, DatumWGS84:
		return nil
	case DatumNAD27, DatumNAD83:
	default:
		return fmt.Errorf("%w: datum code %d", ardmeta.ErrUnsupportedEnumValue, int(p.Datum))
	}

	zone, ok := p.UTMZone()
	if !ok {
		return nil
	}
	r := datumZoneRange[p.Datum]
	if zone < r[0] || zone > r[1] {
		return fmt.Errorf("%w: datum %s requires UTM zone %dN to %dN, got %d",
			ardmeta.ErrUnsupportedEnumValue, p.Datum, r[0], r[1], zone)
	}
	return nil
}
