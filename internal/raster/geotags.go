package raster

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vvka-141/ardmeta/internal/metadata"
	"github.com/vvka-141/ardmeta/pkg/ardmeta"
)

// ModelType follows the GeoTIFF GTModelTypeGeoKey values.
type ModelType int

const (
	ModelProjected  ModelType = 1
	ModelGeographic ModelType = 2
)

func (m ModelType) String() string {
	if m == ModelGeographic {
		return "geographic"
	}
	return "projected"
}

// UserDefined is the EPSG code used when no registered system applies.
const UserDefined = 32767

// GeoTags is the geolocation of a raster with point-registered pixels: the
// tie point maps raster (0,0) to the center of the upper-left pixel.
type GeoTags struct {
	Model      ModelType
	EPSG       int
	Citation   string
	TiePoint   [6]float64
	PixelScale [3]float64
}

var datumCitations = map[metadata.Datum]string{
	metadata.DatumWGS84: "WGS 1984",
	metadata.DatumNAD83: "North American Datum 1983",
	metadata.DatumNAD27: "North American Datum 1927",
}

var geographicEPSG = map[metadata.Datum]int{
	metadata.DatumWGS84: 4326,
	metadata.DatumNAD83: 4269,
	metadata.DatumNAD27: 4267,
}

// utmEPSGBase is added to the zone number. Southern zones exist only for WGS84.
var utmEPSGBase = map[metadata.Datum]int{
	metadata.DatumWGS84: 32600,
	metadata.DatumNAD83: 26900,
	metadata.DatumNAD27: 26700,
}

// GeoTagsFor computes the geolocation of band under projection p.
func GeoTagsFor(p metadata.Projection, band metadata.Band) (GeoTags, error) {
	if metadata.IsFillFloat(band.PixelSizeX) || metadata.IsFillFloat(band.PixelSizeY) {
		return GeoTags{}, fmt.Errorf("%w: band %s has no pixel size", ardmeta.ErrRasterIO, band.Name)
	}
	if err := p.CheckDatum(); err != nil {
		return GeoTags{}, err
	}

	tags := GeoTags{PixelScale: [3]float64{band.PixelSizeX, band.PixelSizeY, 0}}
	tags.TiePoint[3], tags.TiePoint[4] = p.UL.X, p.UL.Y
	if p.GridOrigin != metadata.GridOriginCenter {
		// corners locate the outer edge of the upper-left pixel
		tags.TiePoint[3] += band.PixelSizeX / 2
		tags.TiePoint[4] -= band.PixelSizeY / 2
	}

	datum := datumCitations[p.Datum]
	switch params := p.Params.(type) {
	case metadata.GeographicParams:
		tags.Model = ModelGeographic
		tags.Citation = strings.TrimSpace("Geographic (Longitude, Latitude) " + datum)
		tags.EPSG = UserDefined
		if code, ok := geographicEPSG[p.Datum]; ok {
			tags.EPSG = code
		}
	case metadata.UTMParams:
		base, ok := utmEPSGBase[p.Datum]
		if !ok {
			return GeoTags{}, fmt.Errorf("%w: UTM projection requires a datum", ardmeta.ErrUnsupportedEnumValue)
		}
		zone, hemisphere := params.Zone, 'N'
		if zone < 0 {
			zone, hemisphere = -zone, 'S'
			base += 100
		}
		if zone < 1 || zone > 60 {
			return GeoTags{}, fmt.Errorf("%w: UTM zone %d", ardmeta.ErrUnsupportedEnumValue, params.Zone)
		}
		tags.Model = ModelProjected
		tags.EPSG = base + zone
		tags.Citation = fmt.Sprintf("UTM Zone %d %c with %s", zone, hemisphere, p.Datum)
	case metadata.AlbersParams, metadata.PolarStereographicParams, metadata.SinusoidalParams:
		tags.Model = ModelProjected
		tags.EPSG = UserDefined
		tags.Citation = p.Kind().String() + "|" + datum
	default:
		return GeoTags{}, fmt.Errorf("%w: projection has no parameters", ardmeta.ErrMissingRequiredContent)
	}
	return tags, nil
}

// WorldFile renders tags as the six lines of an ESRI world file.
func (g GeoTags) WorldFile() string {
	lines := []float64{g.PixelScale[0], 0, 0, -g.PixelScale[1], g.TiePoint[3], g.TiePoint[4]}
	var b strings.Builder
	for _, v := range lines {
		b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
		b.WriteByte('\n')
	}
	return b.String()
}

// WorldFilePath returns the .tfw path beside a raster path.
func WorldFilePath(rasterPath string) string {
	if i := strings.LastIndexByte(rasterPath, '.'); i > strings.LastIndexByte(rasterPath, '/') {
		return rasterPath[:i] + ".tfw"
	}
	return rasterPath + ".tfw"
}

// WriteWorldFile writes the world file for rasterPath.
func WriteWorldFile(rasterPath string, tags GeoTags) error {
	path := WorldFilePath(rasterPath)
	if err := os.WriteFile(path, []byte(tags.WorldFile()), 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ardmeta.ErrRasterIO, path, err)
	}
	return nil
}
