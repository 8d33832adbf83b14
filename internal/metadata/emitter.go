package metadata

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Write emits doc as a complete metadata document. An empty Namespace or
// Version is written as the current ARD namespace and schema version, so a
// document parsed without them reads back with those values set.
func Write(w io.Writer, doc *Document) error {
	return emit(w, doc, nil)
}

// Append emits doc with extra written after the tile's existing bands, in
// one bands block. doc itself is not modified.
func Append(w io.Writer, doc *Document, extra []Band) error {
	return emit(w, doc, extra)
}

func emit(w io.Writer, doc *Document, extra []Band) error {
	if err := checkEmittable(doc, extra); err != nil {
		return err
	}

	e := &emitter{w: bufio.NewWriter(w)}
	e.header(doc)

	e.printf("<tile_metadata>\n")
	e.tileGlobal(doc.Tile.Global, len(doc.Scenes))
	e.bands(doc.Tile.Bands, extra)
	e.printf("</tile_metadata>\n")

	for i := range doc.Scenes {
		s := &doc.Scenes[i]
		e.printf("\n<scene_metadata>\n")
		e.printf("    <index>%d</index>\n", i+1)
		e.sceneGlobal(s.Global)
		e.bands(s.Bands, nil)
		e.printf("</scene_metadata>\n")
	}
	e.printf("</ard_metadata>\n")

	if e.err != nil {
		return e.err
	}
	return e.w.Flush()
}

// checkEmittable rejects models that cannot produce a document that parses back.
func checkEmittable(doc *Document, extra []Band) error {
	if doc == nil {
		return newError(KindMissingRequiredContent, elemRoot, "nil document")
	}
	if len(doc.Scenes) > MaxScenes {
		return newError(KindTooManyScenes, elemScene, "%d scenes, a tile carries at most %d", len(doc.Scenes), MaxScenes)
	}
	if n := len(doc.Tile.Bands) + len(extra); n > MaxBands {
		return newError(KindBandIndexOverflow, elemBands, "tile would have %d bands, limit is %d", n, MaxBands)
	}
	for i, s := range doc.Scenes {
		if len(s.Bands) > MaxBands {
			return newError(KindBandIndexOverflow, elemBands, "scene %d has %d bands, limit is %d", i+1, len(s.Bands), MaxBands)
		}
	}
	if doc.Tile.Global.Projection.Params == nil {
		return newError(KindMissingRequiredContent, "projection_information", "tile projection has no parameters")
	}
	for i := range doc.Tile.Bands {
		if err := checkDescriptions(&doc.Tile.Bands[i]); err != nil {
			return err
		}
	}
	for i := range extra {
		if err := checkDescriptions(&extra[i]); err != nil {
			return err
		}
	}
	for _, s := range doc.Scenes {
		for i := range s.Bands {
			if err := checkDescriptions(&s.Bands[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkDescriptions rejects empty bit and class text, which the parser refuses.
func checkDescriptions(b *Band) error {
	for i, desc := range b.Bits {
		if strings.TrimSpace(desc) == "" {
			return newError(KindMissingRequiredContent, "bit", "band %q bit %d has no description", b.Name, i)
		}
	}
	for _, c := range b.Classes {
		if strings.TrimSpace(c.Description) == "" {
			return newError(KindMissingRequiredContent, "class", "band %q class %d has no description", b.Name, c.Code)
		}
	}
	return nil
}

// emitter writes indented markup and keeps the first write error.
type emitter struct {
	w   *bufio.Writer
	err error
}

func (e *emitter) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

// elem writes <name>text</name> at the given indent.
func (e *emitter) elem(indent int, name, text string) {
	e.printf("%s<%s>%s</%s>\n", strings.Repeat(" ", indent), name, escape(text), name)
}

// optElem writes elem only when text is set.
func (e *emitter) optElem(indent int, name, text string) {
	if text != FillString {
		e.elem(indent, name, text)
	}
}

func (e *emitter) header(doc *Document) {
	ns := doc.Namespace
	if ns == "" {
		ns = Namespace
	}
	version := doc.Version
	if version == "" {
		version = SchemaVersion
	}
	e.printf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n\n")
	e.printf("<ard_metadata version=\"%s\"\n", escape(version))
	e.printf("xmlns=\"%s\"\n", escape(ns))
	e.printf("xmlns:xsi=\"%s\"\n", xsiNamespace)
	e.printf("xsi:schemaLocation=\"%s %s\">\n\n", escape(ns), SchemaURL)
}

func (e *emitter) tileGlobal(g TileGlobal, nscenes int) {
	e.printf("    <global_metadata>\n")
	e.elem(8, "data_provider", g.DataProvider)
	e.optElem(8, "satellite", g.Satellite)
	e.optElem(8, "instrument", g.Instrument)
	e.optElem(8, "level1_collection", g.Level1Collection)
	e.optElem(8, "ard_version", g.ARDVersion)
	e.optElem(8, "region", g.Region)
	e.elem(8, "acquisition_date", g.AcquisitionDate)
	e.elem(8, "product_id", g.ProductID)
	e.elem(8, "production_date", g.ProductionDate)
	e.printf("        <bounding_coordinates>\n")
	e.elem(12, "west", formatFloat(g.Bounds.West))
	e.elem(12, "east", formatFloat(g.Bounds.East))
	e.elem(12, "north", formatFloat(g.Bounds.North))
	e.elem(12, "south", formatFloat(g.Bounds.South))
	e.printf("        </bounding_coordinates>\n")
	e.projection(g.Projection)
	e.elem(8, "orientation_angle", formatFloat(g.OrientationAngle))
	e.printf("        <tile_grid h=\"%03d\" v=\"%03d\"/>\n", g.H, g.V)
	sceneCount := g.SceneCount
	if sceneCount == FillInt {
		sceneCount = nscenes
	}
	e.elem(8, "scene_count", strconv.Itoa(sceneCount))
	e.elem(8, "cloud_cover", formatFloat(g.CloudCover))
	e.elem(8, "cloud_shadow", formatFloat(g.CloudShadow))
	e.elem(8, "snow_ice", formatFloat(g.SnowIce))
	e.elem(8, "fill", formatFloat(g.Fill))
	e.printf("    </global_metadata>\n\n")
}

func (e *emitter) projection(p Projection) {
	e.printf("        <projection_information projection=\"%s\"", p.Kind())
	if p.Datum != DatumNone {
		e.printf(" datum=\"%s\"", p.Datum)
	}
	e.printf(" units=\"%s\">\n", escape(p.Units))
	e.printf("            <corner_point location=\"UL\" x=\"%s\" y=\"%s\"/>\n", formatFloat(p.UL.X), formatFloat(p.UL.Y))
	e.printf("            <corner_point location=\"LR\" x=\"%s\" y=\"%s\"/>\n", formatFloat(p.LR.X), formatFloat(p.LR.Y))
	if p.GridOrigin != GridOriginUnset {
		e.elem(12, "grid_origin", p.GridOrigin.String())
	}

	switch params := p.Params.(type) {
	case UTMParams:
		e.printf("            <utm_proj_params>\n")
		e.elem(16, "zone_code", strconv.Itoa(params.Zone))
		e.printf("            </utm_proj_params>\n")
	case AlbersParams:
		e.printf("            <albers_proj_params>\n")
		e.elem(16, "standard_parallel1", formatFloat(params.StandardParallel1))
		e.elem(16, "standard_parallel2", formatFloat(params.StandardParallel2))
		e.elem(16, "central_meridian", formatFloat(params.CentralMeridian))
		e.elem(16, "origin_latitude", formatFloat(params.OriginLatitude))
		e.elem(16, "false_easting", formatFloat(params.FalseEasting))
		e.elem(16, "false_northing", formatFloat(params.FalseNorthing))
		e.printf("            </albers_proj_params>\n")
	case PolarStereographicParams:
		e.printf("            <ps_proj_params>\n")
		e.elem(16, "longitude_pole", formatFloat(params.LongitudePole))
		e.elem(16, "latitude_true_scale", formatFloat(params.LatitudeTrueScale))
		e.elem(16, "false_easting", formatFloat(params.FalseEasting))
		e.elem(16, "false_northing", formatFloat(params.FalseNorthing))
		e.printf("            </ps_proj_params>\n")
	case SinusoidalParams:
		e.printf("            <sin_proj_params>\n")
		e.elem(16, "sphere_radius", formatFloat(params.SphereRadius))
		e.elem(16, "central_meridian", formatFloat(params.CentralMeridian))
		e.elem(16, "false_easting", formatFloat(params.FalseEasting))
		e.elem(16, "false_northing", formatFloat(params.FalseNorthing))
		e.printf("            </sin_proj_params>\n")
	}
	e.printf("        </projection_information>\n")
}

func (e *emitter) sceneGlobal(g SceneGlobal) {
	e.printf("    <global_metadata>\n")
	e.elem(8, "data_provider", g.DataProvider)
	e.elem(8, "satellite", g.Satellite)
	e.elem(8, "instrument", g.Instrument)
	e.elem(8, "acquisition_date", g.AcquisitionDate)
	e.elem(8, "scene_center_time", g.SceneCenterTime)
	e.elem(8, "level1_production_date", g.Level1ProductionDate)
	e.printf("        <wrs system=\"%d\" path=\"%d\" row=\"%d\"/>\n", g.WRS.System, g.WRS.Path, g.WRS.Row)
	e.elem(8, "request_id", g.RequestID)
	e.elem(8, "scene_id", g.SceneID)
	e.elem(8, "product_id", g.ProductID)
	if g.ElevationSource != ElevationUnset {
		e.elem(8, "elevation_source", g.ElevationSource.String())
	}
	if g.SensorMode != SensorModeUnset {
		e.elem(8, "sensor_mode", g.SensorMode.String())
	}
	if g.EphemerisType != EphemerisUnset {
		e.elem(8, "ephemeris_type", g.EphemerisType.String())
	}
	e.elem(8, "cpf_name", g.CPFName)
	e.elem(8, "lpgs_metadata_file", g.LPGSMetadataFile)
	e.optFloatElem(8, "geometric_rmse_model", g.GeometricRMSEModel)
	e.optFloatElem(8, "geometric_rmse_model_x", g.GeometricRMSEModelX)
	e.optFloatElem(8, "geometric_rmse_model_y", g.GeometricRMSEModelY)
	e.printf("    </global_metadata>\n\n")
}

func (e *emitter) optFloatElem(indent int, name string, v float64) {
	if !IsFillFloat(v) {
		e.elem(indent, name, formatFloat(v))
	}
}

// bands writes one bands block holding list followed by extra.
func (e *emitter) bands(list, extra []Band) {
	e.printf("    <bands>\n")
	for i := range list {
		e.band(&list[i])
	}
	for i := range extra {
		e.band(&extra[i])
	}
	e.printf("    </bands>\n")
}

func (e *emitter) band(b *Band) {
	e.printf("        <band product=\"%s\"", escape(b.Product))
	if b.Source != FillString {
		e.printf(" source=\"%s\"", escape(b.Source))
	}
	e.printf(" name=\"%s\" category=\"%s\" data_type=\"%s\"", escape(b.Name), escape(b.Category), b.DataType)
	if b.NLines != FillInt {
		e.printf(" nlines=\"%d\"", b.NLines)
	}
	if b.NSamps != FillInt {
		e.printf(" nsamps=\"%d\"", b.NSamps)
	}
	if b.FillValue != FillInt {
		e.printf(" fill_value=\"%d\"", b.FillValue)
	}
	if b.SaturateValue != FillInt {
		e.printf(" saturate_value=\"%d\"", b.SaturateValue)
	}
	if !IsFillFloat(b.ScaleFactor) {
		e.printf(" scale_factor=\"%s\"", formatFloat(b.ScaleFactor))
	}
	if !IsFillFloat(b.AddOffset) {
		e.printf(" add_offset=\"%s\"", formatFloat(b.AddOffset))
	}
	e.printf(">\n")

	e.elem(12, "short_name", b.ShortName)
	e.elem(12, "long_name", b.LongName)
	e.elem(12, "file_name", b.FileName)
	e.printf("            <pixel_size x=\"%s\" y=\"%s\" units=\"%s\"/>\n",
		formatFloat(b.PixelSizeX), formatFloat(b.PixelSizeY), escape(b.PixelUnits))
	e.elem(12, "resample_method", b.ResampleMethod.String())
	e.elem(12, "data_units", b.DataUnits)
	if !IsFillFloat(b.ValidMin) || !IsFillFloat(b.ValidMax) {
		e.printf("            <valid_range")
		if !IsFillFloat(b.ValidMin) {
			e.printf(" min=\"%s\"", formatFloat(b.ValidMin))
		}
		if !IsFillFloat(b.ValidMax) {
			e.printf(" max=\"%s\"", formatFloat(b.ValidMax))
		}
		e.printf("/>\n")
	}
	if len(b.Bits) > 0 {
		e.printf("            <bitmap_description>\n")
		for i, desc := range b.Bits {
			e.printf("                <bit num=\"%d\">%s</bit>\n", i, escape(desc))
		}
		e.printf("            </bitmap_description>\n")
	}
	if len(b.Classes) > 0 {
		e.printf("            <class_values>\n")
		for _, c := range b.Classes {
			e.printf("                <class num=\"%d\">%s</class>\n", c.Code, escape(c.Description))
		}
		e.printf("            </class_values>\n")
	}
	e.optElem(12, "app_version", b.AppVersion)
	e.elem(12, "production_date", b.ProductionDate)
	e.printf("        </band>\n")
}

// formatFloat prints six decimals when that is exact and the shortest
// exact form otherwise, so every value parses back unchanged.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 6, 64)
	if back, err := strconv.ParseFloat(s, 64); err == nil && back == v {
		return s
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escape(s string) string {
	var b strings.Builder
	// strings.Builder never fails
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
