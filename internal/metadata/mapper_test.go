package metadata

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/ardmeta/pkg/ardmeta"
)

func TestParse_UTMTileWithTwoScenes(t *testing.T) {
	doc, _ := mustParse(t, documentXML(tileProjectionUTM, sampleBand+qaBand, sceneXML("a"), sceneXML("b")))

	assert.Equal(t, Namespace, doc.Namespace)
	assert.Equal(t, "1.0", doc.Version)
	assert.Equal(t, 2, doc.NScenes())

	g := doc.Tile.Global
	assert.Equal(t, "USGS/EROS", g.DataProvider)
	assert.Equal(t, "CU", g.Region)
	assert.Equal(t, 12.5, g.CloudCover)
	assert.Equal(t, 30.673599, g.Fill)
	assert.Equal(t, -108.440382, g.Bounds.West)
	assert.Equal(t, 3, g.H)
	assert.Equal(t, 8, g.V)
	assert.Equal(t, 2, g.SceneCount)

	p := g.Projection
	assert.Equal(t, ProjectionUTM, p.Kind())
	zone, ok := p.UTMZone()
	require.True(t, ok)
	assert.Equal(t, 13, zone)
	assert.Equal(t, DatumWGS84, p.Datum)
	assert.Equal(t, "meters", p.Units)
	assert.Equal(t, Point{X: -2265585, Y: 3164805}, p.UL)
	assert.Equal(t, Point{X: -2115585, Y: 3014805}, p.LR)
	assert.Equal(t, GridOriginUL, p.GridOrigin)

	require.Len(t, doc.Tile.Bands, 2)
	b := doc.Tile.Bands[0]
	assert.Equal(t, "toa_refl", b.Product)
	assert.Equal(t, "level1", b.Source)
	assert.Equal(t, DataTypeInt16, b.DataType)
	assert.Equal(t, 5000, b.NLines)
	assert.Equal(t, int64(-9999), b.FillValue)
	assert.Equal(t, 20000, b.SaturateValue)
	assert.Equal(t, 0.0001, b.ScaleFactor)
	assert.True(t, IsFillFloat(b.AddOffset))
	assert.Equal(t, ResampleNone, b.ResampleMethod)
	assert.Equal(t, -2000.0, b.ValidMin)
	assert.Equal(t, "ARD_1.0", b.AppVersion)

	qa := doc.Tile.Bands[1]
	assert.Equal(t, FillString, qa.Source)
	assert.Equal(t, []string{"fill", "clear", "water"}, qa.Bits)
	assert.Equal(t, []ClassValue{{0, "not determined"}, {1, "no cloud"}}, qa.Classes)
	assert.Equal(t, FillInt, qa.SaturateValue)

	require.Len(t, doc.Scenes, 2)
	s := doc.Scenes[1].Global
	assert.Equal(t, "b", s.SceneID)
	assert.Equal(t, WRS{System: 2, Path: 32, Row: 32}, s.WRS)
	assert.Equal(t, ElevationGLS2000, s.ElevationSource)
	assert.Equal(t, SensorModeSAM, s.SensorMode)
	assert.Equal(t, EphemerisDefinitive, s.EphemerisType)
	assert.Equal(t, 5.25, s.GeometricRMSEModelY)
	assert.Len(t, doc.Scenes[1].Bands, 1)
}

func TestParse_ProjectionKinds(t *testing.T) {
	corners := `<corner_point location="UL" x="1" y="2"/><corner_point location="LR" x="3" y="4"/>`
	tests := []struct {
		name string
		proj string
		want ProjectionParams
	}{
		{
			name: "geographic",
			proj: `<projection_information projection="GEO" datum="WGS84" units="degrees">` + corners + `</projection_information>`,
			want: GeographicParams{},
		},
		{
			name: "albers",
			proj: `<projection_information projection="AEA" datum="WGS84" units="meters">` + corners + `
				<albers_proj_params>
					<standard_parallel1>29.5</standard_parallel1>
					<standard_parallel2>45.5</standard_parallel2>
					<central_meridian>-96</central_meridian>
					<origin_latitude>23</origin_latitude>
					<false_easting>0</false_easting>
					<false_northing>0</false_northing>
				</albers_proj_params></projection_information>`,
			want: AlbersParams{StandardParallel1: 29.5, StandardParallel2: 45.5, CentralMeridian: -96, OriginLatitude: 23},
		},
		{
			name: "polar stereographic",
			proj: `<projection_information projection="PS" datum="WGS84" units="meters">` + corners + `
				<ps_proj_params>
					<longitude_pole>-45</longitude_pole>
					<latitude_true_scale>70</latitude_true_scale>
					<false_easting>1</false_easting>
					<false_northing>2</false_northing>
				</ps_proj_params></projection_information>`,
			want: PolarStereographicParams{LongitudePole: -45, LatitudeTrueScale: 70, FalseEasting: 1, FalseNorthing: 2},
		},
		{
			name: "sinusoidal",
			proj: `<projection_information projection="SIN" units="meters">` + corners + `
				<sin_proj_params>
					<sphere_radius>6371007.181</sphere_radius>
					<central_meridian>0</central_meridian>
					<false_easting>0</false_easting>
					<false_northing>0</false_northing>
				</sin_proj_params></projection_information>`,
			want: SinusoidalParams{SphereRadius: 6371007.181},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, _ := mustParse(t, documentXML(tt.proj, ""))
			assert.Equal(t, tt.want, doc.Tile.Global.Projection.Params)
			assert.Equal(t, tt.want.Kind(), doc.Tile.Global.Projection.Kind())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	albersWithUTM := `<projection_information projection="AEA" datum="WGS84" units="meters">
		<utm_proj_params><zone_code>13</zone_code></utm_proj_params></projection_information>`
	utmWithoutBlock := `<projection_information projection="UTM" datum="WGS84" units="meters"/>`
	utmTwice := `<projection_information projection="UTM" units="meters">
		<utm_proj_params><zone_code>13</zone_code></utm_proj_params>
		<utm_proj_params><zone_code>14</zone_code></utm_proj_params></projection_information>`
	unknownProjection := `<projection_information projection="LCC" units="meters"/>`
	gapBits := strings.Replace(qaBand, `<bit num="2">water</bit>`, `<bit num="3">water</bit>`, 1)
	dupBits := strings.Replace(qaBand, `<bit num="2">water</bit>`, `<bit num="1">water</bit>`, 1)
	noNumBits := strings.Replace(qaBand, `<bit num="2">water</bit>`, `<bit>water</bit>`, 1)
	negativeBits := strings.Replace(qaBand, `<bit num="2">water</bit>`, `<bit num="-1">water</bit>`, 1)
	badDataType := strings.Replace(sampleBand, `data_type="INT16"`, `data_type="COMPLEX"`, 1)
	badNumber := strings.Replace(sampleBand, `nlines="5000"`, `nlines="lots"`, 1)
	emptyName := strings.Replace(sampleBand, `<short_name>LC08TOA</short_name>`, `<short_name>   </short_name>`, 1)
	longName := strings.Replace(sampleBand, "LC08TOA", strings.Repeat("x", MaxFieldLength), 1)

	tests := []struct {
		name string
		doc  string
		kind Kind
	}{
		{"four scenes", documentXML(tileProjectionUTM, "", sceneXML("a"), sceneXML("b"), sceneXML("c"), sceneXML("d")), KindTooManyScenes},
		{"param block of another kind", documentXML(albersWithUTM, ""), KindProjectionParamMismatch},
		{"missing param block", documentXML(utmWithoutBlock, ""), KindMissingRequiredContent},
		{"param block twice", documentXML(utmTwice, ""), KindDuplicateSection},
		{"unknown projection", documentXML(unknownProjection, ""), KindUnsupportedEnumValue},
		{"bit gap", documentXML(tileProjectionUTM, gapBits), KindInvalidBitmap},
		{"bit described twice", documentXML(tileProjectionUTM, dupBits), KindInvalidBitmap},
		{"bit without num", documentXML(tileProjectionUTM, noNumBits), KindMissingRequiredContent},
		{"negative bit num", documentXML(tileProjectionUTM, negativeBits), KindInvalidBitmap},
		{"unknown data type", documentXML(tileProjectionUTM, badDataType), KindUnsupportedEnumValue},
		{"non numeric attribute", documentXML(tileProjectionUTM, badNumber), KindInvalidValue},
		{"blank text content", documentXML(tileProjectionUTM, emptyName), KindMissingRequiredContent},
		{"field overflow", documentXML(tileProjectionUTM, longName), KindFieldOverflow},
		{"truncated", `<ard_metadata xmlns="http://ard.cr.usgs.gov/v1"><tile_metadata>`, KindMalformedDocument},
		{"wrong root", `<metadata xmlns="http://ard.cr.usgs.gov/v1"/>`, KindMalformedDocument},
		{"no tile section", `<ard_metadata xmlns="http://ard.cr.usgs.gov/v1"/>`, KindMissingRequiredContent},
		{
			"two tile sections",
			`<ard_metadata xmlns="http://ard.cr.usgs.gov/v1"><tile_metadata/><tile_metadata/></ard_metadata>`,
			KindDuplicateSection,
		},
		{
			"two bands blocks",
			`<ard_metadata xmlns="http://ard.cr.usgs.gov/v1"><tile_metadata><bands/><bands/></tile_metadata></ard_metadata>`,
			KindDuplicateSection,
		},
		{
			"bands outside a section",
			`<ard_metadata xmlns="http://ard.cr.usgs.gov/v1"><bands/></ard_metadata>`,
			KindMalformedDocument,
		},
		{
			"scene inside tile",
			`<ard_metadata xmlns="http://ard.cr.usgs.gov/v1"><tile_metadata><scene_metadata/></tile_metadata></ard_metadata>`,
			KindMalformedDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(strings.NewReader(tt.doc), nil)
			requireKind(t, err, tt.kind)
			assert.Nil(t, doc, "no document is published on failure")
		})
	}
}

func TestParse_ErrorsMatchSentinels(t *testing.T) {
	_, err := Parse(strings.NewReader(documentXML(tileProjectionUTM, "", sceneXML("a"), sceneXML("b"), sceneXML("c"), sceneXML("d"))), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ardmeta.ErrTooManyScenes))
	assert.True(t, ardmeta.IsStructural(err))
	assert.Equal(t, ardmeta.ExitDocumentError, ardmeta.ExitCodeForError(err))

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "scene_metadata", e.Element)
	assert.Positive(t, e.Line)
}

func TestParse_TooManyBands(t *testing.T) {
	bands := strings.Repeat(sampleBand, MaxBands+1)
	_, err := Parse(strings.NewReader(documentXML(tileProjectionUTM, bands)), nil)
	requireKind(t, err, KindBandIndexOverflow)

	doc, _ := mustParse(t, documentXML(tileProjectionUTM, strings.Repeat(sampleBand, MaxBands)))
	assert.Len(t, doc.Tile.Bands, MaxBands)
}

func TestParse_DeepNestingFails(t *testing.T) {
	depth := MaxStackDepth + 5
	var b strings.Builder
	b.WriteString(`<ard_metadata xmlns="http://ard.cr.usgs.gov/v1"><tile_metadata>`)
	for i := 0; i < depth; i++ {
		b.WriteString("<x>")
	}
	for i := 0; i < depth; i++ {
		b.WriteString("</x>")
	}
	b.WriteString(`</tile_metadata></ard_metadata>`)

	_, err := Parse(strings.NewReader(b.String()), nil)
	requireKind(t, err, KindMalformedDocument)
}

func TestParse_ForeignNamespaceIsSkipped(t *testing.T) {
	foreign := `
      <ext:band xmlns:ext="urn:example:ext" product="ghost" name="ghost">
        <ext:bands><ext:band product="nested"/></ext:bands>
      </ext:band>`
	doc, logger := mustParse(t, documentXML(tileProjectionUTM, sampleBand+foreign+qaBand))

	require.Len(t, doc.Tile.Bands, 2)
	assert.Equal(t, "toa_refl", doc.Tile.Bands[0].Product)
	assert.Equal(t, "pixel_qa", doc.Tile.Bands[1].Product)
	assert.True(t, logger.warned("foreign namespace"))
}

func TestParse_ForeignSectionDoesNotOpenState(t *testing.T) {
	// a foreign scene_metadata must not count toward the scene limit
	foreignScene := `<x:scene_metadata xmlns:x="urn:example:ext"><x:bands/></x:scene_metadata>`
	doc, _ := mustParse(t, documentXML(tileProjectionUTM, "", sceneXML("a"), sceneXML("b"), sceneXML("c"), foreignScene))
	assert.Equal(t, 3, doc.NScenes())
}

func TestParse_Warnings(t *testing.T) {
	extraAttr := strings.Replace(sampleBand, `category="image"`, `category="image" colour="red"`, 1)
	extraChild := strings.Replace(qaBand, `<short_name>`, `<notes>n/a</notes><short_name>`, 1)
	doc, logger := mustParse(t, documentXML(tileProjectionUTM, extraAttr+extraChild+extraChild))

	assert.Len(t, doc.Tile.Bands, 3)
	assert.True(t, logger.warned(`unknown attribute "colour"`))
	assert.True(t, logger.warned("unknown element <notes>"))
	assert.True(t, logger.warned("appears more than once"))
}

func TestParse_NamespaceMismatchWarns(t *testing.T) {
	src := strings.ReplaceAll(documentXML(tileProjectionUTM, sampleBand), Namespace, "http://ard.cr.usgs.gov/v2")
	doc, logger := mustParse(t, src)

	assert.Equal(t, "http://ard.cr.usgs.gov/v2", doc.Namespace)
	assert.Len(t, doc.Tile.Bands, 1)
	assert.True(t, logger.warned("differs"))
}

func TestParse_SentinelsForAbsentFields(t *testing.T) {
	minimal := `<ard_metadata xmlns="http://ard.cr.usgs.gov/v1">
		<tile_metadata><global_metadata>
			<projection_information projection="GEO" units="degrees"/>
		</global_metadata></tile_metadata>
		<scene_metadata><global_metadata/></scene_metadata>
	</ard_metadata>`
	doc, _ := mustParse(t, minimal)

	g := doc.Tile.Global
	assert.Equal(t, FillString, g.DataProvider)
	assert.Equal(t, FillInt, g.SceneCount)
	assert.True(t, IsFillFloat(g.CloudCover))
	assert.Equal(t, DatumNone, g.Projection.Datum)
	assert.Equal(t, GridOriginUnset, g.Projection.GridOrigin)

	s := doc.Scenes[0].Global
	assert.Equal(t, ElevationUnset, s.ElevationSource)
	assert.Equal(t, SensorModeUnset, s.SensorMode)
	assert.Equal(t, EphemerisUnset, s.EphemerisType)
	assert.Equal(t, FillInt, s.WRS.Path)
}

func TestParseFile_SetsPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.xml")
	require.NoError(t, os.WriteFile(path, []byte(`<ard_metadata xmlns="http://ard.cr.usgs.gov/v1"><tile_metadata>`), 0o644))

	_, err := ParseFile(path, nil)
	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, path, e.FilePath)
	assert.Contains(t, err.Error(), path)

	_, err = ParseFile(filepath.Join(dir, "missing.xml"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func ExampleParse() {
	doc, err := Parse(strings.NewReader(documentXML(tileProjectionUTM, sampleBand)), nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(doc.Tile.Global.Projection.Kind(), doc.Tile.Bands[0].Name)
	// Output: UTM toa_band1
}
