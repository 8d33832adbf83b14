package metadata

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// recordingLogger keeps every message for assertions.
type recordingLogger struct {
	mu       sync.Mutex
	warnings []string
}

func (l *recordingLogger) Verbose(string, ...interface{}) {}
func (l *recordingLogger) Info(string, ...interface{})    {}
func (l *recordingLogger) Error(string, ...interface{})   {}

func (l *recordingLogger) Warn(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) warned(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, w := range l.warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

const tileProjectionUTM = `
    <projection_information projection="UTM" datum="WGS84" units="meters">
      <corner_point location="UL" x="-2265585.0" y="3164805.0"/>
      <corner_point location="LR" x="-2115585.0" y="3014805.0"/>
      <grid_origin>UL</grid_origin>
      <utm_proj_params>
        <zone_code>13</zone_code>
      </utm_proj_params>
    </projection_information>`

const sampleBand = `
      <band product="toa_refl" source="level1" name="toa_band1" category="image" data_type="INT16" nlines="5000" nsamps="5000" fill_value="-9999" saturate_value="20000" scale_factor="0.0001">
        <short_name>LC08TOA</short_name>
        <long_name>band 1 top-of-atmosphere reflectance</long_name>
        <file_name>LC08_CU_TAB1.tif</file_name>
        <pixel_size x="30" y="30" units="meters"/>
        <resample_method>none</resample_method>
        <data_units>reflectance</data_units>
        <valid_range min="-2000.000000" max="16000.000000"/>
        <app_version>ARD_1.0</app_version>
        <production_date>2017-08-01T13:00:00Z</production_date>
      </band>`

const qaBand = `
      <band product="pixel_qa" name="pixel_qa" category="qa" data_type="UINT16" nlines="5000" nsamps="5000" fill_value="1">
        <short_name>LC08PQA</short_name>
        <long_name>pixel quality attributes</long_name>
        <file_name>LC08_CU_PIXELQA.tif</file_name>
        <pixel_size x="30" y="30" units="meters"/>
        <resample_method>nearest neighbor</resample_method>
        <data_units>quality/feature classification</data_units>
        <bitmap_description>
          <bit num="1">clear</bit>
          <bit num="0">fill</bit>
          <bit num="2">water</bit>
        </bitmap_description>
        <class_values>
          <class num="0">not determined</class>
          <class num="1">no cloud</class>
        </class_values>
        <production_date>2017-08-01T13:00:00Z</production_date>
      </band>`

func sceneXML(id string) string {
	return `
  <scene_metadata>
    <index>1</index>
    <global_metadata>
      <data_provider>USGS/EROS</data_provider>
      <satellite>LANDSAT_8</satellite>
      <instrument>OLI/TIRS_Combined</instrument>
      <acquisition_date>2013-04-13</acquisition_date>
      <scene_center_time>17:38:39.7698190Z</scene_center_time>
      <level1_production_date>2017-04-19T03:10:53Z</level1_production_date>
      <wrs system="2" path="32" row="32"/>
      <request_id>0101704180002_00001</request_id>
      <scene_id>` + id + `</scene_id>
      <product_id>LC08_L1TP_032032_20130413_20170419_01_T1</product_id>
      <elevation_source>GLS2000</elevation_source>
      <sensor_mode>SAM</sensor_mode>
      <ephemeris_type>DEFINITIVE</ephemeris_type>
      <cpf_name>LC08CPF_20130401_20130630_01.02</cpf_name>
      <lpgs_metadata_file>LC08_L1TP_032032_20130413_20170419_01_T1_MTL.txt</lpgs_metadata_file>
      <geometric_rmse_model>7.123</geometric_rmse_model>
      <geometric_rmse_model_x>4.5</geometric_rmse_model_x>
      <geometric_rmse_model_y>5.25</geometric_rmse_model_y>
    </global_metadata>
    <bands>` + sampleBand + `
    </bands>
  </scene_metadata>`
}

// documentXML builds a document with the given projection element, tile
// bands and scene sections.
func documentXML(projection, bands string, scenes ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<ard_metadata version="1.0" xmlns="http://ard.cr.usgs.gov/v1"
  xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
  xsi:schemaLocation="http://ard.cr.usgs.gov/v1 http://espa.cr.usgs.gov/schema/ard/ard_metadata_v1_0.xsd">
  <tile_metadata>
    <global_metadata>
      <data_provider>USGS/EROS</data_provider>
      <satellite>LANDSAT_8</satellite>
      <instrument>OLI/TIRS_Combined</instrument>
      <level1_collection>01</level1_collection>
      <ard_version>1</ard_version>
      <region>CU</region>
      <acquisition_date>2013-04-13</acquisition_date>
      <product_id>LC08_CU_003008_20130413_20170801_C01_V01</product_id>
      <production_date>2017-08-01T13:00:00Z</production_date>
      <bounding_coordinates>
        <west>-108.440382</west>
        <east>-106.585532</east>
        <north>39.061876</north>
        <south>37.637748</south>
      </bounding_coordinates>` + projection + `
      <orientation_angle>0</orientation_angle>
      <tile_grid h="003" v="008"/>
      <scene_count>` + fmt.Sprint(len(scenes)) + `</scene_count>
      <cloud_cover>12.5</cloud_cover>
      <cloud_shadow>1.25</cloud_shadow>
      <snow_ice>0</snow_ice>
      <fill>30.673599</fill>
    </global_metadata>
    <bands>` + bands + `
    </bands>
  </tile_metadata>` + strings.Join(scenes, "") + `
</ard_metadata>
`
}

func mustParse(t *testing.T, doc string) (*Document, *recordingLogger) {
	t.Helper()
	logger := &recordingLogger{}
	parsed, err := Parse(strings.NewReader(doc), logger)
	require.NoError(t, err)
	return parsed, logger
}

// requireKind asserts err is an *Error of the given kind.
func requireKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, KindOf(err), "unexpected error: %v", err)
}
