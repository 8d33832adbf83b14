package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/ardmeta/internal/metadata"
	"github.com/vvka-141/ardmeta/pkg/ardmeta"
)

func TestLoad_AllFields(t *testing.T) {
	dir := t.TempDir()
	content := `schema:
  path: /opt/ard/ard_metadata_v1_0.xsd
  url: https://mirror.test/ard.xsd
  cache_dir: /var/cache/ardmeta

validator:
  command: /usr/local/bin/xmllint
  timeout: 1m

retry:
  max_attempts: 0
  initial_delay: 50ms
  max_delay: 2s

append:
  suffix: _extra
  band_count: 5
  bands_file: bands.yaml

raster:
  output_dir: out
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	s, err := cfg.Resolve()
	require.NoError(t, err)
	assert.Equal(t, Settings{
		SchemaPath:        "/opt/ard/ard_metadata_v1_0.xsd",
		SchemaURL:         "https://mirror.test/ard.xsd",
		SchemaCacheDir:    "/var/cache/ardmeta",
		ValidatorCommand:  "/usr/local/bin/xmllint",
		ValidateTimeout:   time.Minute,
		RetryMaxAttempts:  0,
		RetryInitialDelay: 50 * time.Millisecond,
		RetryMaxDelay:     2 * time.Second,
		AppendSuffix:      "_extra",
		AppendBandCount:   5,
		AppendBandsFile:   "bands.yaml",
		RasterOutputDir:   "out",
	}, s)
}

func TestResolve_Defaults(t *testing.T) {
	var cfg *ProjectConfig
	s, err := cfg.Resolve()
	require.NoError(t, err)

	assert.Equal(t, "xmllint", s.ValidatorCommand)
	assert.Equal(t, ardmeta.DefaultValidateTimeout, s.ValidateTimeout)
	assert.Equal(t, ardmeta.DefaultRetryMaxAttempts, s.RetryMaxAttempts)
	assert.Equal(t, "_new", s.AppendSuffix)
	assert.Equal(t, 3, s.AppendBandCount)
	assert.Equal(t, "output", s.RasterOutputDir)
	assert.NotEmpty(t, s.SchemaCacheDir)

	empty, err := (&ProjectConfig{}).Resolve()
	require.NoError(t, err)
	assert.Equal(t, s, empty)
}

func TestResolve_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  ProjectConfig
	}{
		{"bad timeout", ProjectConfig{Validator: ValidatorConfig{Timeout: "soon"}}},
		{"negative delay", ProjectConfig{Retry: RetryConfig{MaxDelay: "-1s"}}},
		{"negative band count", ProjectConfig{Append: AppendConfig{BandCount: -1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.Resolve()
			assert.ErrorIs(t, err, ardmeta.ErrInvalidConfig)
			assert.Equal(t, ardmeta.ExitConfigError, ardmeta.ExitCodeForError(err))
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound))
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("schema: [unclosed"), 0644))

	_, err := Load(dir)
	assert.ErrorIs(t, err, ardmeta.ErrInvalidConfig)
}

func TestLoadBands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bands.yaml")
	content := `bands:
  - product: sr_refl
    name: sr_band1
    category: image
    data_type: INT16
    nlines: 5000
    nsamps: 5000
    fill_value: -9999
    pixel_size: [30, 30]
    pixel_units: meters
    resample_method: cubic convolution
    production_date: "2017-08-01T13:00:00Z"
  - product: pixel_qa
    name: pixel_qa
    data_type: UINT16
    bits: [fill, clear, water]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	bands, err := LoadBands(path)
	require.NoError(t, err)
	require.Len(t, bands, 2)

	b := bands[0]
	assert.Equal(t, "sr_band1", b.Name)
	assert.Equal(t, metadata.DataTypeInt16, b.DataType)
	assert.Equal(t, 5000, b.NSamps)
	assert.Equal(t, int64(-9999), b.FillValue)
	assert.Equal(t, 30.0, b.PixelSizeY)
	assert.Equal(t, metadata.ResampleCubicConvolution, b.ResampleMethod)
	assert.Equal(t, metadata.FillString, b.Source)

	qa := bands[1]
	assert.Equal(t, []string{"fill", "clear", "water"}, qa.Bits)
	assert.Equal(t, metadata.FillInt, qa.NLines)
	assert.Equal(t, metadata.FillString, qa.Category)
}

func TestLoadBands_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing name", "bands:\n  - product: sr_refl\n"},
		{"unknown data type", "bands:\n  - product: a\n    name: b\n    data_type: COMPLEX\n"},
		{"unpaired dimensions", "bands:\n  - product: a\n    name: b\n    nlines: 10\n"},
		{"unknown resample", "bands:\n  - product: a\n    name: b\n    resample_method: lanczos\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bands.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			_, err := LoadBands(path)
			assert.ErrorIs(t, err, ardmeta.ErrInvalidConfig)
		})
	}
}

func TestDefaultBands(t *testing.T) {
	bands := DefaultBands(3)
	require.Len(t, bands, 3)
	assert.Equal(t, "band1", bands[0].Name)
	assert.Equal(t, "band3", bands[2].Name)
	assert.Equal(t, "appended", bands[1].Product)
}
