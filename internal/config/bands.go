package config

import (
	"fmt"
	"os"

	"github.com/vvka-141/ardmeta/internal/metadata"
	"github.com/vvka-141/ardmeta/pkg/ardmeta"
	"gopkg.in/yaml.v3"
)

// BandTemplate is one band definition in a bands file. Omitted fields keep
// their fill values.
type BandTemplate struct {
	Product        string      `yaml:"product"`
	Source         string      `yaml:"source"`
	Name           string      `yaml:"name"`
	Category       string      `yaml:"category"`
	DataType       string      `yaml:"data_type"`
	NLines         *int        `yaml:"nlines"`
	NSamps         *int        `yaml:"nsamps"`
	FillValue      *int64      `yaml:"fill_value"`
	ShortName      string      `yaml:"short_name"`
	LongName       string      `yaml:"long_name"`
	FileName       string      `yaml:"file_name"`
	PixelSize      *[2]float64 `yaml:"pixel_size"`
	PixelUnits     string      `yaml:"pixel_units"`
	ResampleMethod string      `yaml:"resample_method"`
	DataUnits      string      `yaml:"data_units"`
	AppVersion     string      `yaml:"app_version"`
	ProductionDate string      `yaml:"production_date"`
	Bits           []string    `yaml:"bits"`
}

type bandsFile struct {
	Bands []BandTemplate `yaml:"bands"`
}

// LoadBands reads band templates from a YAML file of the form
//
//	bands:
//	  - product: sr_refl
//	    name: sr_band1
//	    data_type: INT16
func LoadBands(path string) ([]metadata.Band, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: bands file: %v", ardmeta.ErrInvalidConfig, err)
	}
	var f bandsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ardmeta.ErrInvalidConfig, path, err)
	}

	bands := make([]metadata.Band, 0, len(f.Bands))
	for i, tmpl := range f.Bands {
		b, err := tmpl.Band()
		if err != nil {
			return nil, fmt.Errorf("%w: %s band %d: %v", ardmeta.ErrInvalidConfig, path, i+1, err)
		}
		bands = append(bands, b)
	}
	return bands, nil
}

// Band converts the template to a metadata band.
func (t BandTemplate) Band() (metadata.Band, error) {
	if t.Product == "" || t.Name == "" {
		return metadata.Band{}, fmt.Errorf("product and name are required")
	}

	b := metadata.NewBand()
	strs := []struct {
		dst *string
		v   string
	}{
		{&b.Product, t.Product}, {&b.Source, t.Source}, {&b.Name, t.Name},
		{&b.Category, t.Category}, {&b.ShortName, t.ShortName}, {&b.LongName, t.LongName},
		{&b.FileName, t.FileName}, {&b.PixelUnits, t.PixelUnits}, {&b.DataUnits, t.DataUnits},
		{&b.AppVersion, t.AppVersion}, {&b.ProductionDate, t.ProductionDate},
	}
	for _, s := range strs {
		setString(s.dst, s.v)
	}

	if t.DataType != "" {
		dt, err := metadata.ParseDataType(t.DataType)
		if err != nil {
			return metadata.Band{}, err
		}
		b.DataType = dt
	}
	if t.ResampleMethod != "" {
		rm, err := metadata.ParseResampleMethod(t.ResampleMethod)
		if err != nil {
			return metadata.Band{}, err
		}
		b.ResampleMethod = rm
	}
	if (t.NLines == nil) != (t.NSamps == nil) {
		return metadata.Band{}, fmt.Errorf("nlines and nsamps must be given together")
	}
	if t.NLines != nil {
		b.NLines, b.NSamps = *t.NLines, *t.NSamps
	}
	if t.FillValue != nil {
		b.FillValue = *t.FillValue
	}
	if t.PixelSize != nil {
		b.PixelSizeX, b.PixelSizeY = t.PixelSize[0], t.PixelSize[1]
	}
	if len(t.Bits) > 0 {
		b.Bits = append([]string(nil), t.Bits...)
	}
	return b, nil
}

// DefaultBands returns n placeholder bands named band1, band2 and so on.
func DefaultBands(n int) []metadata.Band {
	bands := make([]metadata.Band, n)
	for i := range bands {
		b := metadata.NewBand()
		b.Product = "appended"
		b.Name = fmt.Sprintf("band%d", i+1)
		b.Category = "image"
		b.ShortName = fmt.Sprintf("APPB%d", i+1)
		b.LongName = fmt.Sprintf("appended band %d", i+1)
		b.FileName = fmt.Sprintf("appended_band%d.tif", i+1)
		bands[i] = b
	}
	return bands
}
