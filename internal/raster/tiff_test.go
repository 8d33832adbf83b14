package raster

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/ardmeta/internal/metadata"
	"github.com/vvka-141/ardmeta/pkg/ardmeta"
)

func bandOf(dt metadata.DataType, w, h int) metadata.Band {
	b := metadata.NewBand()
	b.Name = "qa"
	b.DataType = dt
	b.NSamps, b.NLines = w, h
	return b
}

func gray16(w, h int) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray16(x, y, color.Gray16{Y: uint16(x*1000 + y)})
		}
	}
	return img
}

func gray8(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 7)
	}
	return img
}

func TestTIFF_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		band metadata.Band
		img  image.Image
	}{
		{"uint16", bandOf(metadata.DataTypeUint16, 12, 9), gray16(12, 9)},
		{"int16", bandOf(metadata.DataTypeInt16, 5, 5), gray16(5, 5)},
		{"uint8", bandOf(metadata.DataTypeUint8, 16, 3), gray8(16, 3)},
	}

	codec := NewTIFF()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "band.tif")
			require.NoError(t, codec.Write(path, tt.band, tt.img))

			got, err := codec.Read(path, tt.band)
			require.NoError(t, err)
			assert.Equal(t, tt.img, got)
		})
	}
}

func TestTIFF_Rejects(t *testing.T) {
	tests := []struct {
		name string
		band metadata.Band
		img  image.Image
	}{
		{"float band", bandOf(metadata.DataTypeFloat32, 4, 4), gray16(4, 4)},
		{"depth mismatch", bandOf(metadata.DataTypeUint8, 4, 4), gray16(4, 4)},
		{"width mismatch", bandOf(metadata.DataTypeUint16, 5, 4), gray16(4, 4)},
		{"height mismatch", bandOf(metadata.DataTypeUint16, 4, 5), gray16(4, 4)},
		{"color image", bandOf(metadata.DataTypeUint8, 4, 4), image.NewRGBA(image.Rect(0, 0, 4, 4))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "band.tif")
			err := NewTIFF().Write(path, tt.band, tt.img)
			assert.ErrorIs(t, err, ardmeta.ErrRasterIO)
			assert.NoFileExists(t, path)
		})
	}
}

func TestTIFF_ReadChecksDimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "band.tif")
	codec := NewTIFF()
	require.NoError(t, codec.Write(path, bandOf(metadata.DataTypeUint16, 4, 4), gray16(4, 4)))

	_, err := codec.Read(path, bandOf(metadata.DataTypeUint16, 8, 8))
	assert.ErrorIs(t, err, ardmeta.ErrRasterIO)

	unsized := bandOf(metadata.DataTypeUint16, metadata.FillInt, metadata.FillInt)
	_, err = codec.Read(path, unsized)
	assert.NoError(t, err)
}

func TestTIFF_ReadFailures(t *testing.T) {
	dir := t.TempDir()
	_, err := NewTIFF().Read(filepath.Join(dir, "missing.tif"), bandOf(metadata.DataTypeUint8, 1, 1))
	assert.ErrorIs(t, err, ardmeta.ErrRasterIO)

	notTIFF := filepath.Join(dir, "text.tif")
	require.NoError(t, os.WriteFile(notTIFF, []byte("not a tiff"), 0o644))
	_, err = NewTIFF().Read(notTIFF, bandOf(metadata.DataTypeUint8, 1, 1))
	assert.ErrorIs(t, err, ardmeta.ErrRasterIO)
}
