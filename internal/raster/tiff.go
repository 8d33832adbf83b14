package raster

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/vvka-141/ardmeta/internal/metadata"
	"github.com/vvka-141/ardmeta/pkg/ardmeta"
	"golang.org/x/image/tiff"
)

// IO reads and writes band rasters.
type IO interface {
	Read(path string, band metadata.Band) (image.Image, error)
	Write(path string, band metadata.Band, img image.Image) error
}

// TIFF stores band rasters as grayscale TIFF files.
type TIFF struct {
	Options tiff.Options
}

var _ IO = (*TIFF)(nil)

// NewTIFF writes deflate-compressed files with horizontal differencing.
func NewTIFF() *TIFF {
	return &TIFF{Options: tiff.Options{Compression: tiff.Deflate, Predictor: true}}
}

// Read decodes the raster at path and checks it against band's data type
// and dimensions.
func (t *TIFF) Read(path string, band metadata.Band) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ardmeta.ErrRasterIO, err)
	}
	defer f.Close()

	img, err := tiff.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ardmeta.ErrRasterIO, path, err)
	}
	if err := check(band, img); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Write encodes img to path, replacing any existing file once the encode succeeds.
func (t *TIFF) Write(path string, band metadata.Band, img image.Image) error {
	if err := check(band, img); err != nil {
		return err
	}

	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString())
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("%w: %v", ardmeta.ErrRasterIO, err)
	}
	if err := tiff.Encode(f, img, &t.Options); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: encode %s: %v", ardmeta.ErrRasterIO, path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", ardmeta.ErrRasterIO, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", ardmeta.ErrRasterIO, err)
	}
	return nil
}

// check verifies that img has the pixel layout and size band declares.
func check(band metadata.Band, img image.Image) error {
	switch band.DataType {
	case metadata.DataTypeInt8, metadata.DataTypeUint8:
		if _, ok := img.(*image.Gray); !ok {
			return fmt.Errorf("%w: band %s is %s but raster is %T", ardmeta.ErrRasterIO, band.Name, band.DataType, img)
		}
	case metadata.DataTypeInt16, metadata.DataTypeUint16:
		if _, ok := img.(*image.Gray16); !ok {
			return fmt.Errorf("%w: band %s is %s but raster is %T", ardmeta.ErrRasterIO, band.Name, band.DataType, img)
		}
	default:
		return fmt.Errorf("%w: %s rasters are not supported", ardmeta.ErrRasterIO, band.DataType)
	}

	size := img.Bounds().Size()
	if band.NSamps != metadata.FillInt && size.X != band.NSamps {
		return fmt.Errorf("%w: band %s has %d samples, raster is %d wide", ardmeta.ErrRasterIO, band.Name, band.NSamps, size.X)
	}
	if band.NLines != metadata.FillInt && size.Y != band.NLines {
		return fmt.Errorf("%w: band %s has %d lines, raster is %d high", ardmeta.ErrRasterIO, band.Name, band.NLines, size.Y)
	}
	return nil
}
