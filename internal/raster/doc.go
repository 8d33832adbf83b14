// Package raster reads and writes single-band tile rasters described by ARD
// band metadata, and computes the geolocation written alongside them.
//
// Rasters are grayscale TIFF files: 8-bit for INT8 and UINT8 bands, 16-bit
// for INT16 and UINT16 bands, deflate-compressed with horizontal
// differencing. Geolocation is written as an ESRI world file next to the
// raster because the TIFF encoder does not carry GeoTIFF keys.
package raster
