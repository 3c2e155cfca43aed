// Package rastercodec decodes image files into rasters and encodes rasters
// back into image bytes. Callers treat every decode problem as an opaque
// services.ErrDecode failure.
package rastercodec

import (
	"bufio"
	"fmt"
	"image/jpeg"
	"io"
	"os"

	"photoalbum/internal/raster"
	"photoalbum/internal/services"
)

// Codec decodes and encodes one container format.
type Codec interface {
	Decode(path string) (*raster.Raster, error)
	Encode(w io.Writer, r *raster.Raster) error
}

// DefaultQuality is the JPEG quality used when none is configured.
const DefaultQuality = 90

// JPEG reads and writes baseline JPEG files.
type JPEG struct {
	Quality int
}

// NewJPEG returns a JPEG codec with the default quality.
func NewJPEG() *JPEG {
	return &JPEG{Quality: DefaultQuality}
}

// Decode reads path and returns its pixels.
func (c *JPEG) Decode(path string) (*raster.Raster, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrDecode, "decode", "open", path, err)
	}
	defer file.Close()

	img, err := jpeg.Decode(bufio.NewReader(file))
	if err != nil {
		return nil, services.Wrap(services.ErrDecode, "decode", "jpeg", path, err)
	}
	r, err := raster.FromImage(img)
	if err != nil {
		return nil, services.Wrap(services.ErrDecode, "decode", "convert", path, err)
	}
	return r, nil
}

// Encode writes r as a JPEG stream.
func (c *JPEG) Encode(w io.Writer, r *raster.Raster) error {
	if r == nil {
		return fmt.Errorf("encode jpeg: nil raster")
	}
	quality := c.Quality
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	if err := jpeg.Encode(w, r.Image(), &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("encode jpeg: %w", err)
	}
	return nil
}
