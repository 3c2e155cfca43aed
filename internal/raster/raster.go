package raster

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// RGB is one pixel.
type RGB struct {
	R, G, B uint8
}

// Raster is a mutable grid of RGB pixels stored row-major.
type Raster struct {
	width  int
	height int
	pix    []RGB
}

// New returns a black raster of the given size.
func New(width, height int) (*Raster, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("raster: invalid size %dx%d", width, height)
	}
	return &Raster{width: width, height: height, pix: make([]RGB, width*height)}, nil
}

// Filled returns a raster where every pixel is c.
func Filled(width, height int, c RGB) (*Raster, error) {
	r, err := New(width, height)
	if err != nil {
		return nil, err
	}
	for i := range r.pix {
		r.pix[i] = c
	}
	return r, nil
}

// FromImage copies img into a new raster, dropping alpha.
func FromImage(img image.Image) (*Raster, error) {
	if img == nil {
		return nil, fmt.Errorf("raster: nil image")
	}
	b := img.Bounds()
	r, err := New(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, r.width, r.height))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	for y := 0; y < r.height; y++ {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+r.width*4]
		for x := 0; x < r.width; x++ {
			r.pix[y*r.width+x] = RGB{row[x*4], row[x*4+1], row[x*4+2]}
		}
	}
	return r, nil
}

// Image renders the raster as an opaque *image.RGBA.
func (r *Raster) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	for i, p := range r.pix {
		img.Pix[i*4] = p.R
		img.Pix[i*4+1] = p.G
		img.Pix[i*4+2] = p.B
		img.Pix[i*4+3] = 0xff
	}
	return img
}

func (r *Raster) Width() int { return r.width }
func (r *Raster) Height() int { return r.height }

// Size returns width and height.
func (r *Raster) Size() (int, int) { return r.width, r.height }

// At returns the pixel at (x, y). It panics when out of bounds.
func (r *Raster) At(x, y int) RGB {
	return r.pix[r.offset(x, y)]
}

// Set replaces the pixel at (x, y). It panics when out of bounds.
func (r *Raster) Set(x, y int, c RGB) {
	r.pix[r.offset(x, y)] = c
}

func (r *Raster) offset(x, y int) int {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		panic(fmt.Sprintf("raster: (%d,%d) outside %dx%d", x, y, r.width, r.height))
	}
	return y*r.width + x
}

// Clone returns an independent copy.
func (r *Raster) Clone() *Raster {
	pix := make([]RGB, len(r.pix))
	copy(pix, r.pix)
	return &Raster{width: r.width, height: r.height, pix: pix}
}

// Equal reports whether both rasters have the same size and pixels.
func (r *Raster) Equal(other *Raster) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.width != other.width || r.height != other.height {
		return false
	}
	for i := range r.pix {
		if r.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}
