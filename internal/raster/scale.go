package raster

import (
	"image"

	"golang.org/x/image/draw"
)

// Bounds is a maximum width and height.
type Bounds struct {
	Width  int
	Height int
}

// Limits groups the bounds applied when a photo is loaded.
type Limits struct {
	Max   Bounds
	Thumb Bounds
}

// DefaultLimits matches the configuration defaults.
var DefaultLimits = Limits{
	Max:   Bounds{Width: 600, Height: 400},
	Thumb: Bounds{Width: 120, Height: 80},
}

// FitWithin returns the size a width x height image takes after scale-to-fit
// against b. Sizes already inside b are returned unchanged. When both
// dimensions overflow, the one that overflows relative to the bound's aspect
// ratio is clamped; when only one overflows, that one is clamped. The other
// dimension follows proportionally, truncated, and never drops below 1.
func FitWithin(width, height int, b Bounds) (int, int) {
	overW := width > b.Width
	overH := height > b.Height
	switch {
	case overW && overH && width*b.Height > b.Width*height:
		return b.Width, atLeastOne(height * b.Width / width)
	case overW && overH:
		return atLeastOne(width * b.Height / height), b.Height
	case overW:
		return b.Width, atLeastOne(height * b.Width / width)
	case overH:
		return atLeastOne(width * b.Height / height), b.Height
	default:
		return width, height
	}
}

// ThumbnailSize returns the thumbnail size for a width x height image. Unlike
// FitWithin it always scales, up or down, so the result touches b on the
// dimension chosen by the ratio comparison.
func ThumbnailSize(width, height int, b Bounds) (int, int) {
	if b.Width*height < width*b.Height {
		return b.Width, atLeastOne(b.Width * height / width)
	}
	return atLeastOne(b.Height * width / height), b.Height
}

// ScaleToFit returns r resized per FitWithin. When no scaling is needed the
// receiver itself is returned.
func (r *Raster) ScaleToFit(b Bounds) *Raster {
	w, h := FitWithin(r.width, r.height, b)
	if w == r.width && h == r.height {
		return r
	}
	return r.resample(w, h, draw.CatmullRom)
}

// Thumbnail returns a new raster sized per ThumbnailSize.
func (r *Raster) Thumbnail(b Bounds) *Raster {
	w, h := ThumbnailSize(r.width, r.height, b)
	return r.resample(w, h, draw.BiLinear)
}

func (r *Raster) resample(w, h int, scaler draw.Scaler) *Raster {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	src := r.Image()
	scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	out, _ := FromImage(dst)
	return out
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
