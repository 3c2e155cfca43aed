package raster

// Grayscale replaces each pixel with the unweighted integer mean of its
// channels.
func (r *Raster) Grayscale() {
	for i, p := range r.pix {
		v := uint8((int(p.R) + int(p.G) + int(p.B)) / 3)
		r.pix[i] = RGB{v, v, v}
	}
}

// FlipHorizontal mirrors the raster across its vertical axis.
func (r *Raster) FlipHorizontal() {
	for y := 0; y < r.height; y++ {
		row := r.pix[y*r.width : (y+1)*r.width]
		for x := 0; x < r.width/2; x++ {
			row[x], row[r.width-1-x] = row[r.width-1-x], row[x]
		}
	}
}

// FlipVertical mirrors the raster across its horizontal axis.
func (r *Raster) FlipVertical() {
	for y := 0; y < r.height/2; y++ {
		top := r.pix[y*r.width : (y+1)*r.width]
		bottom := r.pix[(r.height-1-y)*r.width : (r.height-y)*r.width]
		for x := range top {
			top[x], bottom[x] = bottom[x], top[x]
		}
	}
}

// Blur applies a 3x3 box average. Samples outside the raster are skipped, so
// edge and corner pixels divide by the number of neighbours that exist.
func (r *Raster) Blur() {
	out := make([]RGB, len(r.pix))
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			var sr, sg, sb, n int
			for dy := -1; dy <= 1; dy++ {
				ny := y + dy
				if ny < 0 || ny >= r.height {
					continue
				}
				for dx := -1; dx <= 1; dx++ {
					nx := x + dx
					if nx < 0 || nx >= r.width {
						continue
					}
					p := r.pix[ny*r.width+nx]
					sr += int(p.R)
					sg += int(p.G)
					sb += int(p.B)
					n++
				}
			}
			out[y*r.width+x] = RGB{uint8(sr / n), uint8(sg / n), uint8(sb / n)}
		}
	}
	copy(r.pix, out)
}

// Edit is an in-place operation on a raster.
type Edit func(*Raster)

var edits = map[string]Edit{
	"grayscale":       (*Raster).Grayscale,
	"flip-horizontal": (*Raster).FlipHorizontal,
	"flip-vertical":   (*Raster).FlipVertical,
	"blur":            (*Raster).Blur,
}

// LookupEdit returns the edit registered under name.
func LookupEdit(name string) (Edit, bool) {
	edit, ok := edits[name]
	return edit, ok
}

// EditNames lists the registered edit names.
func EditNames() []string {
	return []string{"blur", "flip-horizontal", "flip-vertical", "grayscale"}
}
