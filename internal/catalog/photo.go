package catalog

import (
	"errors"
	"time"

	"photoalbum/internal/raster"
)

// ErrNotLoaded is returned by edits on a photo whose pixels were never loaded.
var ErrNotLoaded = errors.New("photo has no raster loaded")

// Photo is one picture in the library. Its thumbnail is derived when pixels
// are loaded and is not refreshed by later edits.
type Photo struct {
	name        string
	album       *Album
	tags        map[*Tag]struct{}
	dateCreated time.Time
	description string
	image       *raster.Raster
	thumbnail   *raster.Raster
}

func NewPhoto(name string) *Photo {
	return &Photo{name: name, tags: make(map[*Tag]struct{})}
}

func (p *Photo) Name() string { return p.name }

// Album returns the owning album or nil.
func (p *Photo) Album() *Album { return p.album }

func (p *Photo) Description() string { return p.description }

func (p *Photo) SetDescription(description string) { p.description = description }

// DateCreated returns the creation date and whether one is set.
func (p *Photo) DateCreated() (time.Time, bool) {
	return p.dateCreated, !p.dateCreated.IsZero()
}

// SetDateCreated stores t; the zero time clears the date.
func (p *Photo) SetDateCreated(t time.Time) { p.dateCreated = t }

// AddTag tags the photo with t. Calling it again, or calling t.AddToPhoto(p),
// is a no-op.
func (p *Photo) AddTag(t *Tag) {
	link(p, t)
}

func (p *Photo) RemoveTag(t *Tag) {
	unlink(p, t)
}

func (p *Photo) HasTag(t *Tag) bool {
	_, ok := p.tags[t]
	return ok
}

// Tags returns the photo's tags ordered by name.
func (p *Photo) Tags() []*Tag {
	out := make([]*Tag, 0, len(p.tags))
	for t := range p.tags {
		out = append(out, t)
	}
	sortTags(out)
	return out
}

// TagNames returns the current tag names ordered by name.
func (p *Photo) TagNames() []string {
	tags := p.Tags()
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.name
	}
	return names
}

// Load stores a copy of img scaled to fit limits.Max and derives a thumbnail
// from the scaled pixels. The caller keeps ownership of img.
func (p *Photo) Load(img *raster.Raster, limits raster.Limits) {
	scaled := img.ScaleToFit(limits.Max)
	if scaled == img {
		scaled = img.Clone()
	}
	p.image = scaled
	p.thumbnail = p.image.Thumbnail(limits.Thumb)
}

func (p *Photo) Loaded() bool { return p.image != nil }

// Raster returns the working pixels, or nil before Load.
func (p *Photo) Raster() *raster.Raster { return p.image }

// Thumbnail returns the thumbnail derived at the last Load or RefreshThumbnail.
func (p *Photo) Thumbnail() *raster.Raster { return p.thumbnail }

// RefreshThumbnail rebuilds the thumbnail from the current, possibly edited,
// pixels.
func (p *Photo) RefreshThumbnail(b raster.Bounds) error {
	if p.image == nil {
		return ErrNotLoaded
	}
	p.thumbnail = p.image.Thumbnail(b)
	return nil
}

// Edit applies an in-place raster edit to the photo's pixels.
func (p *Photo) Edit(edit raster.Edit) error {
	if p.image == nil {
		return ErrNotLoaded
	}
	edit(p.image)
	return nil
}
