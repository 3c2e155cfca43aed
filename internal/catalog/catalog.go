package catalog

import "time"

// Catalog bundles the registries one library works against.
type Catalog struct {
	Albums *AlbumRegistry
	Tags   *TagRegistry
}

func New() *Catalog {
	return &Catalog{Albums: NewAlbumRegistry(), Tags: NewTagRegistry()}
}

// Album returns the registered album called name, registering a new one if
// none exists.
func (c *Catalog) Album(name string) *Album {
	if a, ok := c.Albums.Find(name); ok {
		return a
	}
	a := NewAlbum(name)
	c.Albums.Add(a)
	return a
}

// FindPhoto looks a photo up by album and photo name.
func (c *Catalog) FindPhoto(album, photo string) (*Photo, bool) {
	a, ok := c.Albums.Find(album)
	if !ok {
		return nil, false
	}
	return a.FindPhoto(photo)
}

// TagPhoto tags p with the registry's tag called name.
func (c *Catalog) TagPhoto(p *Photo, name string) *Tag {
	t := c.Tags.CreateOrGet(name)
	p.AddTag(t)
	return t
}

func (c *Catalog) Photos() []*Photo {
	return c.Albums.Photos()
}

func (c *Catalog) FindPhotosInDateRange(start, end time.Time) []*Photo {
	return c.Albums.FindPhotosInDateRange(start, end)
}
