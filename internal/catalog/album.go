package catalog

import "sort"

// Album is a named set of photos. Two albums with the same name are the same
// album as far as a registry is concerned.
type Album struct {
	name   string
	photos map[*Photo]struct{}
}

// NewAlbum always returns a fresh album; uniqueness is enforced only when it
// is added to an AlbumRegistry.
func NewAlbum(name string) *Album {
	return &Album{name: name, photos: make(map[*Photo]struct{})}
}

func (a *Album) Name() string { return a.name }

// SameAs reports whether both albums carry the same name.
func (a *Album) SameAs(other *Album) bool {
	return a != nil && other != nil && a.name == other.name
}

// AddPhoto puts p in the album and points p back at it. A photo already in a
// different album is moved, so it is never listed by two albums.
func (a *Album) AddPhoto(p *Photo) {
	attach(a, p)
}

// RemovePhoto takes p out of the album and clears its back-reference.
func (a *Album) RemovePhoto(p *Photo) {
	detach(a, p)
}

func (a *Album) Contains(p *Photo) bool {
	_, ok := a.photos[p]
	return ok
}

func (a *Album) Len() int { return len(a.photos) }

// Photos returns the album's photos ordered by name.
func (a *Album) Photos() []*Photo {
	out := make([]*Photo, 0, len(a.photos))
	for p := range a.photos {
		out = append(out, p)
	}
	sortPhotos(out)
	return out
}

// FindPhoto returns the photo with the given name, if any.
func (a *Album) FindPhoto(name string) (*Photo, bool) {
	for p := range a.photos {
		if p.name == name {
			return p, true
		}
	}
	return nil, false
}

func sortPhotos(photos []*Photo) {
	sort.Slice(photos, func(i, j int) bool {
		if photos[i].name != photos[j].name {
			return photos[i].name < photos[j].name
		}
		return albumName(photos[i]) < albumName(photos[j])
	})
}

func albumName(p *Photo) string {
	if p.album == nil {
		return ""
	}
	return p.album.name
}
