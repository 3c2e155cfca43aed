package catalog

import (
	"sort"
	"time"
)

// AlbumRegistry owns the library's albums, at most one per name.
type AlbumRegistry struct {
	albums []*Album
}

func NewAlbumRegistry() *AlbumRegistry {
	return &AlbumRegistry{}
}

// Add registers a and reports whether it was added. An album with the same
// name already present wins and a is ignored.
func (r *AlbumRegistry) Add(a *Album) bool {
	if a == nil {
		return false
	}
	if _, ok := r.Find(a.name); ok {
		return false
	}
	r.albums = append(r.albums, a)
	return true
}

// Find returns the album whose name matches exactly.
func (r *AlbumRegistry) Find(name string) (*Album, bool) {
	for _, a := range r.albums {
		if a.name == name {
			return a, true
		}
	}
	return nil, false
}

func (r *AlbumRegistry) Len() int { return len(r.albums) }

// Albums returns the registered albums ordered by name.
func (r *AlbumRegistry) Albums() []*Album {
	out := append([]*Album(nil), r.albums...)
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Photos returns every photo of every album, grouped by album name.
func (r *AlbumRegistry) Photos() []*Photo {
	var out []*Photo
	for _, a := range r.Albums() {
		out = append(out, a.Photos()...)
	}
	return out
}

// FindPhotosInDateRange returns photos dated within [start, end], both ends
// inclusive. Photos without a date are skipped.
func (r *AlbumRegistry) FindPhotosInDateRange(start, end time.Time) []*Photo {
	var out []*Photo
	for _, p := range r.Photos() {
		date, ok := p.DateCreated()
		if !ok {
			continue
		}
		if date.Before(start) || date.After(end) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// TagRegistry is the only source of tags and keeps tag names unique.
type TagRegistry struct {
	byName map[string]*Tag
}

func NewTagRegistry() *TagRegistry {
	return &TagRegistry{byName: make(map[string]*Tag)}
}

// CreateOrGet returns the tag named name, creating it on first use.
func (r *TagRegistry) CreateOrGet(name string) *Tag {
	if t, ok := r.byName[name]; ok {
		return t
	}
	t := newTag(name)
	r.byName[name] = t
	return t
}

func (r *TagRegistry) Find(name string) (*Tag, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Rename changes a tag's name in place. It fails without mutating anything
// when the names are equal, oldName is unknown, or newName is taken.
func (r *TagRegistry) Rename(oldName, newName string) bool {
	if oldName == newName {
		return false
	}
	t, ok := r.byName[oldName]
	if !ok {
		return false
	}
	if _, taken := r.byName[newName]; taken {
		return false
	}
	delete(r.byName, oldName)
	t.name = newName
	r.byName[newName] = t
	return true
}

// Remove untags every photo carrying the named tag and drops it.
func (r *TagRegistry) Remove(name string) bool {
	t, ok := r.byName[name]
	if !ok {
		return false
	}
	for p := range t.photos {
		unlink(p, t)
	}
	delete(r.byName, name)
	return true
}

func (r *TagRegistry) Len() int { return len(r.byName) }

// Tags returns all tags ordered by name.
func (r *TagRegistry) Tags() []*Tag {
	out := make([]*Tag, 0, len(r.byName))
	for _, t := range r.byName {
		out = append(out, t)
	}
	sortTags(out)
	return out
}
