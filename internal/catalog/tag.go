package catalog

import "sort"

// Tag labels photos. Tags compare by identity, never by name; only a
// TagRegistry creates them.
type Tag struct {
	name   string
	photos map[*Photo]struct{}
}

func newTag(name string) *Tag {
	return &Tag{name: name, photos: make(map[*Photo]struct{})}
}

func (t *Tag) Name() string { return t.name }

// AddToPhoto tags p. Calling it again, or calling p.AddTag(t), is a no-op.
func (t *Tag) AddToPhoto(p *Photo) {
	link(p, t)
}

// RemoveFromPhoto untags p.
func (t *Tag) RemoveFromPhoto(p *Photo) {
	unlink(p, t)
}

func (t *Tag) HasPhoto(p *Photo) bool {
	_, ok := t.photos[p]
	return ok
}

func (t *Tag) Len() int { return len(t.photos) }

// Photos returns the tagged photos ordered by name.
func (t *Tag) Photos() []*Photo {
	out := make([]*Photo, 0, len(t.photos))
	for p := range t.photos {
		out = append(out, p)
	}
	sortPhotos(out)
	return out
}

func sortTags(tags []*Tag) {
	sort.Slice(tags, func(i, j int) bool { return tags[i].name < tags[j].name })
}
