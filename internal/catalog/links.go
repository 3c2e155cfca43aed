package catalog

// attach makes a the album of p, removing p from any other album first.
func attach(a *Album, p *Photo) {
	if a == nil || p == nil {
		return
	}
	if prior := p.album; prior != nil && prior != a {
		delete(prior.photos, p)
	}
	if _, ok := a.photos[p]; !ok {
		a.photos[p] = struct{}{}
	}
	p.album = a
}

func detach(a *Album, p *Photo) {
	if a == nil || p == nil {
		return
	}
	if _, ok := a.photos[p]; !ok {
		return
	}
	delete(a.photos, p)
	if p.album == a {
		p.album = nil
	}
}

func link(p *Photo, t *Tag) {
	if p == nil || t == nil {
		return
	}
	if _, ok := p.tags[t]; !ok {
		p.tags[t] = struct{}{}
	}
	if _, ok := t.photos[p]; !ok {
		t.photos[p] = struct{}{}
	}
}

func unlink(p *Photo, t *Tag) {
	if p == nil || t == nil {
		return
	}
	if _, ok := p.tags[t]; ok {
		delete(p.tags, t)
	}
	if _, ok := t.photos[p]; ok {
		delete(t.photos, p)
	}
}
