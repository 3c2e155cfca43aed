package catalog_test

import (
	"testing"
	"time"

	"photoalbum/internal/catalog"
	"photoalbum/internal/raster"
)

func TestAlbumRegistryDeduplicatesByName(t *testing.T) {
	albums := catalog.NewAlbumRegistry()
	first := catalog.NewAlbum("Trip")
	second := catalog.NewAlbum("Trip")
	if first == second {
		t.Fatal("NewAlbum must construct fresh values")
	}
	if !first.SameAs(second) {
		t.Fatal("albums with equal names should be the same album")
	}
	if !albums.Add(first) {
		t.Fatal("expected first add to succeed")
	}
	if albums.Add(second) {
		t.Fatal("expected add of same-named album to be a no-op")
	}
	if albums.Len() != 1 {
		t.Fatalf("unexpected registry size %d", albums.Len())
	}
	if found, ok := albums.Find("Trip"); !ok || found != first {
		t.Fatal("expected the first album to win")
	}
	if _, ok := albums.Find("trip"); ok {
		t.Fatal("lookup must be case-sensitive")
	}
}

func TestAddPhotoSetsBackReference(t *testing.T) {
	album := catalog.NewAlbum("Home")
	p := catalog.NewPhoto("cat")
	album.AddPhoto(p)
	album.AddPhoto(p)
	if album.Len() != 1 {
		t.Fatalf("duplicate add should be a no-op, got %d", album.Len())
	}
	if p.Album() != album {
		t.Fatal("expected back-reference to album")
	}
	if found, ok := album.FindPhoto("cat"); !ok || found != p {
		t.Fatal("expected FindPhoto to locate the photo")
	}

	album.RemovePhoto(p)
	if album.Contains(p) || p.Album() != nil {
		t.Fatal("expected removal to clear both sides")
	}
}

func TestAddPhotoMovesBetweenAlbums(t *testing.T) {
	first := catalog.NewAlbum("First")
	second := catalog.NewAlbum("Second")
	p := catalog.NewPhoto("moving")

	first.AddPhoto(p)
	second.AddPhoto(p)

	if first.Contains(p) {
		t.Fatal("photo should leave its prior album")
	}
	if !second.Contains(p) || p.Album() != second {
		t.Fatal("photo should belong to the new album")
	}
}

func TestFindPhotosInDateRangeIsInclusive(t *testing.T) {
	c := catalog.New()
	album := c.Album("Dates")
	start := time.Date(2020, 1, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, 1, 20, 0, 0, 0, 0, time.UTC)

	dated := map[string]time.Time{
		"at-start":   start,
		"at-end":     end,
		"inside":     start.AddDate(0, 0, 3),
		"before":     start.Add(-time.Nanosecond),
		"after":      end.Add(time.Nanosecond),
		"day-before": start.AddDate(0, 0, -1),
	}
	for name, date := range dated {
		p := catalog.NewPhoto(name)
		p.SetDateCreated(date)
		album.AddPhoto(p)
	}
	album.AddPhoto(catalog.NewPhoto("undated"))

	got := map[string]bool{}
	for _, p := range c.FindPhotosInDateRange(start, end) {
		got[p.Name()] = true
	}
	if len(got) != 3 || !got["at-start"] || !got["at-end"] || !got["inside"] {
		t.Fatalf("unexpected range result %v", got)
	}
}

func TestCatalogAlbumRegistersOnce(t *testing.T) {
	c := catalog.New()
	a := c.Album("Once")
	if c.Album("Once") != a || c.Albums.Len() != 1 {
		t.Fatal("expected Album to reuse the registered album")
	}
	p := catalog.NewPhoto("shot")
	a.AddPhoto(p)
	tag := c.TagPhoto(p, "sunny")
	if !p.HasTag(tag) || c.Tags.Len() != 1 {
		t.Fatal("expected TagPhoto to register and attach the tag")
	}
	if found, ok := c.FindPhoto("Once", "shot"); !ok || found != p {
		t.Fatal("expected FindPhoto by album and name")
	}
	if _, ok := c.FindPhoto("Missing", "shot"); ok {
		t.Fatal("expected miss for unknown album")
	}
}

func TestPhotoLoadScalesAndThumbnails(t *testing.T) {
	img, _ := raster.Filled(1200, 600, raster.RGB{R: 9})
	p := catalog.NewPhoto("big")
	if err := p.Edit(func(r *raster.Raster) { r.Blur() }); err != catalog.ErrNotLoaded {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}

	p.Load(img, raster.DefaultLimits)
	if w, h := p.Raster().Size(); w != 600 || h != 300 {
		t.Fatalf("unexpected scaled size %dx%d", w, h)
	}
	if w, h := p.Thumbnail().Size(); w != 120 || h != 60 {
		t.Fatalf("unexpected thumbnail size %dx%d", w, h)
	}

	before := p.Thumbnail()
	edit, _ := raster.LookupEdit("flip-horizontal")
	if err := p.Edit(edit); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if p.Thumbnail() != before {
		t.Fatal("edits must not regenerate the thumbnail")
	}
	if err := p.RefreshThumbnail(raster.DefaultLimits.Thumb); err != nil {
		t.Fatalf("RefreshThumbnail: %v", err)
	}
	if p.Thumbnail() == before {
		t.Fatal("expected a fresh thumbnail")
	}
}

func TestPhotoLoadDoesNotAliasCallerRaster(t *testing.T) {
	img, _ := raster.Filled(40, 30, raster.RGB{R: 200, G: 100, B: 50})
	p := catalog.NewPhoto("small")
	p.Load(img, raster.DefaultLimits)
	if p.Raster() == img {
		t.Fatal("in-bounds raster must be copied")
	}

	img.Set(0, 0, raster.RGB{})
	img.Grayscale()
	if got := p.Raster().At(0, 0); got != (raster.RGB{R: 200, G: 100, B: 50}) {
		t.Fatalf("caller edits leaked into photo: %+v", got)
	}
}

func TestPhotoDateOptional(t *testing.T) {
	p := catalog.NewPhoto("p")
	if _, ok := p.DateCreated(); ok {
		t.Fatal("new photo should have no date")
	}
	p.SetDateCreated(time.Date(2021, 5, 6, 0, 0, 0, 0, time.Local))
	if d, ok := p.DateCreated(); !ok || d.Year() != 2021 {
		t.Fatalf("unexpected date %v %v", d, ok)
	}
	p.SetDateCreated(time.Time{})
	if _, ok := p.DateCreated(); ok {
		t.Fatal("zero time should clear the date")
	}
}
