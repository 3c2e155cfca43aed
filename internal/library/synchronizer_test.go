package library_test

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"photoalbum/internal/config"
	"photoalbum/internal/iptc"
	"photoalbum/internal/library"
	"photoalbum/internal/logging"
	"photoalbum/internal/services"
	"photoalbum/internal/testsupport"
)

var fixedNow = time.Date(2024, time.May, 6, 15, 30, 0, 0, time.Local)

func newSynchronizer(t *testing.T, cfg *config.Config) *library.Synchronizer {
	t.Helper()
	opts := library.OptionsFromConfig(cfg, logging.NewNop())
	opts.Now = func() time.Time { return fixedNow }
	lib, err := library.New(opts)
	if err != nil {
		t.Fatalf("new synchronizer: %v", err)
	}
	return lib
}

func gray() color.RGBA { return color.RGBA{R: 90, G: 90, B: 90, A: 255} }

func TestNewRequiresRoot(t *testing.T) {
	_, err := library.New(library.Options{})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestLoadLibraryRegistersAlbumsAndPhotos(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithAlbums("Holiday", "Empty"))
	root := cfg.Paths.LibraryDir
	testsupport.WriteJPEG(t, filepath.Join(root, "Holiday", "photo1.jpg"), 40, 30, gray())
	testsupport.WriteTaggedJPEG(t, filepath.Join(root, "Holiday", "photo2.jpg"), 40, 30, iptc.Update{
		Description: "Beach",
		Keywords:    []string{"sea", "sun"},
		DateCreated: time.Date(2020, time.July, 14, 0, 0, 0, 0, time.Local),
	})
	testsupport.WriteFile(t, filepath.Join(root, "Holiday", "notes.txt"), []byte("not a photo"))
	testsupport.WriteJPEG(t, filepath.Join(root, ".cache", "hidden.jpg"), 10, 10, gray())

	lib := newSynchronizer(t, cfg)
	report, err := lib.LoadLibrary(context.Background())
	if err != nil {
		t.Fatalf("load library: %v", err)
	}
	if len(report.Failed()) != 0 || len(report.Skipped) != 0 {
		t.Fatalf("unexpected failures: %+v skipped %+v", report.Failed(), report.Skipped)
	}
	if report.RunID == "" {
		t.Fatal("expected run id")
	}

	cat := lib.Catalog()
	if got := cat.Albums.Len(); got != 2 {
		t.Fatalf("expected 2 albums, got %d", got)
	}
	empty, ok := cat.Albums.Find("Empty")
	if !ok || empty.Len() != 0 {
		t.Fatalf("expected empty album registered, got %v %v", empty, ok)
	}

	plain, ok := cat.FindPhoto("Holiday", "photo1")
	if !ok {
		t.Fatal("photo1 not registered")
	}
	if plain.Description() != "" {
		t.Fatalf("expected empty description, got %q", plain.Description())
	}
	if len(plain.Tags()) != 0 {
		t.Fatalf("expected no tags, got %v", plain.TagNames())
	}
	date, ok := plain.DateCreated()
	wantDefault := time.Date(2024, time.May, 6, 0, 0, 0, 0, time.Local)
	if !ok || !date.Equal(wantDefault) {
		t.Fatalf("expected default date %v, got %v (%v)", wantDefault, date, ok)
	}
	if _, defaulted := lib.DefaultedDate(plain); !defaulted {
		t.Fatal("expected photo1 date to be marked as defaulted")
	}
	if !plain.Loaded() || plain.Thumbnail() == nil {
		t.Fatal("expected raster and thumbnail loaded")
	}

	tagged, ok := cat.FindPhoto("Holiday", "photo2")
	if !ok {
		t.Fatal("photo2 not registered")
	}
	if tagged.Description() != "Beach" {
		t.Fatalf("expected description Beach, got %q", tagged.Description())
	}
	if got := fmt.Sprint(tagged.TagNames()); got != "[sea sun]" {
		t.Fatalf("unexpected tags %s", got)
	}
	date, _ = tagged.DateCreated()
	if !date.Equal(time.Date(2020, time.July, 14, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("unexpected date %v", date)
	}
	sea, ok := cat.Tags.Find("sea")
	if !ok || !sea.HasPhoto(tagged) {
		t.Fatal("expected sea tag linked to photo2")
	}
	if _, ok := cat.Albums.Find(".cache"); ok {
		t.Fatal("hidden directory must not become an album")
	}
}

func TestLoadLibrarySkipsUndecodableFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithAlbums("Mixed"))
	root := cfg.Paths.LibraryDir
	testsupport.WriteJPEG(t, filepath.Join(root, "Mixed", "good.jpg"), 20, 20, gray())
	testsupport.WriteFile(t, filepath.Join(root, "Mixed", "broken.jpg"), []byte("definitely not a jpeg"))

	lib := newSynchronizer(t, cfg)
	report, err := lib.LoadLibrary(context.Background())
	if err != nil {
		t.Fatalf("load library: %v", err)
	}
	if len(report.Skipped) != 1 {
		t.Fatalf("expected one skipped file, got %+v", report.Skipped)
	}
	if kind := report.Skipped[0].Kind(); kind != services.KindDecode {
		t.Fatalf("expected decode kind, got %q", kind)
	}
	album, _ := lib.Catalog().Albums.Find("Mixed")
	if album.Len() != 1 {
		t.Fatalf("expected one photo, got %d", album.Len())
	}
	if _, ok := album.FindPhoto("broken"); ok {
		t.Fatal("broken file must not be registered")
	}
}

func TestLoadLibraryIsIncremental(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithAlbums("Trips"))
	root := cfg.Paths.LibraryDir
	testsupport.WriteJPEG(t, filepath.Join(root, "Trips", "first.jpg"), 20, 20, gray())

	lib := newSynchronizer(t, cfg)
	if _, err := lib.LoadLibrary(context.Background()); err != nil {
		t.Fatalf("first load: %v", err)
	}
	first, _ := lib.Catalog().FindPhoto("Trips", "first")
	first.SetDescription("edited in memory")

	testsupport.WriteJPEG(t, filepath.Join(root, "Trips", "second.jpg"), 20, 20, gray())
	report, err := lib.LoadLibrary(context.Background())
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if got := len(report.Succeeded()); got != 1 {
		t.Fatalf("expected only the new photo registered, got %d", got)
	}
	again, _ := lib.Catalog().FindPhoto("Trips", "first")
	if again != first || again.Description() != "edited in memory" {
		t.Fatal("existing photo must be kept untouched")
	}
	if _, ok := lib.Catalog().FindPhoto("Trips", "second"); !ok {
		t.Fatal("second photo not registered")
	}
}

func TestLoadLibraryParallelDecodeKeepsEveryPhoto(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithAlbums("Burst"), testsupport.WithDecodeWorkers(4))
	root := cfg.Paths.LibraryDir
	for i := 0; i < 9; i++ {
		testsupport.WriteJPEG(t, filepath.Join(root, "Burst", fmt.Sprintf("shot%02d.jpg", i)), 16, 12, gray())
	}

	lib := newSynchronizer(t, cfg)
	if _, err := lib.LoadLibrary(context.Background()); err != nil {
		t.Fatalf("load library: %v", err)
	}
	album, _ := lib.Catalog().Albums.Find("Burst")
	photos := album.Photos()
	if len(photos) != 9 {
		t.Fatalf("expected 9 photos, got %d", len(photos))
	}
	for i, p := range photos {
		if want := fmt.Sprintf("shot%02d", i); p.Name() != want {
			t.Fatalf("photo %d: expected %s, got %s", i, want, p.Name())
		}
	}
}

func TestLoadLibraryCanceledBeforeDecode(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithAlbums("Late"))
	testsupport.WriteJPEG(t, filepath.Join(cfg.Paths.LibraryDir, "Late", "a.jpg"), 10, 10, gray())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	lib := newSynchronizer(t, cfg)
	report, err := lib.LoadLibrary(ctx)
	if err != nil {
		t.Fatalf("load library: %v", err)
	}
	failed := report.Failed()
	if len(failed) != 1 || failed[0].Kind() != services.KindCanceled {
		t.Fatalf("expected one canceled outcome, got %+v", failed)
	}
	if _, ok := lib.Catalog().FindPhoto("Late", "a"); ok {
		t.Fatal("canceled photo must not be registered")
	}
}

func TestLoadLibraryMissingRoot(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Paths.LibraryDir = filepath.Join(t.TempDir(), "absent")
	lib := newSynchronizer(t, cfg)
	if _, err := lib.LoadLibrary(context.Background()); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestBackingFileMatchesExtensionCaseInsensitively(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithAlbums("Camera"))
	path := filepath.Join(cfg.Paths.LibraryDir, "Camera", "IMG_0001.JPG")
	testsupport.WriteJPEG(t, path, 10, 10, gray())

	lib := newSynchronizer(t, cfg)
	if _, err := lib.LoadLibrary(context.Background()); err != nil {
		t.Fatalf("load library: %v", err)
	}
	photo, ok := lib.Catalog().FindPhoto("Camera", "IMG_0001")
	if !ok {
		t.Fatal("upper-case extension not loaded")
	}
	got, err := lib.BackingFile(photo)
	if err != nil {
		t.Fatalf("backing file: %v", err)
	}
	if got != path {
		t.Fatalf("expected %s, got %s", path, got)
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := lib.BackingFile(photo); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
