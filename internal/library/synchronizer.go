package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"photoalbum/internal/catalog"
	"photoalbum/internal/iptc"
	"photoalbum/internal/logging"
	"photoalbum/internal/raster"
	"photoalbum/internal/rastercodec"
	"photoalbum/internal/services"
)

// Synchronizer keeps a catalog in step with the library directory tree.
type Synchronizer struct {
	root    string
	catalog *catalog.Catalog
	codec   rastercodec.Codec
	limits  raster.Limits
	filter  ExtensionFilter
	workers int
	verify  bool
	now     func() time.Time
	logger  *slog.Logger

	// defaultDates remembers dates filled in because the file had none, so
	// they are not written back as if they were real.
	defaultDates map[*catalog.Photo]time.Time
	// sources holds the file each photo was registered from.
	sources map[*catalog.Photo]string
}

// New validates opts and returns a Synchronizer.
func New(opts Options) (*Synchronizer, error) {
	root := strings.TrimSpace(opts.Root)
	if root == "" {
		return nil, services.Wrap(services.ErrConfiguration, "library", "init", "library root is required", nil)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "library", "init", "resolve library root", err)
	}
	s := &Synchronizer{
		root:         abs,
		catalog:      opts.Catalog,
		codec:        opts.Codec,
		limits:       opts.Limits,
		filter:       NewExtensionFilter(opts.Extensions),
		workers:      opts.DecodeWorkers,
		verify:       opts.VerifyCopies,
		now:          opts.Now,
		logger:       logging.NewComponentLogger(opts.Logger, "library"),
		defaultDates: make(map[*catalog.Photo]time.Time),
		sources:      make(map[*catalog.Photo]string),
	}
	if s.catalog == nil {
		s.catalog = catalog.New()
	}
	if s.codec == nil {
		s.codec = rastercodec.NewJPEG()
	}
	if s.limits.Max.Width < 1 || s.limits.Max.Height < 1 {
		s.limits.Max = raster.DefaultLimits.Max
	}
	if s.limits.Thumb.Width < 1 || s.limits.Thumb.Height < 1 {
		s.limits.Thumb = raster.DefaultLimits.Thumb
	}
	if s.workers < 1 {
		s.workers = 1
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}

func (s *Synchronizer) Root() string { return s.root }

func (s *Synchronizer) Catalog() *catalog.Catalog { return s.catalog }

func (s *Synchronizer) Limits() raster.Limits { return s.limits }

// AlbumDir returns the directory backing the named album.
func (s *Synchronizer) AlbumDir(album string) string {
	return filepath.Join(s.root, album)
}

// decoded is the per-file result of the decode stage.
type decoded struct {
	done   bool
	img    *raster.Raster
	fields iptc.Fields
	err    error
}

// decodeFile decodes pixels and reads metadata. Unreadable metadata degrades
// to empty fields; only pixel decode failures are returned.
func (s *Synchronizer) decodeFile(ctx context.Context, path string) decoded {
	img, err := s.codec.Decode(path)
	if err != nil {
		if !errors.Is(err, services.ErrDecode) {
			err = services.Wrap(services.ErrDecode, "decode", "raster", path, err)
		}
		return decoded{done: true, err: err}
	}
	fields, err := iptc.Read(path)
	if err != nil {
		logging.WithContext(ctx, s.logger).Debug("metadata unreadable; using defaults",
			logging.String(logging.FieldPath, path),
			logging.String(logging.FieldEventType, "metadata_read_failed"),
			logging.String(logging.FieldErrorKind, services.KindMetadataRead),
			logging.Error(err),
		)
		fields = iptc.Fields{}
	}
	return decoded{done: true, img: img, fields: fields}
}

// register builds the photo from the file at path, fills it from metadata,
// and adds it to album.
func (s *Synchronizer) register(album *catalog.Album, name, path string, d decoded) *catalog.Photo {
	p := catalog.NewPhoto(name)
	s.sources[p] = path
	p.Load(d.img, s.limits)
	p.SetDescription(d.fields.Description)
	if d.fields.DateCreated.IsZero() {
		now := s.now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		p.SetDateCreated(today)
		s.defaultDates[p] = today
	} else {
		p.SetDateCreated(d.fields.DateCreated)
	}
	for _, kw := range d.fields.Keywords {
		if strings.TrimSpace(kw) == "" {
			continue
		}
		s.catalog.TagPhoto(p, kw)
	}
	album.AddPhoto(p)
	return p
}

type loadJob struct {
	album *catalog.Album
	path  string
	name  string
}

// LoadLibrary registers every album directory and decodable photo under the
// root. Photos already in the catalog are left alone, so calling it again
// only picks up new files. Files that fail to decode are skipped and listed
// in Report.Skipped.
func (s *Synchronizer) LoadLibrary(ctx context.Context) (Report, error) {
	report := Report{RunID: uuid.NewString()}
	ctx = services.WithStage(services.WithRequestID(ctx, report.RunID), "load")
	logger := logging.WithContext(ctx, s.logger)
	started := time.Now()

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return report, services.Wrap(services.ErrConfiguration, "load", "read root", s.root, err)
	}

	var jobs []loadJob
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		album := s.catalog.Album(entry.Name())
		albumJobs, err := s.scanAlbum(album)
		if err != nil {
			report.Outcomes = append(report.Outcomes, Outcome{
				Path:  s.AlbumDir(album.Name()),
				Album: album.Name(),
				Err:   services.Wrap(nil, "load", "read album", album.Name(), err),
			})
			continue
		}
		jobs = append(jobs, albumJobs...)
	}

	results := make([]decoded, len(jobs))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.workers)
	for i := range jobs {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if groupCtx.Err() != nil {
				return nil
			}
			results[i] = s.decodeFile(groupCtx, jobs[i].path)
			return nil
		})
	}
	_ = group.Wait()

	registered := 0
	for i, job := range jobs {
		outcome := Outcome{Path: job.path, Album: job.album.Name(), Name: job.name}
		result := results[i]
		switch {
		case !result.done:
			outcome.Err = services.Wrap(nil, "load", "decode", "canceled", context.Cause(ctx))
			report.Outcomes = append(report.Outcomes, outcome)
		case result.err != nil:
			outcome.Err = result.err
			report.Skipped = append(report.Skipped, outcome)
			logger.Debug("photo skipped; decode failed",
				logging.String(logging.FieldPath, job.path),
				logging.String(logging.FieldEventType, "photo_skipped"),
				logging.String(logging.FieldErrorKind, services.KindDecode),
				logging.Error(result.err),
			)
		default:
			if existing, ok := job.album.FindPhoto(job.name); ok {
				outcome.Photo = existing
				continue
			}
			outcome.Photo = s.register(job.album, job.name, job.path, result)
			report.Outcomes = append(report.Outcomes, outcome)
			registered++
		}
	}

	logger.Info("library loaded",
		logging.String(logging.FieldEventType, "library_loaded"),
		logging.String(logging.FieldPath, s.root),
		logging.Int("albums", s.catalog.Albums.Len()),
		logging.Int("registered", registered),
		logging.Int("skipped", len(report.Skipped)),
		logging.Duration(logging.FieldDuration, time.Since(started)),
	)
	return report, nil
}

// scanAlbum lists the unregistered candidate files of one album directory in
// name order. The first file wins when two share a photo name.
func (s *Synchronizer) scanAlbum(album *catalog.Album) ([]loadJob, error) {
	dir := s.AlbumDir(album.Name())
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var jobs []loadJob
	seen := make(map[string]struct{})
	for _, entry := range entries {
		if entry.IsDir() || !s.filter.Match(entry.Name()) {
			continue
		}
		if !entry.Type().IsRegular() && entry.Type()&os.ModeSymlink == 0 {
			continue
		}
		name := PhotoName(entry.Name())
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		if _, ok := album.FindPhoto(name); ok {
			continue
		}
		jobs = append(jobs, loadJob{album: album, path: filepath.Join(dir, entry.Name()), name: name})
	}
	return jobs, nil
}

// BackingFile locates the file a photo was loaded from. A photo still in the
// album it was registered into maps to that file; otherwise the first file in
// name order whose photo name matches is used, the same rule the scan applies.
func (s *Synchronizer) BackingFile(p *catalog.Photo) (string, error) {
	album := p.Album()
	if album == nil {
		return "", services.Wrap(services.ErrNotFound, "locate", "album", fmt.Sprintf("photo %q has no album", p.Name()), nil)
	}
	dir := s.AlbumDir(album.Name())
	if source, ok := s.sources[p]; ok && filepath.Dir(source) == dir {
		if info, err := os.Stat(source); err == nil && info.Mode().IsRegular() {
			return source, nil
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", services.Wrap(services.ErrNotFound, "locate", "read album", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !s.filter.Match(entry.Name()) {
			continue
		}
		if sameName(PhotoName(entry.Name()), p.Name()) {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", services.Wrap(services.ErrNotFound, "locate", "file", fmt.Sprintf("no file for photo %q in %s", p.Name(), dir), nil)
}
