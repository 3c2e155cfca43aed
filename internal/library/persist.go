package library

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/google/uuid"

	"photoalbum/internal/catalog"
	"photoalbum/internal/fileutil"
	"photoalbum/internal/iptc"
	"photoalbum/internal/logging"
	"photoalbum/internal/services"
)

// WriteLibraryMetadata writes every registered photo's description, tag
// names, and date into its backing file. Photos whose file is missing or
// cannot be rewritten are reported and the rest continue.
func (s *Synchronizer) WriteLibraryMetadata(ctx context.Context) (Report, error) {
	return s.writeMetadata(ctx, s.catalog.Photos())
}

// WritePhotoMetadata is WriteLibraryMetadata limited to photos. Other files
// in the library are not touched.
func (s *Synchronizer) WritePhotoMetadata(ctx context.Context, photos ...*catalog.Photo) (Report, error) {
	return s.writeMetadata(ctx, photos)
}

func (s *Synchronizer) writeMetadata(ctx context.Context, photos []*catalog.Photo) (Report, error) {
	report := Report{RunID: uuid.NewString()}
	unlock, err := s.acquireLock("write")
	if err != nil {
		return report, err
	}
	defer unlock()

	ctx = services.WithStage(services.WithRequestID(ctx, report.RunID), "write")
	logger := logging.WithContext(ctx, s.logger)

	written := 0
	for _, p := range photos {
		outcome := Outcome{Album: albumOf(p), Name: p.Name(), Photo: p}
		if err := ctx.Err(); err != nil {
			outcome.Err = services.Wrap(nil, "write", "cancel", p.Name(), err)
			report.Outcomes = append(report.Outcomes, outcome)
			continue
		}
		outcome.Path, outcome.Err = s.writePhoto(p)
		report.Outcomes = append(report.Outcomes, outcome)
		if outcome.Err != nil {
			logging.WarnWithContext(logger, "metadata write failed; photo skipped", "metadata_write_failed",
				logging.String(logging.FieldAlbum, outcome.Album),
				logging.String(logging.FieldPhoto, p.Name()),
				logging.String(logging.FieldErrorKind, outcome.Kind()),
				logging.Error(outcome.Err),
				logging.String(logging.FieldErrorHint, "check that the photo file still exists and is writable"),
				logging.String(logging.FieldImpact, "description and tags for this photo are not saved"),
			)
			continue
		}
		written++
	}

	logger.Info("library metadata written",
		logging.String(logging.FieldEventType, "metadata_written"),
		logging.Int("written", written),
		logging.Int("failed", len(report.Failed())),
	)
	return report, nil
}

func (s *Synchronizer) writePhoto(p *catalog.Photo) (string, error) {
	path, err := s.BackingFile(p)
	if err != nil {
		return "", err
	}
	if err := iptc.Write(path, s.updateFor(p)); err != nil {
		return path, services.Wrap(services.ErrMetadataWrite, "write", "iptc", path, err)
	}
	return path, nil
}

// updateFor builds the metadata write for p. A date that was only filled in
// because the file had none is not written.
func (s *Synchronizer) updateFor(p *catalog.Photo) iptc.Update {
	u := iptc.Update{Description: p.Description(), Keywords: p.TagNames()}
	if date, ok := p.DateCreated(); ok {
		if fallback, defaulted := s.defaultDates[p]; !defaulted || !fallback.Equal(date) {
			u.DateCreated = date
		}
	}
	return u
}

// ReloadPhoto re-decodes the photo's backing file and replaces its pixels and
// thumbnail, discarding unsaved edits. Metadata fields are left as they are.
func (s *Synchronizer) ReloadPhoto(ctx context.Context, p *catalog.Photo) error {
	path, err := s.BackingFile(p)
	if err != nil {
		return err
	}
	result := s.decodeFile(ctx, path)
	if result.err != nil {
		return result.err
	}
	p.Load(result.img, s.limits)
	return nil
}

// SaveRaster re-encodes the photo's current pixels into its backing file.
// The file's existing resource block is carried over and then updated with
// the photo's description, tags, and date.
func (s *Synchronizer) SaveRaster(ctx context.Context, p *catalog.Photo) error {
	if !p.Loaded() {
		return services.Wrap(services.ErrValidation, "save", "raster", p.Name(), catalog.ErrNotLoaded)
	}
	unlock, err := s.acquireLock("save")
	if err != nil {
		return err
	}
	defer unlock()

	path, err := s.BackingFile(p)
	if err != nil {
		return err
	}
	original, err := os.ReadFile(path)
	if err != nil {
		return services.Wrap(services.ErrNotFound, "save", "read", path, err)
	}
	var buf bytes.Buffer
	if err := s.codec.Encode(&buf, p.Raster()); err != nil {
		return services.Wrap(nil, "save", "encode", path, err)
	}
	data, err := iptc.Transplant(original, buf.Bytes())
	if err != nil {
		data = buf.Bytes()
	}
	data, err = iptc.Apply(data, s.updateFor(p))
	if err != nil {
		return services.Wrap(services.ErrMetadataWrite, "save", "iptc", path, err)
	}
	if err := fileutil.WriteFileAtomic(path, data); err != nil {
		return services.Wrap(nil, "save", "write", path, err)
	}
	logging.WithContext(ctx, s.logger).Info("photo saved",
		logging.String(logging.FieldEventType, "photo_saved"),
		logging.String(logging.FieldPath, path),
	)
	return nil
}

// DefaultedDate reports whether p's date was filled in at load time because
// its file carried none.
func (s *Synchronizer) DefaultedDate(p *catalog.Photo) (time.Time, bool) {
	date, ok := s.defaultDates[p]
	return date, ok
}

func albumOf(p *catalog.Photo) string {
	if a := p.Album(); a != nil {
		return a.Name()
	}
	return ""
}
