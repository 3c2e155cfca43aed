package library

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"photoalbum/internal/catalog"
	"photoalbum/internal/fileutil"
	"photoalbum/internal/logging"
	"photoalbum/internal/services"
)

// ValidateAlbumName rejects names that cannot be a single directory under the
// library root.
func ValidateAlbumName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return services.Wrap(services.ErrValidation, "album", "name", "album name is empty", nil)
	case name == "." || name == "..", strings.ContainsAny(name, `/\`):
		return services.Wrap(services.ErrValidation, "album", "name", fmt.Sprintf("album name %q is not a plain directory name", name), nil)
	case strings.HasPrefix(name, "."):
		return services.Wrap(services.ErrValidation, "album", "name", fmt.Sprintf("album name %q would be hidden", name), nil)
	}
	return nil
}

// ImportFiles copies files into the album directory and registers them. Each
// file gets its own Outcome; a failure never affects the other files.
func (s *Synchronizer) ImportFiles(ctx context.Context, files []string, albumName string) (Report, error) {
	report := Report{RunID: uuid.NewString()}
	if err := ValidateAlbumName(albumName); err != nil {
		return report, err
	}
	unlock, err := s.acquireLock("import")
	if err != nil {
		return report, err
	}
	defer unlock()

	ctx = services.WithAlbum(services.WithStage(services.WithRequestID(ctx, report.RunID), "import"), albumName)
	logger := logging.WithContext(ctx, s.logger)

	albumDir := s.AlbumDir(albumName)
	if err := os.MkdirAll(albumDir, 0o755); err != nil {
		return report, services.Wrap(services.ErrCopy, "import", "create album", albumDir, err)
	}
	album := s.catalog.Album(albumName)

	for _, file := range files {
		outcome := Outcome{Path: file, Album: albumName, Name: PhotoName(file)}
		if err := ctx.Err(); err != nil {
			outcome.Err = services.Wrap(nil, "import", "cancel", file, err)
			report.Outcomes = append(report.Outcomes, outcome)
			continue
		}
		outcome.Photo, outcome.Err = s.importFile(ctx, album, albumDir, file)
		report.Outcomes = append(report.Outcomes, outcome)

		if outcome.Err != nil {
			logging.WarnWithContext(logger, "import failed; file skipped", "import_failed",
				logging.String(logging.FieldPath, file),
				logging.String(logging.FieldErrorKind, outcome.Kind()),
				logging.Error(outcome.Err),
				logging.String(logging.FieldErrorHint, importHint(outcome.Err)),
				logging.String(logging.FieldImpact, "file was not added to the album"),
			)
			continue
		}
		logger.Info("photo imported",
			logging.String(logging.FieldEventType, "photo_imported"),
			logging.String(logging.FieldPhoto, outcome.Photo.Name()),
			logging.String(logging.FieldPath, file),
		)
	}
	return report, nil
}

func (s *Synchronizer) importFile(ctx context.Context, album *catalog.Album, albumDir, file string) (*catalog.Photo, error) {
	base := filepath.Base(file)
	if !s.filter.Match(base) {
		return nil, services.Wrap(services.ErrValidation, "import", "filter",
			fmt.Sprintf("%s does not have an accepted extension (%s)", base, strings.Join(s.filter.Extensions(), ", ")), nil)
	}
	info, err := os.Stat(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, services.Wrap(services.ErrNotFound, "import", "stat", file, err)
	case err != nil:
		return nil, services.Wrap(services.ErrCopy, "import", "stat", file, err)
	case !info.Mode().IsRegular():
		return nil, services.Wrap(services.ErrValidation, "import", "stat", file+" is not a regular file", nil)
	}

	name := PhotoName(base)
	dest := filepath.Join(albumDir, base)
	copied := false
	if !fileutil.SamePath(file, dest) {
		if existing, ok := s.existingTarget(albumDir, name); ok {
			return nil, services.Wrap(services.ErrDuplicateFile, "import", "copy",
				fmt.Sprintf("%s already exists in album %q", filepath.Base(existing), album.Name()), nil)
		}
		if err := s.copyFile(file, dest); err != nil {
			if errors.Is(err, fs.ErrExist) {
				return nil, services.Wrap(services.ErrDuplicateFile, "import", "copy", dest, err)
			}
			return nil, services.Wrap(services.ErrCopy, "import", "copy", dest, err)
		}
		copied = true
	}

	if existing, ok := album.FindPhoto(name); ok {
		return existing, nil
	}

	result := s.decodeFile(ctx, dest)
	if result.err != nil {
		if copied {
			_ = os.Remove(dest)
		}
		return nil, result.err
	}
	return s.register(album, name, dest, result), nil
}

// existingTarget finds a file in dir that would back a photo called name.
func (s *Synchronizer) existingTarget(dir, name string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	for _, entry := range entries {
		if entry.IsDir() || !s.filter.Match(entry.Name()) {
			continue
		}
		if sameName(PhotoName(entry.Name()), name) {
			return filepath.Join(dir, entry.Name()), true
		}
	}
	return "", false
}

func (s *Synchronizer) copyFile(src, dst string) error {
	if s.verify {
		return fileutil.CopyFileVerified(src, dst)
	}
	return fileutil.CopyFile(src, dst)
}

func importHint(err error) string {
	switch services.Kind(err) {
	case services.KindDuplicateFile:
		return "rename the file or remove the existing photo from the album directory"
	case services.KindDecode:
		return "the file is not a readable JPEG"
	case services.KindValidation:
		return "only files with a configured extension can be imported"
	case services.KindNotFound:
		return "check the source path"
	default:
		return "check permissions on the source file and album directory"
	}
}
