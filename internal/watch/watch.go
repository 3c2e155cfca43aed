package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"photoalbum/internal/logging"
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 500 * time.Millisecond

// Watcher observes the library root and its album directories.
type Watcher struct {
	root     string
	debounce time.Duration
	logger   *slog.Logger
}

func New(root string, debounce time.Duration, logger *slog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		root:     root,
		debounce: debounce,
		logger:   logging.NewComponentLogger(logger, "watch"),
	}
}

// Run blocks until ctx is done, calling onChange once per settled burst of
// changes. An error from onChange is logged and watching continues.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context) error) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.root); err != nil {
		return fmt.Errorf("watch %s: %w", w.root, err)
	}
	entries, err := os.ReadDir(w.root)
	if err != nil {
		return fmt.Errorf("read %s: %w", w.root, err)
	}
	for _, entry := range entries {
		if entry.IsDir() && !ignored(entry.Name()) {
			w.addDir(fsw, filepath.Join(w.root, entry.Name()))
		}
	}
	w.logger.Info("watching library",
		logging.String(logging.FieldEventType, "watch_started"),
		logging.String(logging.FieldPath, w.root),
		logging.Int(logging.FieldCount, len(fsw.WatchList())),
	)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	pending := 0

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(fsw, event) {
				continue
			}
			w.logger.Debug("library change",
				logging.String(logging.FieldPath, event.Name),
				logging.String("op", event.Op.String()),
			)
			pending++
			timer.Reset(w.debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				pending++
				timer.Reset(w.debounce)
			}
			logging.WarnWithContext(w.logger, "file watcher error", "watch_error",
				logging.Error(err),
				logging.String(logging.FieldImpact, "some changes may be picked up late"),
			)
		case <-timer.C:
			if pending == 0 {
				continue
			}
			count := pending
			pending = 0
			w.logger.Info("library changed",
				logging.String(logging.FieldEventType, "library_changed"),
				logging.Int(logging.FieldCount, count),
			)
			if err := onChange(ctx); err != nil && ctx.Err() == nil {
				logging.WarnWithContext(w.logger, "rescan failed", "rescan_failed",
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "the next change will trigger another rescan"),
				)
			}
		}
	}
}

// relevant filters out hidden files such as the lock file and atomic-write
// temporaries, and starts watching newly created album directories.
func (w *Watcher) relevant(fsw *fsnotify.Watcher, event fsnotify.Event) bool {
	if ignored(filepath.Base(event.Name)) {
		return false
	}
	if event.Op.Has(fsnotify.Chmod) && !event.Op.Has(fsnotify.Write) {
		return false
	}
	if event.Op.Has(fsnotify.Create) && filepath.Dir(event.Name) == filepath.Clean(w.root) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.addDir(fsw, event.Name)
		}
	}
	return true
}

func (w *Watcher) addDir(fsw *fsnotify.Watcher, dir string) {
	if err := fsw.Add(dir); err != nil {
		logging.WarnWithContext(w.logger, "album directory not watched", "watch_add_failed",
			logging.String(logging.FieldPath, dir),
			logging.Error(err),
		)
	}
}

func ignored(name string) bool {
	return strings.HasPrefix(name, ".")
}
