package library

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"

	"photoalbum/internal/logging"
	"photoalbum/internal/services"
)

// LockFileName is created in the library root while a mutating batch runs.
const LockFileName = ".photoalbum.lock"

// acquireLock takes the cross-process library lock without waiting.
func (s *Synchronizer) acquireLock(stage string) (func(), error) {
	path := filepath.Join(s.root, LockFileName)
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrLocked, stage, "lock", fmt.Sprintf("acquire %s", path), err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrLocked, stage, "lock", "another photoalbum process is modifying the library", nil)
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			logging.WarnWithContext(s.logger, "library lock release failed", "library_lock_release_failed",
				logging.String(logging.FieldPath, path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "remove the lock file if no photoalbum process is running"),
			)
		}
	}, nil
}
