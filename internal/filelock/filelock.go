// Package filelock keeps a second process from administering surveys against
// the same history file.
package filelock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"osdi-survey/internal/domain"
)

// FileLock wraps a flock lock on "<target>.lock".
type FileLock struct {
	flock *flock.Flock
	path  string
}

// ForFile returns the lock guarding target. The lock file sits next to it.
func ForFile(target string) *FileLock {
	path := target + ".lock"
	return &FileLock{flock: flock.New(path), path: path}
}

// Acquire takes the lock without blocking. It returns domain.ErrSurveyLocked
// when another process holds it.
func (fl *FileLock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(fl.path), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	acquired, err := fl.flock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to try lock on %s: %w", fl.path, err)
	}
	if !acquired {
		return fmt.Errorf("%w: %s", domain.ErrSurveyLocked, fl.path)
	}
	return nil
}

// Release unlocks; releasing an unheld lock is a no-op.
func (fl *FileLock) Release() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}

func (fl *FileLock) Path() string { return fl.path }
