package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jakoblorz/create-ai-project/internal/errors"
	"github.com/jakoblorz/create-ai-project/internal/filesystem"
)

const (
	// FileName is the lock file created at the project root
	FileName = ".create-ai-project.lock"
	// StaleTimeout is the age after which a lock is considered abandoned
	StaleTimeout = 10 * time.Minute
)

// Lock guards a project against concurrent mutating runs.
type Lock struct {
	fs       filesystem.FileSystem
	path     string
	acquired bool
	now      func() time.Time
}

// New creates a lock for the given project root
func New(fs filesystem.FileSystem, root string) *Lock {
	return &Lock{
		fs:   fs,
		path: filepath.Join(root, FileName),
		now:  time.Now,
	}
}

// TryAcquire attempts to acquire the lock.
// Returns true if acquired, false if another run holds it.
func (l *Lock) TryAcquire() (bool, error) {
	for attempt := 0; attempt < 2; attempt++ {
		err := l.create()
		if err == nil {
			l.acquired = true
			return true, nil
		}
		if !os.IsExist(err) {
			return false, fmt.Errorf("failed to create lock file: %w", err)
		}

		stale, err := l.stale()
		if err != nil {
			return false, err
		}
		if !stale {
			return false, nil
		}
		if err := l.fs.Remove(l.path); err != nil && !os.IsNotExist(err) {
			return false, fmt.Errorf("failed to remove stale lock: %w", err)
		}
	}
	return false, nil
}

// create writes the lock file, failing when it already exists.
func (l *Lock) create() error {
	f, err := l.fs.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return err
	}
	if _, err := f.Write([]byte(strconv.Itoa(os.Getpid()))); err != nil {
		_ = f.Close()
		_ = l.fs.Remove(l.path)
		return err
	}
	return f.Close()
}

func (l *Lock) stale() (bool, error) {
	info, err := l.fs.Stat(l.path)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat lock file: %w", err)
	}
	return l.now().Sub(info.ModTime()) > StaleTimeout, nil
}

// Acquire is TryAcquire that reports a held lock as PROJECT_LOCKED.
func (l *Lock) Acquire() error {
	ok, err := l.TryAcquire()
	if err != nil {
		return err
	}
	if !ok {
		holder := "another process"
		if pid, err := l.PID(); err == nil {
			holder = fmt.Sprintf("process %d", pid)
		}
		return errors.Newf(errors.ErrProjectLocked, "project is locked by %s", holder).
			WithDetail("lock", l.path).
			WithHint(fmt.Sprintf("wait for it to finish, or delete %s if no update is running", l.path))
	}
	return nil
}

// Release releases the lock
func (l *Lock) Release() error {
	if !l.acquired {
		return nil
	}

	if err := l.fs.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}

	l.acquired = false
	return nil
}

// PID returns the process id stored in the lock file
func (l *Lock) PID() (int, error) {
	data, err := l.fs.ReadFile(l.path)
	if err != nil {
		return 0, err
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID in lock file: %w", err)
	}
	return pid, nil
}
