package treesync

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jakoblorz/create-ai-project/internal/errors"
	"github.com/jakoblorz/create-ai-project/internal/filesystem"
	"github.com/jakoblorz/create-ai-project/internal/logging"
	"github.com/rs/zerolog"
)

// Tree copies and removes file trees. Copies are additive: files already
// present in the target and absent from the source are left alone.
type Tree struct {
	fs  filesystem.FileSystem
	log zerolog.Logger
}

// New creates a new Tree
func New(fs filesystem.FileSystem) *Tree {
	return &Tree{fs: fs, log: logging.GetLogger("treesync")}
}

// CopyDirectory copies source into target recursively, overwriting files.
// It returns false without touching anything when source does not exist.
func (t *Tree) CopyDirectory(source, target string) (bool, error) {
	info, err := t.fs.Stat(source)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, ioFailure(err, "failed to stat %s", source)
	}
	if !info.IsDir() {
		return false, errors.Newf(errors.ErrIOFailure, "%s is not a directory", source)
	}

	if err := t.copyDir(source, target); err != nil {
		return false, err
	}

	t.log.Debug().Str("source", source).Str("target", target).Msg("Copied directory")
	return true, nil
}

func (t *Tree) copyDir(source, target string) error {
	if err := t.fs.MkdirAll(target, 0755); err != nil {
		return ioFailure(err, "failed to create directory %s", target)
	}

	entries, err := t.fs.ReadDir(source)
	if err != nil {
		return ioFailure(err, "failed to read directory %s", source)
	}

	for _, entry := range entries {
		src := filepath.Join(source, entry.Name())
		dst := filepath.Join(target, entry.Name())

		if entry.IsDir() {
			if err := t.copyDir(src, dst); err != nil {
				return err
			}
			continue
		}

		if err := t.copyFileContents(src, dst); err != nil {
			return err
		}
	}

	return nil
}

// CopyFile copies a single file, creating the target's parent directories.
// It returns false when source does not exist.
func (t *Tree) CopyFile(source, target string) (bool, error) {
	info, err := t.fs.Stat(source)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, ioFailure(err, "failed to stat %s", source)
	}
	if info.IsDir() {
		return false, errors.Newf(errors.ErrIOFailure, "%s is a directory", source)
	}

	if err := t.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return false, ioFailure(err, "failed to create directory %s", filepath.Dir(target))
	}

	if err := t.copyFileContents(source, target); err != nil {
		return false, err
	}

	t.log.Debug().Str("source", source).Str("target", target).Msg("Copied file")
	return true, nil
}

// CopyPath copies source to target whether it is a file or a directory.
func (t *Tree) CopyPath(source, target string) (bool, error) {
	info, err := t.fs.Stat(source)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, ioFailure(err, "failed to stat %s", source)
	}

	if info.IsDir() {
		return t.CopyDirectory(source, target)
	}
	return t.CopyFile(source, target)
}

// RemoveDirectory deletes path and everything beneath it. Absent paths are a no-op.
func (t *Tree) RemoveDirectory(path string) error {
	if !t.fs.Exists(path) {
		return nil
	}
	if err := t.fs.RemoveAll(path); err != nil {
		return ioFailure(err, "failed to remove %s", path)
	}

	t.log.Debug().Str("path", path).Msg("Removed")
	return nil
}

// PruneEmpty removes dir if it exists and has no entries.
func (t *Tree) PruneEmpty(dir string) error {
	if !t.fs.Exists(dir) {
		return nil
	}
	entries, err := t.fs.ReadDir(dir)
	if err != nil {
		return ioFailure(err, "failed to read directory %s", dir)
	}
	if len(entries) > 0 {
		return nil
	}
	if err := t.fs.Remove(dir); err != nil {
		return ioFailure(err, "failed to remove %s", dir)
	}
	return nil
}

func (t *Tree) copyFileContents(source, target string) error {
	info, err := t.fs.Stat(source)
	if err != nil {
		return ioFailure(err, "failed to stat %s", source)
	}

	data, err := t.fs.ReadFile(source)
	if err != nil {
		return ioFailure(err, "failed to read %s", source)
	}

	if err := t.fs.WriteFile(target, data, info.Mode().Perm()); err != nil {
		return ioFailure(err, "failed to write %s", target)
	}

	return nil
}

func ioFailure(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, errors.ErrIOFailure, fmt.Sprintf(format, args...))
}
