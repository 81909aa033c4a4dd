package filesystem

import (
	"io"
	"io/fs"
)

// FileSystem provides an abstraction over file operations for testability
type FileSystem interface {
	// File operations
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error
	Remove(path string) error
	Rename(oldpath, newpath string) error
	// OpenFile opens path for writing with os.OpenFile flag semantics.
	OpenFile(path string, flag int, perm fs.FileMode) (io.WriteCloser, error)

	// Directory operations
	ReadDir(path string) ([]fs.DirEntry, error)
	MkdirAll(path string, perm fs.FileMode) error
	RemoveAll(path string) error

	// Path operations
	Stat(path string) (fs.FileInfo, error)
	Exists(path string) bool
}
