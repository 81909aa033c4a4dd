package filesystem

import (
	"io"
	"io/fs"
	"sort"

	"github.com/spf13/afero"
)

var _ FileSystem = (*AferoFileSystem)(nil)

// AferoFileSystem implements FileSystem on top of an afero.Fs.
type AferoFileSystem struct {
	fs afero.Fs
}

// New wraps an existing afero filesystem.
func New(base afero.Fs) *AferoFileSystem {
	return &AferoFileSystem{fs: base}
}

// NewOSFileSystem creates a FileSystem backed by the real OS
func NewOSFileSystem() *AferoFileSystem {
	return New(afero.NewOsFs())
}

func (a *AferoFileSystem) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(a.fs, path)
}

func (a *AferoFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.fs, path, data, perm)
}

func (a *AferoFileSystem) Remove(path string) error {
	return a.fs.Remove(path)
}

func (a *AferoFileSystem) Rename(oldpath, newpath string) error {
	return a.fs.Rename(oldpath, newpath)
}

// ReadDir returns the entries of a directory sorted by name.
func (a *AferoFileSystem) OpenFile(path string, flag int, perm fs.FileMode) (io.WriteCloser, error) {
	return a.fs.OpenFile(path, flag, perm)
}

func (a *AferoFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	infos, err := afero.ReadDir(a.fs, path)
	if err != nil {
		return nil, err
	}

	entries := make([]fs.DirEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, fs.FileInfoToDirEntry(info))
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	return entries, nil
}

func (a *AferoFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

func (a *AferoFileSystem) RemoveAll(path string) error {
	return a.fs.RemoveAll(path)
}

func (a *AferoFileSystem) Stat(path string) (fs.FileInfo, error) {
	return a.fs.Stat(path)
}

func (a *AferoFileSystem) Exists(path string) bool {
	ok, err := afero.Exists(a.fs, path)
	return err == nil && ok
}
