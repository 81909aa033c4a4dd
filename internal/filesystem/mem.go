package filesystem

import (
	"path/filepath"

	"github.com/spf13/afero"
)

// MemFileSystem is an in-memory FileSystem for tests.
type MemFileSystem struct {
	*AferoFileSystem
}

// NewMemFileSystem creates an empty in-memory filesystem
func NewMemFileSystem() *MemFileSystem {
	return &MemFileSystem{AferoFileSystem: New(afero.NewMemMapFs())}
}

// AddFile adds a file, creating parent directories as needed
func (m *MemFileSystem) AddFile(path string, content []byte) {
	cleanPath := filepath.Clean(path)
	_ = m.MkdirAll(filepath.Dir(cleanPath), 0755)
	_ = m.WriteFile(cleanPath, content, 0644)
}

// AddDir adds a directory
func (m *MemFileSystem) AddDir(path string) {
	_ = m.MkdirAll(filepath.Clean(path), 0755)
}
