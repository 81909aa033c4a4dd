package workspace

import (
	"path/filepath"

	"github.com/jakoblorz/create-ai-project/internal/filesystem"
)

// findDirUp returns the nearest directory at or above startDir that holds
// any of names.
func findDirUp(fs filesystem.FileSystem, startDir string, names ...string) (string, bool) {
	dir := filepath.Clean(startDir)

	for {
		for _, name := range names {
			if fs.Exists(filepath.Join(dir, name)) {
				return dir, true
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
