package workspace

import (
	"github.com/jakoblorz/create-ai-project/internal/filesystem"
	"github.com/jakoblorz/create-ai-project/internal/locale"
	"github.com/jakoblorz/create-ai-project/internal/manifest"
)

// Markers are the files whose presence identifies a project root.
var Markers = []string{manifest.FileName, locale.StateFileName}

// FindProjectRoot walks up from start to the nearest directory holding a
// marker. When none is found it returns start and false.
func FindProjectRoot(fs filesystem.FileSystem, start string) (string, bool) {
	if root, ok := findDirUp(fs, start, Markers...); ok {
		return root, true
	}
	return start, false
}
