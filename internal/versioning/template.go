package versioning

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jakoblorz/create-ai-project/internal/errors"
	"github.com/jakoblorz/create-ai-project/internal/filesystem"
)

const (
	packageFileName = "package.json"
	versionFileName = "version.txt"
)

// TemplateSource is the read-only template tree shipped with the tool.
type TemplateSource struct {
	fs   filesystem.FileSystem
	Root string
}

// NewTemplateSource creates a TemplateSource rooted at root
func NewTemplateSource(fs filesystem.FileSystem, root string) *TemplateSource {
	return &TemplateSource{fs: fs, Root: root}
}

// Path resolves a slash-separated relative path inside the template
func (t *TemplateSource) Path(rel string) string {
	return filepath.Join(t.Root, filepath.FromSlash(rel))
}

// Version reads the template version from the version field of
// package.json, falling back to version.txt.
func (t *TemplateSource) Version() (string, error) {
	pkgPath := t.Path(packageFileName)
	if t.fs.Exists(pkgPath) {
		data, err := t.fs.ReadFile(pkgPath)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrIOFailure, "failed to read %s", packageFileName)
		}

		var pkg map[string]interface{}
		if err := json.Unmarshal(data, &pkg); err != nil {
			return "", errors.Wrapf(err, errors.ErrTemplateInvalid, "failed to parse %s", pkgPath)
		}

		if version, _ := pkg["version"].(string); strings.TrimSpace(version) != "" {
			return strings.TrimSpace(version), nil
		}
	}

	versionPath := t.Path(versionFileName)
	if t.fs.Exists(versionPath) {
		data, err := t.fs.ReadFile(versionPath)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrIOFailure, "failed to read %s", versionFileName)
		}
		if version := strings.TrimSpace(string(data)); version != "" {
			return version, nil
		}
	}

	return "", errors.Newf(errors.ErrTemplateInvalid, "no template version found in %s", t.Root).
		WithHint(fmt.Sprintf("point --template at a directory containing %s", packageFileName))
}
