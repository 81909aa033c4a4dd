package workspace

import (
	"encoding/json"
	"path"
	"path/filepath"
	"time"

	"github.com/jakoblorz/create-ai-project/internal/filesystem"
	"github.com/jakoblorz/create-ai-project/internal/locale"
	"github.com/jakoblorz/create-ai-project/internal/manifest"
	"github.com/jakoblorz/create-ai-project/internal/models"
	"github.com/jakoblorz/create-ai-project/internal/resource"
)

// ProjectBuilder helps create test projects and templates
type ProjectBuilder struct {
	fs   *filesystem.MemFileSystem
	root string
}

// NewProjectBuilder creates a new ProjectBuilder rooted at root
func NewProjectBuilder(root string) *ProjectBuilder {
	fs := filesystem.NewMemFileSystem()
	fs.AddDir(root)

	return &ProjectBuilder{
		fs:   fs,
		root: root,
	}
}

// On continues building on fs, so a template and a project can share one filesystem
func (pb *ProjectBuilder) On(fs *filesystem.MemFileSystem) *ProjectBuilder {
	pb.fs = fs
	pb.fs.AddDir(pb.root)
	return pb
}

// WithManifest writes the project manifest
func (pb *ProjectBuilder) WithManifest(version string, language models.Locale, ignored ...string) *ProjectBuilder {
	m := &models.Manifest{Version: version, Language: language, Ignored: append([]string{}, ignored...)}
	data, _ := json.MarshalIndent(m, "", "  ")
	pb.fs.AddFile(filepath.Join(pb.root, manifest.FileName), append(data, '\n'))
	return pb
}

// WithLocaleState records l as the active locale
func (pb *ProjectBuilder) WithLocaleState(l models.Locale) *ProjectBuilder {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	data, _ := json.Marshal(&models.LocaleState{Current: l, Method: models.LocaleMethodCopy, LastUpdated: &now})
	pb.fs.AddFile(filepath.Join(pb.root, locale.StateFileName), data)
	return pb
}

// WithVersion writes a package.json carrying version, as a template does
func (pb *ProjectBuilder) WithVersion(version string) *ProjectBuilder {
	data, _ := json.Marshal(map[string]string{"name": "create-ai-project", "version": version})
	pb.fs.AddFile(filepath.Join(pb.root, "package.json"), data)
	return pb
}

// AddResource writes the l variant of id. Skills get their SKILL.md.
func (pb *ProjectBuilder) AddResource(l models.Locale, id models.ResourceID, content string) *ProjectBuilder {
	rel := resource.LocalizedPath(id, l)
	if id.Category == models.CategorySkills {
		rel = path.Join(rel, resource.SkillFile)
	}
	return pb.AddFile(rel, content)
}

// AddFile writes a file relative to the root
func (pb *ProjectBuilder) AddFile(rel, content string) *ProjectBuilder {
	pb.fs.AddFile(filepath.Join(pb.root, filepath.FromSlash(rel)), []byte(content))
	return pb
}

// Root returns the project root
func (pb *ProjectBuilder) Root() string {
	return pb.root
}

// Build returns the filesystem holding the project
func (pb *ProjectBuilder) Build() *filesystem.MemFileSystem {
	return pb.fs
}
