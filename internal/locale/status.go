package locale

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/denormal/go-gitignore"
	"github.com/jakoblorz/create-ai-project/internal/models"
	"github.com/jakoblorz/create-ai-project/internal/resource"
)

// SourceStatus describes one locale variant of a target.
type SourceStatus struct {
	Path     string
	Exists   bool
	Excluded bool
}

// LocaleStatus groups the variants of one locale.
type LocaleStatus struct {
	Locale  models.Locale
	Sources []SourceStatus
}

// TargetStatus describes one active artifact.
type TargetStatus struct {
	Path   string
	Exists bool
}

// Status is a snapshot of a project's locale configuration.
type Status struct {
	State        *models.LocaleState
	HasGitignore bool
	Locales      []LocaleStatus
	Active       []TargetStatus
}

// Status inspects the locale-state record, which locale variants exist and
// whether version control excludes them.
func (e *Engine) Status(root string) (*Status, error) {
	state, err := e.states.Load(root)
	if err != nil {
		return nil, err
	}

	ignore, err := e.loadGitignore(root)
	if err != nil {
		return nil, err
	}

	status := &Status{State: state, HasGitignore: ignore != nil}
	for _, locale := range models.SupportedLocales {
		ls := LocaleStatus{Locale: locale}
		for _, rel := range variantPaths(locale) {
			abs := filepath.Join(root, filepath.FromSlash(rel))
			info, statErr := e.fs.Stat(abs)
			src := SourceStatus{Path: rel, Exists: statErr == nil}
			if ignore != nil {
				isDir := statErr == nil && info.IsDir()
				if statErr != nil {
					isDir = filepath.Ext(rel) == ""
				}
				match := ignore.Relative(rel, isDir)
				src.Excluded = match != nil && match.Ignore()
			}
			ls.Sources = append(ls.Sources, src)
		}
		status.Locales = append(status.Locales, ls)
	}

	for _, target := range Targets {
		status.Active = append(status.Active, TargetStatus{
			Path:   target.Path,
			Exists: e.fs.Exists(filepath.Join(root, filepath.FromSlash(target.Path))),
		})
	}

	return status, nil
}

func (e *Engine) loadGitignore(root string) (gitignore.GitIgnore, error) {
	path := filepath.Join(root, ".gitignore")
	if !e.fs.Exists(path) {
		return nil, nil
	}

	data, err := e.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read .gitignore: %w", err)
	}

	return gitignore.New(bytes.NewReader(data), root, nil), nil
}

// variantPaths lists every locale source path: the activation sources
// followed by the managed resource directories not already covered.
func variantPaths(locale models.Locale) []string {
	seen := make(map[string]bool)
	var paths []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, target := range Targets {
		add(target.Source(locale))
	}
	for _, category := range models.DirectoryCategories {
		add(resource.CategoryDir(category, locale))
	}
	return paths
}
