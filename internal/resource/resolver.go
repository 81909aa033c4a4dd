package resource

import (
	"path"

	"github.com/jakoblorz/create-ai-project/internal/models"
)

// ManagedPaths lists every template-owned location in a project, as
// slash-separated paths relative to the project root.
type ManagedPaths struct {
	Dirs  []string
	Files []string
}

// Resolver maps logical resource ids onto their per-locale paths.
type Resolver struct {
	locales []models.Locale
}

// NewResolver creates a resolver over the supported locales
func NewResolver() *Resolver {
	return &Resolver{locales: models.SupportedLocales}
}

// Resolve returns every localized relative path for a resource, one per
// supported locale, in locale order.
func (r *Resolver) Resolve(category models.Category, name string) ([]string, error) {
	return r.ResolveID(models.ResourceID{Category: category, Name: name})
}

// ResolveID is Resolve for an already-built ResourceID
func (r *Resolver) ResolveID(id models.ResourceID) ([]string, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(r.locales))
	for _, locale := range r.locales {
		paths = append(paths, LocalizedPath(id, locale))
	}
	return paths, nil
}

// ResolveAll resolves a list of formatted ids, concatenating the results.
// The first invalid id aborts resolution.
func (r *Resolver) ResolveAll(ids []string) ([]string, error) {
	var paths []string
	for _, raw := range ids {
		resolved, err := r.ResolveID(models.ParseResourceID(raw))
		if err != nil {
			return nil, err
		}
		paths = append(paths, resolved...)
	}
	return paths, nil
}

// ManagedPaths enumerates the managed directories and files for every locale.
func (r *Resolver) ManagedPaths() ManagedPaths {
	var managed ManagedPaths
	for _, locale := range r.locales {
		for _, category := range models.DirectoryCategories {
			managed.Dirs = append(managed.Dirs, CategoryDir(category, locale))
		}
	}
	for _, locale := range r.locales {
		managed.Files = append(managed.Files, ClaudeMDPath(locale))
	}
	return managed
}

// LocalizedPath is the relative path of id in one locale. id must be valid.
func LocalizedPath(id models.ResourceID, locale models.Locale) string {
	switch id.Category {
	case models.CategoryClaudeMD:
		return ClaudeMDPath(locale)
	case models.CategorySkills:
		return path.Join(CategoryDir(id.Category, locale), id.Name)
	default:
		return path.Join(CategoryDir(id.Category, locale), id.Name+".md")
	}
}

// CategoryDir is the locale variant directory of a category, e.g. ".claude/agents-en".
func CategoryDir(category models.Category, locale models.Locale) string {
	return path.Join(".claude", string(category)+"-"+string(locale))
}

// ClaudeMDPath is the locale variant of the top-level instruction document.
func ClaudeMDPath(locale models.Locale) string {
	return "CLAUDE." + string(locale) + ".md"
}
