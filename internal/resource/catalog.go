package resource

import (
	"bytes"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/jakoblorz/create-ai-project/internal/filesystem"
	"github.com/jakoblorz/create-ai-project/internal/models"
)

// SkillFile is the document describing a skill directory.
const SkillFile = "SKILL.md"

// Entry describes one installed resource of the active locale.
type Entry struct {
	ID          models.ResourceID
	Description string
	Ignored     bool
	Path        string
}

type resourceMatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Catalog lists resources present in a project.
type Catalog struct {
	fs filesystem.FileSystem
}

// NewCatalog creates a new catalog
func NewCatalog(fs filesystem.FileSystem) *Catalog {
	return &Catalog{fs: fs}
}

// List returns the agents, commands and skills installed for locale,
// marking entries whose id appears in ignored.
func (c *Catalog) List(root string, locale models.Locale, ignored []string) ([]Entry, error) {
	ignoredSet := make(map[string]bool, len(ignored))
	for _, id := range ignored {
		ignoredSet[id] = true
	}

	var entries []Entry
	for _, category := range models.DirectoryCategories {
		dir := filepath.Join(root, filepath.FromSlash(CategoryDir(category, locale)))
		if !c.fs.Exists(dir) {
			continue
		}

		items, err := c.fs.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", dir, err)
		}

		for _, item := range items {
			entry, ok, err := c.entryFor(category, dir, item)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			entry.Ignored = ignoredSet[entry.ID.String()]
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

func (c *Catalog) entryFor(category models.Category, dir string, item fs.DirEntry) (Entry, bool, error) {
	var name, docPath string
	switch {
	case category == models.CategorySkills && item.IsDir():
		name = item.Name()
		docPath = filepath.Join(dir, name, SkillFile)
	case category != models.CategorySkills && !item.IsDir() && strings.HasSuffix(item.Name(), ".md"):
		name = strings.TrimSuffix(item.Name(), ".md")
		docPath = filepath.Join(dir, item.Name())
	default:
		return Entry{}, false, nil
	}

	entry := Entry{
		ID:   models.ResourceID{Category: category, Name: name},
		Path: filepath.Join(dir, item.Name()),
	}

	if !c.fs.Exists(docPath) {
		return entry, true, nil
	}

	matter, err := c.readMatter(docPath)
	if err != nil {
		return Entry{}, false, err
	}
	entry.Description = strings.TrimSpace(matter.Description)

	return entry, true, nil
}

func (c *Catalog) readMatter(path string) (*resourceMatter, error) {
	data, err := c.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var matter resourceMatter
	if _, err := frontmatter.Parse(bytes.NewReader(data), &matter); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter in %s: %w", path, err)
	}

	return &matter, nil
}
