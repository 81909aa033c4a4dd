package models

import (
	"strings"

	"github.com/jakoblorz/create-ai-project/internal/errors"
)

// Category classifies a managed resource.
type Category string

const (
	CategoryAgents   Category = "agents"
	CategoryCommands Category = "commands"
	CategorySkills   Category = "skills"

	// CategoryClaudeMD is the sentinel for the top-level instruction document.
	CategoryClaudeMD Category = "CLAUDE.md"
)

// DirectoryCategories are the categories stored under .claude/<category>-<locale>.
var DirectoryCategories = []Category{CategoryAgents, CategoryCommands, CategorySkills}

// IsValid checks if the category is known
func (c Category) IsValid() bool {
	switch c {
	case CategoryAgents, CategoryCommands, CategorySkills, CategoryClaudeMD:
		return true
	default:
		return false
	}
}

// String returns the string representation of Category
func (c Category) String() string {
	return string(c)
}

// RequiresName reports whether resources of this category are addressed by name
func (c Category) RequiresName() bool {
	return c != CategoryClaudeMD
}

// ParseCategory parses a string into a Category
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", errors.Newf(errors.ErrInvalidCategory, "invalid category: %q", s).
			WithHint("valid categories: agents, commands, skills, CLAUDE.md")
	}
	return c, nil
}

// ResourceID names one logical managed resource independent of locale.
type ResourceID struct {
	Category Category
	Name     string
}

// String formats the id as "category/name", or "CLAUDE.md" for the sentinel
func (r ResourceID) String() string {
	return FormatResourceID(r.Category, r.Name)
}

// Validate checks category validity and name presence
func (r ResourceID) Validate() error {
	if _, err := ParseCategory(string(r.Category)); err != nil {
		return err
	}
	if !r.Category.RequiresName() {
		return nil
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.Newf(errors.ErrMissingResourceName, "resource name is required for category %q", r.Category).
			WithHint("specify a name, e.g. " + FormatResourceID(r.Category, "<name>"))
	}
	if strings.HasPrefix(r.Name, "/") || strings.Contains(r.Name, `\`) {
		return errors.Newf(errors.ErrInvalidResourceName, "invalid resource name: %q", r.Name)
	}
	for _, seg := range strings.Split(r.Name, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return errors.Newf(errors.ErrInvalidResourceName, "invalid resource name: %q", r.Name)
		}
	}
	return nil
}

// FormatResourceID renders a ResourceID in its canonical string form
func FormatResourceID(category Category, name string) string {
	if category == CategoryClaudeMD {
		return string(CategoryClaudeMD)
	}
	return string(category) + "/" + name
}

// ParseResourceID splits an id on its first "/". The remainder, which may
// itself contain "/", is the name.
func ParseResourceID(id string) ResourceID {
	if id == string(CategoryClaudeMD) {
		return ResourceID{Category: CategoryClaudeMD}
	}
	category, name, _ := strings.Cut(id, "/")
	return ResourceID{Category: Category(category), Name: name}
}
