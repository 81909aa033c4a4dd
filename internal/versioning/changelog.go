package versioning

import (
	"fmt"
	"strings"
)

const (
	changelogFileName = "CHANGELOG.md"

	// ExcerptLines bounds how much of the changelog is shown before confirming.
	ExcerptLines = 40
)

// Excerpt is the leading part of the template changelog.
type Excerpt struct {
	Lines     []string
	Truncated bool
}

// Empty reports whether there is nothing to show
func (e *Excerpt) Empty() bool {
	return len(e.Lines) == 0
}

// ChangelogExcerpt returns the first ExcerptLines lines of the template
// changelog. A missing changelog yields an empty excerpt.
func (t *TemplateSource) ChangelogExcerpt() (*Excerpt, error) {
	path := t.Path(changelogFileName)
	if !t.fs.Exists(path) {
		return &Excerpt{}, nil
	}

	data, err := t.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read changelog: %w", err)
	}

	content := strings.TrimSuffix(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	lines := strings.Split(content, "\n")

	excerpt := &Excerpt{Lines: lines}
	if len(lines) > ExcerptLines {
		excerpt.Lines = lines[:ExcerptLines]
		excerpt.Truncated = true
	}
	return excerpt, nil
}
