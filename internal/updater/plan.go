package updater

import (
	"path/filepath"

	"github.com/jakoblorz/create-ai-project/internal/report"
)

// Action is what a sync does with one managed path.
type Action string

const (
	ActionUpdate Action = "UPDATE"
	ActionSkip   Action = "SKIP"
)

// PlanEntry is the planned treatment of one managed path.
type PlanEntry struct {
	Action       Action
	Path         string
	IsDir        bool
	SourceExists bool
	TargetExists bool
}

// Plan lists every managed path and whether a sync would replace it.
// A path is replaced only when it exists both in the template and in the project.
func (o *Orchestrator) Plan(root string) ([]PlanEntry, error) {
	managed := o.resolver.ManagedPaths()

	entries := make([]PlanEntry, 0, len(managed.Dirs)+len(managed.Files))
	add := func(rel string, isDir bool) {
		entry := PlanEntry{
			Action:       ActionSkip,
			Path:         rel,
			IsDir:        isDir,
			SourceExists: o.fs.Exists(o.template.Path(rel)),
			TargetExists: o.fs.Exists(filepath.Join(root, filepath.FromSlash(rel))),
		}
		if entry.SourceExists && entry.TargetExists {
			entry.Action = ActionUpdate
		}
		entries = append(entries, entry)
	}

	for _, dir := range managed.Dirs {
		add(dir, true)
	}
	for _, file := range managed.Files {
		add(file, false)
	}

	return entries, nil
}

func planLines(plan []PlanEntry) []report.PlanLine {
	lines := make([]report.PlanLine, 0, len(plan))
	for _, entry := range plan {
		lines = append(lines, report.PlanLine{
			Action: string(entry.Action),
			Path:   entry.Path,
			IsDir:  entry.IsDir,
		})
	}
	return lines
}
