package updater

import (
	"fmt"
	"path/filepath"

	"github.com/jakoblorz/create-ai-project/internal/backup"
	"github.com/jakoblorz/create-ai-project/internal/errors"
)

type swap struct {
	rel    string
	target string
	old    string
}

// sync replaces every planned managed path with the template's copy while
// preserving the ignored paths. It returns the replaced paths.
func (o *Orchestrator) sync(root string, plan []PlanEntry, ignoredPaths []string) ([]string, error) {
	snapshots, err := o.backups.Backup(root, ignoredPaths)
	if err != nil {
		return nil, fmt.Errorf("failed to back up ignored resources: %w", err)
	}

	updated, err := o.replaceManaged(root, plan)
	if err != nil {
		if restoreErr := o.backups.Restore(root, snapshots); restoreErr != nil {
			o.log.Error().Err(restoreErr).Msg("Failed to restore ignored resources after failed sync")
		}
		return nil, err
	}

	if len(snapshots) > 0 {
		if err := o.backups.Restore(root, snapshots); err != nil {
			return updated, fmt.Errorf("failed to restore ignored resources: %w", err)
		}
		o.printf("  Restored ignored resources.\n")
	}

	return updated, nil
}

// replaceManaged stages template copies of every UPDATE entry, then swaps
// them in. Any failure leaves the managed paths as they were.
func (o *Orchestrator) replaceManaged(root string, plan []PlanEntry) ([]string, error) {
	id, err := o.newID()
	if err != nil {
		return nil, err
	}
	stage := filepath.Join(root, backup.StagingParent, ".update-stage-"+id)
	newRoot := filepath.Join(stage, "new")
	oldRoot := filepath.Join(stage, "old")
	defer o.discardStage(root, stage)

	var pending []PlanEntry
	for _, entry := range plan {
		if entry.Action != ActionUpdate {
			if entry.SourceExists && !entry.TargetExists {
				o.printf("  Skipped %s (not present in project)\n", displayPath(entry))
			}
			continue
		}

		src := o.template.Path(entry.Path)
		staged := filepath.Join(newRoot, filepath.FromSlash(entry.Path))
		var copyErr error
		if entry.IsDir {
			_, copyErr = o.tree.CopyDirectory(src, staged)
		} else {
			_, copyErr = o.tree.CopyFile(src, staged)
		}
		if copyErr != nil {
			return nil, fmt.Errorf("failed to stage %s: %w", entry.Path, copyErr)
		}
		pending = append(pending, entry)
	}

	var done []swap
	for _, entry := range pending {
		s := swap{
			rel:    entry.Path,
			target: filepath.Join(root, filepath.FromSlash(entry.Path)),
			old:    filepath.Join(oldRoot, filepath.FromSlash(entry.Path)),
		}
		staged := filepath.Join(newRoot, filepath.FromSlash(entry.Path))

		if err := o.fs.MkdirAll(filepath.Dir(s.old), 0755); err != nil {
			o.rollback(done)
			return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to prepare swap for %s", entry.Path)
		}
		if err := o.fs.Rename(s.target, s.old); err != nil {
			o.rollback(done)
			return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to move aside %s", entry.Path)
		}
		if err := o.fs.Rename(staged, s.target); err != nil {
			if restoreErr := o.fs.Rename(s.old, s.target); restoreErr != nil {
				o.log.Error().Err(restoreErr).Str("path", entry.Path).Msg("Failed to put back original during rollback")
			}
			o.rollback(done)
			return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to replace %s", entry.Path)
		}
		done = append(done, s)
	}

	updated := make([]string, 0, len(done))
	for _, s := range done {
		updated = append(updated, s.rel)
		o.log.Debug().Str("path", s.rel).Msg("Replaced managed path")
	}
	for _, entry := range pending {
		o.printf("  Updated %s\n", displayPath(entry))
	}

	return updated, nil
}

// rollback undoes completed swaps in reverse order.
func (o *Orchestrator) rollback(done []swap) {
	for i := len(done) - 1; i >= 0; i-- {
		s := done[i]
		if err := o.fs.RemoveAll(s.target); err != nil {
			o.log.Error().Err(err).Str("path", s.rel).Msg("Failed to remove new copy during rollback")
			continue
		}
		if err := o.fs.Rename(s.old, s.target); err != nil {
			o.log.Error().Err(err).Str("path", s.rel).Msg("Failed to restore original during rollback")
		}
	}
}

func (o *Orchestrator) discardStage(root, stage string) {
	if err := o.tree.RemoveDirectory(stage); err != nil {
		o.log.Warn().Err(err).Str("path", stage).Msg("Failed to remove staging area")
		return
	}
	_ = o.tree.PruneEmpty(filepath.Join(root, backup.StagingParent))
}

func displayPath(entry PlanEntry) string {
	if entry.IsDir {
		return entry.Path + "/"
	}
	return entry.Path
}
