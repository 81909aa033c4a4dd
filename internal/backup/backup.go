package backup

import (
	stderrors "errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/jakoblorz/create-ai-project/internal/errors"
	"github.com/jakoblorz/create-ai-project/internal/filesystem"
	"github.com/jakoblorz/create-ai-project/internal/logging"
	"github.com/jakoblorz/create-ai-project/internal/treesync"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// StagingParent is the project-relative directory holding staging areas.
const StagingParent = "tmp"

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewStagingID returns a short random id for a staging directory name.
func NewStagingID() (string, error) {
	id, err := gonanoid.Generate(idAlphabet, 10)
	if err != nil {
		return "", fmt.Errorf("failed to generate nanoid: %w", err)
	}
	return id, nil
}

// Snapshot is a staged copy of one project path.
type Snapshot struct {
	// Path is the slash-separated path relative to the project root.
	Path string
	// Staged is the absolute location of the copy.
	Staged string
	// StagingDir is the staging area that owns Staged.
	StagingDir string
	IsDir      bool
}

// Coordinator preserves user-owned paths across a template sync.
type Coordinator struct {
	fs    filesystem.FileSystem
	tree  *treesync.Tree
	log   zerolog.Logger
	newID func() (string, error)
}

// NewCoordinator creates a new backup coordinator
func NewCoordinator(fs filesystem.FileSystem) *Coordinator {
	return &Coordinator{
		fs:    fs,
		tree:  treesync.New(fs),
		log:   logging.GetLogger("backup"),
		newID: NewStagingID,
	}
}

// Backup copies every existing path into a fresh staging area under
// <root>/tmp. Paths that do not exist are skipped. On failure the staging
// area is removed and no snapshots are returned.
func (c *Coordinator) Backup(root string, paths []string) ([]Snapshot, error) {
	var existing []string
	for _, rel := range paths {
		if err := checkRelative(rel); err != nil {
			return nil, err
		}
		if c.fs.Exists(abs(root, rel)) {
			existing = append(existing, rel)
		}
	}
	if len(existing) == 0 {
		return nil, nil
	}

	id, err := c.newID()
	if err != nil {
		return nil, err
	}
	stagingDir := filepath.Join(root, StagingParent, ".update-backup-"+id)

	snapshots := make([]Snapshot, 0, len(existing))
	for _, rel := range existing {
		src := abs(root, rel)
		staged := filepath.Join(stagingDir, filepath.FromSlash(rel))

		info, err := c.fs.Stat(src)
		if err != nil {
			c.discard(root, stagingDir)
			return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to stat %s", rel)
		}

		if _, err := c.tree.CopyPath(src, staged); err != nil {
			c.discard(root, stagingDir)
			return nil, fmt.Errorf("failed to back up %s: %w", rel, err)
		}

		snapshots = append(snapshots, Snapshot{
			Path:       rel,
			Staged:     staged,
			StagingDir: stagingDir,
			IsDir:      info.IsDir(),
		})
		c.log.Debug().Str("path", rel).Str("staged", staged).Msg("Backed up")
	}

	return snapshots, nil
}

// Restore replaces whatever sits at each snapshot's path with the staged
// copy. A failed path does not stop the others. The staging areas are
// deleted only when every snapshot was restored.
func (c *Coordinator) Restore(root string, snapshots []Snapshot) error {
	stagingDirs := make(map[string]bool)
	var errs []error
	for _, snap := range snapshots {
		stagingDirs[snap.StagingDir] = true
		if err := c.restore(root, snap); err != nil {
			c.log.Warn().Err(err).Str("path", snap.Path).Str("staged", snap.Staged).Msg("Failed to restore")
			errs = append(errs, err)
			continue
		}
		c.log.Debug().Str("path", snap.Path).Msg("Restored")
	}

	if len(errs) > 0 {
		return stderrors.Join(errs...)
	}

	for dir := range stagingDirs {
		c.discard(root, dir)
	}
	return nil
}

func (c *Coordinator) restore(root string, snap Snapshot) error {
	target := abs(root, snap.Path)
	if err := c.tree.RemoveDirectory(target); err != nil {
		return fmt.Errorf("failed to clear %s: %w", snap.Path, err)
	}

	var (
		copied bool
		err    error
	)
	if snap.IsDir {
		copied, err = c.tree.CopyDirectory(snap.Staged, target)
	} else {
		copied, err = c.tree.CopyFile(snap.Staged, target)
	}
	if err != nil {
		return fmt.Errorf("failed to restore %s: %w", snap.Path, err)
	}
	if !copied {
		return errors.Newf(errors.ErrIOFailure, "failed to restore %s: staged copy %s is missing", snap.Path, snap.Staged)
	}
	return nil
}

func (c *Coordinator) discard(root, stagingDir string) {
	if err := c.tree.RemoveDirectory(stagingDir); err != nil {
		c.log.Warn().Err(err).Str("path", stagingDir).Msg("Failed to remove backup staging area")
		return
	}
	_ = c.tree.PruneEmpty(filepath.Join(root, StagingParent))
}

func abs(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}

func checkRelative(rel string) error {
	clean := path.Clean(rel)
	if rel == "" || path.IsAbs(rel) || clean == ".." || strings.HasPrefix(clean, "../") || strings.HasPrefix(rel, string(os.PathSeparator)) {
		return errors.Newf(errors.ErrIOFailure, "refusing to back up path outside the project: %q", rel)
	}
	return nil
}
