package updater

import (
	"path/filepath"

	"github.com/jakoblorz/create-ai-project/internal/errors"
	"github.com/jakoblorz/create-ai-project/internal/lock"
	"github.com/jakoblorz/create-ai-project/internal/manifest"
	"github.com/jakoblorz/create-ai-project/internal/models"
)

// AddIgnore appends id to the project's ignore list. It returns false when
// the id was already present.
func (o *Orchestrator) AddIgnore(root string, id models.ResourceID) (bool, error) {
	return o.editIgnored(root, id, func(m *models.Manifest, formatted string) bool {
		return m.AddIgnored(formatted)
	})
}

// RemoveIgnore drops id from the project's ignore list. It returns false
// when the id was not present.
func (o *Orchestrator) RemoveIgnore(root string, id models.ResourceID) (bool, error) {
	return o.editIgnored(root, id, func(m *models.Manifest, formatted string) bool {
		return m.RemoveIgnored(formatted)
	})
}

// IsInstalled reports whether any locale variant of id exists in the project.
func (o *Orchestrator) IsInstalled(root string, id models.ResourceID) bool {
	paths, err := o.resolver.ResolveID(id)
	if err != nil {
		return false
	}
	for _, rel := range paths {
		if o.fs.Exists(filepath.Join(root, filepath.FromSlash(rel))) {
			return true
		}
	}
	return false
}

func (o *Orchestrator) editIgnored(root string, id models.ResourceID, edit func(*models.Manifest, string) bool) (bool, error) {
	if _, err := o.resolver.ResolveID(id); err != nil {
		return false, err
	}

	lk := lock.New(o.fs, root)
	if err := lk.Acquire(); err != nil {
		return false, err
	}
	defer func() { _ = lk.Release() }()

	m, err := o.loadExisting(root)
	if err != nil {
		return false, err
	}

	if !edit(m, id.String()) {
		return false, nil
	}

	if err := o.manifests.Save(root, m); err != nil {
		return false, err
	}
	return true, nil
}

func (o *Orchestrator) loadExisting(root string) (*models.Manifest, error) {
	m, err := o.manifests.Load(root)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errors.Newf(errors.ErrMissingManifest, "%s not found", manifest.FileName).
			WithHint(`run "create-ai-project update" first`)
	}
	return m, nil
}
