package updater

import (
	"fmt"

	"github.com/jakoblorz/create-ai-project/internal/locale"
	"github.com/jakoblorz/create-ai-project/internal/lock"
	"github.com/jakoblorz/create-ai-project/internal/models"
)

// SwitchLocale activates l and records it as the manifest language when the
// project has a manifest.
func (o *Orchestrator) SwitchLocale(root string, l models.Locale) (*locale.ActivationResult, error) {
	if _, err := models.ParseLocale(string(l)); err != nil {
		return nil, err
	}

	lk := lock.New(o.fs, root)
	if err := lk.Acquire(); err != nil {
		return nil, err
	}
	defer func() { _ = lk.Release() }()

	m, err := o.manifests.Load(root)
	if err != nil {
		return nil, err
	}

	result, err := o.activator.Activate(root, l)
	if err != nil {
		return result, err
	}

	if m != nil && m.Language != l {
		m.Language = l
		if err := o.manifests.Save(root, m); err != nil {
			return result, fmt.Errorf("failed to record language in manifest: %w", err)
		}
	}

	return result, nil
}
