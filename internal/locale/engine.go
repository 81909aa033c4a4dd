package locale

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/jakoblorz/create-ai-project/internal/errors"
	"github.com/jakoblorz/create-ai-project/internal/filesystem"
	"github.com/jakoblorz/create-ai-project/internal/logging"
	"github.com/jakoblorz/create-ai-project/internal/models"
	"github.com/jakoblorz/create-ai-project/internal/treesync"
	"github.com/rs/zerolog"
)

// Activator makes one locale's variants the active artifacts of a project.
type Activator interface {
	Activate(root string, locale models.Locale) (*ActivationResult, error)
}

var _ Activator = (*Engine)(nil)

// Target is one active artifact and where its locale variant lives.
type Target struct {
	Path  string
	IsDir bool
	// Mandatory targets record a warning when their source is missing.
	Mandatory bool
	source    func(models.Locale) string
}

// Source returns the slash-separated relative path of the locale variant.
func (t Target) Source(locale models.Locale) string {
	return t.source(locale)
}

// Targets lists every active artifact in activation order.
var Targets = []Target{
	{
		Path:      "CLAUDE.md",
		Mandatory: true,
		source:    func(l models.Locale) string { return "CLAUDE." + string(l) + ".md" },
	},
	{
		Path:   "docs/rules",
		IsDir:  true,
		source: func(l models.Locale) string { return "docs/rules-" + string(l) },
	},
	{
		Path:   "docs/guides/sub-agents.md",
		source: func(l models.Locale) string { return "docs/guides/" + string(l) + "/sub-agents.md" },
	},
	{
		Path:   ".claude/commands",
		IsDir:  true,
		source: func(l models.Locale) string { return ".claude/commands-" + string(l) },
	},
	{
		Path:   ".claude/agents",
		IsDir:  true,
		source: func(l models.Locale) string { return ".claude/agents-" + string(l) },
	},
	{
		Path:   ".claude/skills",
		IsDir:  true,
		source: func(l models.Locale) string { return ".claude/skills-" + string(l) },
	},
}

// ActivationResult reports what an activation touched.
type ActivationResult struct {
	Locale   models.Locale
	Updated  []string
	Skipped  []string
	Warnings []string
}

// HadWarnings reports whether a mandatory source was missing
func (r *ActivationResult) HadWarnings() bool {
	return len(r.Warnings) > 0
}

// Engine activates locales by copying their variants over the active targets.
type Engine struct {
	fs     filesystem.FileSystem
	tree   *treesync.Tree
	states *StateStore
	log    zerolog.Logger
	now    func() time.Time
}

// NewEngine creates a new locale engine
func NewEngine(fs filesystem.FileSystem) *Engine {
	return &Engine{
		fs:     fs,
		tree:   treesync.New(fs),
		states: NewStateStore(fs),
		log:    logging.GetLogger("locale"),
		now:    time.Now,
	}
}

// Activate replaces every target whose locale source exists with a fresh
// copy of that source, then records the locale as current. A missing
// source never aborts the run.
func (e *Engine) Activate(root string, locale models.Locale) (*ActivationResult, error) {
	if !locale.IsValid() {
		_, err := models.ParseLocale(string(locale))
		return nil, err
	}

	result := &ActivationResult{Locale: locale}
	for _, target := range Targets {
		src := filepath.Join(root, filepath.FromSlash(target.Source(locale)))
		dst := filepath.Join(root, filepath.FromSlash(target.Path))

		if !e.fs.Exists(src) {
			if target.Mandatory {
				result.Warnings = append(result.Warnings, target.Source(locale))
			}
			result.Skipped = append(result.Skipped, target.Path)
			continue
		}

		if err := e.replace(src, dst, target.IsDir); err != nil {
			return result, fmt.Errorf("failed to activate %s: %w", target.Path, err)
		}
		result.Updated = append(result.Updated, target.Path)
		e.log.Debug().Str("target", target.Path).Str("locale", string(locale)).Msg("Activated")
	}

	now := e.now().UTC()
	state := &models.LocaleState{Current: locale, Method: models.LocaleMethodCopy, LastUpdated: &now}
	if err := e.states.Save(root, state); err != nil {
		return result, err
	}

	return result, nil
}

func (e *Engine) replace(src, dst string, isDir bool) error {
	if err := e.tree.RemoveDirectory(dst); err != nil {
		return err
	}

	var err error
	if isDir {
		_, err = e.tree.CopyDirectory(src, dst)
	} else {
		_, err = e.tree.CopyFile(src, dst)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to copy %s", src)
	}
	return nil
}
