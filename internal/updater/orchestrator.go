package updater

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jakoblorz/create-ai-project/internal/backup"
	"github.com/jakoblorz/create-ai-project/internal/filesystem"
	"github.com/jakoblorz/create-ai-project/internal/locale"
	"github.com/jakoblorz/create-ai-project/internal/lock"
	"github.com/jakoblorz/create-ai-project/internal/logging"
	"github.com/jakoblorz/create-ai-project/internal/manifest"
	"github.com/jakoblorz/create-ai-project/internal/models"
	"github.com/jakoblorz/create-ai-project/internal/report"
	"github.com/jakoblorz/create-ai-project/internal/resource"
	"github.com/jakoblorz/create-ai-project/internal/treesync"
	"github.com/jakoblorz/create-ai-project/internal/tui"
	"github.com/jakoblorz/create-ai-project/internal/versioning"
	"github.com/rs/zerolog"
)

// State is a step of an update run.
type State string

const (
	StateStart             State = "start"
	StateManifestResolved  State = "manifest-resolved"
	StateVersionCompared   State = "version-compared"
	StateUpToDate          State = "up-to-date"
	StateChangelogShown    State = "changelog-shown"
	StateDryRunPlanned     State = "dry-run-planned"
	StateConfirmed         State = "confirmed"
	StateCancelled         State = "cancelled"
	StateSyncing           State = "syncing"
	StateLocaleReactivated State = "locale-reactivated"
	StateManifestPersisted State = "manifest-persisted"
)

// Options control a single update run
type Options struct {
	DryRun    bool
	AssumeYes bool
}

// Result describes how far an update run got and what it changed.
type Result struct {
	State       State
	Initialized bool
	FromVersion string
	ToVersion   string
	Direction   versioning.Direction
	Plan        []PlanEntry
	Updated     []string
	Preserved   []string
	Activation  *locale.ActivationResult
}

// Orchestrator runs template updates against a project.
type Orchestrator struct {
	fs        filesystem.FileSystem
	template  *versioning.TemplateSource
	manifests *manifest.Store
	states    *locale.StateStore
	resolver  *resource.Resolver
	backups   *backup.Coordinator
	tree      *treesync.Tree
	activator locale.Activator
	prompter  tui.Prompter
	report    *report.Renderer
	out       io.Writer
	now       func() time.Time
	newID     func() (string, error)
	log       zerolog.Logger
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithActivator replaces the locale activation step
func WithActivator(a locale.Activator) Option {
	return func(o *Orchestrator) { o.activator = a }
}

// WithPrompter sets the prompter used for confirmation and locale selection
func WithPrompter(p tui.Prompter) Option {
	return func(o *Orchestrator) { o.prompter = p }
}

// WithOutput sets where report lines are written
func WithOutput(w io.Writer) Option {
	return func(o *Orchestrator) { o.out = w }
}

// WithClock overrides the time source used for manifest timestamps
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// New creates an orchestrator syncing from template
func New(fs filesystem.FileSystem, template *versioning.TemplateSource, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		fs:        fs,
		template:  template,
		manifests: manifest.NewStore(fs),
		states:    locale.NewStateStore(fs),
		resolver:  resource.NewResolver(),
		backups:   backup.NewCoordinator(fs),
		tree:      treesync.New(fs),
		activator: locale.NewEngine(fs),
		prompter:  &tui.StaticPrompter{},
		report:    report.New(),
		out:       io.Discard,
		now:       time.Now,
		newID:     backup.NewStagingID,
		log:       logging.GetLogger("updater"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run brings the project at root up to the template version.
func (o *Orchestrator) Run(ctx context.Context, root string, opts Options) (*Result, error) {
	defer logging.LogOperationStart(o.log, "update")()
	res := &Result{State: StateStart}

	latest, err := o.template.Version()
	if err != nil {
		return res, err
	}
	res.ToVersion = latest

	o.printf("\n  create-ai-project update\n")
	o.printf("  Package version: %s\n\n", latest)

	if !opts.DryRun {
		lk := lock.New(o.fs, root)
		if err := lk.Acquire(); err != nil {
			return res, err
		}
		defer func() {
			if err := lk.Release(); err != nil {
				o.log.Warn().Err(err).Msg("Failed to release project lock")
			}
		}()
	}

	m, err := o.resolveManifest(root, opts, res)
	if errors.Is(err, tui.ErrAborted) {
		o.printf("  Update cancelled.\n\n")
		res.State = StateCancelled
		return res, nil
	}
	if err != nil {
		return res, err
	}
	res.State = StateManifestResolved
	res.FromVersion = m.Version
	res.Direction = versioning.CompareVersions(m.Version, latest)

	o.printf("  Current project version: %s\n", m.Version)
	o.printf("  Latest package version:  %s\n\n", latest)
	res.State = StateVersionCompared

	if m.Version == latest {
		o.printf("  Already up to date. No changes needed.\n\n")
		res.State = StateUpToDate
		return res, nil
	}

	if err := o.showChangelog(); err != nil {
		return res, err
	}
	res.State = StateChangelogShown

	ignoredPaths, err := o.resolver.ResolveAll(m.Ignored)
	if err != nil {
		return res, fmt.Errorf("invalid entry in ignore list: %w", err)
	}
	res.Preserved = m.Ignored

	if res.Plan, err = o.Plan(root); err != nil {
		return res, err
	}

	if !opts.DryRun && !opts.AssumeYes {
		ok, err := o.prompter.Confirm(fmt.Sprintf("Apply update (%s, %s → %s)?", res.Direction, m.Version, latest))
		if err != nil {
			return res, fmt.Errorf("failed to confirm update: %w", err)
		}
		if !ok {
			o.printf("  Update cancelled.\n\n")
			res.State = StateCancelled
			return res, nil
		}
	}

	if len(m.Ignored) > 0 {
		if err := o.report.Ignored(o.out, m.Ignored); err != nil {
			return res, err
		}
	}

	if opts.DryRun {
		if err := o.report.Plan(o.out, planLines(res.Plan)); err != nil {
			return res, err
		}
		res.State = StateDryRunPlanned
		return res, nil
	}
	res.State = StateConfirmed

	if err := ctx.Err(); err != nil {
		res.State = StateCancelled
		return res, err
	}

	res.State = StateSyncing
	if res.Updated, err = o.sync(root, res.Plan, ignoredPaths); err != nil {
		return res, err
	}

	if res.Activation, err = o.activator.Activate(root, m.Language); err != nil {
		return res, fmt.Errorf("failed to regenerate active directories: %w", err)
	}
	if res.Activation.HadWarnings() {
		o.printf("  Warning: language switched to %s, but some files are missing: %s\n", m.Language, strings.Join(res.Activation.Warnings, ", "))
	}
	o.printf("  Regenerated active directories for language: %s\n", m.Language)
	res.State = StateLocaleReactivated

	now := o.now().UTC()
	m.Version = latest
	m.UpdatedAt = &now
	if err := o.manifests.Save(root, m); err != nil {
		return res, err
	}
	o.printf("  Manifest updated to version %s.\n", latest)
	res.State = StateManifestPersisted

	o.printf("\n  Update complete.\n\n")
	return res, nil
}

func (o *Orchestrator) resolveManifest(root string, opts Options, res *Result) (*models.Manifest, error) {
	m, err := o.manifests.Load(root)
	if err != nil || m != nil {
		return m, err
	}

	o.printf("\n  %s not found. Initializing...\n\n", manifest.FileName)
	m, detected, err := o.manifests.Initialize(root, o.states, o.prompter)
	if err != nil {
		return nil, err
	}
	if detected {
		o.printf("  Detected language from %s: %s\n", locale.StateFileName, m.Language)
	}
	res.Initialized = true

	if opts.DryRun {
		o.printf("  [dry-run] %s would be created (version: %s)\n\n", manifest.FileName, m.Version)
		return m, nil
	}

	if err := o.manifests.Save(root, m); err != nil {
		return nil, err
	}
	o.printf("  Created %s (version: %s)\n\n", manifest.FileName, m.Version)
	return m, nil
}

func (o *Orchestrator) showChangelog() error {
	excerpt, err := o.template.ChangelogExcerpt()
	if err != nil {
		return err
	}
	if excerpt.Empty() {
		return nil
	}
	return o.report.Changelog(o.out, excerpt.Lines, excerpt.Truncated)
}

func (o *Orchestrator) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(o.out, format, args...)
}
