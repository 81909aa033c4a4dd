package manifest

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jakoblorz/create-ai-project/internal/errors"
	"github.com/jakoblorz/create-ai-project/internal/filesystem"
	"github.com/jakoblorz/create-ai-project/internal/logging"
	"github.com/jakoblorz/create-ai-project/internal/models"
	"github.com/rs/zerolog"
)

// FileName is the manifest's name at the project root.
const FileName = ".create-ai-project.json"

// LocaleDetector reports the locale already active in a project, if any.
type LocaleDetector interface {
	Detect(root string) (models.Locale, bool)
}

// LocaleSelector asks the operator to choose a locale.
type LocaleSelector interface {
	SelectLocale(options []models.Locale) (models.Locale, error)
}

// Store reads and writes project manifests.
type Store struct {
	fs  filesystem.FileSystem
	log zerolog.Logger
	now func() time.Time
}

// NewStore creates a new manifest store
func NewStore(fs filesystem.FileSystem) *Store {
	return &Store{
		fs:  fs,
		log: logging.GetLogger("manifest"),
		now: time.Now,
	}
}

// Path returns the manifest location for a project root
func (s *Store) Path(root string) string {
	return filepath.Join(root, FileName)
}

// Exists reports whether the project has a manifest
func (s *Store) Exists(root string) bool {
	return s.fs.Exists(s.Path(root))
}

// Load reads the manifest. It returns nil without error when none exists.
func (s *Store) Load(root string) (*models.Manifest, error) {
	path := s.Path(root)
	if !s.fs.Exists(path) {
		return nil, nil
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to read %s", FileName)
	}

	var m models.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, errors.ErrCorruptManifest, "failed to parse %s", FileName).
			WithHint(fmt.Sprintf("fix or delete %s and run update again", path))
	}

	if !m.Language.IsValid() {
		return nil, errors.Newf(errors.ErrCorruptManifest, "%s has unsupported language %q", FileName, m.Language).
			WithHint(fmt.Sprintf("set \"language\" in %s to one of the supported locales", path))
	}
	if m.Version == "" {
		m.Version = models.UnknownVersion
	}
	if m.Ignored == nil {
		m.Ignored = []string{}
	}

	s.log.Debug().Str("path", path).Str("version", m.Version).Msg("Loaded manifest")
	return &m, nil
}

// Save writes the manifest atomically, two-space indented with a trailing newline.
func (s *Store) Save(root string, m *models.Manifest) error {
	if m.Ignored == nil {
		m.Ignored = []string{}
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	data = append(data, '\n')

	if err := filesystem.AtomicWriteFile(s.fs, s.Path(root), data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to write %s", FileName)
	}

	s.log.Debug().Str("path", s.Path(root)).Str("version", m.Version).Msg("Saved manifest")
	return nil
}

// Initialize builds a fresh manifest for a project that has none. The
// locale comes from the detector when possible, otherwise from the
// selector. The manifest is not persisted.
func (s *Store) Initialize(root string, detector LocaleDetector, selector LocaleSelector) (*models.Manifest, bool, error) {
	if locale, ok := detector.Detect(root); ok {
		return models.NewManifest(locale, s.now().UTC()), true, nil
	}

	choice, err := selector.SelectLocale(models.SupportedLocales)
	if err != nil {
		return nil, false, fmt.Errorf("failed to select locale: %w", err)
	}

	locale, err := models.ParseLocale(string(choice))
	if err != nil {
		return nil, false, err
	}

	return models.NewManifest(locale, s.now().UTC()), false, nil
}
