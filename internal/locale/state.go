package locale

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/jakoblorz/create-ai-project/internal/errors"
	"github.com/jakoblorz/create-ai-project/internal/filesystem"
	"github.com/jakoblorz/create-ai-project/internal/models"
)

// StateFileName is the locale-state record at the project root.
const StateFileName = ".claudelang"

// StateStore reads and writes the locale-state record.
type StateStore struct {
	fs filesystem.FileSystem
}

// NewStateStore creates a new StateStore
func NewStateStore(fs filesystem.FileSystem) *StateStore {
	return &StateStore{fs: fs}
}

// Path returns the locale-state location for a project root
func (s *StateStore) Path(root string) string {
	return filepath.Join(root, StateFileName)
}

// Load reads the record. It returns nil without error when none exists.
func (s *StateStore) Load(root string) (*models.LocaleState, error) {
	path := s.Path(root)
	if !s.fs.Exists(path) {
		return nil, nil
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to read %s", StateFileName)
	}

	var state models.LocaleState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", StateFileName, err)
	}

	return &state, nil
}

// Save writes the record atomically.
func (s *StateStore) Save(root string, state *models.LocaleState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode locale state: %w", err)
	}

	if err := filesystem.AtomicWriteFile(s.fs, s.Path(root), data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to write %s", StateFileName)
	}
	return nil
}

// Detect returns the active locale recorded for a project. Unreadable or
// unsupported records count as "not detected".
func (s *StateStore) Detect(root string) (models.Locale, bool) {
	state, err := s.Load(root)
	if err != nil || state == nil || !state.Current.IsValid() {
		return "", false
	}
	return state.Current, true
}
