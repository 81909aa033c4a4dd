package models

import (
	"bytes"
	"encoding/json"
	"sort"
	"time"
)

// UnknownVersion marks a project that has never completed an update.
const UnknownVersion = "unknown"

// Manifest is the per-project record of installed template version,
// chosen locale and the resources excluded from updates.
type Manifest struct {
	Version   string     `json:"version"`
	Language  Locale     `json:"language"`
	Ignored   []string   `json:"ignored"`
	UpdatedAt *time.Time `json:"updatedAt"`

	// Extra holds unrecognized keys. They are written back after the known
	// fields.
	Extra map[string]json.RawMessage `json:"-"`
}

type manifestFields Manifest

var manifestKeys = []string{"version", "language", "ignored", "updatedAt"}

// UnmarshalJSON decodes the known fields and keeps the rest in Extra.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(data, (*manifestFields)(m)); err != nil {
		return err
	}

	for _, key := range manifestKeys {
		delete(raw, key)
	}
	m.Extra = nil
	if len(raw) > 0 {
		m.Extra = raw
	}
	return nil
}

// MarshalJSON writes the known fields followed by Extra in key order.
func (m Manifest) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(manifestFields(m))
	if err != nil || len(m.Extra) == 0 {
		return data, err
	}

	keys := make([]string, 0, len(m.Extra))
	for key := range m.Extra {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(data[:len(data)-1])
	for _, key := range keys {
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(m.Extra[key])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// NewManifest creates a manifest for a project that has not been updated yet
func NewManifest(language Locale, now time.Time) *Manifest {
	return &Manifest{
		Version:   UnknownVersion,
		Language:  language,
		Ignored:   []string{},
		UpdatedAt: &now,
	}
}

// IsIgnored reports whether id is in the ignore list
func (m *Manifest) IsIgnored(id string) bool {
	for _, ignored := range m.Ignored {
		if ignored == id {
			return true
		}
	}
	return false
}

// AddIgnored appends id unless already present. Returns true when added.
func (m *Manifest) AddIgnored(id string) bool {
	if m.IsIgnored(id) {
		return false
	}
	m.Ignored = append(m.Ignored, id)
	return true
}

// RemoveIgnored removes id, preserving the order of the remaining entries.
// Returns true when something was removed.
func (m *Manifest) RemoveIgnored(id string) bool {
	kept := make([]string, 0, len(m.Ignored))
	removed := false
	for _, ignored := range m.Ignored {
		if ignored == id {
			removed = true
			continue
		}
		kept = append(kept, ignored)
	}
	m.Ignored = kept
	return removed
}
