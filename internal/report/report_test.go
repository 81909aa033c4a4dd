package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/jakoblorz/create-ai-project/internal/locale"
	"github.com/jakoblorz/create-ai-project/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Plan(t *testing.T) {
	var buf bytes.Buffer
	err := New().Plan(&buf, []PlanLine{
		{Action: "UPDATE", Path: ".claude/agents-en", IsDir: true},
		{Action: "SKIP", Path: ".claude/agents-ja", IsDir: true},
		{Action: "UPDATE", Path: "CLAUDE.en.md"},
	})
	require.NoError(t, err)

	want := "  [dry-run] The following would be updated:\n" +
		"\n" +
		"    UPDATE .claude/agents-en/\n" +
		"    SKIP   .claude/agents-ja/\n" +
		"    UPDATE CLAUDE.en.md\n" +
		"\n" +
		"  No changes were made (dry-run).\n"
	assert.Equal(t, want, buf.String())
	snaps.MatchSnapshot(t, buf.String())
}

func TestRenderer_Changelog(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New().Changelog(&buf, []string{"# Changelog", "", "## 1.1.0"}, true))

	want := "  ---- CHANGELOG ----\n" +
		"  # Changelog\n" +
		"  \n" +
		"  ## 1.1.0\n" +
		"  ... (truncated)\n" +
		"  --------------------\n\n"
	assert.Equal(t, want, buf.String())
	snaps.MatchSnapshot(t, buf.String())
}

func TestRenderer_ChangelogNotTruncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New().Changelog(&buf, []string{"only line"}, false))
	assert.NotContains(t, buf.String(), "truncated")
	assert.Contains(t, buf.String(), "  only line\n")
}

func TestRenderer_Ignored(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New().Ignored(&buf, []string{"agents/task-executor", "CLAUDE.md"}))

	want := "  The following are ignored and will be preserved:\n" +
		"    - agents/task-executor\n" +
		"    - CLAUDE.md\n" +
		"  Warning: version mismatch may occur for ignored resources.\n\n"
	assert.Equal(t, want, buf.String())
	snaps.MatchSnapshot(t, buf.String())
}

func TestRenderer_Status(t *testing.T) {
	updated := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	status := &locale.Status{
		State:        &models.LocaleState{Current: models.LocaleEN, Method: "copy", LastUpdated: &updated},
		HasGitignore: true,
		Locales: []locale.LocaleStatus{
			{Locale: models.LocaleJA, Sources: []locale.SourceStatus{{Path: "CLAUDE.ja.md", Exists: false}}},
			{Locale: models.LocaleEN, Sources: []locale.SourceStatus{{Path: "CLAUDE.en.md", Exists: true, Excluded: true}}},
		},
		Active: []locale.TargetStatus{{Path: "CLAUDE.md", Exists: true}},
	}

	var buf bytes.Buffer
	require.NoError(t, New().Status(&buf, status))
	out := buf.String()

	assert.Contains(t, out, "Current language: en\n")
	assert.Contains(t, out, "Last updated: 2025-04-01T09:00:00Z\n")
	assert.Contains(t, out, "  JA language files:\n    CLAUDE.ja.md: ❌\n")
	assert.Contains(t, out, "  EN language files:\n    CLAUDE.en.md: ✅ (git-ignored)\n")
	assert.Contains(t, out, "   CLAUDE.md: ✅\n")
	assert.NotContains(t, out, "No .gitignore found")
	snaps.MatchSnapshot(t, out)
}

func TestRenderer_StatusWithoutState(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New().Status(&buf, &locale.Status{}))

	out := buf.String()
	assert.Contains(t, out, "Current language: not set\n")
	assert.Contains(t, out, "Last updated: Not set\n")
	assert.Contains(t, out, "No .gitignore found")
	snaps.MatchSnapshot(t, out)
}
