package locale

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jakoblorz/create-ai-project/internal/errors"
	"github.com/jakoblorz/create-ai-project/internal/filesystem"
	"github.com/jakoblorz/create-ai-project/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func seedLocales(t *testing.T, root string) {
	t.Helper()
	for _, l := range []string{"ja", "en"} {
		writeFile(t, filepath.Join(root, "CLAUDE."+l+".md"), "claude "+l)
		writeFile(t, filepath.Join(root, "docs/rules-"+l, "coding.md"), "rules "+l)
		writeFile(t, filepath.Join(root, ".claude/agents-"+l, "a.md"), "agent "+l)
		writeFile(t, filepath.Join(root, ".claude/commands-"+l, "c.md"), "command "+l)
		writeFile(t, filepath.Join(root, ".claude/skills-"+l, "s", "SKILL.md"), "skill "+l)
	}
}

func newTestEngine() *Engine {
	e := NewEngine(filesystem.NewOSFileSystem())
	e.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	return e
}

func TestEngine_Activate(t *testing.T) {
	root := t.TempDir()
	seedLocales(t, root)
	writeFile(t, filepath.Join(root, ".claude/agents", "stale.md"), "from previous locale")

	result, err := newTestEngine().Activate(root, models.LocaleEN)
	require.NoError(t, err)

	assert.False(t, result.HadWarnings())
	assert.Equal(t, []string{"CLAUDE.md", "docs/rules", ".claude/commands", ".claude/agents", ".claude/skills"}, result.Updated)
	assert.Equal(t, []string{"docs/guides/sub-agents.md"}, result.Skipped)

	assert.Equal(t, "claude en", readFile(t, filepath.Join(root, "CLAUDE.md")))
	assert.Equal(t, "rules en", readFile(t, filepath.Join(root, "docs/rules/coding.md")))
	assert.Equal(t, "agent en", readFile(t, filepath.Join(root, ".claude/agents/a.md")))
	assert.Equal(t, "command en", readFile(t, filepath.Join(root, ".claude/commands/c.md")))
	assert.Equal(t, "skill en", readFile(t, filepath.Join(root, ".claude/skills/s/SKILL.md")))
	assert.NoFileExists(t, filepath.Join(root, ".claude/agents/stale.md"), "targets are replaced, not merged")

	state, err := NewStateStore(filesystem.NewOSFileSystem()).Load(root)
	require.NoError(t, err)
	assert.Equal(t, models.LocaleEN, state.Current)
	assert.Equal(t, "copy", state.Method)
	require.NotNil(t, state.LastUpdated)
}

func TestEngine_ActivateSwitchesBack(t *testing.T) {
	root := t.TempDir()
	seedLocales(t, root)
	e := newTestEngine()

	_, err := e.Activate(root, models.LocaleEN)
	require.NoError(t, err)
	_, err = e.Activate(root, models.LocaleJA)
	require.NoError(t, err)

	assert.Equal(t, "claude ja", readFile(t, filepath.Join(root, "CLAUDE.md")))
	assert.Equal(t, "agent ja", readFile(t, filepath.Join(root, ".claude/agents/a.md")))
}

func TestEngine_ActivateMissingSources(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".claude/agents-en", "a.md"), "agent en")
	writeFile(t, filepath.Join(root, ".claude/commands", "keep.md"), "untouched")

	result, err := newTestEngine().Activate(root, models.LocaleEN)
	require.NoError(t, err)

	assert.True(t, result.HadWarnings())
	assert.Equal(t, []string{"CLAUDE.en.md"}, result.Warnings)
	assert.Equal(t, []string{".claude/agents"}, result.Updated)
	assert.Equal(t, "untouched", readFile(t, filepath.Join(root, ".claude/commands/keep.md")), "targets without source are left alone")
	assert.NoFileExists(t, filepath.Join(root, "CLAUDE.md"))
	assert.FileExists(t, filepath.Join(root, ".claudelang"))
}

func TestEngine_ActivateGuide(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "CLAUDE.ja.md"), "ja")
	writeFile(t, filepath.Join(root, "docs/guides/ja/sub-agents.md"), "guide ja")

	result, err := newTestEngine().Activate(root, models.LocaleJA)
	require.NoError(t, err)
	assert.Contains(t, result.Updated, "docs/guides/sub-agents.md")
	assert.Equal(t, "guide ja", readFile(t, filepath.Join(root, "docs/guides/sub-agents.md")))
}

func TestEngine_ActivateUnsupported(t *testing.T) {
	_, err := newTestEngine().Activate(t.TempDir(), "fr")
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupportedLocale))
}
