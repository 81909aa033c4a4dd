package e2e_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jakoblorz/create-ai-project/internal/cli"
	"github.com/jakoblorz/create-ai-project/internal/filesystem"
	"github.com/jakoblorz/create-ai-project/internal/models"
	"github.com/jakoblorz/create-ai-project/internal/treesync"
	"github.com/jakoblorz/create-ai-project/internal/tui"
	"github.com/stretchr/testify/require"
)

type workflow struct {
	t        *testing.T
	fs       filesystem.FileSystem
	template string
	project  string
}

func newWorkflow(t *testing.T) *workflow {
	t.Helper()

	template, err := filepath.Abs(filepath.Join("..", "kitchensink"))
	require.NoError(t, err)

	w := &workflow{
		t:        t,
		fs:       filesystem.NewOSFileSystem(),
		template: template,
		project:  t.TempDir(),
	}

	// Install the template the way project setup does.
	tree := treesync.New(w.fs)
	for _, rel := range []string{".claude", "docs", "CLAUDE.en.md", "CLAUDE.ja.md"} {
		copied, err := tree.CopyPath(filepath.Join(template, rel), filepath.Join(w.project, rel))
		require.NoError(t, err)
		require.True(t, copied, rel)
	}
	return w
}

func (w *workflow) run(args ...string) string {
	w.t.Helper()
	out := &bytes.Buffer{}
	cmd := cli.NewRootCommand(w.fs, &tui.StaticPrompter{Answer: true, Locale: models.LocaleEN})
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--project", w.project, "--template", w.template))
	require.NoError(w.t, cmd.Execute(), "args: %v\n%s", args, out.String())
	return out.String()
}

func (w *workflow) read(rel string) string {
	w.t.Helper()
	data, err := os.ReadFile(filepath.Join(w.project, filepath.FromSlash(rel)))
	require.NoError(w.t, err)
	return string(data)
}

func (w *workflow) write(rel, content string) {
	w.t.Helper()
	require.NoError(w.t, os.WriteFile(filepath.Join(w.project, filepath.FromSlash(rel)), []byte(content), 0644))
}

func (w *workflow) templateFile(rel string) string {
	w.t.Helper()
	data, err := os.ReadFile(filepath.Join(w.template, filepath.FromSlash(rel)))
	require.NoError(w.t, err)
	return string(data)
}

func TestFullWorkflow(t *testing.T) {
	w := newWorkflow(t)

	// Activate English and pin the project to an older release.
	out := w.run("lang", "en")
	require.Contains(t, out, "🎉 Language switched to en")
	require.Equal(t, w.templateFile("CLAUDE.en.md"), w.read("CLAUDE.md"))
	require.Equal(t, w.templateFile("docs/guides/en/sub-agents.md"), w.read("docs/guides/sub-agents.md"))

	w.write(".create-ai-project.json", `{"version":"1.0.0","language":"en","ignored":[],"updatedAt":null}`)
	w.write(".claude/agents-en/task-executor.md", "my customized task-executor\n")
	w.write(".claude/agents-en/code-reviewer.md", "stale reviewer\n")

	// Protect the customization.
	out = w.run("update", "--ignore", "agents", "task-executor")
	require.Contains(t, out, "✅ Added to ignore list: agents/task-executor")

	// Dry-run reports without touching anything.
	out = w.run("update", "--dry-run")
	require.Contains(t, out, "Current project version: 1.0.0")
	require.Contains(t, out, "Latest package version:  1.2.0")
	require.Contains(t, out, "- Add the code-reviewer agent")
	require.Contains(t, out, "    UPDATE .claude/agents-en/")
	require.Contains(t, out, "    - agents/task-executor")
	require.Equal(t, "stale reviewer\n", w.read(".claude/agents-en/code-reviewer.md"))

	// Apply.
	out = w.run("update", "--yes")
	require.Contains(t, out, "Update complete.")
	require.Equal(t, w.templateFile(".claude/agents-en/code-reviewer.md"), w.read(".claude/agents-en/code-reviewer.md"))
	require.Equal(t, "my customized task-executor\n", w.read(".claude/agents-en/task-executor.md"))
	require.Equal(t, "my customized task-executor\n", w.read(".claude/agents/task-executor.md"))
	require.Contains(t, w.read(".create-ai-project.json"), `"version": "1.2.0"`)
	require.NoDirExists(t, filepath.Join(w.project, "tmp"))

	// Nothing left to do.
	out = w.run("update")
	require.Contains(t, out, "Already up to date. No changes needed.")

	// Switch to Japanese.
	out = w.run("lang", "ja")
	require.Contains(t, out, "✅ Updated docs/guides/sub-agents.md")
	require.Equal(t, w.templateFile("CLAUDE.ja.md"), w.read("CLAUDE.md"))
	require.Equal(t, w.templateFile("docs/rules-ja/testing.md"), w.read("docs/rules/testing.md"))
	require.Contains(t, w.read(".create-ai-project.json"), `"language": "ja"`)

	out = w.run("lang", "--status")
	require.Contains(t, out, "Current language: ja")

	// The catalog follows the manifest language and shows the ignore list.
	out = w.run("resources")
	require.Contains(t, out, "📚 Installed resources (ja):")
	require.Contains(t, out, "設計書に照らして変更をレビューする")
	require.Regexp(t, `agents/task-executor\s+\S+\s+\[ignored\]`, out)
}

func TestWorkflow_InitializesManifest(t *testing.T) {
	w := newWorkflow(t)
	w.run("lang", "ja")
	require.NoFileExists(t, filepath.Join(w.project, ".create-ai-project.json"))

	out := w.run("update", "--yes")
	require.Contains(t, out, "Detected language from .claudelang: ja")
	require.Contains(t, out, "Created .create-ai-project.json (version: unknown)")

	manifest := w.read(".create-ai-project.json")
	require.Contains(t, manifest, `"version": "1.2.0"`)
	require.Contains(t, manifest, `"language": "ja"`)
}
