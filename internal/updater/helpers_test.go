package updater

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jakoblorz/create-ai-project/internal/filesystem"
	"github.com/jakoblorz/create-ai-project/internal/tui"
	"github.com/jakoblorz/create-ai-project/internal/versioning"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// snapshotTree maps every path under root to its content, with directories as "<dir>".
func snapshotTree(t *testing.T, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			out[rel] = "<dir>"
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out[rel] = string(data)
		return nil
	})
	require.NoError(t, err)
	return out
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func manifestJSON(version, language string, ignored ...string) string {
	quoted := make([]string, len(ignored))
	for i, id := range ignored {
		quoted[i] = fmt.Sprintf("%q", id)
	}
	return fmt.Sprintf(`{"version":%q,"language":%q,"ignored":[%s],"updatedAt":"2025-01-01T00:00:00.000Z"}`,
		version, language, strings.Join(quoted, ","))
}

// templateV110 is a template at version 1.1.0 with both locales.
func templateV110(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"package.json":                           `{"name":"create-ai-project","version":"1.1.0"}`,
		"CHANGELOG.md":                           "# Changelog\n\n## 1.1.0\n\n- New agent a\n",
		"CLAUDE.ja.md":                           "claude ja v1.1.0",
		"CLAUDE.en.md":                           "claude en v1.1.0",
		".claude/agents-ja/a.md":                 "agent a ja v1.1.0",
		".claude/agents-en/a.md":                 "agent a en v1.1.0",
		".claude/agents-en/task-executor.md":     "task-executor en v1.1.0",
		".claude/commands-en/review.md":          "review en v1.1.0",
		".claude/skills-en/coding/SKILL.md":      "coding skill en v1.1.0",
		".claude/skills-en/coding/ref/checks.md": "checks v1.1.0",
	})
	return root
}

// projectV100 is a project installed at 1.0.0 in English.
func projectV100(t *testing.T, ignored ...string) string {
	t.Helper()
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".create-ai-project.json":            manifestJSON("1.0.0", "en", ignored...),
		".claudelang":                        `{"current":"en","method":"copy","lastUpdated":null}`,
		"CLAUDE.en.md":                       "claude en v1.0.0",
		"CLAUDE.md":                          "claude en v1.0.0",
		".claude/agents-en/a.md":             "agent a en v1.0.0",
		".claude/agents-en/task-executor.md": "my customized task-executor",
		".claude/agents-en/retired.md":       "removed upstream",
		".claude/agents/a.md":                "agent a en v1.0.0",
		".claude/skills-en/coding/SKILL.md":  "coding skill en v1.0.0",
		"src/main.go":                        "package main",
	})
	return root
}

type harness struct {
	orch     *Orchestrator
	out      *bytes.Buffer
	prompter *tui.StaticPrompter
}

func newHarness(t *testing.T, fsys filesystem.FileSystem, templateRoot string) *harness {
	t.Helper()
	out := &bytes.Buffer{}
	prompter := &tui.StaticPrompter{Answer: true, Locale: "en"}
	orch := New(fsys, versioning.NewTemplateSource(fsys, templateRoot),
		WithPrompter(prompter),
		WithOutput(out),
		WithClock(func() time.Time { return fixedNow }),
	)
	return &harness{orch: orch, out: out, prompter: prompter}
}

// failingFS fails moving a staged copy onto target.
type failingFS struct {
	filesystem.FileSystem
	target string
}

func (f *failingFS) Rename(oldpath, newpath string) error {
	sep := string(filepath.Separator)
	if newpath == f.target && strings.Contains(oldpath, sep+"new"+sep) {
		return fmt.Errorf("injected rename failure")
	}
	return f.FileSystem.Rename(oldpath, newpath)
}
