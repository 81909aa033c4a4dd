package cli

import (
	"fmt"
	"strings"

	"github.com/jakoblorz/create-ai-project/internal/errors"
	"github.com/jakoblorz/create-ai-project/internal/locale"
	"github.com/jakoblorz/create-ai-project/internal/models"
	"github.com/jakoblorz/create-ai-project/internal/report"
	"github.com/jakoblorz/create-ai-project/internal/tui"
	"github.com/spf13/cobra"
)

// LangCommand handles the lang command
type LangCommand struct {
	s *session
}

// NewLangCommand creates a new lang command
func NewLangCommand(s *session) *cobra.Command {
	cmd := &LangCommand{s: s}

	cobraCmd := &cobra.Command{
		Use:   "lang [ja|en]",
		Short: "Switch the active language of agent definitions",
		Long: `Copies the chosen language's CLAUDE.md, rules, guides, commands, agents and
skills into their active locations and records the choice.

Use --status to show the current language and which language files exist.`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().Bool("status", false, "Show the current language configuration")

	return cobraCmd
}

// Run executes the lang command
func (c *LangCommand) Run(cmd *cobra.Command, args []string) error {
	status, _ := cmd.Flags().GetBool("status")
	root := c.s.cfg.ProjectRoot
	out := cmd.OutOrStdout()

	if status {
		st, err := locale.NewEngine(c.s.fs).Status(root)
		if err != nil {
			return err
		}
		return report.New().Status(out, st)
	}

	if len(args) == 0 {
		return errors.New(errors.ErrUnsupportedLocale, "language is required").
			WithHint("usage: create-ai-project lang ja|en, or lang --status")
	}

	l, err := models.ParseLocale(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "🔄 Switching language to: %s\n\n", l)

	result, err := c.s.orchestrator(cmd).SwitchLocale(root, l)
	if err != nil {
		return fmt.Errorf("failed to switch language: %w", err)
	}

	for _, path := range result.Updated {
		fmt.Fprintf(out, "✅ Updated %s\n", path)
	}
	fmt.Fprintln(out)

	if result.HadWarnings() {
		fmt.Fprintln(out, tui.WarningStyle.Render(fmt.Sprintf("⚠️  Language switched to %s, but some files are missing: %s", l, strings.Join(result.Warnings, ", "))))
		return nil
	}
	fmt.Fprintln(out, tui.SuccessStyle.Render(fmt.Sprintf("🎉 Language switched to %s", l)))
	return nil
}
