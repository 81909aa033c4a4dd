package cli

import (
	"fmt"

	"github.com/jakoblorz/create-ai-project/internal/models"
	"github.com/jakoblorz/create-ai-project/internal/tui"
	"github.com/jakoblorz/create-ai-project/internal/updater"
	"github.com/spf13/cobra"
)

// UpdateCommand handles the update command
type UpdateCommand struct {
	s *session
}

// NewUpdateCommand creates a new update command
func NewUpdateCommand(s *session) *cobra.Command {
	cmd := &UpdateCommand{s: s}

	cobraCmd := &cobra.Command{
		Use:   "update [name]",
		Short: "Update installed agent definitions to the latest template",
		Long: `Replaces the agent definitions, commands, skills and CLAUDE.md documents
already present in the project with the versions shipped by the template,
preserving ignored resources, then regenerates the active language files.

Manage the ignore list with --ignore / --unignore:
  create-ai-project update --ignore agents task-executor
  create-ai-project update --ignore skills/coding-standards
  create-ai-project update --ignore CLAUDE.md
  create-ai-project update --unignore agents task-executor`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().Bool("dry-run", false, "Show what would be updated without changing anything")
	cobraCmd.Flags().String("ignore", "", "Add a resource (category [name] or category/name) to the ignore list")
	cobraCmd.Flags().String("unignore", "", "Remove a resource (category [name] or category/name) from the ignore list")

	return cobraCmd
}

// Run executes the update command
func (c *UpdateCommand) Run(cmd *cobra.Command, args []string) error {
	ignore, _ := cmd.Flags().GetString("ignore")
	unignore, _ := cmd.Flags().GetString("unignore")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if ignore != "" && unignore != "" {
		return fmt.Errorf("--ignore and --unignore cannot be used together")
	}
	if ignore == "" && unignore == "" && len(args) > 0 {
		return fmt.Errorf("unexpected argument %q (resource names go with --ignore or --unignore)", args[0])
	}

	orch := c.s.orchestrator(cmd)
	root := c.s.cfg.ProjectRoot

	switch {
	case ignore != "":
		return c.addIgnore(cmd, orch, root, parseIDArgs(ignore, args))
	case unignore != "":
		return c.removeIgnore(cmd, orch, root, parseIDArgs(unignore, args))
	}

	_, err := orch.Run(cmd.Context(), root, updater.Options{
		DryRun:    dryRun,
		AssumeYes: c.s.cfg.AssumeYes,
	})
	return err
}

func (c *UpdateCommand) addIgnore(cmd *cobra.Command, orch *updater.Orchestrator, root string, id models.ResourceID) error {
	out := cmd.OutOrStdout()

	added, err := orch.AddIgnore(root, id)
	if err != nil {
		return err
	}
	if !added {
		fmt.Fprintf(out, "Already ignored: %s\n", id)
		return nil
	}

	fmt.Fprintf(out, "✅ Added to ignore list: %s\n", id)
	if !orch.IsInstalled(root, id) {
		fmt.Fprintln(out, tui.SubtleStyle.Render(fmt.Sprintf("   Note: %s is not installed in this project; it will be preserved once present.", id)))
	}
	return nil
}

func (c *UpdateCommand) removeIgnore(cmd *cobra.Command, orch *updater.Orchestrator, root string, id models.ResourceID) error {
	out := cmd.OutOrStdout()

	removed, err := orch.RemoveIgnore(root, id)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Fprintf(out, "Not in ignore list: %s\n", id)
		return nil
	}

	fmt.Fprintf(out, "✅ Removed from ignore list: %s\n", id)
	return nil
}

// parseIDArgs accepts either "category name" or a single "category/name".
func parseIDArgs(value string, args []string) models.ResourceID {
	if len(args) > 0 {
		return models.ResourceID{Category: models.Category(value), Name: args[0]}
	}
	return models.ParseResourceID(value)
}
