package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/jakoblorz/create-ai-project/internal/errors"
	"github.com/jakoblorz/create-ai-project/internal/locale"
	"github.com/jakoblorz/create-ai-project/internal/manifest"
	"github.com/jakoblorz/create-ai-project/internal/models"
	"github.com/jakoblorz/create-ai-project/internal/resource"
	"github.com/jakoblorz/create-ai-project/internal/tui"
	"github.com/spf13/cobra"
)

// ResourcesCommand handles the resources command
type ResourcesCommand struct {
	s *session
}

// NewResourcesCommand creates a new resources command
func NewResourcesCommand(s *session) *cobra.Command {
	cmd := &ResourcesCommand{s: s}

	cobraCmd := &cobra.Command{
		Use:   "resources",
		Short: "List installed agents, commands and skills",
		Long: `Lists the agents, commands and skills installed in the project for the active
language, with their descriptions and whether they are on the ignore list.

The identifiers shown can be passed to "update --ignore".`,
		Args: cobra.NoArgs,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().String("lang", "", "Language to list (default: the project's language)")

	return cobraCmd
}

// Run executes the resources command
func (c *ResourcesCommand) Run(cmd *cobra.Command, args []string) error {
	langFlag, _ := cmd.Flags().GetString("lang")
	root := c.s.cfg.ProjectRoot
	out := cmd.OutOrStdout()

	m, err := manifest.NewStore(c.s.fs).Load(root)
	if err != nil {
		return err
	}

	l, err := c.resolveLocale(root, langFlag, m)
	if err != nil {
		return err
	}

	var ignored []string
	if m != nil {
		ignored = m.Ignored
	}

	entries, err := resource.NewCatalog(c.s.fs).List(root, l, ignored)
	if err != nil {
		return fmt.Errorf("failed to list resources: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintf(out, "No resources installed for language %s.\n", l)
		return nil
	}

	fmt.Fprintln(out, tui.TitleStyle.Render(fmt.Sprintf("📚 Installed resources (%s):", l)))
	fmt.Fprintln(out)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, entry := range entries {
		if entry.Ignored {
			fmt.Fprintf(tw, "  %s\t%s\t[ignored]\n", entry.ID, entry.Description)
			continue
		}
		fmt.Fprintf(tw, "  %s\t%s\n", entry.ID, entry.Description)
	}
	return tw.Flush()
}

func (c *ResourcesCommand) resolveLocale(root, flag string, m *models.Manifest) (models.Locale, error) {
	if flag != "" {
		return models.ParseLocale(flag)
	}
	if m != nil {
		return m.Language, nil
	}
	if l, ok := locale.NewStateStore(c.s.fs).Detect(root); ok {
		return l, nil
	}
	return "", errors.Newf(errors.ErrMissingManifest, "cannot determine the project language: no %s or %s", manifest.FileName, locale.StateFileName).
		WithHint("pass --lang ja or --lang en")
}
