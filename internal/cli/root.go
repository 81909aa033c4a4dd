package cli

import (
	"github.com/jakoblorz/create-ai-project/internal/config"
	"github.com/jakoblorz/create-ai-project/internal/filesystem"
	"github.com/jakoblorz/create-ai-project/internal/logging"
	"github.com/jakoblorz/create-ai-project/internal/tui"
	"github.com/jakoblorz/create-ai-project/internal/updater"
	"github.com/jakoblorz/create-ai-project/internal/versioning"
	"github.com/jakoblorz/create-ai-project/internal/workspace"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// session carries what every subcommand needs once flags are parsed.
type session struct {
	fs       filesystem.FileSystem
	v        *viper.Viper
	prompter tui.Prompter
	cfg      *config.Config
}

// load resolves configuration and sets up logging
func (s *session) load(cmd *cobra.Command) error {
	if err := config.BindFlags(s.v, cmd.Root().PersistentFlags()); err != nil {
		return err
	}

	cfg, err := config.Load(s.v)
	if err != nil {
		return err
	}
	s.cfg = cfg

	logging.SetupLogger(cfg.Verbosity, cmd.ErrOrStderr())

	if !s.v.IsSet("project") {
		if root, ok := workspace.FindProjectRoot(s.fs, cfg.ProjectRoot); ok {
			cfg.ProjectRoot = root
		}
	}
	log.Debug().Str("project", cfg.ProjectRoot).Str("template", cfg.TemplateRoot).Msg("Resolved roots")
	return nil
}

// orchestrator builds an orchestrator writing its report to the command output
func (s *session) orchestrator(cmd *cobra.Command) *updater.Orchestrator {
	prompter := s.prompter
	if prompter == nil {
		prompter = tui.NewHuhPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	}

	return updater.New(s.fs, versioning.NewTemplateSource(s.fs, s.cfg.TemplateRoot),
		updater.WithPrompter(prompter),
		updater.WithOutput(cmd.OutOrStdout()),
	)
}

// NewRootCommand creates the root command. A nil prompter means interactive
// prompts on the command's input and output.
func NewRootCommand(fs filesystem.FileSystem, prompter tui.Prompter) *cobra.Command {
	s := &session{fs: fs, v: config.NewViper(), prompter: prompter}

	rootCmd := &cobra.Command{
		Use:   "create-ai-project",
		Short: "Keep AI agent project templates up to date",
		Long: `A CLI tool for updating the agent definitions, commands, skills and
CLAUDE.md documents that create-ai-project installed into a project.

Resources listed in the project's ignore list are preserved across updates.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to `update` when no subcommand is provided.
			return (&UpdateCommand{s: s}).Run(cmd, args)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("project", "", "Project root to update (default: current directory)")
	flags.String("template", "", "Template root to sync from (default: the installed package)")
	flags.String("config", "", "Config file (YAML)")
	flags.BoolP("yes", "y", false, "Apply updates without asking for confirmation")
	flags.CountP("verbose", "v", "Increase log verbosity (-v info, -vv debug, -vvv trace)")

	rootCmd.Flags().Bool("dry-run", false, "Show what would be updated without changing anything")

	// Add subcommands
	rootCmd.AddCommand(NewUpdateCommand(s))
	rootCmd.AddCommand(NewLangCommand(s))
	rootCmd.AddCommand(NewResourcesCommand(s))

	return rootCmd
}
