package cmd

import (
	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	verbose    bool
	quiet      bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "wbench",
	Short: "Idempotent Ubuntu workstation provisioner",
	Long: `workbench (wbench) provisions an Ubuntu developer workstation: the zsh
framework and plugins, the powerlevel10k terminal theme, Nerd Fonts, pyenv,
and a menu of common desktop tools (browser, editor, Conda, file manager,
GPU driver).

Every step is idempotent: targets already present are skipped, git-based
plugins are fast-forwarded, and shell startup files are patched at most
once. Re-running the command after a partial run converges to the same
end state.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetHandler(cli.Default)
		if verbose {
			log.SetLevel(log.DebugLevel)
			log.Debugf("Verbose logging enabled")
		} else if quiet {
			log.SetLevel(log.ErrorLevel)
		} else {
			log.SetLevel(log.InfoLevel)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		log.WithError(err).Fatal("command execution failed")
	}
}

func init() {
	// Disable automatic command sorting to maintain semantic order
	cobra.EnableCommandSorting = false

	RootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to workbench config file (default: ~/"+defaultConfigHint+")")
	RootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Increase log verbosity")
	RootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress progress output")

	RootCmd.AddGroup(&cobra.Group{
		ID:    "workflow",
		Title: "Workflow Commands:",
	})
	RootCmd.AddGroup(&cobra.Group{
		ID:    "utility",
		Title: "Utility Commands:",
	})

	RootCmd.SetHelpCommandGroupID("utility")
	RootCmd.SetCompletionCommandGroupID("utility")

	UpCommand.GroupID = "workflow"
	StatusCommand.GroupID = "workflow"
	DoctorCommand.GroupID = "utility"

	RootCmd.AddCommand(UpCommand)     // Step 1: Provision selected targets
	RootCmd.AddCommand(StatusCommand) // Inspect detection state
	RootCmd.AddCommand(DoctorCommand) // Verify required external commands
}
