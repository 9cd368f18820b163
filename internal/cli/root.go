package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/launchgate/internal/version"
)

// RootCmd returns the launchgate root command with every subcommand attached.
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "launchgate",
		Short:   "Launch gate - splash hold, biometric lock and in-app update supervision",
		Version: version.String(),
		Long: `launchgate runs an application launch the way a device host would:
it holds the splash while the lock preference loads, asks for the lock
challenge when the lock is on, and supervises in-app updates once the
content is shown.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config-dir", "", "Directory holding .launchgate/ (default: home directory)")

	rootCmd.AddCommand(LaunchCmd())
	rootCmd.AddCommand(ResumeCmd())
	rootCmd.AddCommand(SettingsCmd())
	rootCmd.AddCommand(UpdateCmd())
	rootCmd.AddCommand(HistoryCmd())

	return rootCmd
}
