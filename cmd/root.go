package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hostsuite/hostsuite/pkg/flags"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   flags.ProgramName,
	Short: "Resolve the options of an acceptance test run",
	Long: `hostsuite merges presets, option files, the hosts file, the command line and the
environment into the validated options of one acceptance test run.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main().
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.AddCommand(resolveCmd, hostsCmd, versionCmd)
}
