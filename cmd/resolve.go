package cmd

import (
	"github.com/spf13/cobra"

	e "github.com/hostsuite/hostsuite/internal/exec"
)

// resolveCmd prints the resolved options of a run.
var resolveCmd = &cobra.Command{
	Use:   "resolve [flags]",
	Short: "Print the resolved options of a run",
	Long: `Resolve every configuration source and print the validated options.

Use --format json for JSON output and --provenance to print the source of every value.
All other flags are run flags; see "hostsuite resolve --help".`,
	Example: `hostsuite resolve --hosts hosts.yml --fail-mode stop
hostsuite resolve --provenance -h centos7-64m`,
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return e.NewResolveExec(cmd.OutOrStdout()).ExecuteResolveCmd(args)
	},
}
