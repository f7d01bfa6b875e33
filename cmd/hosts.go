package cmd

import (
	"github.com/spf13/cobra"

	e "github.com/hostsuite/hostsuite/internal/exec"
)

// hostsCmd lists the hosts of a resolved run.
var hostsCmd = &cobra.Command{
	Use:                "hosts [flags]",
	Short:              "List the hosts of a run",
	Example:            "hostsuite hosts --hosts hosts.yml",
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return e.NewHostsExec(cmd.OutOrStdout()).ExecuteHostsCmd(args)
	},
}
