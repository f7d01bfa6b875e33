package exec

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/hostsuite/hostsuite/pkg/schema"
)

type hostsExec struct {
	newResolver func() (Resolver, error)
	out         io.Writer
}

// NewHostsExec returns the hosts command writing to out.
func NewHostsExec(out io.Writer) *hostsExec {
	return &hostsExec{newResolver: defaultResolver, out: out}
}

// ExecuteHostsCmd resolves the options for args and prints one row per host,
// captioned with the run's hosts file and failure policies.
func (h *hostsExec) ExecuteHostsCmd(args []string) error {
	result, err := resolve(h.newResolver, args)
	if err != nil {
		return err
	}
	if isHelp(result) {
		_, err := fmt.Fprint(h.out, result.Usage)
		return err
	}

	run, err := schema.DecodeOptions(result.Options)
	if err != nil {
		return err
	}

	topology, _ := result.Options[schema.KeyHosts].(map[string]any)
	names := make([]string, 0, len(topology))
	for name := range topology {
		names = append(names, name)
	}
	sort.Strings(names)

	t := table.NewWriter()
	t.SetOutputMirror(h.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Host", "Platform", "Roles", "Hypervisor", "User"})

	for _, name := range names {
		entry, _ := topology[name].(map[string]any)
		host, err := schema.DecodeHost(entry)
		if err != nil {
			return fmt.Errorf("host %s: %w", name, err)
		}
		t.AppendRow(table.Row{name, host.Platform, strings.Join(host.Roles, ","), host.Hypervisor, host.User})
	}

	hostsFile := run.HostsFile
	if hostsFile == "" {
		hostsFile = "none"
	}
	t.SetCaption("hosts file: %s, fail mode: %s, preserve hosts: %s", hostsFile, run.FailMode, run.PreserveHosts)
	t.Render()
	return nil
}
