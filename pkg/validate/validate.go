// Package validate checks the merged options and completes the host topology.
// Validation is an ordered list of stages over one State; the first failing
// stage aborts the run and leaves the State partially updated.
package validate

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
	"github.com/spf13/afero"

	errUtils "github.com/hostsuite/hostsuite/errors"
	log "github.com/hostsuite/hostsuite/pkg/logger"
	"github.com/hostsuite/hostsuite/pkg/normalize"
	"github.com/hostsuite/hostsuite/pkg/provenance"
	"github.com/hostsuite/hostsuite/pkg/schema"
)

// State is the configuration owned by one resolution.
type State struct {
	Fs          afero.Fs
	Options     map[string]any
	Attribution provenance.Tree
}

// Stage is one validation or transformation step.
type Stage struct {
	Name string
	Run  func(*State) error
}

// DefaultStages returns the stages run for every resolution, in order.
func DefaultStages() []Stage {
	return []Stage{
		{Name: "platforms", Run: parsePlatforms},
		{Name: "keyfile", Run: applyKeyfile},
		{Name: "lists", Run: normalizeLists},
		{Name: "fail_mode", Run: checkFailMode},
		{Name: "preserve_hosts", Run: checkPreserveHosts},
		{Name: "hypervisors", Run: checkHypervisorFiles},
		{Name: "masters", Run: checkMasterCount},
		{Name: "restricted_roles", Run: checkRestrictedRoles},
		{Name: "host_settings", Run: applyHostSettings},
		{Name: "test_tags", Run: normalizeTestTags},
		{Name: "default_host", Run: assignDefaultHost},
	}
}

// Run executes stages in order and returns the first error.
func Run(state *State, stages []Stage) error {
	if state.Attribution == nil {
		state.Attribution = provenance.Tree{}
	}
	for _, stage := range stages {
		log.Debug("Running validation stage", "stage", stage.Name)
		if err := stage.Run(state); err != nil {
			log.Debug("Validation stage failed", "stage", stage.Name, "err", err)
			return err
		}
	}
	return nil
}

// topology returns the HOSTS map and its host names in sorted order.
func topology(state *State) (map[string]any, []string, error) {
	raw, ok := state.Options[schema.KeyHosts]
	if !ok || raw == nil {
		hosts := map[string]any{}
		state.Options[schema.KeyHosts] = hosts
		return hosts, nil, nil
	}

	hosts, ok := raw.(map[string]any)
	if !ok {
		return nil, nil, errUtils.Validation(errUtils.ErrInvalidHostsFile, "%s must be a map of host names, got %T", schema.KeyHosts, raw).Err()
	}

	names := lo.Keys(hosts)
	sort.Strings(names)
	for _, name := range names {
		if _, ok := hosts[name].(map[string]any); !ok {
			return nil, nil, errUtils.Validation(errUtils.ErrInvalidHostsFile, "host %q must be a map, got %T", name, hosts[name]).
				WithContext("host", name).
				Err()
		}
	}
	return hosts, names, nil
}

func host(hosts map[string]any, name string) map[string]any {
	entry, _ := hosts[name].(map[string]any)
	return entry
}

func roles(entry map[string]any) []string {
	return normalize.SplitList(entry[schema.HostKeyRoles])
}

func hasRole(entry map[string]any, role string) bool {
	return lo.Contains(roles(entry), role)
}

func hostsWithRole(hosts map[string]any, names []string, role string) []string {
	return lo.Filter(names, func(name string, _ int) bool {
		return hasRole(host(hosts, name), role)
	})
}

func stringOption(options map[string]any, key string) string {
	switch v := options[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func boolOption(options map[string]any, key string) bool {
	switch v := options[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}

func toAny(list []string) []any {
	return lo.Map(list, func(s string, _ int) any { return s })
}
