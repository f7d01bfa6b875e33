package validate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"dario.cat/mergo"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	errUtils "github.com/hostsuite/hostsuite/errors"
	log "github.com/hostsuite/hostsuite/pkg/logger"
	"github.com/hostsuite/hostsuite/pkg/merge"
	"github.com/hostsuite/hostsuite/pkg/normalize"
	"github.com/hostsuite/hostsuite/pkg/platform"
	"github.com/hostsuite/hostsuite/pkg/provenance"
	"github.com/hostsuite/hostsuite/pkg/schema"
)

// Accepted values of fail_mode and preserve_hosts.
var (
	FailModes     = []string{"stop", "fast", "slow"}
	PreserveHosts = []string{"always", "onfail", "onpass", "never"}
)

// HypervisorFiles names the option holding the file each hypervisor needs.
var HypervisorFiles = map[string]string{
	"blimpy":  schema.KeyEC2YAML,
	"aix":     schema.KeyDotFog,
	"solaris": schema.KeyDotFog,
	"vcloud":  schema.KeyDotFog,
}

var (
	restrictedPlatforms = regexp.MustCompile(`windows|el-4`)
	restrictedRoles     = []string{schema.RoleMaster, schema.RoleDatabase, schema.RoleDashboard}
)

var testTagKeys = []string{schema.KeyTestTagAnd, schema.KeyTestTagOr, schema.KeyTestTagExclude}

func parsePlatforms(state *State) error {
	hosts, names, err := topology(state)
	if err != nil {
		return err
	}

	for _, name := range names {
		entry := host(hosts, name)
		raw := entry[schema.HostKeyPlatform]
		if _, parsed := raw.(platform.Platform); parsed {
			continue
		}
		if raw == nil || raw == "" {
			return errUtils.Validation(errUtils.ErrMissingPlatform, "host %s", name).
				WithHint("set platform to variant-version-arch, for example el-7-x86_64").
				WithContext("host", name).
				Err()
		}

		p, err := platform.Parse(fmt.Sprint(raw))
		if err != nil {
			return errUtils.Validation(errUtils.ErrInvalidPlatform, "host %s: %v", name, err).
				WithHintf("known variants are %s", strings.Join(platform.Variants, ", ")).
				WithContext("host", name).
				WithContext("platform", raw).
				Err()
		}
		entry[schema.HostKeyPlatform] = p
	}
	return nil
}

// applyKeyfile makes keyfile the only SSH key of every host, replacing any
// keys a host already lists.
func applyKeyfile(state *State) error {
	keyfile := stringOption(state.Options, schema.KeyKeyfile)
	if keyfile == "" {
		return nil
	}

	hosts, names, err := topology(state)
	if err != nil {
		return err
	}

	for _, name := range names {
		entry := host(hosts, name)
		ssh, ok := entry[schema.HostKeySSH].(map[string]any)
		if !ok {
			ssh = map[string]any{}
			entry[schema.HostKeySSH] = ssh
		}
		ssh[schema.SSHKeyKeys] = []any{keyfile}
		provenance.Set(state.Attribution, schema.SourceRuntime, schema.KeyHosts, name, schema.HostKeySSH, schema.SSHKeyKeys)
	}
	return nil
}

func normalizeLists(state *State) error {
	normalize.Lists(state.Options, state.Attribution)
	normalize.Install(state.Options, state.Attribution)
	return normalize.Files(state.Fs, state.Options, state.Attribution)
}

func checkEnum(state *State, key string, allowed []string, sentinel error) error {
	value := stringOption(state.Options, key)
	if value == "" || lo.Contains(allowed, value) {
		return nil
	}
	return errUtils.Validation(sentinel, "%s %q", key, value).
		WithHintf("%s must be one of %s", key, strings.Join(allowed, ", ")).
		Err()
}

func checkFailMode(state *State) error {
	return checkEnum(state, schema.KeyFailMode, FailModes, errUtils.ErrInvalidFailMode)
}

func checkPreserveHosts(state *State) error {
	return checkEnum(state, schema.KeyPreserveHosts, PreserveHosts, errUtils.ErrInvalidPreserveHosts)
}

func checkHypervisorFiles(state *State) error {
	hosts, names, err := topology(state)
	if err != nil {
		return err
	}

	hypervisors := lo.Uniq(lo.FilterMap(names, func(name string, _ int) (string, bool) {
		hv := stringOption(host(hosts, name), schema.HostKeyHypervisor)
		return hv, hv != ""
	}))
	sort.Strings(hypervisors)

	for _, hv := range hypervisors {
		key, required := HypervisorFiles[hv]
		if !required {
			continue
		}
		path := stringOption(state.Options, key)
		if err := checkYAMLFile(state.Fs, path); err != nil {
			return errUtils.Validation(err, "hypervisor %s needs %s %q", hv, key, path).
				WithHintf("create %s or point %s at an existing file", path, key).
				WithContext("hypervisor", hv).
				Err()
		}
	}
	return nil
}

func checkYAMLFile(fs afero.Fs, path string) error {
	if path == "" {
		return errUtils.ErrMissingHypervisorFile
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return errUtils.ErrMissingHypervisorFile
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return errUtils.ErrInvalidHypervisorFile
	}
	return nil
}

// checkMasterCount allows at most one master. Zero masters is accepted in two
// cases: a single-host topology, whose only host later becomes the default
// host, and any topology with masterless set. Every other topology without a
// master fails.
func checkMasterCount(state *State) error {
	hosts, names, err := topology(state)
	if err != nil {
		return err
	}

	masters := hostsWithRole(hosts, names, schema.RoleMaster)
	switch {
	case len(masters) > 1:
		return errUtils.Validation(errUtils.ErrMasterCount, "found %d: %s", len(masters), strings.Join(masters, ", ")).
			WithHint("remove the master role from all but one host").
			Err()
	case len(masters) == 0 && len(names) > 1 && !boolOption(state.Options, schema.KeyMasterless):
		return errUtils.Validation(errUtils.ErrMasterCount, "found none among %d hosts", len(names)).
			WithExplanation("A run with several hosts installs its agents against a master; only a single host may run without one.").
			WithHint("add the master role to one host, or set masterless for a run without one").
			Err()
	}
	return nil
}

func checkRestrictedRoles(state *State) error {
	hosts, names, err := topology(state)
	if err != nil {
		return err
	}

	for _, name := range names {
		entry := host(hosts, name)
		p, ok := entry[schema.HostKeyPlatform].(platform.Platform)
		if !ok || !p.Matches(restrictedPlatforms) {
			continue
		}
		forbidden := lo.Filter(roles(entry), func(role string, _ int) bool {
			return lo.Contains(restrictedRoles, role)
		})
		if len(forbidden) > 0 {
			return errUtils.Validation(errUtils.ErrRoleExclusion, "host %s on %s cannot have role %s", name, p, strings.Join(forbidden, ", ")).
				WithContext("host", name).
				WithContext("platform", p.String()).
				Err()
		}
	}
	return nil
}

// applyHostSettings lets ssh.user override a host's user and merges the
// global host_tags under each host's own tags.
func applyHostSettings(state *State) error {
	hosts, names, err := topology(state)
	if err != nil {
		return err
	}
	global, _ := state.Options[schema.KeyHostTags].(map[string]any)

	for _, name := range names {
		entry := host(hosts, name)

		if ssh, ok := entry[schema.HostKeySSH].(map[string]any); ok {
			if user := stringOption(ssh, schema.SSHKeyUser); user != "" {
				entry[schema.HostKeyUser] = user
				provenance.Set(state.Attribution, schema.SourceRuntime, schema.KeyHosts, name, schema.HostKeyUser)
			}
		}

		own, _ := entry[schema.HostKeyHostTags].(map[string]any)
		tags, err := mergeTags(global, own)
		if err != nil {
			return fmt.Errorf("%w: host_tags of %s: %w", errUtils.ErrMerge, name, err)
		}
		entry[schema.HostKeyHostTags] = tags
		provenance.Set(state.Attribution, provenance.TagValue(tags, schema.SourceRuntime), schema.KeyHosts, name, schema.HostKeyHostTags)
	}
	return nil
}

func mergeTags(global, own map[string]any) (map[string]any, error) {
	out := map[string]any{}
	for _, layer := range []map[string]any{global, own} {
		if len(layer) == 0 {
			continue
		}
		if err := mergo.Merge(&out, merge.DeepCopyMap(layer), mergo.WithOverride); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func normalizeTestTags(state *State) error {
	tags := map[string][]string{}
	for _, key := range testTagKeys {
		list, err := splitTags(state.Options[key])
		if err != nil {
			return errUtils.Validation(errUtils.ErrInvalidTestTag, "%s: %v", key, err).
				WithHint("tags are comma-separated and may not be empty").
				Err()
		}
		tags[key] = list
		state.Options[key] = toAny(list)
		provenance.Set(state.Attribution, schema.SourceRuntime, key)
	}

	and, or, exclude := tags[schema.KeyTestTagAnd], tags[schema.KeyTestTagOr], tags[schema.KeyTestTagExclude]
	if len(and) > 0 && len(or) > 0 {
		return errUtils.Validation(errUtils.ErrConflictingTestTags, "%s and %s cannot be used together", schema.KeyTestTagAnd, schema.KeyTestTagOr).Err()
	}
	if both := lo.Filter(and, func(tag string, _ int) bool { return lo.Contains(exclude, tag) }); len(both) > 0 {
		return errUtils.Validation(errUtils.ErrConflictingTestTags, "%s both required and excluded", strings.Join(both, ", ")).Err()
	}
	return nil
}

// splitTags lower-cases each comma-separated tag. Empty tags are rejected;
// an unset or empty value is no tags.
func splitTags(value any) ([]string, error) {
	var raw []string
	switch v := value.(type) {
	case nil:
		return []string{}, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return []string{}, nil
		}
		raw = strings.Split(v, ",")
	default:
		raw = normalize.SplitList(v)
	}

	tags := make([]string, 0, len(raw))
	for i, tag := range raw {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			return nil, fmt.Errorf("tag %d is empty", i+1)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// assignDefaultHost gives the default role to the master, or to the only
// host, unless exactly one host already has it.
func assignDefaultHost(state *State) error {
	hosts, names, err := topology(state)
	if err != nil {
		return err
	}

	defaults := hostsWithRole(hosts, names, schema.RoleDefault)
	switch len(defaults) {
	case 0:
	case 1:
		return nil
	default:
		return errUtils.Validation(errUtils.ErrMultipleDefaultHosts, "found %d: %s", len(defaults), strings.Join(defaults, ", ")).Err()
	}

	var target string
	if masters := hostsWithRole(hosts, names, schema.RoleMaster); len(masters) == 1 {
		target = masters[0]
	} else if len(names) == 1 {
		target = names[0]
	} else {
		log.Debug("No default host assigned", "hosts", len(names))
		return nil
	}

	entry := host(hosts, target)
	entry[schema.HostKeyRoles] = toAny(append(roles(entry), schema.RoleDefault))
	provenance.Set(state.Attribution, schema.SourceRuntime, schema.KeyHosts, target, schema.HostKeyRoles)
	log.Debug("Assigned default host", "host", target)
	return nil
}
