package options

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	errUtils "github.com/hostsuite/hostsuite/errors"
	"github.com/hostsuite/hostsuite/pkg/schema"
)

// HypervisorEnvVar overrides the hypervisor passed to the host generator.
const HypervisorEnvVar = "HOSTSUITE_HYPERVISOR"

type envKind int

const (
	envString envKind = iota
	envBool
	envInt
)

type envSpec struct {
	key   string
	names []string
	kind  envKind
}

// environmentSpec maps option keys to the environment variables that set them.
// When several variables are listed the first one set wins.
var environmentSpec = []envSpec{
	{key: "project", names: []string{"HOSTSUITE_PROJECT", "HOSTSUITE_project"}},
	{key: "department", names: []string{"HOSTSUITE_DEPARTMENT", "HOSTSUITE_department"}},
	{key: "jenkins_build_url", names: []string{"HOSTSUITE_BUILD_URL", "BUILD_URL"}},
	{key: "created_by", names: []string{"HOSTSUITE_CREATED_BY"}},
	{key: "consoleport", names: []string{"HOSTSUITE_CONSOLEPORT", "consoleport"}, kind: envInt},
	{key: "is_pe", names: []string{"HOSTSUITE_IS_PE", "IS_PE"}, kind: envBool},
	{key: "pe_dir", names: []string{"HOSTSUITE_PE_DIR", "pe_dist_dir"}},
	{key: "pe_ver", names: []string{"HOSTSUITE_PE_VER", "pe_ver"}},
	{key: "forge_host", names: []string{"HOSTSUITE_FORGE_HOST", "forge_host"}},
	{key: "package_proxy", names: []string{"HOSTSUITE_PACKAGE_PROXY"}},
	{key: schema.KeyTestTagAnd, names: []string{"HOSTSUITE_TAG", "HOSTSUITE_TEST_TAG_AND"}},
	{key: schema.KeyTestTagOr, names: []string{"HOSTSUITE_TEST_TAG_OR"}},
	{key: schema.KeyTestTagExclude, names: []string{"HOSTSUITE_EXCLUDE_TAG", "HOSTSUITE_TEST_TAG_EXCLUDE"}},
	{key: "run_in_parallel", names: []string{"HOSTSUITE_RUN_IN_PARALLEL"}, kind: envBool},
	{key: schema.KeyLogLevel, names: []string{"HOSTSUITE_LOG_LEVEL"}},
}

// EnvVars returns the snapshot of options set through environment variables.
// Unset variables are omitted.
func EnvVars() (map[string]any, error) {
	v := viper.New()
	out := map[string]any{}

	for _, spec := range environmentSpec {
		if err := v.BindEnv(append([]string{spec.key}, spec.names...)...); err != nil {
			return nil, err
		}
		if !v.IsSet(spec.key) {
			continue
		}

		value, err := coerceEnv(spec, v.GetString(spec.key))
		if err != nil {
			return nil, err
		}
		out[spec.key] = value
	}

	return out, nil
}

// EnvVarNames lists every environment variable consulted by EnvVars.
func EnvVarNames() []string {
	var names []string
	for _, spec := range environmentSpec {
		names = append(names, spec.names...)
	}
	return names
}

func coerceEnv(spec envSpec, raw string) (any, error) {
	switch spec.kind {
	case envBool:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true", "1", "yes", "y", "on":
			return true, nil
		case "false", "0", "no", "n", "off", "":
			return false, nil
		}
	case envInt:
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			return n, nil
		}
	default:
		return raw, nil
	}

	return nil, errUtils.Build(fmt.Errorf("%w: %w: %s=%q", errUtils.ErrParse, errUtils.ErrInvalidEnvValue, strings.Join(spec.names, "|"), raw)).
		WithHintf("set one of %s to a valid value for %s", strings.Join(spec.names, ", "), spec.key).
		WithExitCode(errUtils.ExitCodeParse).
		Err()
}

// GeneratorHypervisor returns the hypervisor override for generated host
// topologies, or "" when unset.
func GeneratorHypervisor() string {
	v := viper.New()
	_ = v.BindEnv("hypervisor", HypervisorEnvVar)
	return strings.TrimSpace(v.GetString("hypervisor"))
}
