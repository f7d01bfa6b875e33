// Package flags turns command-line arguments into a configuration snapshot.
package flags

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	errUtils "github.com/hostsuite/hostsuite/errors"
	"github.com/hostsuite/hostsuite/pkg/options"
	"github.com/hostsuite/hostsuite/pkg/schema"
)

// ProgramName prefixes the recorded command line.
const ProgramName = "hostsuite"

type kind int

const (
	kindString kind = iota
	kindInt
	kindBool
	kindNegatedBool
)

type flagSpec struct {
	name      string
	shorthand string
	key       string
	kind      kind
	usage     string
}

// registry lists every flag the run accepts and the option key it sets.
var registry = []flagSpec{
	{name: "hosts", shorthand: "h", key: schema.KeyHostsFile, usage: "Hosts file, or a generator layout such as centos7-64m-debian8-32a"},
	{name: "options-file", shorthand: "o", key: schema.KeyOptionsFile, usage: "Options file (yaml, toml or json)"},
	{name: "helper", key: schema.KeyHelper, usage: "Comma-separated helper files to load before the tests"},
	{name: "load-path", key: schema.KeyLoadPath, usage: "Comma-separated directories added to the load path"},
	{name: "tests", shorthand: "t", key: schema.KeyTests, usage: "Comma-separated test files or directories"},
	{name: "pre-suite", key: schema.KeyPreSuite, usage: "Comma-separated scripts run before the tests"},
	{name: "post-suite", key: schema.KeyPostSuite, usage: "Comma-separated scripts run after the tests"},
	{name: "pre-cleanup", key: schema.KeyPreCleanup, usage: "Comma-separated scripts run before host cleanup"},
	{name: "install", shorthand: "i", key: schema.KeyInstall, usage: "Comma-separated install targets (PUPPET/3.1, FACTER/2.0, URLs)"},
	{name: "modules", shorthand: "m", key: schema.KeyModules, usage: "Comma-separated modules to install"},
	{name: "keyfile", key: schema.KeyKeyfile, usage: "SSH key used for every host"},
	{name: "fail-mode", key: schema.KeyFailMode, usage: "How to proceed after a failure: stop, fast or slow"},
	{name: "preserve-hosts", key: schema.KeyPreserveHosts, usage: "When to keep hosts after the run: always, onfail, onpass or never"},
	{name: "test-tag-and", key: schema.KeyTestTagAnd, usage: "Run tests carrying all of these comma-separated tags"},
	{name: "test-tag-or", key: schema.KeyTestTagOr, usage: "Run tests carrying any of these comma-separated tags"},
	{name: "test-tag-exclude", key: schema.KeyTestTagExclude, usage: "Skip tests carrying any of these comma-separated tags"},
	{name: "log-level", key: schema.KeyLogLevel, usage: "Log level: trace, verbose, debug, info, notify or warn"},
	{name: "timeout", key: "timeout", kind: kindInt, usage: "Execution timeout in seconds"},
	{name: "xml", key: "xml", kind: kindBool, usage: "Emit JUnit XML reports"},
	{name: "masterless", key: schema.KeyMasterless, kind: kindBool, usage: "Allow a topology without a master"},
	{name: "no-validate", key: "validate", kind: kindNegatedBool, usage: "Skip host package validation"},
	{name: "no-configure", key: "configure", kind: kindNegatedBool, usage: "Skip host configuration"},
	{name: "help", key: schema.KeyHelp, kind: kindBool, usage: "Show this help"},
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(ProgramName, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	for _, f := range registry {
		switch f.kind {
		case kindString:
			fs.StringP(f.name, f.shorthand, "", f.usage)
		case kindInt:
			fs.IntP(f.name, f.shorthand, 0, f.usage)
		case kindBool, kindNegatedBool:
			fs.BoolP(f.name, f.shorthand, false, f.usage)
		}
	}
	return fs
}

// Usage returns the help text listing every flag.
func Usage() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Usage: %s [flags]\n\nFlags:\n", ProgramName)
	buf.WriteString(newFlagSet().FlagUsages())

	// Environment variables override every other source.
	buf.WriteString("\nEnvironment:\n")
	for _, name := range append(options.EnvVarNames(), options.HypervisorEnvVar) {
		fmt.Fprintf(&buf, "  %s\n", name)
	}
	return buf.String()
}

// Parse returns the snapshot of options set on the command line and the usage
// text. Flags left at their defaults are omitted so they cannot shadow
// lower-precedence sources. The snapshot always records command_line.
func Parse(args []string) (map[string]any, string, error) {
	fs := newFlagSet()
	usage := Usage()

	if err := fs.Parse(args); err != nil {
		return nil, usage, invalid(err.Error())
	}
	if fs.NArg() > 0 {
		return nil, usage, invalid(fmt.Sprintf("unexpected argument %q", fs.Arg(0)))
	}

	snapshot := map[string]any{
		schema.KeyCommandLine: strings.Join(append([]string{ProgramName}, args...), " "),
	}

	for _, f := range registry {
		if !fs.Changed(f.name) {
			continue
		}

		var (
			value any
			err   error
		)
		switch f.kind {
		case kindString:
			value, err = fs.GetString(f.name)
		case kindInt:
			value, err = fs.GetInt(f.name)
		case kindBool:
			value, err = fs.GetBool(f.name)
		case kindNegatedBool:
			var b bool
			b, err = fs.GetBool(f.name)
			value = !b
		}
		if err != nil {
			return nil, usage, invalid(err.Error())
		}
		snapshot[f.key] = value
	}

	return snapshot, usage, nil
}

func invalid(msg string) error {
	return errUtils.Build(fmt.Errorf("%w: %w: %s", errUtils.ErrParse, errUtils.ErrInvalidFlag, msg)).
		WithHintf("run '%s --help' to list the accepted flags", ProgramName).
		WithExitCode(errUtils.ExitCodeParse).
		Err()
}
