package exec

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	errUtils "github.com/hostsuite/hostsuite/errors"
	"github.com/hostsuite/hostsuite/pkg/config"
	log "github.com/hostsuite/hostsuite/pkg/logger"
	"github.com/hostsuite/hostsuite/pkg/provenance"
	"github.com/hostsuite/hostsuite/pkg/schema"
)

// Output formats of the resolve command.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Resolver resolves the options of a run.
type Resolver interface {
	Parse(args []string) (*config.Result, error)
}

// commandFlags are the flags consumed by hostsuite itself; everything else is
// passed to the resolver untouched.
type commandFlags struct {
	provenance bool
	format     string
}

type resolveExec struct {
	newResolver func() (Resolver, error)
	out         io.Writer
}

func defaultResolver() (Resolver, error) {
	return config.NewParser()
}

// NewResolveExec returns the resolve command writing to out.
func NewResolveExec(out io.Writer) *resolveExec {
	return &resolveExec{newResolver: defaultResolver, out: out}
}

// ExecuteResolveCmd resolves the options for args and prints them, or their
// provenance with --provenance.
func (r *resolveExec) ExecuteResolveCmd(args []string) error {
	flags, rest, err := splitCommandFlags(args)
	if err != nil {
		return err
	}

	result, err := resolve(r.newResolver, rest)
	if err != nil {
		return err
	}
	if isHelp(result) {
		_, err := fmt.Fprint(r.out, result.Usage)
		return err
	}

	if flags.provenance {
		provenance.Render(r.out, result.Attribution)
		return nil
	}
	return printOptions(r.out, flags.format, result.Options)
}

func resolve(newResolver func() (Resolver, error), args []string) (*config.Result, error) {
	resolver, err := newResolver()
	if err != nil {
		return nil, err
	}
	log.Debug("Resolving options", "args", strings.Join(args, " "))
	result, err := resolver.Parse(args)
	if err != nil {
		return nil, err
	}
	log.SetLevel(result.LogLevel)
	return result, nil
}

func isHelp(result *config.Result) bool {
	help, _ := result.Options[schema.KeyHelp].(bool)
	return help
}

func splitCommandFlags(args []string) (commandFlags, []string, error) {
	flags := commandFlags{format: FormatYAML}
	var rest []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--provenance":
			flags.provenance = true
		case arg == "--format":
			if i+1 >= len(args) {
				return flags, nil, errUtils.Build(fmt.Errorf("%w: %w: --format needs a value", errUtils.ErrParse, errUtils.ErrInvalidFlag)).
					WithExitCode(errUtils.ExitCodeParse).
					Err()
			}
			i++
			flags.format = args[i]
		case strings.HasPrefix(arg, "--format="):
			flags.format = strings.TrimPrefix(arg, "--format=")
		default:
			rest = append(rest, arg)
		}
	}

	if flags.format != FormatYAML && flags.format != FormatJSON {
		return flags, nil, errUtils.Build(fmt.Errorf("%w: %w: unsupported format %q", errUtils.ErrParse, errUtils.ErrInvalidFlag, flags.format)).
			WithHintf("use --format %s or --format %s", FormatYAML, FormatJSON).
			WithExitCode(errUtils.ExitCodeParse).
			Err()
	}
	return flags, rest, nil
}

func printOptions(w io.Writer, format string, options map[string]any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(options)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(options); err != nil {
			return err
		}
		return enc.Close()
	}
}
