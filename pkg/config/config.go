// Package config resolves the options of a run from every configuration
// source and validates the result.
package config

import (
	"fmt"
	"os"

	"github.com/adrg/xdg"
	charm "github.com/charmbracelet/log"
	"github.com/spf13/afero"

	errUtils "github.com/hostsuite/hostsuite/errors"
	"github.com/hostsuite/hostsuite/pkg/flags"
	"github.com/hostsuite/hostsuite/pkg/hosts"
	log "github.com/hostsuite/hostsuite/pkg/logger"
	"github.com/hostsuite/hostsuite/pkg/merge"
	"github.com/hostsuite/hostsuite/pkg/normalize"
	"github.com/hostsuite/hostsuite/pkg/options"
	"github.com/hostsuite/hostsuite/pkg/provenance"
	"github.com/hostsuite/hostsuite/pkg/schema"
	"github.com/hostsuite/hostsuite/pkg/validate"
)

// Parser resolves options. All file access goes through Fs; relative paths
// given on the command line are looked up by Fs itself, so WorkDir should be
// the process working directory when Fs is the OS filesystem.
type Parser struct {
	Fs        afero.Fs
	HomeDir   string
	WorkDir   string
	Generator hosts.Generator

	// Stages defaults to validate.DefaultStages.
	Stages []validate.Stage
}

// Result is a resolved configuration and the source of each of its values.
// LogLevel is the parsed log_level option; Parse leaves the global logger
// alone and the caller decides whether to apply it.
type Result struct {
	Options     map[string]any
	Attribution provenance.Tree
	Usage       string
	LogLevel    charm.Level
}

// NewParser returns a Parser over the OS filesystem, the user's home
// directory and the current working directory.
func NewParser() (*Parser, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return &Parser{
		Fs:        afero.NewOsFs(),
		HomeDir:   xdg.Home,
		WorkDir:   wd,
		Generator: hosts.NewExecGenerator(),
	}, nil
}

// Parse resolves the options for a run invoked with args (program name
// excluded). With --help the merged options are returned unvalidated.
func (p *Parser) Parse(args []string) (*Result, error) {
	sources, usage, err := p.collect(args)
	if err != nil {
		return nil, err
	}

	opts, attribution, err := merge.Resolve(sources)
	if err != nil {
		return nil, err
	}
	result := &Result{Options: opts, Attribution: attribution, Usage: usage}

	if help, _ := opts[schema.KeyHelp].(bool); help {
		log.Debug("Help requested, skipping validation")
		return result, nil
	}

	level, err := logLevel(opts)
	if err != nil {
		return nil, err
	}
	result.LogLevel = level

	if err := normalize.HostsFile(p.Fs, p.WorkDir, opts, attribution); err != nil {
		return nil, err
	}

	stages := p.Stages
	if stages == nil {
		stages = validate.DefaultStages()
	}
	state := &validate.State{Fs: p.Fs, Options: opts, Attribution: attribution}
	if err := validate.Run(state, stages); err != nil {
		return nil, err
	}

	return result, nil
}

// collect gathers every source snapshot in ascending precedence.
func (p *Parser) collect(args []string) ([]merge.Source, string, error) {
	cli, usage, err := flags.Parse(args)
	if err != nil {
		return nil, usage, err
	}

	project, err := options.ParseOptionalFile(p.Fs, options.ProjectFilePath(p.WorkDir))
	if err != nil {
		return nil, usage, err
	}
	homedir, err := options.ParseOptionalFile(p.Fs, options.HomeSubcommandFilePath(p.HomeDir))
	if err != nil {
		return nil, usage, err
	}
	subcommand, err := options.ParseOptionalFile(p.Fs, options.ProjectSubcommandFilePath(p.WorkDir))
	if err != nil {
		return nil, usage, err
	}

	optionsFile := map[string]any{}
	if path, _ := cli[schema.KeyOptionsFile].(string); path != "" {
		if optionsFile, err = options.ParseFile(p.Fs, path); err != nil {
			return nil, usage, err
		}
	}

	sources := []merge.Source{
		{Label: schema.SourcePreset, Snapshot: options.Presets(p.HomeDir)},
		{Label: schema.SourceProject, Snapshot: project},
		{Label: schema.SourceHomedir, Snapshot: homedir},
		{Label: schema.SourceSubcommand, Snapshot: subcommand},
		{Label: schema.SourceOptionsFile, Snapshot: optionsFile},
		{Label: schema.SourceFlag, Snapshot: cli},
	}

	// The hosts file may be named by any source so far.
	partial, _, err := merge.Resolve(sources)
	if err != nil {
		return nil, usage, err
	}
	hostFile := map[string]any{}
	if path := fmt.Sprint(lookup(partial, schema.KeyHostsFile)); path != "" {
		if hostFile, err = hosts.Load(p.Fs, path, p.Generator); err != nil {
			return nil, usage, err
		}
	} else {
		log.Debug("No hosts file given")
	}

	env, err := options.EnvVars()
	if err != nil {
		return nil, usage, err
	}

	sources = append(sources,
		merge.Source{Label: schema.SourceHostFile, Snapshot: hostFile},
		// The command line is applied again so it wins over the hosts file CONFIG.
		merge.Source{Label: schema.SourceCmd, Snapshot: cli},
		merge.Source{Label: schema.SourceEnv, Snapshot: env},
	)
	return sources, usage, nil
}

func lookup(m map[string]any, key string) any {
	if v, ok := m[key]; ok && v != nil {
		return v
	}
	return ""
}

func logLevel(opts map[string]any) (charm.Level, error) {
	raw, _ := opts[schema.KeyLogLevel].(string)
	level, err := log.ParseLogLevel(raw)
	if err != nil {
		return level, errUtils.Build(fmt.Errorf(errUtils.ErrWrappingFormat, errUtils.ErrValidation, err)).
			WithExitCode(errUtils.ExitCodeValidation).
			Err()
	}
	return level, nil
}
