// Package hosts loads the host topology from a hosts file, or generates one
// when the path names a layout instead of a file.
package hosts

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	errUtils "github.com/hostsuite/hostsuite/errors"
	log "github.com/hostsuite/hostsuite/pkg/logger"
	"github.com/hostsuite/hostsuite/pkg/options"
	"github.com/hostsuite/hostsuite/pkg/schema"
)

// Load returns the host_file snapshot for path.
//
// An empty path yields an empty topology. An existing file is parsed as YAML:
// HOSTS becomes the topology and the keys of CONFIG are lifted to the top
// level. Otherwise path is handed to gen as a layout and the output is parsed
// the same way, with hosts_file_generated set.
func Load(fs afero.Fs, path string, gen Generator) (map[string]any, error) {
	if path == "" {
		return map[string]any{schema.KeyHosts: map[string]any{}}, nil
	}

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, errUtils.Parse(errUtils.ErrInvalidHostsFile, path, err).Err()
	}

	if exists {
		log.Debug("Reading hosts file", "path", path)
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, errUtils.Parse(errUtils.ErrInvalidHostsFile, path, err).Err()
		}
		snapshot, err := Decode(path, data)
		if err != nil {
			return nil, err
		}
		snapshot[schema.KeyHostsFile] = path
		return snapshot, nil
	}

	return generate(path, gen)
}

func generate(layout string, gen Generator) (map[string]any, error) {
	hypervisor := options.GeneratorHypervisor()
	log.Info("Hosts file does not exist, trying as generator input", "path", layout, "hypervisor", hypervisor)

	if gen == nil {
		return nil, fmt.Errorf("%w: no generator configured for layout %q: %w", errUtils.ErrGenerator, layout, os.ErrNotExist)
	}

	out, err := gen.Generate(layout, hypervisor)
	if err != nil {
		log.Error("Host generation failed", "layout", layout, "hypervisor", hypervisor, "err", err)
		return nil, fmt.Errorf(errUtils.ErrWrappingFormat, errUtils.ErrGenerator, err)
	}

	snapshot, err := Decode(layout, out)
	if err != nil {
		return nil, err
	}
	snapshot[schema.KeyHostsFile] = layout
	snapshot[schema.KeyHostsFileGenerated] = true
	return snapshot, nil
}

// Decode parses hosts YAML into a snapshot. source names the file (or layout)
// in error messages.
func Decode(source string, data []byte) (map[string]any, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errUtils.Parse(errUtils.ErrInvalidHostsFile, source, err).Err()
	}

	normalized, err := options.NormalizeKeys(raw)
	if err != nil {
		return nil, errUtils.Parse(errUtils.ErrInvalidHostsFile, source, err).Err()
	}
	doc, _ := normalized.(map[string]any)

	snapshot := map[string]any{}

	if cfg, ok := doc[schema.KeyHostsConfig]; ok && cfg != nil {
		section, isMap := cfg.(map[string]any)
		if !isMap {
			return nil, invalid(source, "%s must be a map, got %T", schema.KeyHostsConfig, cfg)
		}
		for k, v := range section {
			snapshot[k] = v
		}
	}

	topology := map[string]any{}
	if value, ok := doc[schema.KeyHosts]; ok && value != nil {
		entries, isMap := value.(map[string]any)
		if !isMap {
			return nil, invalid(source, "%s must be a map of host names, got %T", schema.KeyHosts, value)
		}
		for name, entry := range entries {
			switch e := entry.(type) {
			case nil:
				topology[name] = map[string]any{}
			case map[string]any:
				topology[name] = e
			default:
				return nil, invalid(source, "host %q must be a map, got %T", name, entry)
			}
		}
	}
	snapshot[schema.KeyHosts] = topology

	for k := range doc {
		if k != schema.KeyHosts && k != schema.KeyHostsConfig {
			log.Debug("Ignoring unknown hosts file section", "path", source, "section", k)
		}
	}

	return snapshot, nil
}

func invalid(source, format string, args ...any) error {
	return errUtils.Parse(errUtils.ErrInvalidHostsFile, source, fmt.Errorf(format, args...)).Err()
}
