package options

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	errUtils "github.com/hostsuite/hostsuite/errors"
	log "github.com/hostsuite/hostsuite/pkg/logger"
)

// ParseFile reads an options file. The format follows the extension (.toml,
// .json, otherwise YAML). A missing file is a parse error.
func ParseFile(fs afero.Fs, path string) (map[string]any, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errUtils.Parse(errUtils.ErrOptionsFileNotFound, path, nil).
				WithHint("check the path given to --options-file").
				Err()
		}
		return nil, errUtils.Parse(errUtils.ErrOptionsFileNotFound, path, err).Err()
	}

	return Decode(path, data)
}

// ParseOptionalFile reads an options file that may legitimately be absent, in
// which case the snapshot is empty.
func ParseOptionalFile(fs afero.Fs, path string) (map[string]any, error) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, errUtils.Parse(errUtils.ErrOptionsFileNotFound, path, err).Err()
	}
	if !exists {
		log.Trace("Options file not found, skipping", "path", path)
		return map[string]any{}, nil
	}

	log.Debug("Reading options file", "path", path)
	return ParseFile(fs, path)
}

// Decode parses data according to the extension of path and normalizes keys.
func Decode(path string, data []byte) (map[string]any, error) {
	var (
		raw map[string]any
		err error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	case ".json":
		err = json.Unmarshal(data, &raw)
	default:
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, errUtils.Parse(errUtils.ErrUnsupportedFileValue, path, err).Err()
	}

	if raw == nil {
		return map[string]any{}, nil
	}

	normalized, err := NormalizeKeys(raw)
	if err != nil {
		return nil, errUtils.Parse(errUtils.ErrUnsupportedFileValue, path, err).Err()
	}
	return normalized.(map[string]any), nil
}

// NormalizeKeys converts every map in v to map[string]any. Keys written in
// symbol style (":HOSTS", ":roles") lose the leading colon; non-string keys
// are formatted with %v.
func NormalizeKeys(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			n, err := NormalizeKeys(val)
			if err != nil {
				return nil, err
			}
			if err := putKey(out, normalizeKey(k), n); err != nil {
				return nil, err
			}
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			n, err := NormalizeKeys(val)
			if err != nil {
				return nil, err
			}
			if err := putKey(out, normalizeKey(fmt.Sprintf("%v", k)), n); err != nil {
				return nil, err
			}
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			n, err := NormalizeKeys(val)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	default:
		return v, nil
	}
}

func normalizeKey(k string) string {
	return strings.TrimPrefix(k, ":")
}

func putKey(m map[string]any, key string, value any) error {
	if _, dup := m[key]; dup {
		return fmt.Errorf("key %q is set twice (with and without a leading colon)", key)
	}
	m[key] = value
	return nil
}
