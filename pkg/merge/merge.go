// Package merge folds configuration snapshots into resolved options while
// keeping the provenance tree in lock-step.
package merge

import (
	"fmt"

	"dario.cat/mergo"

	errUtils "github.com/hostsuite/hostsuite/errors"
	log "github.com/hostsuite/hostsuite/pkg/logger"
	"github.com/hostsuite/hostsuite/pkg/provenance"
	"github.com/hostsuite/hostsuite/pkg/schema"
)

// Source is one labelled configuration snapshot.
type Source struct {
	Label    schema.Source
	Snapshot map[string]any
}

// deepMergeKeys are merged key-by-key instead of replaced wholesale.
var deepMergeKeys = map[string]bool{
	schema.KeyHostTags: true,
}

// Resolve folds sources in the given order (lowest precedence first) into a
// fresh options map and provenance tree. Later sources overwrite the keys they
// set; absent keys keep earlier values. Snapshots are deep-copied and never
// modified, so resolving the same sources twice yields equal results.
func Resolve(sources []Source) (map[string]any, provenance.Tree, error) {
	options := map[string]any{}
	attribution := provenance.Tree{}

	for _, src := range sources {
		if err := Step(options, attribution, src); err != nil {
			return nil, nil, err
		}
	}

	return options, attribution, nil
}

// Step merges one source into options and attribution in place.
func Step(options map[string]any, attribution provenance.Tree, src Source) error {
	tags := provenance.Tag(src.Snapshot, src.Label)

	for key, value := range src.Snapshot {
		if deepMergeKeys[key] {
			merged, ok, err := mergeMaps(options[key], value)
			if err != nil {
				return fmt.Errorf("%w: key %q from %s: %w", errUtils.ErrMerge, key, src.Label, err)
			}
			if ok {
				options[key] = merged
				existing, _ := attribution[key].(provenance.Tree)
				incoming, _ := tags[key].(provenance.Tree)
				attribution[key] = mergeTrees(existing, incoming)
				continue
			}
		}

		options[key] = DeepCopy(value)
		attribution[key] = tags[key]
	}

	log.Trace("Merged configuration source", "source", src.Label, "keys", len(src.Snapshot))
	return nil
}

// mergeMaps deep-merges incoming over existing when both are string-keyed maps.
// It reports false when either side is not a map, in which case the caller
// replaces the value.
func mergeMaps(existing, incoming any) (map[string]any, bool, error) {
	dst, ok := existing.(map[string]any)
	if !ok {
		return nil, false, nil
	}
	src, ok := incoming.(map[string]any)
	if !ok {
		return nil, false, nil
	}

	merged := DeepCopy(dst).(map[string]any)
	if err := mergo.Merge(&merged, DeepCopy(src).(map[string]any), mergo.WithOverride); err != nil {
		return nil, false, err
	}
	return merged, true, nil
}

// mergeTrees overlays incoming onto a copy of existing. A leaf replaces
// whatever was there; a subtree merges into an existing subtree.
func mergeTrees(existing, incoming provenance.Tree) provenance.Tree {
	out := provenance.Tree{}
	for k, v := range existing {
		out[k] = copyTreeValue(v)
	}
	for k, v := range incoming {
		sub, isTree := v.(provenance.Tree)
		if cur, ok := out[k].(provenance.Tree); ok && isTree {
			out[k] = mergeTrees(cur, sub)
			continue
		}
		out[k] = copyTreeValue(v)
	}
	return out
}

func copyTreeValue(v any) any {
	if sub, ok := v.(provenance.Tree); ok {
		return mergeTrees(sub, nil)
	}
	return v
}
