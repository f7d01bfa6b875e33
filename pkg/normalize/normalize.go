// Package normalize reshapes merged options into canonical form: list fields
// become string lists, script paths become concrete file lists, install
// shorthands become git URLs and the hosts file path is made canonical.
// Every rewritten option is attributed to schema.SourceRuntime.
package normalize

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/hostsuite/hostsuite/pkg/provenance"
	"github.com/hostsuite/hostsuite/pkg/schema"
)

// ListKeys are the options that accept either a list or a comma-separated string.
var ListKeys = []string{
	schema.KeyHelper,
	schema.KeyLoadPath,
	schema.KeyTests,
	schema.KeyPreSuite,
	schema.KeyPostSuite,
	schema.KeyPreCleanup,
	schema.KeyInstall,
	schema.KeyModules,
}

// FileListKeys are the list options naming scripts to run.
var FileListKeys = []string{
	schema.KeyTests,
	schema.KeyPreSuite,
	schema.KeyPostSuite,
	schema.KeyPreCleanup,
}

// SplitList returns value as a list of strings. Lists are returned as they
// are; a string is split on commas with surrounding whitespace trimmed and
// empty entries dropped; nil yields an empty list.
func SplitList(value any) []string {
	switch v := value.(type) {
	case nil:
		return []string{}
	case []string:
		return append([]string{}, v...)
	case []any:
		return lo.Map(v, func(item any, _ int) string {
			return toString(item)
		})
	case string:
		parts := lo.Map(strings.Split(v, ","), func(s string, _ int) string {
			return strings.TrimSpace(s)
		})
		return lo.Compact(parts)
	default:
		return []string{toString(v)}
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Lists splits every ListKeys option in place.
func Lists(options map[string]any, attribution provenance.Tree) {
	for _, key := range ListKeys {
		options[key] = toAny(SplitList(options[key]))
		provenance.Set(attribution, schema.SourceRuntime, key)
	}
}

func toAny(list []string) []any {
	return lo.Map(list, func(s string, _ int) any { return s })
}
