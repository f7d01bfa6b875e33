// Package provenance records which configuration source last wrote each
// resolved option. A Tree has the same key structure as the options it
// describes, with every leaf replaced by a schema.Source.
package provenance

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/hostsuite/hostsuite/pkg/schema"
)

// Tree mirrors a configuration tree. Leaves are schema.Source values.
type Tree = map[string]any

// Entry is one flattened leaf of a Tree.
type Entry struct {
	Path   string
	Source schema.Source
}

// Tag attributes every leaf of snapshot to src. Nested maps are walked
// recursively; everything else, lists included, is a leaf. The snapshot is not
// modified.
func Tag(snapshot map[string]any, src schema.Source) Tree {
	tree := make(Tree, len(snapshot))
	for key, value := range snapshot {
		tree[key] = tagValue(value, src)
	}
	return tree
}

// TagValue attributes a single value: a map yields a subtree, anything else the
// bare source.
func TagValue(value any, src schema.Source) any {
	return tagValue(value, src)
}

func tagValue(value any, src schema.Source) any {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || rv.Kind() != reflect.Map {
		return src
	}

	sub := make(Tree, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		sub[keyString(iter.Key())] = tagValue(iter.Value().Interface(), src)
	}
	return sub
}

func keyString(k reflect.Value) string {
	if k.Kind() == reflect.Interface && !k.IsNil() {
		k = k.Elem()
	}
	if k.Kind() == reflect.String {
		return k.String()
	}
	return fmt.Sprint(k.Interface())
}

// Get returns the source of the leaf at path. It reports false when the path
// does not exist or ends on a subtree.
func Get(tree Tree, path ...string) (schema.Source, bool) {
	var node any = tree
	for _, key := range path {
		m, ok := node.(Tree)
		if !ok {
			return "", false
		}
		if node, ok = m[key]; !ok {
			return "", false
		}
	}
	src, ok := node.(schema.Source)
	return src, ok
}

// Set stores value (a schema.Source or a Tree) at path, creating intermediate
// subtrees and replacing any leaf found on the way.
func Set(tree Tree, value any, path ...string) {
	if len(path) == 0 {
		return
	}
	node := tree
	for _, key := range path[:len(path)-1] {
		next, ok := node[key].(Tree)
		if !ok {
			next = Tree{}
			node[key] = next
		}
		node = next
	}
	node[path[len(path)-1]] = value
}

// Entries flattens the tree into leaves sorted by path.
func Entries(tree Tree) []Entry {
	var entries []Entry
	collect(tree, "", &entries)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries
}

func collect(tree Tree, prefix string, entries *[]Entry) {
	for key, value := range tree {
		path := appendPathKey(prefix, key)
		switch v := value.(type) {
		case Tree:
			collect(v, path, entries)
		case schema.Source:
			*entries = append(*entries, Entry{Path: path, Source: v})
		}
	}
}

// appendPathKey joins keys with dots; keys that themselves contain a dot or a
// space (host names, mostly) are bracket-quoted.
//
//	appendPathKey("HOSTS", "web01.example.com") -> HOSTS["web01.example.com"]
func appendPathKey(base, key string) string {
	if strings.ContainsAny(key, ". ") {
		return base + fmt.Sprintf("[%q]", key)
	}
	if base == "" {
		return key
	}
	return base + "." + key
}
