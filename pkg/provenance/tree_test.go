package provenance

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostsuite/hostsuite/pkg/schema"
)

func TestTag_FlatSnapshot(t *testing.T) {
	tree := Tag(map[string]any{
		"fail_mode": "fast",
		"tests":     []any{"a.rb", "b.rb"},
		"xml":       true,
		"timeout":   nil,
	}, schema.SourceFlag)

	assert.Equal(t, Tree{
		"fail_mode": schema.SourceFlag,
		"tests":     schema.SourceFlag,
		"xml":       schema.SourceFlag,
		"timeout":   schema.SourceFlag,
	}, tree)
}

func TestTag_NestedMaps(t *testing.T) {
	snapshot := map[string]any{
		"HOSTS": map[string]any{
			"web01": map[string]any{
				"roles":    []any{"master"},
				"platform": "el-7-x86_64",
				"ssh":      map[string]any{"user": "root"},
			},
		},
		"project": "hostsuite",
	}

	tree := Tag(snapshot, schema.SourceHostFile)

	assert.Equal(t, Tree{
		"HOSTS": Tree{
			"web01": Tree{
				"roles":    schema.SourceHostFile,
				"platform": schema.SourceHostFile,
				"ssh":      Tree{"user": schema.SourceHostFile},
			},
		},
		"project": schema.SourceHostFile,
	}, tree)

	// The snapshot is untouched.
	assert.Equal(t, "el-7-x86_64", snapshot["HOSTS"].(map[string]any)["web01"].(map[string]any)["platform"])
}

func TestTag_OtherMapTypes(t *testing.T) {
	tree := Tag(map[string]any{
		"labels": map[string]string{"a": "1"},
		"legacy": map[any]any{1: "one", "two": 2},
	}, schema.SourceOptionsFile)

	assert.Equal(t, Tree{
		"labels": Tree{"a": schema.SourceOptionsFile},
		"legacy": Tree{"1": schema.SourceOptionsFile, "two": schema.SourceOptionsFile},
	}, tree)
}

func TestTag_Empty(t *testing.T) {
	assert.Equal(t, Tree{}, Tag(nil, schema.SourcePreset))
	assert.Equal(t, Tree{"host_tags": Tree{}}, Tag(map[string]any{"host_tags": map[string]any{}}, schema.SourcePreset))
}

func TestGetSet(t *testing.T) {
	tree := Tree{}
	Set(tree, schema.SourceHostFile, "HOSTS", "web01", "roles")
	Set(tree, schema.SourceRuntime, "tests")

	src, ok := Get(tree, "HOSTS", "web01", "roles")
	require.True(t, ok)
	assert.Equal(t, schema.SourceHostFile, src)

	src, ok = Get(tree, "tests")
	require.True(t, ok)
	assert.Equal(t, schema.SourceRuntime, src)

	_, ok = Get(tree, "HOSTS", "web01")
	assert.False(t, ok, "a subtree is not a leaf")
	_, ok = Get(tree, "missing", "key")
	assert.False(t, ok)
	_, ok = Get(tree, "tests", "deeper")
	assert.False(t, ok)

	// Setting through a leaf replaces it with a subtree.
	Set(tree, schema.SourceEnv, "tests", "first")
	src, ok = Get(tree, "tests", "first")
	require.True(t, ok)
	assert.Equal(t, schema.SourceEnv, src)

	// No path is a no-op.
	Set(tree, schema.SourceEnv)
}

func TestEntries(t *testing.T) {
	tree := Tree{
		"tests": schema.SourceRuntime,
		"HOSTS": Tree{
			"web01.example.com": Tree{"platform": schema.SourceHostFile},
			"db":                Tree{"roles": schema.SourceCmd},
		},
		"empty": Tree{},
	}

	assert.Equal(t, []Entry{
		{Path: `HOSTS.db.roles`, Source: schema.SourceCmd},
		{Path: `HOSTS["web01.example.com"].platform`, Source: schema.SourceHostFile},
		{Path: "tests", Source: schema.SourceRuntime},
	}, Entries(tree))
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, Tree{"fail_mode": schema.SourceEnv, "HOSTS": Tree{"a": Tree{"roles": schema.SourceHostFile}}})

	out := buf.String()
	assert.Contains(t, out, "OPTION")
	assert.Contains(t, out, "HOSTS.a.roles")
	assert.Contains(t, out, "host_file")
	assert.Contains(t, out, "fail_mode")
	assert.Contains(t, out, "env")
}
