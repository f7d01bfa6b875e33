package exec

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	charm "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/hostsuite/hostsuite/errors"
	"github.com/hostsuite/hostsuite/pkg/config"
	log "github.com/hostsuite/hostsuite/pkg/logger"
	"github.com/hostsuite/hostsuite/pkg/platform"
	"github.com/hostsuite/hostsuite/pkg/provenance"
	"github.com/hostsuite/hostsuite/pkg/schema"
)

type fakeResolver struct {
	result *config.Result
	err    error
	args   []string
}

func (f *fakeResolver) Parse(args []string) (*config.Result, error) {
	f.args = args
	return f.result, f.err
}

func fixture(t *testing.T) *config.Result {
	t.Helper()
	el7, err := platform.Parse("el-7-x86_64")
	require.NoError(t, err)

	return &config.Result{
		Options: map[string]any{
			schema.KeyFailMode: "slow",
			schema.KeyHosts: map[string]any{
				"web01": map[string]any{
					schema.HostKeyPlatform:   el7,
					schema.HostKeyRoles:      []any{"master", "default"},
					schema.HostKeyHypervisor: "docker",
					schema.HostKeyUser:       "root",
				},
			},
		},
		Attribution: provenance.Tree{
			schema.KeyFailMode: schema.SourcePreset,
			schema.KeyHosts: provenance.Tree{
				"web01": provenance.Tree{schema.HostKeyPlatform: schema.SourceHostFile},
			},
		},
		Usage: "Usage: hostsuite [flags]\n",
	}
}

func newResolveWith(f *fakeResolver, out *bytes.Buffer) *resolveExec {
	return &resolveExec{newResolver: func() (Resolver, error) { return f, nil }, out: out}
}

func TestResolveYAML(t *testing.T) {
	var out bytes.Buffer
	f := &fakeResolver{result: fixture(t)}

	require.NoError(t, newResolveWith(f, &out).ExecuteResolveCmd([]string{"--hosts", "hosts.yml"}))

	assert.Equal(t, []string{"--hosts", "hosts.yml"}, f.args)
	assert.Contains(t, out.String(), "fail_mode: slow")
	assert.Contains(t, out.String(), "platform: el-7-x86_64")
}

func TestResolveJSON(t *testing.T) {
	var out bytes.Buffer
	f := &fakeResolver{result: fixture(t)}

	require.NoError(t, newResolveWith(f, &out).ExecuteResolveCmd([]string{"--format", "json"}))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "slow", decoded[schema.KeyFailMode])
	web := decoded[schema.KeyHosts].(map[string]any)["web01"].(map[string]any)
	assert.Equal(t, "el-7-x86_64", web[schema.HostKeyPlatform])
}

func TestResolveProvenance(t *testing.T) {
	var out bytes.Buffer
	f := &fakeResolver{result: fixture(t)}

	require.NoError(t, newResolveWith(f, &out).ExecuteResolveCmd([]string{"--provenance", "--fail-mode", "slow"}))

	assert.Equal(t, []string{"--fail-mode", "slow"}, f.args)
	assert.Contains(t, out.String(), "HOSTS.web01.platform")
	assert.Contains(t, out.String(), "host_file")
}

func TestResolveAppliesLogLevel(t *testing.T) {
	before := log.Default().GetLevel()
	t.Cleanup(func() { log.SetLevel(before) })

	var out bytes.Buffer
	result := fixture(t)
	result.LogLevel = charm.WarnLevel

	require.NoError(t, newResolveWith(&fakeResolver{result: result}, &out).ExecuteResolveCmd(nil))
	assert.Equal(t, charm.WarnLevel, log.Default().GetLevel())
}

func TestResolveHelp(t *testing.T) {
	var out bytes.Buffer
	result := fixture(t)
	result.Options["help"] = true
	f := &fakeResolver{result: result}

	require.NoError(t, newResolveWith(f, &out).ExecuteResolveCmd([]string{"--help"}))
	assert.Equal(t, "Usage: hostsuite [flags]\n", out.String())
}

func TestResolveErrors(t *testing.T) {
	var out bytes.Buffer
	errBoom := errors.New("boom")

	err := newResolveWith(&fakeResolver{err: errBoom}, &out).ExecuteResolveCmd(nil)
	assert.ErrorIs(t, err, errBoom)

	err = newResolveWith(&fakeResolver{result: fixture(t)}, &out).ExecuteResolveCmd([]string{"--format=toml"})
	assert.ErrorIs(t, err, errUtils.ErrInvalidFlag)

	err = newResolveWith(&fakeResolver{result: fixture(t)}, &out).ExecuteResolveCmd([]string{"--format"})
	assert.ErrorIs(t, err, errUtils.ErrInvalidFlag)
}

func TestHostsTable(t *testing.T) {
	var out bytes.Buffer
	f := &fakeResolver{result: fixture(t)}
	h := &hostsExec{newResolver: func() (Resolver, error) { return f, nil }, out: &out}

	require.NoError(t, h.ExecuteHostsCmd(nil))

	for _, want := range []string{"HOST", "web01", "el-7-x86_64", "master,default", "docker", "root", "hosts file: none, fail mode: slow"} {
		assert.Contains(t, out.String(), want)
	}
}

func TestNewExecs(t *testing.T) {
	var out bytes.Buffer
	assert.NotNil(t, NewResolveExec(&out).newResolver)
	assert.NotNil(t, NewHostsExec(&out).newResolver)
}
