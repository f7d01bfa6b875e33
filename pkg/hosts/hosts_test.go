package hosts

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	errUtils "github.com/hostsuite/hostsuite/errors"
	"github.com/hostsuite/hostsuite/pkg/options"
	"github.com/hostsuite/hostsuite/pkg/schema"
)

const twoHosts = `HOSTS:
  master.example.com:
    roles: [master, agent]
    platform: el-7-x86_64
  agent01:
    roles: [agent]
    platform: ubuntu-2204-amd64
CONFIG:
  fail_mode: fast
  log_level: debug
`

func TestLoadEmptyPath(t *testing.T) {
	got, err := Load(afero.NewMemMapFs(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{schema.KeyHosts: map[string]any{}}, got)
}

func TestLoadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/work/hosts.yml", []byte(twoHosts), 0o644))

	got, err := Load(fs, "/work/hosts.yml", nil)
	require.NoError(t, err)

	assert.Equal(t, "/work/hosts.yml", got[schema.KeyHostsFile])
	assert.NotContains(t, got, schema.KeyHostsFileGenerated)
	assert.NotContains(t, got, schema.KeyHostsConfig, "CONFIG is lifted, not kept")
	assert.Equal(t, "fast", got[schema.KeyFailMode])
	assert.Equal(t, "debug", got[schema.KeyLogLevel])

	topology := got[schema.KeyHosts].(map[string]any)
	require.Len(t, topology, 2)
	assert.Equal(t, map[string]any{
		"roles":    []any{"master", "agent"},
		"platform": "el-7-x86_64",
	}, topology["master.example.com"])
}

func TestDecodeSymbolHosts(t *testing.T) {
	plain, err := Decode("plain.yml", []byte("HOSTS:\n  web:\n    roles: [master]\n"))
	require.NoError(t, err)
	symbol, err := Decode("symbol.yml", []byte(":HOSTS:\n  web:\n    :roles: [master]\n"))
	require.NoError(t, err)

	assert.Equal(t, plain, symbol)
}

func TestDecodeNullHost(t *testing.T) {
	got, err := Decode("hosts.yml", []byte("HOSTS:\n  bare:\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"bare": map[string]any{}}, got[schema.KeyHosts])
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "HOSTS: [\n"},
		{"hosts not a map", "HOSTS:\n  - web\n"},
		{"host not a map", "HOSTS:\n  web: el-7-x86_64\n"},
		{"config not a map", "CONFIG: fast\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode("hosts.yml", []byte(tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, errUtils.ErrParse)
			assert.ErrorIs(t, err, errUtils.ErrInvalidHostsFile)
			assert.Contains(t, err.Error(), "hosts.yml")
		})
	}
}

func TestLoadGenerated(t *testing.T) {
	t.Setenv(options.HypervisorEnvVar, "docker")

	ctrl := gomock.NewController(t)
	gen := NewMockGenerator(ctrl)
	gen.EXPECT().
		Generate("centos7-64m", "docker").
		Return([]byte("HOSTS:\n  centos7-64-1:\n    roles: [master]\n    platform: centos-7-x86_64\n    hypervisor: docker\n"), nil)

	got, err := Load(afero.NewMemMapFs(), "centos7-64m", gen)
	require.NoError(t, err)

	assert.Equal(t, true, got[schema.KeyHostsFileGenerated])
	assert.Equal(t, "centos7-64m", got[schema.KeyHostsFile])
	assert.Contains(t, got[schema.KeyHosts], "centos7-64-1")
}

func TestLoadGeneratorFailure(t *testing.T) {
	t.Setenv(options.HypervisorEnvVar, "")
	cause := errors.New("unknown platform abbreviation: zz")

	ctrl := gomock.NewController(t)
	gen := NewMockGenerator(ctrl)
	gen.EXPECT().Generate("zz9-64m", "").Return(nil, cause)

	_, err := Load(afero.NewMemMapFs(), "zz9-64m", gen)
	require.Error(t, err)
	assert.ErrorIs(t, err, errUtils.ErrGenerator)
	assert.ErrorIs(t, err, cause)
}

func TestLoadWithoutGenerator(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "missing.yml", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errUtils.ErrGenerator)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "fake-hostgenerator")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestExecGenerator(t *testing.T) {
	script := writeScript(t, `if [ "$1" = "--hypervisor" ]; then hv="$2"; shift 2; else hv=vmpooler; fi
printf 'HOSTS:\n  %s-1:\n    hypervisor: %s\n' "$1" "$hv"
`)
	gen := &ExecGenerator{Binary: script}

	out, err := gen.Generate("centos7-64m", "")
	require.NoError(t, err)
	assert.Equal(t, "HOSTS:\n  centos7-64m-1:\n    hypervisor: vmpooler\n", string(out))

	out, err = gen.Generate("centos7-64m", "docker")
	require.NoError(t, err)
	assert.Contains(t, string(out), "hypervisor: docker")
}

func TestExecGeneratorExitCode(t *testing.T) {
	script := writeScript(t, "echo 'bad layout' >&2\nexit 3\n")
	gen := &ExecGenerator{Binary: script}

	_, err := gen.Generate("nonsense", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad layout")
	assert.Equal(t, 3, errUtils.GetExitCode(err))
}

func TestExecGeneratorNotFound(t *testing.T) {
	gen := &ExecGenerator{Binary: "hostsuite-no-such-generator"}

	_, err := gen.Generate("centos7-64m", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestNewExecGenerator(t *testing.T) {
	gen := NewExecGenerator()
	assert.Equal(t, DefaultGeneratorBinary, gen.Binary)
	assert.Positive(t, gen.Timeout)
}
