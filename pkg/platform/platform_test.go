package platform

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		variant  string
		version  string
		arch     string
		codename string
	}{
		{"el-7-x86_64", "el", "7", "x86_64", ""},
		{"centos-9-aarch64", "centos", "9", "aarch64", ""},
		{"redhat_fips-8-x86_64", "redhat_fips", "8", "x86_64", ""},
		{"windows-2012r2-64a", "windows", "2012r2", "64a", ""},
		{"ubuntu-2204-amd64", "ubuntu", "22.04", "amd64", "jammy"},
		{"ubuntu-noble-amd64", "ubuntu", "24.04", "amd64", "noble"},
		{"debian-12-amd64", "debian", "12", "amd64", "bookworm"},
		{"debian-bullseye-amd64", "debian", "11", "amd64", "bullseye"},
		{"debian-99-amd64", "debian", "99", "amd64", ""},
		{"cisco_nexus-7k-x86_64", "cisco_nexus", "7k", "x86_64", ""},
		{"sles-15-x86_64-extra", "sles", "15", "x86_64-extra", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.variant, p.Variant)
			assert.Equal(t, tt.version, p.Version)
			assert.Equal(t, tt.arch, p.Arch)
			assert.Equal(t, tt.codename, p.Codename)
			assert.Equal(t, tt.input, p.String())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		input string
		err   error
	}{
		{"", ErrMalformed},
		{"el7", ErrMalformed},
		{"el-7", ErrMalformed},
		{"beos-5-x86", ErrUnknownVariant},
		{"ubuntu-hoary-amd64", ErrUnknownCodename},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestString_WithoutRaw(t *testing.T) {
	p := Platform{Variant: "el", Version: "8", Arch: "x86_64"}
	assert.Equal(t, "el-8-x86_64", p.String())
}

func TestMarshalYAML(t *testing.T) {
	p, err := Parse("el-7-x86_64")
	require.NoError(t, err)

	out, err := yaml.Marshal(map[string]any{"platform": p})
	require.NoError(t, err)
	assert.Equal(t, "platform: el-7-x86_64\n", string(out))

	text, err := p.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "el-7-x86_64", string(text))
}

func TestMatches(t *testing.T) {
	restricted := regexp.MustCompile(`windows|el-4`)

	win, err := Parse("windows-2019-64")
	require.NoError(t, err)
	el4, err := Parse("el-4-i386")
	require.NoError(t, err)
	el7, err := Parse("el-7-x86_64")
	require.NoError(t, err)

	assert.True(t, win.Matches(restricted))
	assert.True(t, el4.Matches(restricted))
	assert.False(t, el7.Matches(restricted))
}
