// Package platform parses host platform strings of the form
// variant-version-arch, e.g. el-7-x86_64 or ubuntu-2204-amd64.
package platform

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrMalformed is returned when a platform string is not variant-version-arch.
	ErrMalformed = errors.New("platform must be of the form variant-version-arch")

	// ErrUnknownVariant is returned for an unrecognized OS variant.
	ErrUnknownVariant = errors.New("unknown platform variant")

	// ErrUnknownCodename is returned for a codename with no known version.
	ErrUnknownCodename = errors.New("unknown platform codename")
)

// Variants lists the recognized OS variants.
var Variants = []string{
	"aix", "alpine", "amazon", "archlinux", "centos", "cisco_ios_xr", "cisco_nexus",
	"cumulus", "debian", "el", "eos", "f5", "fedora", "freebsd", "huaweios",
	"juniper", "netscaler", "openbsd", "opensuse", "oracle", "osx", "redhat",
	"redhat_fips", "scientific", "sles", "solaris", "ubuntu", "vsphere", "windows",
}

var grammar = regexp.MustCompile(`^(` + strings.Join(Variants, "|") + `)-([^-]+)-(.+)$`)

// codenames maps variant -> numeric version (as written in platform strings) -> codename.
var codenames = map[string]map[string]string{
	"debian": {
		"9":  "stretch",
		"10": "buster",
		"11": "bullseye",
		"12": "bookworm",
		"13": "trixie",
	},
	"ubuntu": {
		"1604": "xenial",
		"1804": "bionic",
		"2004": "focal",
		"2204": "jammy",
		"2404": "noble",
	},
}

// Platform is a parsed platform string.
type Platform struct {
	Variant  string `yaml:"variant" json:"variant"`
	Version  string `yaml:"version" json:"version"`
	Arch     string `yaml:"arch" json:"arch"`
	Codename string `yaml:"codename,omitempty" json:"codename,omitempty"`

	raw string
}

// Parse validates s and returns its structured form. Debian and Ubuntu accept
// either a numeric version or a codename in the version position.
func Parse(s string) (Platform, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Platform{}, fmt.Errorf("%w: empty platform", ErrMalformed)
	}

	m := grammar.FindStringSubmatch(s)
	if m == nil {
		if variant, _, ok := strings.Cut(s, "-"); ok && strings.Count(s, "-") >= 2 {
			return Platform{}, fmt.Errorf("%w %q in %q", ErrUnknownVariant, variant, s)
		}
		return Platform{}, fmt.Errorf("%w, got %q", ErrMalformed, s)
	}

	p := Platform{Variant: m[1], Version: m[2], Arch: m[3], raw: s}

	codes, known := codenames[p.Variant]
	if !known {
		return p, nil
	}

	if isNumeric(p.Version) {
		p.Codename = codes[p.Version]
		if p.Variant == "ubuntu" && len(p.Version) == 4 {
			p.Version = p.Version[:2] + "." + p.Version[2:]
		}
		return p, nil
	}

	for version, codename := range codes {
		if codename == p.Version {
			p.Codename = codename
			p.Version = version
			if p.Variant == "ubuntu" {
				p.Version = version[:2] + "." + version[2:]
			}
			return p, nil
		}
	}
	return Platform{}, fmt.Errorf("%w %q for %s", ErrUnknownCodename, p.Version, p.Variant)
}

// String returns the platform as originally written.
func (p Platform) String() string {
	if p.raw != "" {
		return p.raw
	}
	return p.Variant + "-" + p.Version + "-" + p.Arch
}

// MarshalYAML renders the platform as its string form.
func (p Platform) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

// MarshalText renders the platform as its string form.
func (p Platform) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Matches reports whether the platform string matches pattern.
func (p Platform) Matches(pattern *regexp.Regexp) bool {
	return pattern.MatchString(p.String())
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
