package normalize

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/afero"

	errUtils "github.com/hostsuite/hostsuite/errors"
	"github.com/hostsuite/hostsuite/pkg/provenance"
	"github.com/hostsuite/hostsuite/pkg/schema"
)

// gitShorthands maps install shorthand prefixes to repository names.
var gitShorthands = []struct {
	prefix string
	repo   string
}{
	{"PUPPET/", "puppet"},
	{"FACTER/", "facter"},
	{"HIERA/", "hiera"},
	{"HIERA-PUPPET/", "hiera-puppet"},
}

// ExpandGitShorthand rewrites entries such as PUPPET/3.1 into
// <gitRepo>/puppet.git#3.1. Other entries are returned unchanged.
func ExpandGitShorthand(entries []string, gitRepo string) []string {
	base := strings.TrimSuffix(gitRepo, "/")
	return lo.Map(entries, func(entry string, _ int) string {
		for _, s := range gitShorthands {
			if ref, ok := strings.CutPrefix(entry, s.prefix); ok {
				return fmt.Sprintf("%s/%s.git#%s", base, s.repo, ref)
			}
		}
		return entry
	})
}

// Install expands git shorthands in the install option in place.
func Install(options map[string]any, attribution provenance.Tree) {
	gitRepo, _ := options[schema.KeyGitRepo].(string)
	options[schema.KeyInstall] = toAny(ExpandGitShorthand(SplitList(options[schema.KeyInstall]), gitRepo))
	provenance.Set(attribution, schema.SourceRuntime, schema.KeyInstall)
}

// ResolveSymlink returns the canonical absolute form of path. Relative paths
// are taken from workDir. Symlinks are only followed on the OS filesystem.
func ResolveSymlink(afs afero.Fs, workDir, path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}

	if _, ok := afs.(*afero.OsFs); !ok {
		return filepath.Clean(path), nil
	}

	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", errUtils.Validation(errUtils.ErrSymlinkResolution, "%s: %v", path, err).
			WithContext("path", path).
			Err()
	}
	return filepath.Abs(resolved)
}

// HostsFile canonicalizes hosts_file unless it is empty or names a generated
// layout.
func HostsFile(afs afero.Fs, workDir string, options map[string]any, attribution provenance.Tree) error {
	path, _ := options[schema.KeyHostsFile].(string)
	if path == "" {
		return nil
	}
	if generated, _ := options[schema.KeyHostsFileGenerated].(bool); generated {
		return nil
	}

	resolved, err := ResolveSymlink(afs, workDir, path)
	if err != nil {
		return err
	}
	options[schema.KeyHostsFile] = resolved
	provenance.Set(attribution, schema.SourceRuntime, schema.KeyHostsFile)
	return nil
}
