package normalize

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	errUtils "github.com/hostsuite/hostsuite/errors"
	log "github.com/hostsuite/hostsuite/pkg/logger"
	"github.com/hostsuite/hostsuite/pkg/provenance"
	"github.com/hostsuite/hostsuite/pkg/schema"
)

// ScriptPattern selects the files discovered under a directory.
const ScriptPattern = "**/*.{rb,sh,py,ps1}"

// ExpandFileList turns files and directories into the list of scripts to run.
// Files are kept as given. Directories are searched recursively for
// ScriptPattern and their matches ordered shallow first, then lexically.
func ExpandFileList(afs afero.Fs, paths []string) ([]string, error) {
	var files []string

	for _, root := range paths {
		info, err := afs.Stat(root)
		if err != nil {
			return nil, errUtils.Validation(errUtils.ErrPathNotFound, "%s", root).
				WithContext("path", root).
				Err()
		}

		if !info.IsDir() {
			files = append(files, root)
			continue
		}

		discovered, err := discover(afs, root)
		if err != nil {
			return nil, err
		}
		if len(discovered) == 0 {
			return nil, errUtils.Validation(errUtils.ErrEmptyDirectory, "%s contains no %s files", root, ScriptPattern).
				WithContext("path", root).
				Err()
		}
		log.Trace("Discovered scripts", "path", root, "count", len(discovered))
		files = append(files, discovered...)
	}

	if len(files) == 0 {
		return nil, errUtils.Validation(errUtils.ErrNoTestFiles, "%s", strings.Join(paths, ", ")).Err()
	}
	return files, nil
}

// discover globs beneath root. The base of the glob is made absolute on the OS
// filesystem since a base of "." would reject every nested path; matches are
// joined back onto root as the user spelled it.
func discover(afs afero.Fs, root string) ([]string, error) {
	base := filepath.Clean(root)
	if _, ok := afs.(*afero.OsFs); ok {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, errUtils.Validation(errUtils.ErrPathNotFound, "%s: %v", root, err).Err()
		}
		base = abs
	}

	matches, err := doublestar.Glob(afero.NewIOFS(afero.NewBasePathFs(afs, base)), ScriptPattern)
	if err != nil {
		return nil, errUtils.Validation(errUtils.ErrPathNotFound, "%s: %v", root, err).Err()
	}

	var files []string
	for _, match := range matches {
		path := filepath.Join(root, filepath.FromSlash(match))
		info, err := afs.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, path)
	}

	sort.SliceStable(files, func(i, j int) bool {
		di, dj := depth(files[i]), depth(files[j])
		if di != dj {
			return di < dj
		}
		return files[i] < files[j]
	})
	return files, nil
}

func depth(path string) int {
	return strings.Count(filepath.ToSlash(path), "/")
}

// Files expands every non-empty FileListKeys option in place.
func Files(afs afero.Fs, options map[string]any, attribution provenance.Tree) error {
	for _, key := range FileListKeys {
		paths := SplitList(options[key])
		if len(paths) == 0 {
			continue
		}

		files, err := ExpandFileList(afs, paths)
		if err != nil {
			return err
		}
		options[key] = toAny(files)
		provenance.Set(attribution, schema.SourceRuntime, key)
	}
	return nil
}
