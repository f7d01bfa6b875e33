package options

import (
	"os"
	"path/filepath"

	"github.com/hostsuite/hostsuite/pkg/schema"
)

// Files read during resolution, relative to the working or home directory.
const (
	ProjectFileName    = ".hostsuite.yml"
	SubcommandDirName  = ".hostsuite"
	SubcommandFileName = "subcommand_options.yaml"
)

// Preset values for options the tool relies on.
const (
	DefaultProject       = "hostsuite"
	DefaultDepartment    = "unknown"
	DefaultLogLevel      = "info"
	DefaultLogPrefix     = "hostsuite_logs"
	DefaultFailMode      = "slow"
	DefaultPreserveHosts = "never"
	DefaultTimeout       = 900
	DefaultGitRepo       = "git://github.com/puppetlabs"
	DefaultEC2YAML       = "config/image_templates/ec2.yaml"
	DefaultSSHPort       = 22
)

// ProjectFilePath returns the project options file under workDir.
func ProjectFilePath(workDir string) string {
	return filepath.Join(workDir, ProjectFileName)
}

// HomeSubcommandFilePath returns the per-user subcommand options file.
func HomeSubcommandFilePath(home string) string {
	return filepath.Join(home, SubcommandDirName, SubcommandFileName)
}

// ProjectSubcommandFilePath returns the per-project subcommand options file.
func ProjectSubcommandFilePath(workDir string) string {
	return filepath.Join(workDir, SubcommandDirName, SubcommandFileName)
}

// Presets returns the lowest-precedence snapshot. home is the user's home
// directory and seeds the SSH key and fog credential paths.
func Presets(home string) map[string]any {
	return map[string]any{
		"project":         DefaultProject,
		"department":      DefaultDepartment,
		"created_by":      currentUser(),
		"log_level":       DefaultLogLevel,
		"log_prefix":      DefaultLogPrefix,
		"timeout":         DefaultTimeout,
		"xml":             false,
		"validate":        true,
		"configure":       true,
		"run_in_parallel": false,

		schema.KeyFailMode:      DefaultFailMode,
		schema.KeyPreserveHosts: DefaultPreserveHosts,
		schema.KeyGitRepo:       DefaultGitRepo,
		schema.KeyDotFog:        filepath.Join(home, ".fog"),
		schema.KeyEC2YAML:       DefaultEC2YAML,
		schema.KeyMasterless:    false,
		schema.KeyHostTags:      map[string]any{},

		schema.KeyHelper:     []any{},
		schema.KeyLoadPath:   []any{},
		schema.KeyTests:      []any{},
		schema.KeyPreSuite:   []any{},
		schema.KeyPostSuite:  []any{},
		schema.KeyPreCleanup: []any{},
		schema.KeyInstall:    []any{},
		schema.KeyModules:    []any{},

		schema.KeyTestTagAnd:     "",
		schema.KeyTestTagOr:      "",
		schema.KeyTestTagExclude: "",

		schema.KeySSH: map[string]any{
			"config":          false,
			"verify_host_key": false,
			"auth_methods":    []any{"publickey"},
			"port":            DefaultSSHPort,
			"forward_agent":   true,
			"keepalive":       true,
			"keys":            []any{filepath.Join(home, ".ssh", "id_rsa")},
		},
	}
}

func currentUser() string {
	for _, name := range []string{"USER", "USERNAME"} {
		if u := os.Getenv(name); u != "" {
			return u
		}
	}
	return "unknown"
}
