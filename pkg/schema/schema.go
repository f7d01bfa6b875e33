package schema

// Source labels the origin of a configuration value.
type Source string

// Sources in ascending precedence, followed by runtime.
const (
	SourcePreset      Source = "preset"
	SourceProject     Source = "project"
	SourceHomedir     Source = "homedir"
	SourceSubcommand  Source = "subcommand"
	SourceOptionsFile Source = "options_file"
	SourceFlag        Source = "flag"
	SourceHostFile    Source = "host_file"
	SourceCmd         Source = "cmd"
	SourceEnv         Source = "env"

	// SourceRuntime marks values reshaped by resolution itself.
	SourceRuntime Source = "runtime"
)

// Sources lists every label in ascending precedence order.
var Sources = []Source{
	SourcePreset,
	SourceProject,
	SourceHomedir,
	SourceSubcommand,
	SourceOptionsFile,
	SourceFlag,
	SourceHostFile,
	SourceCmd,
	SourceEnv,
	SourceRuntime,
}

// Host is the typed view of one entry of the HOSTS map.
type Host struct {
	Roles      []string       `yaml:"roles" json:"roles" mapstructure:"roles"`
	Platform   string         `yaml:"platform" json:"platform" mapstructure:"platform"`
	Hypervisor string         `yaml:"hypervisor,omitempty" json:"hypervisor,omitempty" mapstructure:"hypervisor"`
	User       string         `yaml:"user,omitempty" json:"user,omitempty" mapstructure:"user"`
	SSH        SSH            `yaml:"ssh,omitempty" json:"ssh,omitempty" mapstructure:"ssh"`
	HostTags   map[string]any `yaml:"host_tags,omitempty" json:"host_tags,omitempty" mapstructure:"host_tags"`
}

// SSH holds per-host or global SSH settings.
type SSH struct {
	User         string   `yaml:"user,omitempty" json:"user,omitempty" mapstructure:"user"`
	Keys         []string `yaml:"keys,omitempty" json:"keys,omitempty" mapstructure:"keys"`
	Port         int      `yaml:"port,omitempty" json:"port,omitempty" mapstructure:"port"`
	AuthMethods  []string `yaml:"auth_methods,omitempty" json:"auth_methods,omitempty" mapstructure:"auth_methods"`
	ForwardAgent bool     `yaml:"forward_agent,omitempty" json:"forward_agent,omitempty" mapstructure:"forward_agent"`
}

// Options is the typed view of the resolved top-level options that the
// resolution pipeline reads or rewrites.
type Options struct {
	HostsFile          string   `yaml:"hosts_file,omitempty" json:"hosts_file,omitempty" mapstructure:"hosts_file"`
	HostsFileGenerated bool     `yaml:"hosts_file_generated,omitempty" json:"hosts_file_generated,omitempty" mapstructure:"hosts_file_generated"`
	OptionsFile        string   `yaml:"options_file,omitempty" json:"options_file,omitempty" mapstructure:"options_file"`
	Keyfile            string   `yaml:"keyfile,omitempty" json:"keyfile,omitempty" mapstructure:"keyfile"`
	FailMode           string   `yaml:"fail_mode,omitempty" json:"fail_mode,omitempty" mapstructure:"fail_mode"`
	PreserveHosts      string   `yaml:"preserve_hosts,omitempty" json:"preserve_hosts,omitempty" mapstructure:"preserve_hosts"`
	LogLevel           string   `yaml:"log_level,omitempty" json:"log_level,omitempty" mapstructure:"log_level"`
	GitRepo            string   `yaml:"git_repo,omitempty" json:"git_repo,omitempty" mapstructure:"git_repo"`
	DotFog             string   `yaml:"dot_fog,omitempty" json:"dot_fog,omitempty" mapstructure:"dot_fog"`
	EC2YAML            string   `yaml:"ec2_yaml,omitempty" json:"ec2_yaml,omitempty" mapstructure:"ec2_yaml"`
	Masterless         bool     `yaml:"masterless,omitempty" json:"masterless,omitempty" mapstructure:"masterless"`
	Help               bool     `yaml:"help,omitempty" json:"help,omitempty" mapstructure:"help"`
	Tests              []string `yaml:"tests,omitempty" json:"tests,omitempty" mapstructure:"tests"`
}
