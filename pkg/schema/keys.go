package schema

// Top-level option keys.
const (
	KeyHosts              = "HOSTS"
	KeyHostsConfig        = "CONFIG"
	KeyHostsFile          = "hosts_file"
	KeyHostsFileGenerated = "hosts_file_generated"
	KeyOptionsFile        = "options_file"
	KeyCommandLine        = "command_line"
	KeyHelp               = "help"
	KeyKeyfile            = "keyfile"
	KeyFailMode           = "fail_mode"
	KeyPreserveHosts      = "preserve_hosts"
	KeyLogLevel           = "log_level"
	KeyGitRepo            = "git_repo"
	KeyDotFog             = "dot_fog"
	KeyEC2YAML            = "ec2_yaml"
	KeyMasterless         = "masterless"
	KeyHostTags           = "host_tags"
	KeySSH                = "ssh"

	KeyHelper     = "helper"
	KeyLoadPath   = "load_path"
	KeyTests      = "tests"
	KeyPreSuite   = "pre_suite"
	KeyPostSuite  = "post_suite"
	KeyPreCleanup = "pre_cleanup"
	KeyInstall    = "install"
	KeyModules    = "modules"

	KeyTestTagAnd     = "test_tag_and"
	KeyTestTagOr      = "test_tag_or"
	KeyTestTagExclude = "test_tag_exclude"
)

// Per-host keys.
const (
	HostKeyRoles      = "roles"
	HostKeyPlatform   = "platform"
	HostKeyHypervisor = "hypervisor"
	HostKeyUser       = "user"
	HostKeySSH        = "ssh"
	HostKeyHostTags   = "host_tags"
	SSHKeyKeys        = "keys"
	SSHKeyUser        = "user"
)

// Host roles with special meaning during validation.
const (
	RoleMaster    = "master"
	RoleAgent     = "agent"
	RoleDefault   = "default"
	RoleDatabase  = "database"
	RoleDashboard = "dashboard"
)
