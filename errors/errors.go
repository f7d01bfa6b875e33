package errors

import "errors"

// ErrWrappingFormat wraps a sentinel with an underlying cause.
const ErrWrappingFormat = "%w: %w"

// Error categories. Every resolution failure is marked with exactly one of these.
var (
	// ErrParse is returned when a configuration source cannot be parsed.
	ErrParse = errors.New("parse error")

	// ErrValidation is returned when the merged configuration violates a rule.
	ErrValidation = errors.New("validation error")

	// ErrGenerator is returned when the host topology generator fails.
	ErrGenerator = errors.New("host generator failed")

	// ErrMerge is returned when two snapshots cannot be merged.
	ErrMerge = errors.New("merge error")
)

// Parse errors.
var (
	ErrOptionsFileNotFound  = errors.New("options file not found")
	ErrUnsupportedFileValue = errors.New("unsupported value in options file")
	ErrInvalidFlag          = errors.New("invalid command line flag")
	ErrInvalidEnvValue      = errors.New("invalid environment variable value")
	ErrInvalidHostsFile     = errors.New("invalid hosts file")
)

// Validation errors.
var (
	ErrInvalidPlatform       = errors.New("invalid platform")
	ErrMissingPlatform       = errors.New("host does not have a platform specified")
	ErrPathNotFound          = errors.New("no tests found at path")
	ErrEmptyDirectory        = errors.New("empty directory used as an option")
	ErrNoTestFiles           = errors.New("no tests to run")
	ErrInvalidFailMode       = errors.New("invalid fail mode")
	ErrInvalidPreserveHosts  = errors.New("invalid preserve hosts value")
	ErrMissingHypervisorFile = errors.New("required hypervisor config file is missing")
	ErrInvalidHypervisorFile = errors.New("required hypervisor config file is not valid YAML")
	ErrMasterCount           = errors.New("exactly one host must have the role 'master'")
	ErrRoleExclusion         = errors.New("role not permitted on platform")
	ErrInvalidTestTag        = errors.New("invalid test tag")
	ErrConflictingTestTags   = errors.New("conflicting test tags")
	ErrMultipleDefaultHosts  = errors.New("only one host may have the role 'default'")
	ErrInvalidLogLevel       = errors.New("invalid log level")
	ErrSymlinkResolution     = errors.New("failed to resolve hosts file path")
)
