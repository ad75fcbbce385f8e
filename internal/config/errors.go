package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and Credentials.Validate()
// and provide specific information about what is wrong.
//
// Design decision: We use package-level sentinel errors rather than creating
// new error instances at each call site. This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoInput is returned when the scan command has no CSV files to read.
	ErrNoInput = errors.New("no input specified: provide one or more CSV paths via --csv or as arguments")

	// ErrInvalidJobs is returned when the jobs count is not positive.
	// Zero workers would mean no scanning at all.
	ErrInvalidJobs = errors.New("invalid jobs count: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrMissingCredentials is returned when a live post is requested but
	// one or more API credentials are absent from the environment.
	// Dry runs never require credentials.
	ErrMissingCredentials = errors.New("missing API credentials: set X_API_KEY, X_API_SECRET, X_ACCESS_TOKEN, and X_ACCESS_TOKEN_SECRET, or enable DRY_RUN")

	// ErrConfigNotFound is returned when an explicitly specified
	// configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
