package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "haikufinder"

	// DefaultJobs is the number of CSV files scanned concurrently.
	// One worker keeps the default invocation strictly sequential and
	// run-to-completion, which is all a daily cron job needs.
	DefaultJobs = 1

	// DefaultPostTimeout is the HTTP timeout for posting API calls.
	// 30 seconds is generous for a single small POST; there is no retry,
	// so a hung connection should fail the run rather than stall cron.
	DefaultPostTimeout = 30 * time.Second

	// DefaultStatusLimit is the maximum status length accepted by the
	// posting API for standard accounts, counted in characters.
	DefaultStatusLimit = 280
)

// Config holds all configuration options for haikufinder.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
type Config struct {
	// CSVPaths are the lyric corpus files to scan.
	CSVPaths []string

	// Jobs is the number of corpus files scanned concurrently.
	// The default of 1 means sequential scanning.
	Jobs int

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .haikufinder in the current
	// directory and then in the user's home directory.
	ConfigFilePath string

	// ScanConfigs holds scan defaults and per-artist overrides loaded
	// from the config file.
	ScanConfigs *File

	// JSONReport enables JSON report output instead of human-readable text.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// DBDir is the directory path for the SQLite haiku cache.
	// Defaults to the XDG data directory.
	DBDir string

	// SaveToDB indicates whether detected haikus are written to the cache.
	// Disabled by scan --no-cache for report-only runs.
	SaveToDB bool

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// Credentials are the posting API credentials from the environment.
	// Only the post command needs them.
	Credentials Credentials

	// DryRun disables the live API call: the composed status is printed
	// instead of posted. This is the safe default; it is only turned off
	// by an explicit DRY_RUN=false in the environment.
	DryRun bool

	// IncludeAttribution controls whether the posted status carries a
	// "— Title by Artist" line.
	IncludeAttribution bool

	// PostTimeout is the HTTP timeout for posting API calls.
	PostTimeout time.Duration
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because several defaults are non-zero (jobs, timeout,
// dry-run-on). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Jobs:               DefaultJobs,
		SaveToDB:           true,
		DryRun:             true,
		IncludeAttribution: true,
		PostTimeout:        DefaultPostTimeout,
		DBDir:              XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for haikufinder.
// On Linux: ~/.local/share/haikufinder
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for haikufinder.
// On Linux: ~/.config/haikufinder
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the scan configuration is valid.
// It returns a specific sentinel error describing what is invalid.
// This is called once after CLI parsing, before any scanning begins,
// so users get a clear message and a non-zero exit up front.
func (c *Config) Validate() error {
	if len(c.CSVPaths) == 0 {
		return ErrNoInput
	}
	if c.Jobs <= 0 {
		return ErrInvalidJobs
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}

// ValidatePost checks the configuration needed for the post command.
// Credentials are only required outside dry-run mode.
func (c *Config) ValidatePost() error {
	if c.DryRun {
		return nil
	}
	return c.Credentials.Validate()
}
