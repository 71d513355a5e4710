package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These values are chosen to match the hosted SenderPlus service defaults
// where applicable.
const (
	// DefaultBaseURL is the submission service endpoint used when no
	// base URL is configured. It points at a local development instance,
	// which is also what the serve subcommand binds by default.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout is set to 60 seconds because submissions may carry a
	// package photo over a slow campus connection. A shorter timeout would
	// abort large uploads that are still making progress.
	DefaultTimeout = 60 * time.Second

	// DefaultBatchSize of 5 concurrent submissions balances throughput with
	// the load placed on the submission service. Higher values may trigger
	// rate limiting; lower values are safer but slower for large lists.
	DefaultBatchSize = 5

	// DefaultMaxBodySize limits the maximum response body size to read.
	// 1MB is generous for the JSON bodies the service returns while
	// preventing memory exhaustion from unexpected responses.
	DefaultMaxBodySize = 1 * 1024 * 1024 // 1MB

	// DefaultListenAddress is the bind address for the local demo service.
	// It matches DefaultBaseURL so a freshly started service is immediately
	// reachable with a zero-configuration client.
	DefaultListenAddress = "localhost:8000"

	// AppName is the application name used for XDG directory paths.
	AppName = "senderplus"
)

// Config holds all configuration options for SenderPlus.
// This struct is designed to be populated from the configuration file and
// CLI flags and passed through the application via dependency injection
// rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., ClientConfig, ServeConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// BaseURL is the submission service endpoint in "scheme://host[:port]"
	// format. All client operations (submit, track, advance) go through it.
	BaseURL string

	// Timeout is the per-request timeout for client operations.
	// Photo uploads dominate request time, so this should be generous.
	Timeout time.Duration

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// BatchSize is the number of concurrent submissions when processing a
	// submission list file. Higher values increase throughput but place more
	// load on the submission service.
	BatchSize int

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .senderplus in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// Profiles holds the sender profiles loaded from the config file.
	// This is populated by LoadConfigFile and used to prefill the sender
	// half of a submission.
	Profiles *File

	// JSONReport enables JSON report output instead of human-readable format.
	// When true, outputs the raw package record as JSON.
	// When false, outputs a human-readable tracking report (default).
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of human-readable
	// format. When true, outputs GitHub Flavored Markdown with the progress
	// checklist rendered as a table.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for tracking reports.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// ListenAddress is the bind address for the local demo service.
	// Only used by the serve subcommand.
	ListenAddress string

	// DataDir is the directory for the demo service's SQLite database and
	// uploaded photos. Defaults to the XDG data directory
	// (~/.local/share/senderplus on Linux).
	DataDir string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Responses larger than this are truncated to prevent memory exhaustion.
	// Set to 0 to use the default (1MB).
	MaxBodySize int64
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeout, endpoint).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		BaseURL:       DefaultBaseURL,
		Timeout:       DefaultTimeout,
		BatchSize:     DefaultBatchSize,
		ListenAddress: DefaultListenAddress,
		DataDir:       XDGDataDir(),
		MaxBodySize:   DefaultMaxBodySize,
	}
}

// XDGDataDir returns the XDG data directory for SenderPlus.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/senderplus
// On macOS: ~/Library/Application Support/senderplus
// On Windows: %LOCALAPPDATA%\senderplus
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for SenderPlus.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/senderplus
// On macOS: ~/Library/Application Support/senderplus
// On Windows: %APPDATA%\senderplus
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any request is made.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// Every client operation needs a service endpoint
	if c.BaseURL == "" {
		return ErrNoBaseURL
	}

	// Timeout must be positive; zero timeout would cause immediate failures
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	// BatchSize must be positive; zero would mean no submissions
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	// MaxBodySize must be non-negative; 0 means use the default
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}
