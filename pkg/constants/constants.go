// Package constants provides shared constants used throughout the capmap codebase.
// This includes timeouts, file permissions, well-known storage keys and
// record defaults that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used by collaborators.
// The core load path itself has no timeout.
const (
	// DefaultHTTPTimeout is the timeout for fetching a CSV over HTTP
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultCacheTTL is the default lifetime of cached API responses
	DefaultCacheTTL = 5 * time.Minute

	// ShutdownTimeout bounds graceful HTTP server shutdown
	ShutdownTimeout = 5 * time.Second

	// WatchDebounce collapses bursts of file events into one reload
	WatchDebounce = 250 * time.Millisecond

	// ReloadTimeout bounds one background reload
	ReloadTimeout = 2 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-x---)
	DirPermissions = 0o750

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0o644
)

// Storage keys used in the durable key-value store.
const (
	// AssignmentsKey holds the capability to product assignment overlay
	AssignmentsKey = "assignments"
)

// Record defaults applied by the normalizer when a field is blank.
const (
	DefaultCapabilityColor = "blue"
	DefaultBrandColor      = "#000000"
	DefaultProductType     = "module"

	// UnknownName is shown for records referenced by ID that do not exist
	UnknownName = "Unknown"
)

// Delimiters used by list fields in tabular rows.
const (
	IDListSeparator        = ","
	NarrativeListSeparator = "|"
)

// Application defaults
const (
	// AppName is used for the config file name and env prefix
	AppName = "capmap"

	// EnvPrefix prefixes all environment variables read through viper
	EnvPrefix = "CAPMAP"

	// DefaultStorePath is the default location of the file or sqlite store
	DefaultStorePath = ".capmap/state.db"

	// DefaultPort for the HTTP API
	DefaultPort = 8080

	// APIPathPrefix for versioned API routes
	APIPathPrefix = "/api/v1"
)
