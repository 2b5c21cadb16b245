package server

import (
	"time"

	"github.com/agentstation/capmap/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	Host       string
	Port       int
	PathPrefix string

	// CORS is enabled when CORSOrigins is non-nil; an empty list allows
	// any origin.
	CORSOrigins []string

	// APIKey enables key authentication when set. With ReadOnlyPublic
	// only mutating requests need the key.
	APIKey         string
	ReadOnlyPublic bool

	CacheTTL time.Duration

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	MetricsEnabled bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:           "localhost",
		Port:           constants.DefaultPort,
		PathPrefix:     constants.APIPathPrefix,
		CacheTTL:       constants.DefaultCacheTTL,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    120 * time.Second,
		MetricsEnabled: true,
	}
}
