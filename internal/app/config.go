package app

import "time"

// Config holds runtime configuration for the page builder.
type Config struct {
	// Scope of the page being edited.
	ProjectID string
	PageID    string

	// LLM
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	// Storage
	DBPath string

	// Cache
	CacheDir         string
	CacheMaxAge      time.Duration
	CacheClear       bool
	CacheStrictPerms bool

	// Behavior
	Verbose bool
}

// Build information populated via -ldflags at build time.
// Defaults are meaningful for local development and tests.
var (
	BuildVersion = "0.0.0-dev"
	BuildCommit  = "unknown"
	BuildDate    = "unknown"
)
