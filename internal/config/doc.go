// Package config loads application configuration from environment variables.
//
// All settings have development-friendly defaults; Validate reports every
// missing or invalid value at once so operators see the full list on startup
// rather than one error per restart.
package config
