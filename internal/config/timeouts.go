package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
type Timeouts struct {
	Catalog           time.Duration // Timeout for one catalog or key fetch
	Create            time.Duration // Timeout for a server create, including its action
	Delete            time.Duration // Timeout for delete operations
	RetryMaxAttempts  int           // Maximum number of retries after the first attempt
	RetryInitialDelay time.Duration // Initial delay between retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - VMPORTAL_TIMEOUT_CATALOG (default: 30s)
//   - VMPORTAL_TIMEOUT_CREATE (default: 5m)
//   - VMPORTAL_TIMEOUT_DELETE (default: 1m)
//   - VMPORTAL_RETRY_MAX_ATTEMPTS (default: 3)
//   - VMPORTAL_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		Catalog:           parseDuration("VMPORTAL_TIMEOUT_CATALOG", 30*time.Second),
		Create:            parseDuration("VMPORTAL_TIMEOUT_CREATE", 5*time.Minute),
		Delete:            parseDuration("VMPORTAL_TIMEOUT_DELETE", time.Minute),
		RetryMaxAttempts:  parseInt("VMPORTAL_RETRY_MAX_ATTEMPTS", 3),
		RetryInitialDelay: parseDuration("VMPORTAL_RETRY_INITIAL_DELAY", time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

// parseInt parses a non-negative integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return defaultVal
	}
	return i
}
