package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	InstanceCreate    time.Duration // Timeout for instance insert operations
	Delete            time.Duration // Timeout for all delete operations
	AddressReserve    time.Duration // Timeout for static address reservation
	OperationPoll     time.Duration // Interval between operation status polls
	RetryMaxAttempts  int           // Maximum number of retry attempts
	RetryInitialDelay time.Duration // Initial delay between retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - ZNCDEPLOY_TIMEOUT_INSTANCE_CREATE (default: 10m)
//   - ZNCDEPLOY_TIMEOUT_DELETE (default: 10m)
//   - ZNCDEPLOY_TIMEOUT_ADDRESS_RESERVE (default: 5m)
//   - ZNCDEPLOY_OPERATION_POLL_INTERVAL (default: 5s)
//   - ZNCDEPLOY_RETRY_MAX_ATTEMPTS (default: 5)
//   - ZNCDEPLOY_RETRY_INITIAL_DELAY (default: 2s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		InstanceCreate:    parseDuration("ZNCDEPLOY_TIMEOUT_INSTANCE_CREATE", 10*time.Minute),
		Delete:            parseDuration("ZNCDEPLOY_TIMEOUT_DELETE", 10*time.Minute),
		AddressReserve:    parseDuration("ZNCDEPLOY_TIMEOUT_ADDRESS_RESERVE", 5*time.Minute),
		OperationPoll:     parseDuration("ZNCDEPLOY_OPERATION_POLL_INTERVAL", 5*time.Second),
		RetryMaxAttempts:  parseInt("ZNCDEPLOY_RETRY_MAX_ATTEMPTS", 5),
		RetryInitialDelay: parseDuration("ZNCDEPLOY_RETRY_INITIAL_DELAY", 2*time.Second),
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
	if err != nil {
		return defaultVal
	}
	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
