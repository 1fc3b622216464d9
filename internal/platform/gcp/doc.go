// Package gcp wraps the Compute Engine API with the reliability behavior
// the provisioning pipeline depends on: idempotent ensure/delete semantics,
// operation polling with timeouts, and error classification for retries.
//
// # Architecture
//
// The package is organized into domain-specific modules:
//
//   - client.go: interfaces and creation option types
//   - real_client.go: client initialization and configuration
//   - instance.go: VM instance lifecycle (ensure, delete, static IP attach)
//   - address.go: static external address reservation and release
//   - firewall.go: firewall rule management
//   - operations.go: zonal/regional/global operation polling
//   - errors.go: error classification for retry logic
//   - mock_client.go: test double with swappable behavior
//
// # Ensure and Delete semantics
//
// Every Ensure operation is get-or-create: an existing resource of the same
// name is returned as-is and no insert call is issued. Every Delete
// operation treats a missing resource as success. Both follow the pattern
// the Compute Engine API expects: mutations return an Operation which is
// polled until DONE, then inspected for errors.
//
// # Timeouts and retries
//
// Poll intervals, operation timeouts, and retry bounds come from
// config.LoadTimeouts and are overridable via ZNCDEPLOY_* environment
// variables.
package gcp
