// Package provisioning provides shared types and interfaces for deploying
// the bouncer VM and its network resources.
//
// The provisioning domain is organized into focused subpackages:
//   - infrastructure/ handles static address reservation and the firewall rule
//   - compute/ handles the VM instance and its boot metadata
//   - destroy/ handles best-effort teardown of everything above
//
// This root package contains the phase pipeline, shared state, and the
// observability types used across subpackages.
package provisioning

// Phase defines the interface for a provisioning phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the provisioning logic for this phase.
	Provision(ctx *Context) error
}
