package gcp

import (
	"context"

	"google.golang.org/api/compute/v1"
)

// InstanceCreateOpts holds all parameters for creating a VM instance.
type InstanceCreateOpts struct {
	Name         string
	MachineType  string
	ImageProject string
	ImageFamily  string
	DiskSizeGB   int64
	DiskType     string
	// Network is the network URI the instance attaches to
	// (e.g. "global/networks/default").
	Network    string
	NetworkTag string
	// EphemeralIP requests an external NAT access config at creation time.
	// Leave false when a reserved address will be attached afterwards.
	EphemeralIP bool
	// StartupScript is injected as startup-script instance metadata and
	// runs on first boot.
	StartupScript string
}

// FirewallRule describes an inbound allow rule keyed to a network tag.
type FirewallRule struct {
	Name         string
	Network      string
	TargetTag    string
	Protocol     string
	Port         int
	SourceRanges []string
	Description  string
}

// InstanceManager defines the interface for provisioning VM instances.
type InstanceManager interface {
	// EnsureInstance creates the instance if it does not exist. The bool
	// result reports whether a creation call was issued; an existing
	// instance is returned unchanged with created=false.
	EnsureInstance(ctx context.Context, zone string, opts InstanceCreateOpts) (*compute.Instance, bool, error)
	// DeleteInstance deletes the named instance. A missing instance is
	// treated as success.
	DeleteInstance(ctx context.Context, zone, name string) error
	// GetInstance returns the instance, or nil if it does not exist.
	GetInstance(ctx context.Context, zone, name string) (*compute.Instance, error)
	// AttachStaticIP replaces the external access config on the
	// instance's primary interface with the given reserved address.
	AttachStaticIP(ctx context.Context, zone, instanceName, ip string) error
}

// AddressManager defines the interface for managing reserved addresses.
type AddressManager interface {
	// EnsureAddress reserves the named regional address if absent.
	EnsureAddress(ctx context.Context, region, name string) (*compute.Address, bool, error)
	// DeleteAddress releases the named address. A missing address is
	// treated as success.
	DeleteAddress(ctx context.Context, region, name string) error
	// GetAddress returns the address, or nil if it does not exist.
	GetAddress(ctx context.Context, region, name string) (*compute.Address, error)
}

// FirewallManager defines the interface for managing firewall rules.
type FirewallManager interface {
	// EnsureFirewall creates the rule if it does not exist. An existing
	// rule is returned as-is, even if its configuration drifted; callers
	// decide how to report drift.
	EnsureFirewall(ctx context.Context, rule FirewallRule) (*compute.Firewall, bool, error)
	// DeleteFirewall deletes the named rule. A missing rule is treated
	// as success.
	DeleteFirewall(ctx context.Context, name string) error
	// GetFirewall returns the rule, or nil if it does not exist.
	GetFirewall(ctx context.Context, name string) (*compute.Firewall, error)
}

// ComputeManager aggregates every resource manager the provisioning
// pipeline needs. Implemented by RealClient and MockClient.
type ComputeManager interface {
	InstanceManager
	AddressManager
	FirewallManager
}
