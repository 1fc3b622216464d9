package gcp

import (
	"context"

	"google.golang.org/api/compute/v1"
)

// MockClient is a mock implementation of ComputeManager. Each method
// delegates to the corresponding Func field when set and otherwise
// returns a benign default, so tests only stub what they assert on.
type MockClient struct {
	EnsureInstanceFunc func(ctx context.Context, zone string, opts InstanceCreateOpts) (*compute.Instance, bool, error)
	DeleteInstanceFunc func(ctx context.Context, zone, name string) error
	GetInstanceFunc    func(ctx context.Context, zone, name string) (*compute.Instance, error)
	AttachStaticIPFunc func(ctx context.Context, zone, instanceName, ip string) error

	EnsureAddressFunc func(ctx context.Context, region, name string) (*compute.Address, bool, error)
	DeleteAddressFunc func(ctx context.Context, region, name string) error
	GetAddressFunc    func(ctx context.Context, region, name string) (*compute.Address, error)

	EnsureFirewallFunc func(ctx context.Context, rule FirewallRule) (*compute.Firewall, bool, error)
	DeleteFirewallFunc func(ctx context.Context, name string) error
	GetFirewallFunc    func(ctx context.Context, name string) (*compute.Firewall, error)
}

// Ensure interface compliance.
var _ ComputeManager = (*MockClient)(nil)

// EnsureInstance mocks instance creation.
func (m *MockClient) EnsureInstance(ctx context.Context, zone string, opts InstanceCreateOpts) (*compute.Instance, bool, error) {
	if m.EnsureInstanceFunc != nil {
		return m.EnsureInstanceFunc(ctx, zone, opts)
	}
	inst := &compute.Instance{
		Name:   opts.Name,
		Status: "RUNNING",
		NetworkInterfaces: []*compute.NetworkInterface{
			{Name: "nic0", AccessConfigs: []*compute.AccessConfig{{NatIP: "203.0.113.10"}}},
		},
	}
	return inst, true, nil
}

// DeleteInstance mocks instance deletion.
func (m *MockClient) DeleteInstance(ctx context.Context, zone, name string) error {
	if m.DeleteInstanceFunc != nil {
		return m.DeleteInstanceFunc(ctx, zone, name)
	}
	return nil
}

// GetInstance mocks instance lookup.
func (m *MockClient) GetInstance(ctx context.Context, zone, name string) (*compute.Instance, error) {
	if m.GetInstanceFunc != nil {
		return m.GetInstanceFunc(ctx, zone, name)
	}
	return nil, nil
}

// AttachStaticIP mocks static address assignment.
func (m *MockClient) AttachStaticIP(ctx context.Context, zone, instanceName, ip string) error {
	if m.AttachStaticIPFunc != nil {
		return m.AttachStaticIPFunc(ctx, zone, instanceName, ip)
	}
	return nil
}

// EnsureAddress mocks address reservation.
func (m *MockClient) EnsureAddress(ctx context.Context, region, name string) (*compute.Address, bool, error) {
	if m.EnsureAddressFunc != nil {
		return m.EnsureAddressFunc(ctx, region, name)
	}
	return &compute.Address{Name: name, Address: "198.51.100.25", Status: "RESERVED"}, true, nil
}

// DeleteAddress mocks address release.
func (m *MockClient) DeleteAddress(ctx context.Context, region, name string) error {
	if m.DeleteAddressFunc != nil {
		return m.DeleteAddressFunc(ctx, region, name)
	}
	return nil
}

// GetAddress mocks address lookup.
func (m *MockClient) GetAddress(ctx context.Context, region, name string) (*compute.Address, error) {
	if m.GetAddressFunc != nil {
		return m.GetAddressFunc(ctx, region, name)
	}
	return nil, nil
}

// EnsureFirewall mocks firewall rule creation.
func (m *MockClient) EnsureFirewall(ctx context.Context, rule FirewallRule) (*compute.Firewall, bool, error) {
	if m.EnsureFirewallFunc != nil {
		return m.EnsureFirewallFunc(ctx, rule)
	}
	return buildFirewall(rule), true, nil
}

// DeleteFirewall mocks firewall rule deletion.
func (m *MockClient) DeleteFirewall(ctx context.Context, name string) error {
	if m.DeleteFirewallFunc != nil {
		return m.DeleteFirewallFunc(ctx, name)
	}
	return nil
}

// GetFirewall mocks firewall rule lookup.
func (m *MockClient) GetFirewall(ctx context.Context, name string) (*compute.Firewall, error) {
	if m.GetFirewallFunc != nil {
		return m.GetFirewallFunc(ctx, name)
	}
	return nil, nil
}
