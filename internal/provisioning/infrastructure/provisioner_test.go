package infrastructure

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/compute/v1"

	"github.com/imamik/zncdeploy/internal/config"
	"github.com/imamik/zncdeploy/internal/platform/gcp"
	"github.com/imamik/zncdeploy/internal/provisioning"
)

func testContext(mock *gcp.MockClient, mutate func(*config.Config)) (*provisioning.Context, *provisioning.RecordingObserver) {
	cfg := config.NewDefault()
	cfg.ProjectID = "test-project"
	if mutate != nil {
		mutate(cfg)
	}
	ctx := provisioning.NewContext(context.Background(), cfg, mock)
	obs := &provisioning.RecordingObserver{}
	ctx.Observer = obs
	return ctx, obs
}

func TestAddressProvisioner_SkipsWithoutName(t *testing.T) {
	t.Parallel()
	calls := 0
	mock := &gcp.MockClient{
		EnsureAddressFunc: func(_ context.Context, _, _ string) (*compute.Address, bool, error) {
			calls++
			return nil, false, nil
		},
	}
	ctx, obs := testContext(mock, nil)

	err := NewAddressProvisioner().Provision(ctx)
	require.NoError(t, err)
	assert.Zero(t, calls, "no reservation call without a static IP name")
	assert.Len(t, obs.EventsOfType(provisioning.EventResourceSkipped), 1)
	assert.Nil(t, ctx.State.Address)
}

func TestAddressProvisioner_ReservesWithDerivedRegion(t *testing.T) {
	t.Parallel()
	var gotRegion, gotName string
	mock := &gcp.MockClient{
		EnsureAddressFunc: func(_ context.Context, region, name string) (*compute.Address, bool, error) {
			gotRegion, gotName = region, name
			return &compute.Address{Name: name, Address: "198.51.100.25"}, true, nil
		},
	}
	ctx, obs := testContext(mock, func(cfg *config.Config) {
		cfg.StaticIPName = "znc-ip"
		cfg.Zone = "us-central1-c"
	})

	err := NewAddressProvisioner().Provision(ctx)
	require.NoError(t, err)
	assert.Equal(t, "us-central1", gotRegion)
	assert.Equal(t, "znc-ip", gotName)
	require.NotNil(t, ctx.State.Address)
	assert.Equal(t, "198.51.100.25", ctx.State.Address.Address)
	assert.Len(t, obs.EventsOfType(provisioning.EventResourceCreated), 1)
}

func TestAddressProvisioner_ReportsExisting(t *testing.T) {
	t.Parallel()
	mock := &gcp.MockClient{
		EnsureAddressFunc: func(_ context.Context, _, name string) (*compute.Address, bool, error) {
			return &compute.Address{Name: name, Address: "192.0.2.4"}, false, nil
		},
	}
	ctx, obs := testContext(mock, func(cfg *config.Config) {
		cfg.StaticIPName = "znc-ip"
	})

	require.NoError(t, NewAddressProvisioner().Provision(ctx))
	assert.Len(t, obs.EventsOfType(provisioning.EventResourceExists), 1)
	assert.Empty(t, obs.EventsOfType(provisioning.EventResourceCreated))
}

func TestAddressProvisioner_SurfacesFailure(t *testing.T) {
	t.Parallel()
	mock := &gcp.MockClient{
		EnsureAddressFunc: func(_ context.Context, _, _ string) (*compute.Address, bool, error) {
			return nil, false, errors.New("quota exceeded")
		},
	}
	ctx, obs := testContext(mock, func(cfg *config.Config) {
		cfg.StaticIPName = "znc-ip"
	})

	err := NewAddressProvisioner().Provision(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "static address znc-ip")
	assert.Len(t, obs.EventsOfType(provisioning.EventResourceFailed), 1)
}

func TestFirewallProvisioner_CreatesRule(t *testing.T) {
	t.Parallel()
	var gotRule gcp.FirewallRule
	mock := &gcp.MockClient{
		EnsureFirewallFunc: func(_ context.Context, rule gcp.FirewallRule) (*compute.Firewall, bool, error) {
			gotRule = rule
			return &compute.Firewall{Name: rule.Name}, true, nil
		},
	}
	ctx, obs := testContext(mock, nil)

	err := NewFirewallProvisioner().Provision(ctx)
	require.NoError(t, err)
	assert.Equal(t, "allow-znc-access", gotRule.Name)
	assert.Equal(t, "znc-bouncer-node", gotRule.TargetTag)
	assert.Equal(t, "tcp", gotRule.Protocol)
	assert.Equal(t, 6697, gotRule.Port)
	assert.Equal(t, "global/networks/default", gotRule.Network)
	assert.Len(t, obs.EventsOfType(provisioning.EventResourceCreated), 1)
	assert.NotNil(t, ctx.State.Firewall)
}

func TestFirewallProvisioner_WarnsOnDrift(t *testing.T) {
	t.Parallel()
	mock := &gcp.MockClient{
		EnsureFirewallFunc: func(_ context.Context, rule gcp.FirewallRule) (*compute.Firewall, bool, error) {
			// Existing rule opens a different port.
			return &compute.Firewall{
				Name:       rule.Name,
				TargetTags: []string{rule.TargetTag},
				Allowed:    []*compute.FirewallAllowed{{IPProtocol: "tcp", Ports: []string{"6667"}}},
			}, false, nil
		},
	}
	ctx, obs := testContext(mock, nil)

	require.NoError(t, NewFirewallProvisioner().Provision(ctx))
	assert.Len(t, obs.EventsOfType(provisioning.EventResourceExists), 1)
	assert.Len(t, obs.EventsOfType(provisioning.EventValidationWarning), 1)
}

func TestFirewallProvisioner_NoWarningWhenMatching(t *testing.T) {
	t.Parallel()
	mock := &gcp.MockClient{
		EnsureFirewallFunc: func(_ context.Context, rule gcp.FirewallRule) (*compute.Firewall, bool, error) {
			return &compute.Firewall{
				Name:       rule.Name,
				TargetTags: []string{rule.TargetTag},
				Allowed:    []*compute.FirewallAllowed{{IPProtocol: "tcp", Ports: []string{"6697"}}},
			}, false, nil
		},
	}
	ctx, obs := testContext(mock, nil)

	require.NoError(t, NewFirewallProvisioner().Provision(ctx))
	assert.Empty(t, obs.EventsOfType(provisioning.EventValidationWarning))
}

func TestFirewallProvisioner_SurfacesFailure(t *testing.T) {
	t.Parallel()
	mock := &gcp.MockClient{
		EnsureFirewallFunc: func(_ context.Context, _ gcp.FirewallRule) (*compute.Firewall, bool, error) {
			return nil, false, errors.New("permission denied")
		},
	}
	ctx, _ := testContext(mock, nil)

	err := NewFirewallProvisioner().Provision(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "firewall rule allow-znc-access")
}
