package compute

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	compute "google.golang.org/api/compute/v1"

	"github.com/imamik/zncdeploy/internal/config"
	"github.com/imamik/zncdeploy/internal/platform/gcp"
	"github.com/imamik/zncdeploy/internal/provisioning"
)

func testContext(cfg *config.Config, client *gcp.MockClient) (*provisioning.Context, *provisioning.RecordingObserver) {
	ctx := provisioning.NewContext(context.Background(), cfg, client)
	obs := &provisioning.RecordingObserver{}
	ctx.Observer = obs
	return ctx, obs
}

func TestProvisionCreatesInstanceWithEphemeralIP(t *testing.T) {
	t.Parallel()

	cfg := config.NewDefault()
	cfg.ProjectID = "test-project"

	var gotOpts gcp.InstanceCreateOpts
	client := &gcp.MockClient{
		EnsureInstanceFunc: func(ctx context.Context, zone string, opts gcp.InstanceCreateOpts) (*compute.Instance, bool, error) {
			gotOpts = opts
			return &compute.Instance{
				Name:   opts.Name,
				Status: "RUNNING",
				NetworkInterfaces: []*compute.NetworkInterface{{
					AccessConfigs: []*compute.AccessConfig{{NatIP: "203.0.113.10"}},
				}},
			}, true, nil
		},
	}

	ctx, obs := testContext(cfg, client)
	p := NewProvisioner("#!/bin/bash\necho boot\n")

	err := p.Provision(ctx)
	require.NoError(t, err)

	assert.True(t, gotOpts.EphemeralIP, "no static address configured, instance should get an ephemeral IP")
	assert.Equal(t, cfg.InstanceName, gotOpts.Name)
	assert.Equal(t, "#!/bin/bash\necho boot\n", gotOpts.StartupScript)
	assert.NotNil(t, ctx.State.Instance)
	assert.Equal(t, "203.0.113.10", ctx.State.InstanceIP)
	assert.Len(t, obs.EventsOfType(provisioning.EventResourceCreated), 1)
}

func TestProvisionReportsExistingInstance(t *testing.T) {
	t.Parallel()

	cfg := config.NewDefault()
	cfg.ProjectID = "test-project"

	client := &gcp.MockClient{
		EnsureInstanceFunc: func(ctx context.Context, zone string, opts gcp.InstanceCreateOpts) (*compute.Instance, bool, error) {
			return &compute.Instance{
				Name:   opts.Name,
				Status: "RUNNING",
				NetworkInterfaces: []*compute.NetworkInterface{{
					AccessConfigs: []*compute.AccessConfig{{NatIP: "203.0.113.10"}},
				}},
			}, false, nil
		},
	}

	ctx, obs := testContext(cfg, client)
	err := NewProvisioner("").Provision(ctx)
	require.NoError(t, err)

	assert.Empty(t, obs.EventsOfType(provisioning.EventResourceCreated))
	assert.Len(t, obs.EventsOfType(provisioning.EventResourceExists), 1)
}

func TestProvisionAttachesReservedAddress(t *testing.T) {
	t.Parallel()

	cfg := config.NewDefault()
	cfg.ProjectID = "test-project"
	cfg.StaticIPName = "znc-ip"

	var gotOpts gcp.InstanceCreateOpts
	var attachedIP string
	client := &gcp.MockClient{
		EnsureInstanceFunc: func(ctx context.Context, zone string, opts gcp.InstanceCreateOpts) (*compute.Instance, bool, error) {
			gotOpts = opts
			return &compute.Instance{Name: opts.Name, Status: "RUNNING"}, true, nil
		},
		AttachStaticIPFunc: func(ctx context.Context, zone, instanceName, ip string) error {
			attachedIP = ip
			return nil
		},
	}

	ctx, _ := testContext(cfg, client)
	ctx.State.Address = &compute.Address{Name: "znc-ip", Address: "198.51.100.25"}

	err := NewProvisioner("").Provision(ctx)
	require.NoError(t, err)

	assert.False(t, gotOpts.EphemeralIP, "static address configured, instance should not get an ephemeral IP")
	assert.Equal(t, "198.51.100.25", attachedIP)
	assert.Equal(t, "198.51.100.25", ctx.State.InstanceIP)
}

func TestProvisionSkipsAttachWhenAddressAlreadyBound(t *testing.T) {
	t.Parallel()

	cfg := config.NewDefault()
	cfg.ProjectID = "test-project"
	cfg.StaticIPName = "znc-ip"

	attachCalls := 0
	client := &gcp.MockClient{
		EnsureInstanceFunc: func(ctx context.Context, zone string, opts gcp.InstanceCreateOpts) (*compute.Instance, bool, error) {
			return &compute.Instance{
				Name:   opts.Name,
				Status: "RUNNING",
				NetworkInterfaces: []*compute.NetworkInterface{{
					AccessConfigs: []*compute.AccessConfig{{NatIP: "198.51.100.25"}},
				}},
			}, false, nil
		},
		AttachStaticIPFunc: func(ctx context.Context, zone, instanceName, ip string) error {
			attachCalls++
			return nil
		},
	}

	ctx, _ := testContext(cfg, client)
	ctx.State.Address = &compute.Address{Name: "znc-ip", Address: "198.51.100.25"}

	err := NewProvisioner("").Provision(ctx)
	require.NoError(t, err)
	assert.Zero(t, attachCalls, "address already on the interface, no update call expected")
	assert.Equal(t, "198.51.100.25", ctx.State.InstanceIP)
}

func TestProvisionSurfacesCreateFailure(t *testing.T) {
	t.Parallel()

	cfg := config.NewDefault()
	cfg.ProjectID = "test-project"

	client := &gcp.MockClient{
		EnsureInstanceFunc: func(ctx context.Context, zone string, opts gcp.InstanceCreateOpts) (*compute.Instance, bool, error) {
			return nil, false, errors.New("quota exceeded")
		},
	}

	ctx, obs := testContext(cfg, client)
	err := NewProvisioner("").Provision(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), cfg.InstanceName)
	assert.Len(t, obs.EventsOfType(provisioning.EventResourceFailed), 1)
}

func TestProvisionReportsAttachFailureWithoutHalting(t *testing.T) {
	t.Parallel()

	cfg := config.NewDefault()
	cfg.ProjectID = "test-project"
	cfg.StaticIPName = "znc-ip"

	client := &gcp.MockClient{
		EnsureInstanceFunc: func(ctx context.Context, zone string, opts gcp.InstanceCreateOpts) (*compute.Instance, bool, error) {
			return &compute.Instance{Name: opts.Name, Status: "RUNNING"}, true, nil
		},
		AttachStaticIPFunc: func(ctx context.Context, zone, instanceName, ip string) error {
			return errors.New("fingerprint mismatch")
		},
	}

	ctx, obs := testContext(cfg, client)
	ctx.State.Address = &compute.Address{Name: "znc-ip", Address: "198.51.100.25"}

	// The instance is up, so later phases are still worth running.
	err := NewProvisioner("").Provision(ctx)
	require.NoError(t, err)

	require.Error(t, ctx.State.AttachErr)
	assert.Contains(t, ctx.State.AttachErr.Error(), "attaching static address")
	assert.Len(t, obs.EventsOfType(provisioning.EventResourceFailed), 1)
	assert.NotEqual(t, "198.51.100.25", ctx.State.InstanceIP, "failed attach must not claim the address")
}
