package gcp

import (
	"context"
	"fmt"

	"google.golang.org/api/compute/v1"

	"github.com/imamik/zncdeploy/internal/util/retry"
)

const (
	// startupScriptKey is the metadata key Compute Engine executes on
	// first boot of Debian/Ubuntu images.
	startupScriptKey = "startup-script"

	// accessConfigName is the conventional name for the external NAT
	// access config on an instance's primary interface.
	accessConfigName = "External NAT"
)

// GetInstance returns the named instance, or nil if it does not exist.
func (c *RealClient) GetInstance(ctx context.Context, zone, name string) (*compute.Instance, error) {
	inst, err := c.service.Instances.Get(c.project, zone, name).Context(ctx).Do()
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get instance %s: %w", name, err)
	}
	return inst, nil
}

// EnsureInstance creates the instance if it does not exist.
func (c *RealClient) EnsureInstance(ctx context.Context, zone string, opts InstanceCreateOpts) (*compute.Instance, bool, error) {
	existing, err := c.GetInstance(ctx, zone, opts.Name)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	op, err := c.service.Instances.Insert(c.project, zone, buildInstance(zone, opts)).Context(ctx).Do()
	if err != nil {
		return nil, false, fmt.Errorf("failed to create instance %s: %w", opts.Name, err)
	}
	if err := c.waitZoneOperation(ctx, zone, op, c.timeouts.InstanceCreate); err != nil {
		return nil, false, fmt.Errorf("instance %s creation did not complete: %w", opts.Name, err)
	}

	inst, err := c.GetInstance(ctx, zone, opts.Name)
	if err != nil {
		return nil, false, err
	}
	if inst == nil {
		return nil, false, fmt.Errorf("instance %s not found after creation", opts.Name)
	}
	return inst, true, nil
}

// buildInstance maps creation options onto the API instance resource.
func buildInstance(zone string, opts InstanceCreateOpts) *compute.Instance {
	inst := &compute.Instance{
		Name:        opts.Name,
		MachineType: fmt.Sprintf("zones/%s/machineTypes/%s", zone, opts.MachineType),
		Disks: []*compute.AttachedDisk{
			{
				Boot:       true,
				AutoDelete: true,
				Type:       "PERSISTENT",
				InitializeParams: &compute.AttachedDiskInitializeParams{
					SourceImage: fmt.Sprintf("projects/%s/global/images/family/%s", opts.ImageProject, opts.ImageFamily),
					DiskSizeGb:  opts.DiskSizeGB,
					DiskType:    fmt.Sprintf("zones/%s/diskTypes/%s", zone, opts.DiskType),
				},
			},
		},
		NetworkInterfaces: []*compute.NetworkInterface{
			{Network: opts.Network},
		},
	}

	if opts.EphemeralIP {
		inst.NetworkInterfaces[0].AccessConfigs = []*compute.AccessConfig{
			{
				Name:        accessConfigName,
				Type:        "ONE_TO_ONE_NAT",
				NetworkTier: "STANDARD",
			},
		}
	}

	if opts.NetworkTag != "" {
		inst.Tags = &compute.Tags{Items: []string{opts.NetworkTag}}
	}

	if opts.StartupScript != "" {
		script := opts.StartupScript
		inst.Metadata = &compute.Metadata{
			Items: []*compute.MetadataItems{
				{Key: startupScriptKey, Value: &script},
			},
		}
	}

	return inst
}

// DeleteInstance deletes the named instance. A missing instance is success.
// Transient API failures are retried.
func (c *RealClient) DeleteInstance(ctx context.Context, zone, name string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Delete)
	defer cancel()

	return retry.Do(ctx, func() error {
		op, err := c.service.Instances.Delete(c.project, zone, name).Context(ctx).Do()
		if err != nil {
			if IsNotFound(err) {
				return nil
			}
			if isRetryable(err) {
				return err
			}
			return retry.Fatal(fmt.Errorf("failed to delete instance %s: %w", name, err))
		}
		return c.waitZoneOperation(ctx, zone, op, c.timeouts.Delete)
	},
		retry.WithMaxAttempts(c.timeouts.RetryMaxAttempts),
		retry.WithDelay(c.timeouts.RetryInitialDelay))
}

// AttachStaticIP replaces the access config on the instance's primary
// interface with the given reserved address. The interface fingerprint is
// required by the API for updates.
func (c *RealClient) AttachStaticIP(ctx context.Context, zone, instanceName, ip string) error {
	inst, err := c.GetInstance(ctx, zone, instanceName)
	if err != nil {
		return err
	}
	if inst == nil {
		return fmt.Errorf("instance %s not found", instanceName)
	}
	if len(inst.NetworkInterfaces) == 0 {
		return fmt.Errorf("instance %s has no network interfaces", instanceName)
	}

	nic := inst.NetworkInterfaces[0]
	update := &compute.NetworkInterface{
		Name:        nic.Name,
		Fingerprint: nic.Fingerprint,
		AccessConfigs: []*compute.AccessConfig{
			{
				Name:        accessConfigName,
				Type:        "ONE_TO_ONE_NAT",
				NetworkTier: "STANDARD",
				NatIP:       ip,
			},
		},
	}

	op, err := c.service.Instances.UpdateNetworkInterface(c.project, zone, instanceName, nic.Name, update).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to assign static IP to instance %s: %w", instanceName, err)
	}
	if err := c.waitZoneOperation(ctx, zone, op, c.timeouts.AddressReserve); err != nil {
		return fmt.Errorf("static IP assignment to %s did not complete: %w", instanceName, err)
	}
	return nil
}

// ExternalIP returns the external address of an instance's primary
// interface, or "" when none is assigned yet.
func ExternalIP(inst *compute.Instance) string {
	if inst == nil || len(inst.NetworkInterfaces) == 0 {
		return ""
	}
	for _, ac := range inst.NetworkInterfaces[0].AccessConfigs {
		if ac.NatIP != "" {
			return ac.NatIP
		}
	}
	return ""
}
