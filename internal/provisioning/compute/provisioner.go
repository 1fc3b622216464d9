// Package compute provisions the bouncer VM instance itself, including
// the boot metadata that installs and supervises ZNC on first start.
package compute

import (
	"fmt"

	"github.com/imamik/zncdeploy/internal/platform/gcp"
	"github.com/imamik/zncdeploy/internal/provisioning"
)

// Provisioner handles the VM instance phase. The startup script is
// rendered once by the caller and injected as instance metadata.
type Provisioner struct {
	startupScript string
}

// NewProvisioner creates a new instance provisioner with the given
// startup script content. An empty script is allowed and means the
// instance boots without boot-time initialization.
func NewProvisioner(startupScript string) *Provisioner {
	return &Provisioner{startupScript: startupScript}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "instance"
}

// Provision implements the provisioning.Phase interface. When the address
// phase reserved a static address, the instance is created without an
// access config and the address is attached afterwards; otherwise the
// instance gets an ephemeral external address at creation time.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	cfg := ctx.Config

	opts := gcp.InstanceCreateOpts{
		Name:          cfg.InstanceName,
		MachineType:   cfg.MachineType,
		ImageProject:  cfg.ImageProject,
		ImageFamily:   cfg.ImageFamily,
		DiskSizeGB:    cfg.DiskSizeGB,
		DiskType:      cfg.DiskType,
		Network:       cfg.Network,
		NetworkTag:    cfg.NetworkTag,
		EphemeralIP:   cfg.StaticIPName == "",
		StartupScript: p.startupScript,
	}

	ctx.Observer.Event(provisioning.Event{
		Type:     provisioning.EventResourceCreating,
		Phase:    p.Name(),
		Resource: cfg.InstanceName,
		Message:  fmt.Sprintf("machine type %s, image %s/%s, disk %dGB %s", cfg.MachineType, cfg.ImageProject, cfg.ImageFamily, cfg.DiskSizeGB, cfg.DiskType),
	})

	inst, created, err := ctx.Compute.EnsureInstance(ctx, cfg.Zone, opts)
	if err != nil {
		ctx.Observer.Event(provisioning.Event{
			Type:     provisioning.EventResourceFailed,
			Phase:    p.Name(),
			Resource: cfg.InstanceName,
			Message:  err.Error(),
		})
		return fmt.Errorf("instance %s: %w", cfg.InstanceName, err)
	}

	eventType := provisioning.EventResourceExists
	if created {
		eventType = provisioning.EventResourceCreated
	}
	ctx.Observer.Event(provisioning.Event{
		Type:     eventType,
		Phase:    p.Name(),
		Resource: cfg.InstanceName,
		Message:  fmt.Sprintf("instance in zone %s", cfg.Zone),
	})

	ctx.State.Instance = inst
	ctx.State.InstanceIP = gcp.ExternalIP(inst)

	if ctx.State.Address != nil {
		p.attachAddress(ctx)
	}

	return nil
}

// attachAddress puts the reserved address on the instance's primary
// interface. A re-run against an instance that already carries the
// address issues no update call. A failed attach does not halt the
// pipeline: the instance is running, so the firewall rule is still
// worth creating. The failure is recorded on State for the caller to
// report.
func (p *Provisioner) attachAddress(ctx *provisioning.Context) {
	addr := ctx.State.Address
	name := ctx.Config.InstanceName

	if ctx.State.InstanceIP == addr.Address {
		ctx.Observer.Event(provisioning.Event{
			Type:     provisioning.EventResourceExists,
			Phase:    p.Name(),
			Resource: name,
			Message:  fmt.Sprintf("static address %s already attached", addr.Address),
		})
		return
	}

	ctx.Observer.Event(provisioning.Event{
		Type:     provisioning.EventResourceCreating,
		Phase:    p.Name(),
		Resource: name,
		Message:  fmt.Sprintf("attaching static address %s", addr.Address),
	})

	if err := ctx.Compute.AttachStaticIP(ctx, ctx.Config.Zone, name, addr.Address); err != nil {
		ctx.Observer.Event(provisioning.Event{
			Type:     provisioning.EventResourceFailed,
			Phase:    p.Name(),
			Resource: name,
			Message:  err.Error(),
		})
		ctx.State.AttachErr = fmt.Errorf("attaching static address to %s: %w", name, err)
		return
	}

	ctx.State.InstanceIP = addr.Address
	ctx.Observer.Event(provisioning.Event{
		Type:     provisioning.EventResourceCreated,
		Phase:    p.Name(),
		Resource: name,
		Message:  fmt.Sprintf("static address %s attached", addr.Address),
	})
}
