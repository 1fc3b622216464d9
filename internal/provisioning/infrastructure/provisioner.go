// Package infrastructure provisions the network-level resources of a
// bouncer deployment: the optional reserved address and the firewall rule
// that exposes the ZNC listener port to tagged instances.
package infrastructure

import (
	"fmt"

	"github.com/imamik/zncdeploy/internal/platform/gcp"
	"github.com/imamik/zncdeploy/internal/provisioning"
)

// AddressProvisioner reserves the static external address named in the
// descriptor. It is only scheduled when a static IP name was supplied;
// deployments without one keep an ephemeral address and never reach this
// phase.
type AddressProvisioner struct{}

// NewAddressProvisioner creates a new address provisioner.
func NewAddressProvisioner() *AddressProvisioner {
	return &AddressProvisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *AddressProvisioner) Name() string {
	return "address"
}

// Provision implements the provisioning.Phase interface.
func (p *AddressProvisioner) Provision(ctx *provisioning.Context) error {
	name := ctx.Config.StaticIPName
	if name == "" {
		ctx.Observer.Event(provisioning.Event{
			Type:    provisioning.EventResourceSkipped,
			Phase:   p.Name(),
			Message: "no static IP name supplied, instance keeps an ephemeral address",
		})
		return nil
	}

	region := ctx.Config.RegionForAddress()
	ctx.Observer.Event(provisioning.Event{
		Type:     provisioning.EventResourceCreating,
		Phase:    p.Name(),
		Resource: name,
		Message:  fmt.Sprintf("reserving static address in region %s", region),
	})

	addr, created, err := ctx.Compute.EnsureAddress(ctx, region, name)
	if err != nil {
		ctx.Observer.Event(provisioning.Event{
			Type:     provisioning.EventResourceFailed,
			Phase:    p.Name(),
			Resource: name,
			Message:  err.Error(),
		})
		return fmt.Errorf("static address %s: %w", name, err)
	}

	eventType := provisioning.EventResourceExists
	if created {
		eventType = provisioning.EventResourceCreated
	}
	ctx.Observer.Event(provisioning.Event{
		Type:     eventType,
		Phase:    p.Name(),
		Resource: name,
		Message:  fmt.Sprintf("static address available at %s", addr.Address),
	})

	ctx.State.Address = addr
	return nil
}

// FirewallProvisioner ensures the inbound allow rule for the ZNC port
// exists and targets the deployment's network tag.
type FirewallProvisioner struct{}

// NewFirewallProvisioner creates a new firewall provisioner.
func NewFirewallProvisioner() *FirewallProvisioner {
	return &FirewallProvisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *FirewallProvisioner) Name() string {
	return "firewall"
}

// Provision implements the provisioning.Phase interface.
func (p *FirewallProvisioner) Provision(ctx *provisioning.Context) error {
	rule := RuleFromConfig(ctx)

	ctx.Observer.Event(provisioning.Event{
		Type:     provisioning.EventResourceCreating,
		Phase:    p.Name(),
		Resource: rule.Name,
		Message:  fmt.Sprintf("allowing %s:%d to tag %s", rule.Protocol, rule.Port, rule.TargetTag),
	})

	fw, created, err := ctx.Compute.EnsureFirewall(ctx, rule)
	if err != nil {
		ctx.Observer.Event(provisioning.Event{
			Type:     provisioning.EventResourceFailed,
			Phase:    p.Name(),
			Resource: rule.Name,
			Message:  err.Error(),
		})
		return fmt.Errorf("firewall rule %s: %w", rule.Name, err)
	}

	if created {
		ctx.Observer.Event(provisioning.Event{
			Type:     provisioning.EventResourceCreated,
			Phase:    p.Name(),
			Resource: rule.Name,
			Message:  "firewall rule created",
		})
	} else {
		ctx.Observer.Event(provisioning.Event{
			Type:     provisioning.EventResourceExists,
			Phase:    p.Name(),
			Resource: rule.Name,
			Message:  "firewall rule already present",
		})
		// An existing rule is accepted as-is, but a drifted one is worth
		// flagging: the operator may be relying on a port that is not
		// actually open.
		if !rule.Matches(fw) {
			ctx.Observer.Event(provisioning.Event{
				Type:     provisioning.EventValidationWarning,
				Phase:    p.Name(),
				Resource: rule.Name,
				Message:  "existing rule differs from the requested tag/port, manual review recommended",
			})
		}
	}

	ctx.State.Firewall = fw
	return nil
}

// RuleFromConfig builds the desired firewall rule from the descriptor.
func RuleFromConfig(ctx *provisioning.Context) gcp.FirewallRule {
	return gcp.FirewallRule{
		Name:        ctx.Config.FirewallRuleName,
		Network:     ctx.Config.Network,
		TargetTag:   ctx.Config.NetworkTag,
		Protocol:    "tcp",
		Port:        ctx.Config.ZNCPort,
		Description: "Allow inbound ZNC bouncer client connections",
	}
}
