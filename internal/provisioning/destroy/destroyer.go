// Package destroy tears down the resources created by a deployment.
// Deletion is best effort: every resource is attempted and failures are
// collected rather than halting the run.
package destroy

import (
	"errors"
	"fmt"

	"github.com/imamik/zncdeploy/internal/provisioning"
)

// Result records the outcome of one resource deletion.
type Result struct {
	// Kind is the resource kind, one of "instance", "address", "firewall".
	Kind string
	// Name is the resource name that was targeted.
	Name string
	// Status describes the outcome: "deleted", "skipped" or "failed".
	Status string
	// Err holds the deletion error when Status is "failed".
	Err error
}

const (
	StatusDeleted = "deleted"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// Destroyer removes a deployment's instance, static address and firewall
// rule. Resources are deleted in dependency order: the instance first so
// the address is no longer in use when it is released.
type Destroyer struct{}

// NewDestroyer creates a new Destroyer.
func NewDestroyer() *Destroyer {
	return &Destroyer{}
}

// Run deletes every resource the configuration names. It always attempts
// all deletions; the returned error joins the individual failures, with
// per-resource details in the Result slice.
func (d *Destroyer) Run(ctx *provisioning.Context) ([]Result, error) {
	cfg := ctx.Config
	var results []Result

	results = append(results, d.deleteInstance(ctx))

	if cfg.StaticIPName != "" {
		results = append(results, d.deleteAddress(ctx))
	} else {
		ctx.Observer.Event(provisioning.Event{
			Type:     provisioning.EventResourceSkipped,
			Phase:    "destroy",
			Resource: "static address",
			Message:  "no static address name configured",
		})
		results = append(results, Result{Kind: "address", Status: StatusSkipped})
	}

	results = append(results, d.deleteFirewall(ctx))

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s %s: %w", r.Kind, r.Name, r.Err))
		}
	}
	return results, errors.Join(errs...)
}

func (d *Destroyer) deleteInstance(ctx *provisioning.Context) Result {
	cfg := ctx.Config
	res := Result{Kind: "instance", Name: cfg.InstanceName}

	ctx.Observer.Event(provisioning.Event{
		Type:     provisioning.EventResourceDeleting,
		Phase:    "destroy",
		Resource: cfg.InstanceName,
		Message:  fmt.Sprintf("zone %s", cfg.Zone),
	})

	if err := ctx.Compute.DeleteInstance(ctx, cfg.Zone, cfg.InstanceName); err != nil {
		res.Status = StatusFailed
		res.Err = err
		ctx.Observer.Event(provisioning.Event{
			Type:     provisioning.EventResourceFailed,
			Phase:    "destroy",
			Resource: cfg.InstanceName,
			Message:  err.Error(),
		})
		return res
	}

	res.Status = StatusDeleted
	ctx.Observer.Event(provisioning.Event{
		Type:     provisioning.EventResourceDeleted,
		Phase:    "destroy",
		Resource: cfg.InstanceName,
	})
	return res
}

func (d *Destroyer) deleteAddress(ctx *provisioning.Context) Result {
	cfg := ctx.Config
	res := Result{Kind: "address", Name: cfg.StaticIPName}

	region := cfg.RegionForAddress()
	if region == "" {
		res.Status = StatusFailed
		res.Err = fmt.Errorf("no region for address %s and none derivable from zone %q", cfg.StaticIPName, cfg.Zone)
		return res
	}

	ctx.Observer.Event(provisioning.Event{
		Type:     provisioning.EventResourceDeleting,
		Phase:    "destroy",
		Resource: cfg.StaticIPName,
		Message:  fmt.Sprintf("region %s", region),
	})

	if err := ctx.Compute.DeleteAddress(ctx, region, cfg.StaticIPName); err != nil {
		res.Status = StatusFailed
		res.Err = err
		ctx.Observer.Event(provisioning.Event{
			Type:     provisioning.EventResourceFailed,
			Phase:    "destroy",
			Resource: cfg.StaticIPName,
			Message:  err.Error(),
		})
		return res
	}

	res.Status = StatusDeleted
	ctx.Observer.Event(provisioning.Event{
		Type:     provisioning.EventResourceDeleted,
		Phase:    "destroy",
		Resource: cfg.StaticIPName,
	})
	return res
}

func (d *Destroyer) deleteFirewall(ctx *provisioning.Context) Result {
	cfg := ctx.Config
	res := Result{Kind: "firewall", Name: cfg.FirewallRuleName}

	ctx.Observer.Event(provisioning.Event{
		Type:     provisioning.EventResourceDeleting,
		Phase:    "destroy",
		Resource: cfg.FirewallRuleName,
	})

	if err := ctx.Compute.DeleteFirewall(ctx, cfg.FirewallRuleName); err != nil {
		res.Status = StatusFailed
		res.Err = err
		ctx.Observer.Event(provisioning.Event{
			Type:     provisioning.EventResourceFailed,
			Phase:    "destroy",
			Resource: cfg.FirewallRuleName,
			Message:  err.Error(),
		})
		return res
	}

	res.Status = StatusDeleted
	ctx.Observer.Event(provisioning.Event{
		Type:     provisioning.EventResourceDeleted,
		Phase:    "destroy",
		Resource: cfg.FirewallRuleName,
	})
	return res
}
