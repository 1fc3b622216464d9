package provisioning

import (
	"context"

	"google.golang.org/api/compute/v1"

	"github.com/imamik/zncdeploy/internal/config"
	"github.com/imamik/zncdeploy/internal/platform/gcp"
)

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	// Address is the reserved static address, when one was requested.
	Address *compute.Address
	// Instance is the VM instance after the instance phase.
	Instance *compute.Instance
	// Firewall is the firewall rule after the firewall phase.
	Firewall *compute.Firewall

	// InstanceIP is the instance's external address: the static address
	// when one was attached, otherwise the ephemeral address if already
	// assigned.
	InstanceIP string

	// AttachErr records a failed static address attach. The instance
	// phase does not halt on it so the firewall phase still runs;
	// callers report it after the pipeline finishes.
	AttachErr error
}

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Compute  gcp.ComputeManager
	Observer Observer
	Timeouts *config.Timeouts
}

// NewContext creates a new provisioning context.
func NewContext(ctx context.Context, cfg *config.Config, compute gcp.ComputeManager) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    &State{},
		Compute:  compute,
		Observer: NewConsoleObserver(),
		Timeouts: config.LoadTimeouts(),
	}
}
