package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/imamik/zncdeploy/internal/bootstrap"
	"github.com/imamik/zncdeploy/internal/config"
	"github.com/imamik/zncdeploy/internal/netutil"
	"github.com/imamik/zncdeploy/internal/provisioning"
	"github.com/imamik/zncdeploy/internal/provisioning/compute"
	"github.com/imamik/zncdeploy/internal/provisioning/infrastructure"
)

// Factory function variables for deploy - can be replaced in tests.
var (
	// newDeployPhases builds the phase list for one deployment.
	newDeployPhases = func(startupScript string) []provisioning.Phase {
		return []provisioning.Phase{
			infrastructure.NewAddressProvisioner(),
			compute.NewProvisioner(startupScript),
			infrastructure.NewFirewallProvisioner(),
		}
	}

	// waitForPort waits for the instance to accept TCP connections.
	waitForPort = netutil.WaitForPort
)

// Deploy handles the deploy command.
//
// It validates the descriptor, renders the first-boot script and runs
// the provisioning phases in order: static address (when requested),
// VM instance, firewall rule. A phase failure aborts the run; resources
// created by earlier phases are left in place for a re-run or destroy.
// With wait set, Deploy blocks until the instance answers on the SSH
// port, which marks the end of the boot.
func Deploy(ctx context.Context, cfg *config.Config, wait bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	script, err := bootstrap.Script(cfg)
	if err != nil {
		return err
	}

	log.Printf("Deploying ZNC bouncer %s to project %s (zone %s)", cfg.InstanceName, cfg.ProjectID, cfg.Zone)

	client, err := newComputeClient(ctx, cfg.ProjectID)
	if err != nil {
		return fmt.Errorf("creating compute client: %w", err)
	}

	pCtx := newProvisioningContext(ctx, cfg, client)

	if err := provisioning.RunPhases(pCtx, newDeployPhases(script)); err != nil {
		return err
	}

	if wait {
		if pCtx.State.InstanceIP == "" {
			return fmt.Errorf("cannot wait for instance: no external IP assigned")
		}
		log.Printf("Waiting for %s to accept SSH connections...", pCtx.State.InstanceIP)
		if err := waitForPort(ctx, pCtx.State.InstanceIP, netutil.SSHPort, netutil.DefaultWaitTimeout); err != nil {
			return fmt.Errorf("instance not reachable: %w", err)
		}
	}

	fmt.Print(renderDeploySummary(cfg, pCtx.State))

	if pCtx.State.AttachErr != nil {
		return fmt.Errorf("deployment finished with a failure: %w", pCtx.State.AttachErr)
	}
	return nil
}
