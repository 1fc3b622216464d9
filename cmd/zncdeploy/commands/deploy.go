package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/zncdeploy/cmd/zncdeploy/handlers"
)

// Deploy returns the deploy command.
//
// The deploy command provisions everything a running bouncer needs:
// an optional reserved static address, the VM instance with the
// first-boot initialization script and a firewall rule opening the ZNC
// port to instances carrying the network tag. Every step is idempotent;
// re-running against existing resources reports them as already present.
func Deploy() *cobra.Command {
	flags := newDescriptorFlags()
	var wait bool

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Provision the ZNC bouncer VM, firewall rule and optional static IP",
		Long: `Deploy provisions a ZNC bouncer on Google Cloud.

Resources created:
  - A reserved static address (only with --static-ip-name)
  - A VM instance with a first-boot script that installs ZNC
  - A firewall rule allowing inbound ZNC client connections

Each resource is created only if absent; an existing resource of the
same name is reported and left untouched. A partial failure leaves the
already-created resources in place for a re-run or a destroy.

Example:
  zncdeploy deploy --project-id my-project --static-ip-name znc-ip`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.build(cmd)
			if err != nil {
				return err
			}
			return handlers.Deploy(cmd.Context(), cfg, wait)
		},
	}

	// project-id is not marked required here so it may come from --config;
	// validation rejects a descriptor without one before any API call.
	flags.bindDeploy(cmd)
	cmd.Flags().BoolVar(&wait, "wait", false, "Wait until the instance is reachable over SSH before returning")

	return cmd
}
