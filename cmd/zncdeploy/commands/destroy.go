package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imamik/zncdeploy/cmd/zncdeploy/handlers"
)

// Destroy returns the destroy command.
//
// The destroy command deletes the resources a deployment created. It
// lists the targeted resources and asks for confirmation unless --yes
// is given. Deletion is best effort: a failure on one resource does not
// stop the others from being attempted.
func Destroy() *cobra.Command {
	flags := newDescriptorFlags()
	var yes bool

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Delete the bouncer VM, firewall rule and static IP",
		Long: `Destroy deletes the resources created by deploy.

Targeted resources:
  - The VM instance
  - The reserved static address (only with --static-ip-name)
  - The firewall rule

A resource that no longer exists is treated as already deleted. The
command lists what it is about to delete and asks for confirmation;
pass --yes to skip the prompt in scripts.

Both --project-id and --zone are required, either as flags or through
--config.

Example:
  zncdeploy destroy --project-id my-project --zone us-west1-a --static-ip-name znc-ip --yes

WARNING: This operation is irreversible.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Deletion targets must be named explicitly. Falling back to
			// the deploy default could tear down resources in a zone the
			// operator never mentioned.
			if !cmd.Flags().Changed("zone") && !cmd.Flags().Changed("config") {
				return fmt.Errorf("zone is required for destroy; pass --zone or provide it via --config")
			}
			cfg, err := flags.build(cmd)
			if err != nil {
				return err
			}
			return handlers.Destroy(cmd.Context(), cfg, yes)
		},
	}

	flags.bindCommon(cmd)
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}
