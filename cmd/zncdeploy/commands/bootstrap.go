package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/zncdeploy/cmd/zncdeploy/handlers"
)

// Bootstrap returns the bootstrap command.
//
// The bootstrap command runs the first-boot initialization in place on
// the current machine: package install, service account, systemd unit
// and activation. It is the same sequence the injected startup script
// performs, useful on an instance created without boot metadata.
func Bootstrap() *cobra.Command {
	flags := newDescriptorFlags()

	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Run the ZNC first-boot initialization on this machine",
		Long: `Bootstrap installs and activates ZNC on the local machine.

Steps, in order: connectivity check, service account creation, package
index refresh, ZNC package install, systemd unit write, service
activation. Network-dependent steps retry with a fixed delay and are
tolerated on exhaustion; the service is started only when the install
succeeded. Progress is appended to the boot log.

This must run as root on the target instance.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.build(cmd)
			if err != nil {
				return err
			}
			return handlers.Bootstrap(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "Path to a YAML deployment descriptor")
	cmd.Flags().StringVar(&flags.cfg.ZNCUser, "znc-user", flags.cfg.ZNCUser, "OS account the bouncer runs as")
	cmd.Flags().StringVar(&flags.cfg.BootLogPath, "boot-log-path", flags.cfg.BootLogPath, "Path of the progress log")

	return cmd
}
