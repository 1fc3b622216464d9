package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/zncdeploy/cmd/zncdeploy/handlers"
)

// Script returns the script command, which prints the first-boot shell
// script exactly as deploy injects it into instance metadata.
func Script() *cobra.Command {
	flags := newDescriptorFlags()

	cmd := &cobra.Command{
		Use:   "script",
		Short: "Print the first-boot startup script",
		Long: `Script renders the startup script deploy injects as instance
metadata, for inspection or for use with an instance created by other
means.

Example:
  zncdeploy script --znc-user znc > startup.sh`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.build(cmd)
			if err != nil {
				return err
			}
			return handlers.Script(cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "Path to a YAML deployment descriptor")
	cmd.Flags().StringVar(&flags.cfg.ZNCUser, "znc-user", flags.cfg.ZNCUser, "OS account the bouncer runs as")
	cmd.Flags().StringVar(&flags.cfg.BootLogPath, "boot-log-path", flags.cfg.BootLogPath, "Path of the progress log on the instance")

	return cmd
}
