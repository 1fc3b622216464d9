package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/zncdeploy/internal/config"
)

// descriptorFlags binds deployment descriptor fields to command flags.
// When --config names a YAML file, its values form the base and flags
// explicitly set on the command line override them.
type descriptorFlags struct {
	configPath string
	cfg        *config.Config
}

func newDescriptorFlags() *descriptorFlags {
	return &descriptorFlags{cfg: config.NewDefault()}
}

// bindCommon registers the flags shared by deploy and destroy.
func (f *descriptorFlags) bindCommon(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.configPath, "config", "c", "", "Path to a YAML deployment descriptor")
	flags.StringVar(&f.cfg.ProjectID, "project-id", "", "Google Cloud project ID (required)")
	flags.StringVar(&f.cfg.Zone, "zone", f.cfg.Zone, "Compute zone for the instance")
	flags.StringVar(&f.cfg.Region, "region", "", "Region for the static address (derived from zone when empty)")
	flags.StringVar(&f.cfg.InstanceName, "instance-name", f.cfg.InstanceName, "Name of the VM instance")
	flags.StringVar(&f.cfg.StaticIPName, "static-ip-name", "", "Name of a reserved static address (ephemeral IP when empty)")
	flags.StringVar(&f.cfg.FirewallRuleName, "firewall-rule-name", f.cfg.FirewallRuleName, "Name of the firewall rule")
}

// bindDeploy registers the creation-only flags on top of the common set.
func (f *descriptorFlags) bindDeploy(cmd *cobra.Command) {
	f.bindCommon(cmd)
	flags := cmd.Flags()
	flags.StringVar(&f.cfg.MachineType, "machine-type", f.cfg.MachineType, "Machine type for the instance")
	flags.StringVar(&f.cfg.ImageProject, "image-project", f.cfg.ImageProject, "Project hosting the boot image family")
	flags.StringVar(&f.cfg.ImageFamily, "image-family", f.cfg.ImageFamily, "Boot image family")
	flags.Int64Var(&f.cfg.DiskSizeGB, "disk-size-gb", f.cfg.DiskSizeGB, "Boot disk size in GB")
	flags.StringVar(&f.cfg.DiskType, "disk-type", f.cfg.DiskType, "Boot disk type")
	flags.StringVar(&f.cfg.NetworkTag, "network-tag", f.cfg.NetworkTag, "Network tag applied to the instance and targeted by the firewall rule")
	flags.IntVar(&f.cfg.ZNCPort, "znc-port", f.cfg.ZNCPort, "TCP port ZNC listens on")
	flags.StringVar(&f.cfg.Network, "network", f.cfg.Network, "Network URI the instance attaches to")
	flags.StringVar(&f.cfg.ZNCUser, "znc-user", f.cfg.ZNCUser, "OS account the bouncer runs as")
	flags.StringVar(&f.cfg.BootLogPath, "boot-log-path", f.cfg.BootLogPath, "Path of the first-boot progress log on the instance")
}

// build returns the effective descriptor: the file values when --config
// was given, with explicitly set flags layered on top.
func (f *descriptorFlags) build(cmd *cobra.Command) (*config.Config, error) {
	if f.configPath == "" {
		return f.cfg, nil
	}

	cfg, err := config.LoadFile(f.configPath)
	if err != nil {
		return nil, err
	}

	overrides := map[string]func(*config.Config){
		"project-id":         func(c *config.Config) { c.ProjectID = f.cfg.ProjectID },
		"zone":               func(c *config.Config) { c.Zone = f.cfg.Zone },
		"region":             func(c *config.Config) { c.Region = f.cfg.Region },
		"instance-name":      func(c *config.Config) { c.InstanceName = f.cfg.InstanceName },
		"machine-type":       func(c *config.Config) { c.MachineType = f.cfg.MachineType },
		"image-project":      func(c *config.Config) { c.ImageProject = f.cfg.ImageProject },
		"image-family":       func(c *config.Config) { c.ImageFamily = f.cfg.ImageFamily },
		"disk-size-gb":       func(c *config.Config) { c.DiskSizeGB = f.cfg.DiskSizeGB },
		"disk-type":          func(c *config.Config) { c.DiskType = f.cfg.DiskType },
		"static-ip-name":     func(c *config.Config) { c.StaticIPName = f.cfg.StaticIPName },
		"network-tag":        func(c *config.Config) { c.NetworkTag = f.cfg.NetworkTag },
		"firewall-rule-name": func(c *config.Config) { c.FirewallRuleName = f.cfg.FirewallRuleName },
		"znc-port":           func(c *config.Config) { c.ZNCPort = f.cfg.ZNCPort },
		"network":            func(c *config.Config) { c.Network = f.cfg.Network },
		"znc-user":           func(c *config.Config) { c.ZNCUser = f.cfg.ZNCUser },
		"boot-log-path":      func(c *config.Config) { c.BootLogPath = f.cfg.BootLogPath },
	}
	for name, apply := range overrides {
		if cmd.Flags().Changed(name) {
			apply(cfg)
		}
	}
	return cfg, nil
}
