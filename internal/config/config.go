package config

import (
	"fmt"
	"strings"
)

// Defaults for the deployment descriptor. They mirror the documented CLI
// defaults: a small Debian VM named znc-bouncer-vm with the ZNC TLS port
// open to instances tagged znc-bouncer-node.
const (
	DefaultZone             = "us-west1-a"
	DefaultInstanceName     = "znc-bouncer-vm"
	DefaultMachineType      = "e2-micro"
	DefaultImageProject     = "debian-cloud"
	DefaultImageFamily      = "debian-11"
	DefaultDiskSizeGB       = 10
	DefaultDiskType         = "pd-balanced"
	DefaultNetworkTag       = "znc-bouncer-node"
	DefaultFirewallRuleName = "allow-znc-access"
	DefaultZNCPort          = 6697
	DefaultNetwork          = "global/networks/default"
	DefaultZNCUser          = "znc"
	DefaultBootLogPath      = "/var/log/znc-startup.log"
)

// Config is the deployment descriptor. It is immutable per invocation.
type Config struct {
	ProjectID string `yaml:"project_id"`
	Zone      string `yaml:"zone"`
	// Region is used for static address reservation. When empty it is
	// derived from the zone by stripping the trailing zone suffix
	// (us-west1-a -> us-west1).
	Region string `yaml:"region"`

	InstanceName string `yaml:"instance_name"`
	MachineType  string `yaml:"machine_type"`
	ImageProject string `yaml:"image_project"`
	ImageFamily  string `yaml:"image_family"`
	DiskSizeGB   int64  `yaml:"disk_size_gb"`
	DiskType     string `yaml:"disk_type"`

	// StaticIPName names the reserved address to attach to the instance.
	// When empty the instance keeps an ephemeral external address and no
	// address reservation call is issued.
	StaticIPName string `yaml:"static_ip_name"`

	NetworkTag       string `yaml:"network_tag"`
	FirewallRuleName string `yaml:"firewall_rule_name"`
	ZNCPort          int    `yaml:"znc_port"`
	Network          string `yaml:"network"`

	// ZNCUser is the unprivileged account the bouncer runs as.
	ZNCUser string `yaml:"znc_user"`
	// BootLogPath is where the boot initializer appends its progress log.
	BootLogPath string `yaml:"boot_log_path"`
}

// NewDefault returns a descriptor populated with the documented defaults.
// ProjectID is intentionally left empty; it has no sensible default and
// Validate rejects a descriptor without one.
func NewDefault() *Config {
	return &Config{
		Zone:             DefaultZone,
		InstanceName:     DefaultInstanceName,
		MachineType:      DefaultMachineType,
		ImageProject:     DefaultImageProject,
		ImageFamily:      DefaultImageFamily,
		DiskSizeGB:       DefaultDiskSizeGB,
		DiskType:         DefaultDiskType,
		NetworkTag:       DefaultNetworkTag,
		FirewallRuleName: DefaultFirewallRuleName,
		ZNCPort:          DefaultZNCPort,
		Network:          DefaultNetwork,
		ZNCUser:          DefaultZNCUser,
		BootLogPath:      DefaultBootLogPath,
	}
}

// RegionForAddress returns the region used for static address operations,
// deriving it from the zone when not set explicitly.
func (c *Config) RegionForAddress() string {
	if c.Region != "" {
		return c.Region
	}
	return RegionFromZone(c.Zone)
}

// RegionFromZone derives a region from a zone name by stripping the final
// dash-separated suffix. Returns "" for names without a suffix.
func RegionFromZone(zone string) string {
	idx := strings.LastIndex(zone, "-")
	if idx <= 0 {
		return ""
	}
	return zone[:idx]
}

// Validate checks the descriptor for errors that would otherwise surface
// as confusing API failures. It is called before any API call is made.
func (c *Config) Validate() error {
	if c.ProjectID == "" {
		return fmt.Errorf("project_id is required")
	}
	if c.Zone == "" {
		return fmt.Errorf("zone is required")
	}
	if c.InstanceName == "" {
		return fmt.Errorf("instance_name is required")
	}
	if c.ZNCPort < 1 || c.ZNCPort > 65535 {
		return fmt.Errorf("znc_port %d out of range (1-65535)", c.ZNCPort)
	}
	if c.DiskSizeGB < 1 {
		return fmt.Errorf("disk_size_gb must be positive, got %d", c.DiskSizeGB)
	}
	if c.ZNCUser == "" {
		return fmt.Errorf("znc_user is required")
	}
	if c.StaticIPName != "" && c.RegionForAddress() == "" {
		return fmt.Errorf("region is required for static IP %q and could not be derived from zone %q", c.StaticIPName, c.Zone)
	}
	return nil
}
