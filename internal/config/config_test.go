package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefault(t *testing.T) {
	t.Parallel()
	cfg := NewDefault()

	assert.Equal(t, "us-west1-a", cfg.Zone)
	assert.Equal(t, "znc-bouncer-vm", cfg.InstanceName)
	assert.Equal(t, "e2-micro", cfg.MachineType)
	assert.Equal(t, "debian-cloud", cfg.ImageProject)
	assert.Equal(t, "debian-11", cfg.ImageFamily)
	assert.Equal(t, int64(10), cfg.DiskSizeGB)
	assert.Equal(t, "pd-balanced", cfg.DiskType)
	assert.Equal(t, "znc-bouncer-node", cfg.NetworkTag)
	assert.Equal(t, "allow-znc-access", cfg.FirewallRuleName)
	assert.Equal(t, 6697, cfg.ZNCPort)
	assert.Equal(t, "znc", cfg.ZNCUser)
	assert.Equal(t, "/var/log/znc-startup.log", cfg.BootLogPath)
	assert.Empty(t, cfg.ProjectID, "project id has no default")
	assert.Empty(t, cfg.StaticIPName, "static IP is opt-in")
}

func TestRegionFromZone(t *testing.T) {
	t.Parallel()
	tests := []struct {
		zone string
		want string
	}{
		{"us-west1-a", "us-west1"},
		{"us-central1-c", "us-central1"},
		{"europe-west4-b", "europe-west4"},
		{"nozone", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RegionFromZone(tt.zone), "zone %q", tt.zone)
	}
}

func TestRegionForAddress_ExplicitWins(t *testing.T) {
	t.Parallel()
	cfg := NewDefault()
	cfg.Zone = "us-west1-a"
	cfg.Region = "europe-west4"

	assert.Equal(t, "europe-west4", cfg.RegionForAddress())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		cfg := NewDefault()
		cfg.ProjectID = "my-project"
		return cfg
	}

	t.Run("valid descriptor", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, valid().Validate())
	})

	t.Run("missing project id", func(t *testing.T) {
		t.Parallel()
		cfg := valid()
		cfg.ProjectID = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "project_id")
	})

	t.Run("missing zone", func(t *testing.T) {
		t.Parallel()
		cfg := valid()
		cfg.Zone = ""
		require.Error(t, cfg.Validate())
	})

	t.Run("port out of range", func(t *testing.T) {
		t.Parallel()
		cfg := valid()
		cfg.ZNCPort = 70000
		require.Error(t, cfg.Validate())
	})

	t.Run("static ip without derivable region", func(t *testing.T) {
		t.Parallel()
		cfg := valid()
		cfg.StaticIPName = "znc-ip"
		cfg.Zone = "weirdzone"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "region")
	})

	t.Run("static ip with explicit region", func(t *testing.T) {
		t.Parallel()
		cfg := valid()
		cfg.StaticIPName = "znc-ip"
		cfg.Zone = "weirdzone"
		cfg.Region = "us-west1"
		require.NoError(t, cfg.Validate())
	})
}

func TestLoadFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "znc.yaml")
	data := `
project_id: file-project
zone: us-central1-c
instance_name: my-bouncer
znc_port: 7000
static_ip_name: znc-ip
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "file-project", cfg.ProjectID)
	assert.Equal(t, "us-central1-c", cfg.Zone)
	assert.Equal(t, "my-bouncer", cfg.InstanceName)
	assert.Equal(t, 7000, cfg.ZNCPort)
	assert.Equal(t, "znc-ip", cfg.StaticIPName)
	// Unset fields keep their defaults.
	assert.Equal(t, "e2-micro", cfg.MachineType)
	assert.Equal(t, "allow-znc-access", cfg.FirewallRuleName)
}

func TestLoadFile_Missing(t *testing.T) {
	t.Parallel()
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadFile_BadYAML(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("zone: [unclosed"), 0o600))

	_, err := LoadFile(path)
	require.Error(t, err)
}

func TestLoadTimeouts_Defaults(t *testing.T) {
	timeouts := LoadTimeouts()

	assert.Equal(t, 5, timeouts.RetryMaxAttempts)
	assert.NotZero(t, timeouts.InstanceCreate)
	assert.NotZero(t, timeouts.Delete)
	assert.NotZero(t, timeouts.OperationPoll)
}

func TestLoadTimeouts_EnvOverride(t *testing.T) {
	t.Setenv("ZNCDEPLOY_RETRY_MAX_ATTEMPTS", "9")
	t.Setenv("ZNCDEPLOY_OPERATION_POLL_INTERVAL", "1s")
	t.Setenv("ZNCDEPLOY_TIMEOUT_DELETE", "garbage")

	timeouts := LoadTimeouts()

	assert.Equal(t, 9, timeouts.RetryMaxAttempts)
	assert.Equal(t, "1s", timeouts.OperationPoll.String())
	// Invalid values fall back to the default.
	assert.Equal(t, "10m0s", timeouts.Delete.String())
}
