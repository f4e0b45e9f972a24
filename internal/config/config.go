package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/imamik/vmportal/internal/machine"
)

// Defaults applied by ApplyDefaults.
const (
	DefaultRSAMinBits     = 4096
	DefaultPrivateKeyPath = "~/.ssh/vmportal_rsa"
	DefaultProxySSHDPort  = 22
)

// DefaultAllowedKeyTypes are the SSH key types accepted when none are configured.
var DefaultAllowedKeyTypes = []string{
	"ssh-rsa",
	"ssh-ed25519",
	"ecdsa-sha2-nistp256",
	"ecdsa-sha2-nistp384",
	"ecdsa-sha2-nistp521",
}

// Config is the portal configuration for one tenancy.
type Config struct {
	// Tenancy names the Hetzner Cloud project. It is used for labels only.
	Tenancy string `yaml:"tenancy"`
	// Username owns the SSH key and is recorded on created machines.
	Username string `yaml:"username,omitempty"`
	// Location is the datacenter new machines are placed in. Empty lets
	// Hetzner choose.
	Location string `yaml:"location,omitempty"`

	Apps    AppsConfig    `yaml:"apps,omitempty"`
	SSH     SSHConfig     `yaml:"ssh,omitempty"`
	Metrics MetricsConfig `yaml:"metrics,omitempty"`
	Log     LogConfig     `yaml:"log,omitempty"`

	// HCloudToken is read from HCLOUD_TOKEN and never from the file.
	HCloudToken string `yaml:"-"`
}

// AppsConfig enables the web console and desktop for new machines.
type AppsConfig struct {
	Enabled             bool   `yaml:"enabled"`
	ProxySSHDHost       string `yaml:"proxy_sshd_host,omitempty"`
	ProxySSHDPort       int    `yaml:"proxy_sshd_port,omitempty"`
	PostDeployScriptURL string `yaml:"post_deploy_script_url,omitempty"`
}

// SSHConfig is the tenancy's SSH key policy.
type SSHConfig struct {
	AllowedKeyTypes []string `yaml:"allowed_key_types,omitempty"`
	RSAMinBits      int      `yaml:"rsa_min_bits,omitempty"`
	// CanUpdate lets users register keys from the portal. Nil means true.
	CanUpdate      *bool  `yaml:"can_update,omitempty"`
	PrivateKeyPath string `yaml:"private_key_path,omitempty"`
}

// MetricsConfig controls the optional Prometheus listener.
type MetricsConfig struct {
	ListenAddress string `yaml:"listen_address,omitempty"`
}

// LogConfig controls where the interactive portal logs to.
type LogConfig struct {
	File      string `yaml:"file,omitempty"`
	Verbosity int    `yaml:"verbosity,omitempty"`
}

// ApplyDefaults fills every unset field with its default.
func (c *Config) ApplyDefaults() {
	if c.Username == "" {
		c.Username = os.Getenv("USER")
	}
	if c.Tenancy == "" {
		c.Tenancy = "default"
	}
	if c.Apps.Enabled && c.Apps.ProxySSHDPort == 0 {
		c.Apps.ProxySSHDPort = DefaultProxySSHDPort
	}
	if len(c.SSH.AllowedKeyTypes) == 0 {
		c.SSH.AllowedKeyTypes = append([]string(nil), DefaultAllowedKeyTypes...)
	}
	if c.SSH.RSAMinBits == 0 {
		c.SSH.RSAMinBits = DefaultRSAMinBits
	}
	if c.SSH.CanUpdate == nil {
		canUpdate := true
		c.SSH.CanUpdate = &canUpdate
	}
	if c.SSH.PrivateKeyPath == "" {
		c.SSH.PrivateKeyPath = DefaultPrivateKeyPath
	}
}

// Capabilities derives the tenancy's feature flags. Apps are supported only
// when enabled and a post-deploy script is configured.
func (c *Config) Capabilities() machine.Capabilities {
	return machine.Capabilities{
		SupportsApps: c.Apps.Enabled && c.Apps.PostDeployScriptURL != "",
	}
}

// KeyUpdatesAllowed reports whether users may register SSH keys.
func (c *Config) KeyUpdatesAllowed() bool {
	return c.SSH.CanUpdate == nil || *c.SSH.CanUpdate
}

// PrivateKeyPath returns the private key path with a leading ~ expanded.
func (c *Config) PrivateKeyPath() string {
	return ExpandHome(c.SSH.PrivateKeyPath)
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
