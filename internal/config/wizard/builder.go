package wizard

import (
	"strings"

	"github.com/imamik/vmportal/internal/config"
)

// BuildConfig creates a Config from the wizard result.
func BuildConfig(result *WizardResult) *config.Config {
	cfg := &config.Config{
		Tenancy:  strings.TrimSpace(result.Tenancy),
		Username: strings.TrimSpace(result.Username),
		Location: result.Location,
		SSH: config.SSHConfig{
			RSAMinBits: result.RSAMinBits,
			CanUpdate:  boolPtr(result.CanUpdateKeys),
		},
	}

	if result.AppsEnabled {
		cfg.Apps = config.AppsConfig{
			Enabled:             true,
			ProxySSHDHost:       strings.TrimSpace(result.ProxySSHDHost),
			ProxySSHDPort:       result.ProxySSHDPort,
			PostDeployScriptURL: strings.TrimSpace(result.PostDeployScriptURL),
		}
	}

	return cfg
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}
