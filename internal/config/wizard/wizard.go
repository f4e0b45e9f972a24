package wizard

import (
	"context"
	"fmt"
)

// WizardResult holds all the answers from the interactive wizard.
type WizardResult struct {
	Tenancy  string
	Username string
	Location string

	// Web console
	AppsEnabled         bool
	ProxySSHDHost       string
	ProxySSHDPort       int
	PostDeployScriptURL string

	// SSH key policy
	CanUpdateKeys bool
	RSAMinBits    int
}

// RunWizard runs the interactive configuration wizard. defaultUser
// pre-fills the username question.
func RunWizard(ctx context.Context, defaultUser string) (*WizardResult, error) {
	result := &WizardResult{
		Username:      defaultUser,
		CanUpdateKeys: true,
		RSAMinBits:    4096,
		ProxySSHDPort: 22,
	}

	if err := runIdentityGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("identity: %w", err)
	}

	if err := runAppsGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("web console: %w", err)
	}

	if result.AppsEnabled {
		if err := runProxyGroup(ctx, result); err != nil {
			return nil, fmt.Errorf("proxy: %w", err)
		}
	}

	if err := runSSHPolicyGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("ssh policy: %w", err)
	}

	return result, nil
}
