package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/imamik/vmportal/internal/config"
	"github.com/imamik/vmportal/internal/config/wizard"
)

// Factory function variables for init - can be replaced in tests.
var (
	wizardFileExists       = wizard.FileExists
	wizardConfirmOverwrite = wizard.ConfirmOverwrite
	wizardRunWizard        = wizard.RunWizard
	wizardBuildConfig      = wizard.BuildConfig
	wizardWriteConfig      = wizard.WriteConfig
)

// Init runs the configuration wizard and writes the result to outputPath.
func Init(ctx context.Context, outputPath string) error {
	if wizardFileExists(outputPath) {
		overwrite, err := wizardConfirmOverwrite(outputPath)
		if err != nil {
			return fmt.Errorf("failed to confirm overwrite: %w", err)
		}
		if !overwrite {
			fmt.Println("Aborted.")
			return nil
		}
	}

	printWelcome()

	result, err := wizardRunWizard(ctx, os.Getenv("USER"))
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	cfg := wizardBuildConfig(result)
	if err := wizardWriteConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("vmportal - virtual machines on Hetzner Cloud")
	fmt.Println("============================================")
	fmt.Println()
	fmt.Println("This wizard creates the portal configuration for one tenancy.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Tenancy Summary")
	fmt.Println("---------------")
	fmt.Printf("  Tenancy:     %s\n", cfg.Tenancy)
	fmt.Printf("  User:        %s\n", cfg.Username)
	if cfg.Location != "" {
		fmt.Printf("  Location:    %s\n", cfg.Location)
	}
	if cfg.Apps.Enabled {
		fmt.Printf("  Web console: enabled (proxy %s:%d)\n", cfg.Apps.ProxySSHDHost, cfg.Apps.ProxySSHDPort)
	} else {
		fmt.Println("  Web console: disabled")
	}
	if cfg.KeyUpdatesAllowed() {
		fmt.Println("  SSH keys:    users register their own")
	} else {
		fmt.Println("  SSH keys:    managed by administrators")
	}
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Println("  1. Set the Hetzner Cloud API token of the tenancy:")
	fmt.Println("     export HCLOUD_TOKEN=<your-token>")
	fmt.Println()
	fmt.Println("  2. Open the portal:")
	fmt.Printf("     vmportal --config %s\n", outputPath)
	fmt.Println()
}
