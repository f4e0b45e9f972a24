// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/vmportal/cmd/vmportal/handlers"
)

// configPath is bound to the persistent --config flag.
var configPath string

// Root returns the root command for the vmportal CLI.
//
// Without a subcommand it opens the interactive portal.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vmportal",
		Short: "Self-service virtual machines on Hetzner Cloud",
		Long: `vmportal lets the members of a Hetzner Cloud tenancy create virtual machines.

Run without a subcommand to open the interactive portal. Machines are
created with your registered SSH key; the portal asks you to register
one first if none exists.

The tenancy is configured in vmportal.yaml (see 'vmportal init') and the
API token is read from HCLOUD_TOKEN.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Portal(cmd.Context(), configPath)
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: nearest vmportal.yaml)")

	// Core commands
	cmd.AddCommand(Portal())
	cmd.AddCommand(Create())
	cmd.AddCommand(Images())
	cmd.AddCommand(Sizes())
	cmd.AddCommand(SSHKey())

	// Utility commands
	cmd.AddCommand(Init())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
