package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/vmportal/cmd/vmportal/handlers"
)

// SSHKey returns the parent command for managing the user's SSH key.
func SSHKey() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ssh-key",
		Short: "Manage your SSH key",
		Long: `Manage the SSH key injected into your machines.

Each user has one key in the tenancy, named after the username. Setting
or generating a key replaces the existing one.`,
	}

	cmd.AddCommand(sshKeyShow())
	cmd.AddCommand(sshKeySet())
	cmd.AddCommand(sshKeyGenerate())

	return cmd
}

func sshKeyShow() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show your registered SSH key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.SSHKeyShow(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func sshKeySet() *cobra.Command {
	return &cobra.Command{
		Use:     "set <public-key-file>",
		Short:   "Register an existing public key",
		Example: "  vmportal ssh-key set ~/.ssh/id_ed25519.pub",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.SSHKeySet(cmd.Context(), configPath, args[0])
		},
	}
}

func sshKeyGenerate() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new RSA key pair and register it",
		Long: `Generate a new RSA key pair and register its public key.

The private key is written to --out, or to ssh.private_key_path from the
config. Existing files are never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.SSHKeyGenerate(cmd.Context(), configPath, outPath)
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Private key path (default: ssh.private_key_path)")
	return cmd
}
