package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/vmportal/cmd/vmportal/handlers"
	"github.com/imamik/vmportal/internal/config"
)

// Init returns the command for interactively creating a tenancy configuration.
//
// Flags:
//
//	--output, -o: Path to output file (default "vmportal.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a portal configuration",
		Long: `Interactively create a portal configuration file.

This command guides you through configuring the portal for one tenancy.
It will ask about:

  - Tenancy identity (name, user and location)
  - Web console support and its proxy
  - SSH key policy (self-service keys and minimum RSA size)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultConfigFilename, "Output file path")

	return cmd
}
