package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/vmportal/cmd/vmportal/handlers"
)

// Images returns the command that lists the image catalog.
func Images() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "images",
		Short: "List the images machines can be created from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Images(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

// Sizes returns the command that lists the size catalog.
func Sizes() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "sizes",
		Short: "List the machine sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Sizes(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
