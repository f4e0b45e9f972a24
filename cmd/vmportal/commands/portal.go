package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/vmportal/cmd/vmportal/handlers"
)

// Portal returns the command that opens the interactive portal.
func Portal() *cobra.Command {
	return &cobra.Command{
		Use:   "portal",
		Short: "Open the interactive portal",
		Long: `Open the interactive portal.

The portal shows the image and size catalogs of the tenancy and a
"New machine" trigger. Opening it checks for your SSH key first and offers
to register one when it is missing. It needs an interactive terminal; use
'vmportal create' in scripts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Portal(cmd.Context(), configPath)
		},
	}
}
