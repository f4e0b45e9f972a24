package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/vmportal/cmd/vmportal/handlers"
)

// Create returns the command for requesting a machine without the TUI.
//
// Flags:
//
//	--name: Machine name (letters, digits, dots and hyphens)
//	--image: Image id from 'vmportal images'
//	--size: Size id from 'vmportal sizes'
//	--web-console: Enable the browser console
//	--desktop: Enable the graphical desktop (requires --web-console)
//	--json: Print the result as JSON
func Create() *cobra.Command {
	var opts handlers.CreateOptions

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a machine",
		Long: `Create a machine without the interactive portal.

The request is validated against the live image and size catalogs before
it is sent. Your registered SSH key is injected into the machine; in a
terminal you are asked to register one if it is missing.`,
		Example: `  vmportal create --name vm-01 --image 42 --size cx22
  vmportal create --name web.1 --image 42 --size cx32 --web-console --desktop`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Create(cmd.Context(), configPath, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "Machine name")
	cmd.Flags().StringVar(&opts.ImageID, "image", "", "Image id")
	cmd.Flags().StringVar(&opts.SizeID, "size", "", "Size id")
	cmd.Flags().BoolVar(&opts.WebConsole, "web-console", false, "Enable the web console")
	cmd.Flags().BoolVar(&opts.Desktop, "desktop", false, "Enable the desktop (requires --web-console)")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output as JSON")

	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("image")
	_ = cmd.MarkFlagRequired("size")

	return cmd
}
