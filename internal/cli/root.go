// Package cli holds the command tree of the libraryhub binary.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrlokans/libraryhub/internal/config"
	"github.com/mrlokans/libraryhub/internal/entrypoint"
)

// NewRootCommand builds the command tree. Running the binary without a command starts the server.
func NewRootCommand(version string) *cobra.Command {
	serve := func(cmd *cobra.Command, args []string) {
		entrypoint.Run(config.NewConfig(), version)
	}

	root := &cobra.Command{
		Use:     "libraryhub",
		Short:   "Library and bookstore service",
		Version: version,
		Long: `LibraryHub serves the catalog, loans and sales of a small library and keeps each
profile's wishlist, activity log and intake drafts.

Configuration is read from the environment (and a .env file when present).`,
		Args:         cobra.NoArgs,
		Run:          serve,
		SilenceUsage: true,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			Args:  cobra.NoArgs,
			Run:   serve,
		},
		newImportDraftsCommand(),
		newSettingsCommand(),
	)
	return root
}

// openApp builds the application from the environment for one-shot commands.
func openApp() (*entrypoint.App, error) {
	return entrypoint.NewApp(config.NewConfig())
}
