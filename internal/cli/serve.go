package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrlokans/dailyword/internal/entrypoint"
)

func newServeCmd(opts *rootOptions, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API with the sync and reminder schedulers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entrypoint.Run(opts.config(), version)
			return nil
		},
	}
}
