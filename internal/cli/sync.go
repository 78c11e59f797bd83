package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newSyncCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Push local annotations to the remote service and pull remote ones back",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.open(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer app.Close()

			reconciler, cleanup, err := app.Reconciler(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			result := reconciler.Sync(cmd.Context())
			if !result.OK {
				return errors.New(result.Summary())
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, result.Summary())
			fmt.Fprintf(out, "  pushed: %d bookmarks, %d highlights, %d notes\n",
				result.Pushed.Bookmarks, result.Pushed.Highlights, result.Pushed.Notes)
			fmt.Fprintf(out, "  pulled: %d bookmarks, %d highlights, %d notes\n",
				result.Pulled.Bookmarks, result.Pulled.Highlights, result.Pulled.Notes)
			return nil
		},
	}
}
