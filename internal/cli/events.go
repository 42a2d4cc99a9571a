package cli

import (
	"context"

	"stocktake-cli/internal/store"

	"github.com/spf13/cobra"
)

func newEventsCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show the scan audit log (newest first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDir(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			s := store.Store{Dir: dir}
			events, err := s.ReadScanEvents(context.Background(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeJSON(cmd, app, map[string]any{"data": map[string]any{"events": events}})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Max events to return (0 = all)")

	return cmd
}
