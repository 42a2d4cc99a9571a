package cli

import (
	"context"

	"stocktake-cli/internal/capture"
	"stocktake-cli/internal/model"

	"github.com/spf13/cobra"
)

func newResolveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <code>",
		Short: "Show the create-or-update decision for a barcode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, db, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			target := capture.Resolve(args[0], db.Items)
			_ = s.AppendScanEvent(context.Background(), model.ScanEvent{
				Source: model.ScanSourceWedge,
				Code:   args[0],
				ItemID: target.Item.ID,
				Action: "resolve",
			})
			action := "update"
			if target.IsNew {
				action = "create"
			}
			return writeJSON(cmd, app, map[string]any{"data": map[string]any{
				"action": action,
				"item":   target.Item,
			}})
		},
	}
	return cmd
}
