package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"stocktake-cli/internal/model"
	"stocktake-cli/internal/query"

	"github.com/spf13/cobra"
)

func newItemsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Item commands",
	}

	cmd.AddCommand(newItemsListCmd(app))
	cmd.AddCommand(newItemsAddCmd(app))
	cmd.AddCommand(newItemsSetCmd(app))
	cmd.AddCommand(newItemsDeleteCmd(app))

	return cmd
}

func newItemsListCmd(app *App) *cobra.Command {
	var queryText string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items (optionally filtered)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			items := query.Filter(db.Items, queryText)
			return writeJSON(cmd, app, map[string]any{"data": map[string]any{"items": items}})
		},
	}

	cmd.Flags().StringVarP(&queryText, "query", "q", "", "Substring filter (name case-insensitive, barcode exact)")

	return cmd
}

func newItemsAddCmd(app *App) *cobra.Command {
	var name string
	var quantity int
	var barcode string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an item",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFields(name, quantity); err != nil {
				return writeErr(cmd, err)
			}
			s, _, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			it, err := s.Create(strings.TrimSpace(name), quantity, strings.TrimSpace(barcode))
			if err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendScanEvent(context.Background(), model.ScanEvent{
				Source: model.ScanSourceManual,
				Code:   it.Barcode,
				ItemID: it.ID,
				Action: "create",
			})
			return writeJSON(cmd, app, map[string]any{"data": map[string]any{"item": it}})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Item name (required)")
	cmd.Flags().IntVar(&quantity, "quantity", 1, "Quantity (positive integer)")
	cmd.Flags().StringVar(&barcode, "barcode", "", "Barcode (optional)")

	return cmd
}

func newItemsSetCmd(app *App) *cobra.Command {
	var name string
	var quantity int
	var barcode string

	cmd := &cobra.Command{
		Use:   "set <item-id>",
		Short: "Update fields on an existing item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, db, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			cur, ok := db.FindItem(id)
			if !ok {
				return writeErr(cmd, fmt.Errorf("item not found: %d", id))
			}

			next := *cur
			if cmd.Flags().Changed("name") {
				next.Name = strings.TrimSpace(name)
			}
			if cmd.Flags().Changed("quantity") {
				next.Quantity = quantity
			}
			if cmd.Flags().Changed("barcode") {
				next.Barcode = strings.TrimSpace(barcode)
			}
			if err := validateFields(next.Name, next.Quantity); err != nil {
				return writeErr(cmd, err)
			}

			updated, err := s.Update(next)
			if err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendScanEvent(context.Background(), model.ScanEvent{
				Source: model.ScanSourceManual,
				Code:   updated.Barcode,
				ItemID: updated.ID,
				Action: "update",
			})
			return writeJSON(cmd, app, map[string]any{"data": map[string]any{"item": updated}})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "New quantity")
	cmd.Flags().StringVar(&barcode, "barcode", "", "New barcode (empty clears it)")

	return cmd
}

func newItemsDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <item-id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, db, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			it, ok := db.FindItem(id)
			if !ok {
				return writeErr(cmd, fmt.Errorf("item not found: %d", id))
			}
			code := it.Barcode
			if err := s.DeleteByID(id); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendScanEvent(context.Background(), model.ScanEvent{
				Source: model.ScanSourceManual,
				Code:   code,
				ItemID: id,
				Action: "delete",
			})
			return writeJSON(cmd, app, map[string]any{"data": map[string]any{"deleted": id}})
		},
	}

	return cmd
}

// validateFields is the same contract the dialog enforces: non-empty name,
// positive integer quantity, barcode unvalidated.
func validateFields(name string, quantity int) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name is required")
	}
	if quantity <= 0 {
		return errors.New("quantity must be a positive integer")
	}
	return nil
}

func parseItemID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid item id: %q", s)
	}
	return id, nil
}
