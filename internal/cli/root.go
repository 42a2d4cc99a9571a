package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"stocktake-cli/internal/store"
	"stocktake-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir    string
	Pretty bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "stocktake",
		Short:        "Local-first inventory manager (TUI + CLI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  stocktake

  # Scriptable commands
  stocktake items list
  stocktake items add --name "Widget" --quantity 3 --barcode 4006381333931

  # What would scanning this code do?
  stocktake resolve 4006381333931
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("STOCKTAKE_DIR", ""), "Path to data dir (default: discover .stocktake upward from cwd)")
	cmd.PersistentFlags().BoolVar(&app.Pretty, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newItemsCmd(app))
	cmd.AddCommand(newResolveCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	dir, err := resolveDir(app)
	if err != nil {
		return err
	}
	return tui.Run(dir)
}

func resolveDir(app *App) (string, error) {
	if strings.TrimSpace(app.Dir) != "" {
		return app.Dir, nil
	}
	return store.DefaultDir()
}

func loadStore(app *App) (store.Store, *store.DB, error) {
	dir, err := resolveDir(app)
	if err != nil {
		return store.Store{}, nil, err
	}
	s := store.Store{Dir: dir}
	db, err := s.Load()
	if err != nil {
		return s, nil, err
	}
	return s, db, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeJSON(cmd *cobra.Command, app *App, v any) error {
	var (
		b   []byte
		err error
	)
	if app.Pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
