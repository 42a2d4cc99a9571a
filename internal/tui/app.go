package tui

import (
	"stocktake-cli/internal/scanner"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive TUI against the given data dir. A failing
// initial load is not fatal to the program: the app starts in the load-error
// view and the user can retry after fixing the data file.
func Run(dir string) error {
	applyColorProfilePreference()

	m := newAppModel(dir, &scanner.CommandDecoder{})
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
