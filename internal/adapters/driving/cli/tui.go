package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/datalex/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for datalex.

Controls:
  ↑/k, ↓/j   Move the cursor
  space      Select the row, a selects the page, A clears
  enter      Open the row in the content viewer
  ←/h, →/l   Previous / next page
  f          Fragment the selected texts
  d          Delete the selected fragments
  o, i       Add documents (picker / typed paths)
  r          Refresh
  ?          Help
  q          Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := newTUIApp()
	if err != nil {
		return err
	}
	app.WithContext(cmd.Context())

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

func newTUIApp() (*tui.App, error) {
	ports := &tui.Ports{
		Store:    fragmentStore,
		Pages:    paginator,
		Jobs:     jobController,
		Settings: settingsService,
		Changes:  changeNotifier,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return nil, fmt.Errorf("failed to create TUI: %w", err)
	}
	return app, nil
}
