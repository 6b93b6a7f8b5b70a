package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"chromaflow/internal/history"
	"chromaflow/internal/marble"
	"chromaflow/internal/ui"
)

var (
	// History command flags
	historyLimit int
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect previously applied themes",
	Long:  `Inspect the record of previously applied themes.`,
}

// historyListCmd represents the history list command
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List applied themes",
	Long: `List previously applied themes, newest first.

Examples:
  chromaflow history list
  chromaflow history list --limit 5`,
	Args: cobra.NoArgs,
	RunE: runHistoryList,
}

// historyClearCmd represents the history clear command
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the recorded theme history",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

// historyRedoCmd represents the history redo command
var historyRedoCmd = &cobra.Command{
	Use:   "redo",
	Short: "Re-install the most recently applied theme",
	Long: `Re-run the Marble installer with the hue, saturation, name and mode
of the most recently recorded theme. Useful after reinstalling the
Marble sources or upgrading GNOME.`,
	Args: cobra.NoArgs,
	RunE: runHistoryRedo,
}

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum entries to show")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyRedoCmd)
}

// openHistory opens the history database at its default location.
func openHistory() (*history.Store, error) {
	path, err := history.DefaultPath()
	if err != nil {
		return nil, err
	}
	return history.Open(path)
}

// runHistoryList executes the history list command.
func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No themes recorded yet")
		return nil
	}

	fmt.Print(historyTable(entries, ui.TerminalWidth(100)))
	return nil
}

// runHistoryClear executes the history clear command.
func runHistoryClear(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Clear(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Removed %d entries\n", n)
	return nil
}

// runHistoryRedo executes the history redo command.
func runHistoryRedo(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	logger := newLogger(cfg)

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	entry, err := store.Last(cmd.Context())
	if errors.Is(err, history.ErrEmpty) {
		fmt.Println("No themes recorded yet")
		return nil
	}
	if err != nil {
		return err
	}

	opts := marble.Options{
		Params: entry.Params(),
		Name:   entry.Name,
		Mode:   entry.Mode,
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	dist, err := marble.NewDistribution(cfg.Marble.SourcesDir, logger)
	if err != nil {
		return err
	}
	scriptDir, err := dist.ScriptDir()
	if err != nil {
		return fmt.Errorf("%w (run 'chromaflow theme install' first)", err)
	}

	if err := marble.NewConfig(cfg.Marble.ColorsPath).Update(entry.Params()); err != nil {
		return err
	}

	installer := marble.NewInstaller(scriptDir, logger)
	installer.SetPython(cfg.Marble.Python)
	if err := installer.Install(cmd.Context(), opts); err != nil {
		return err
	}

	fmt.Print(marble.ExtensionsHint(entry.Name, entry.Mode))
	return nil
}

// historyTable renders history entries as a table fitted to the terminal.
func historyTable(entries []history.Entry, width int) string {
	table := NewTable([]string{"WHEN", "WALLPAPER", "COLOUR", "HUE", "SAT", "NAME", "MODE"})
	for _, e := range entries {
		table.AddRow([]string{
			e.AppliedAt.Local().Format("2006-01-02 15:04"),
			e.Wallpaper,
			e.Hex,
			strconv.Itoa(e.Hue),
			strconv.Itoa(e.Saturation),
			e.Name,
			e.Mode,
		})
	}
	table.FitWidth(width)
	return table.Render()
}
