package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"chromaflow/internal/ui"
	"chromaflow/internal/wallpaper"
)

// pickCmd represents the pick command
var pickCmd = &cobra.Command{
	Use:   "pick [dir]",
	Short: "Browse wallpapers and theme from the chosen one",
	Long: `Browse the images in a wallpaper directory, pick one, and run the
apply pipeline on it.

Without an argument the configured wallpaper_dir is browsed. Use / to
filter the list as you type.

Examples:
  chromaflow pick ~/Pictures/wallpapers
  chromaflow pick`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPick,
}

func init() {
	addInstallFlags(pickCmd)
	pickCmd.Flags().StringVar(&applyBackend, "backend", "", "palette backend (auto, pywal, builtin)")
	pickCmd.Flags().BoolVar(&applyNoNotify, "no-notify", false, "skip the desktop notification")
}

// runPick executes the pick command.
func runPick(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	dir := cfg.WallpaperDir
	if len(args) == 1 {
		dir = args[0]
	}
	if dir == "" {
		return fmt.Errorf("no wallpaper directory given and no wallpaper_dir configured")
	}

	if !ui.InteractiveTerminal() {
		return fmt.Errorf("no terminal for the wallpaper browser")
	}

	files, err := wallpaper.ScanDirectory(dir)
	if err != nil {
		return err
	}

	chosen, ok, err := ui.RunBrowser(dir, files)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("No wallpaper selected")
		return nil
	}

	return runPipeline(cmd.Context(), cfg, chosen, true)
}
