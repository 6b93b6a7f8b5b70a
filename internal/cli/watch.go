package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"chromaflow/internal/wallpaper"
	"chromaflow/internal/watch"
)

var (
	// Watch command flags
	watchDebounce time.Duration
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch <wallpaper>",
	Short: "Re-apply the theme when the wallpaper changes",
	Long: `Watch a wallpaper file and re-run the apply pipeline whenever it
changes, so a rotated wallpaper keeps the theme in sync.

Watching never shows the picker: each run uses --color when given,
otherwise the wallpaper's dominant palette colour.

Examples:
  chromaflow watch ~/Pictures/current.jpg
  chromaflow watch --color '#336699' current.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	addInstallFlags(watchCmd)
	watchCmd.Flags().StringVar(&applyColor, "color", "", "hex colour to use for every re-apply")
	watchCmd.Flags().StringVar(&applyBackend, "backend", "", "palette backend (auto, pywal, builtin)")
	watchCmd.Flags().BoolVar(&applyNoNotify, "no-notify", false, "skip the desktop notifications")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "delay after the last change before re-applying")
}

// runWatch executes the watch command.
func runWatch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	logger := newLogger(cfg)

	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to access wallpaper: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("watch needs a wallpaper file, not a directory")
	}
	// Fail before the watch loop if the file is not a decodable image.
	if err := wallpaper.ValidatePath(path); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Theme once up front so the watch starts from a matching state.
	if err := runPipeline(ctx, cfg, path, false); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Watching %s\n", path)
	w := watch.New(path, watchDebounce, logger)
	err = w.Run(ctx, func(ctx context.Context) error {
		return runPipeline(ctx, cfg, path, false)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
