// Package cli provides the command-line interface for Chromaflow.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"chromaflow/internal/colour"
	"chromaflow/internal/config"
	"chromaflow/internal/history"
	"chromaflow/internal/marble"
	"chromaflow/internal/palette"
	"chromaflow/internal/session"
	"chromaflow/internal/ui"
	"chromaflow/internal/wallpaper"
)

var (
	// Apply command flags, shared with the other commands that run the
	// apply pipeline (pick, watch).
	applyColorsPath       string
	applyMode             string
	applyName             string
	applyColor            string
	applyBackend          string
	applyFilled           bool
	applyPanelDefaultSize bool
	applyPanelNoPill      bool
	applyPanelTextColor   bool
	applyOpaque           bool
	applyLaunchpad        bool
	applyNoNotify         bool
	applyDryRun           bool
)

// applyCmd represents the apply command
var applyCmd = &cobra.Command{
	Use:   "apply <wallpaper>",
	Short: "Create and install a Marble theme from a wallpaper",
	Long: `Create and install a Marble theme from a wallpaper's colours.

The wallpaper may be a file, a directory (a random image is picked) or
an HTTPS URL (downloaded into the wallpaper cache). Chromaflow extracts
a palette, lets you pick a colour, updates the Marble colors.json and
runs the bundled install script.

Examples:
  # Pick a colour from the wallpaper's palette interactively
  chromaflow apply ~/Pictures/sunset.jpg

  # Skip the picker
  chromaflow apply --color '#336699' sunset.jpg

  # Light mode with vibrant accents
  chromaflow apply --mode light --filled sunset.jpg

  # Show what would happen without touching anything
  chromaflow apply --dry-run --color '#336699' sunset.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	addInstallFlags(applyCmd)
	applyCmd.Flags().StringVar(&applyColor, "color", "", "hex colour to use, skipping the palette picker")
	applyCmd.Flags().StringVar(&applyBackend, "backend", "", "palette backend (auto, pywal, builtin)")
	applyCmd.Flags().BoolVar(&applyNoNotify, "no-notify", false, "skip the desktop notification")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "print the installer invocation without running it")
}

// addInstallFlags registers the Marble installation flags shared by every
// command that ends in a theme install.
func addInstallFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&applyColorsPath, "colors-path", "", "path to the Marble colors.json (default ./colors.json)")
	cmd.Flags().StringVar(&applyMode, "mode", "", "theme mode: light or dark (default dark)")
	cmd.Flags().StringVar(&applyName, "name", "", "theme name (default <wallpaper>-<hex>)")
	cmd.Flags().BoolVar(&applyFilled, "filled", false, "use more vibrant accent colours")
	cmd.Flags().BoolVar(&applyPanelDefaultSize, "panel-default-size", false, "keep the default panel size")
	cmd.Flags().BoolVar(&applyPanelNoPill, "panel-no-pill", false, "remove the panel button background")
	cmd.Flags().BoolVar(&applyPanelTextColor, "panel-text-color", false, "set the panel text colour")
	cmd.Flags().BoolVarP(&applyOpaque, "opaque", "O", false, "make the panel background opaque")
	cmd.Flags().BoolVar(&applyLaunchpad, "launchpad", false, "use the Launchpad icon for Show Apps")
	cmd.MarkFlagsMutuallyExclusive("panel-default-size", "panel-no-pill", "panel-text-color")
}

// runApply executes the apply command.
func runApply(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	return runPipeline(cmd.Context(), cfg, args[0], true)
}

// runPipeline resolves a wallpaper, chooses a colour and installs the
// matching Marble theme. Interactive runs show the palette picker;
// non-interactive ones fall back to the dominant palette colour.
func runPipeline(ctx context.Context, cfg config.Config, wallpaperArg string, interactive bool) error {
	logger := newLogger(cfg)

	// Flags override the config file, which overrides built-in defaults.
	colorsPath := applyColorsPath
	if colorsPath == "" {
		colorsPath = cfg.Marble.ColorsPath
	}
	mode := applyMode
	if mode == "" {
		mode = cfg.Theme.Mode
	}
	backend := applyBackend
	if backend == "" {
		backend = cfg.Palette.Backend
	}
	filled := applyFilled || cfg.Theme.Filled
	opaque := applyOpaque || cfg.Theme.Opaque
	noNotify := applyNoNotify || cfg.NoNotify

	if !marble.IsValidMode(mode) {
		return fmt.Errorf("invalid theme mode: %q (valid modes: %v)", mode, marble.ValidModes())
	}

	resolved, err := wallpaper.Resolve(ctx, wallpaperArg)
	if err != nil {
		return fmt.Errorf("failed to resolve wallpaper: %w", err)
	}
	if resolved != wallpaperArg {
		logger.Debug("wallpaper resolved", "from", wallpaperArg, "to", resolved)
	}
	if globalVerbose {
		if w, h, err := wallpaper.Dimensions(resolved); err == nil {
			fmt.Fprintf(os.Stderr, "Wallpaper: %s (%dx%d)\n", resolved, w, h)
		} else {
			fmt.Fprintf(os.Stderr, "Wallpaper: %s\n", resolved)
		}
	}

	rgb, ok, err := chooseColour(ctx, resolved, palette.Backend(backend), interactive, logger)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("No colour selected")
		return nil
	}

	hsl, err := colour.Convert(rgb.Hex())
	if err != nil {
		return err
	}
	params := colour.Derive(hsl)

	if globalVerbose {
		swatch := colour.ColourPreviewWithText(rgb, rgb.Hex(), 9)
		fmt.Fprintf(os.Stderr, "Selected %s %s %s\n", swatch, hsl, params)
	}

	name := applyName
	if name == "" {
		name = marble.DefaultThemeName(resolved, rgb)
	}

	opts := marble.Options{
		Params:           params,
		Name:             name,
		Mode:             mode,
		Filled:           filled,
		PanelDefaultSize: applyPanelDefaultSize,
		PanelNoPill:      applyPanelNoPill,
		PanelTextColor:   applyPanelTextColor,
		Opaque:           opaque,
		Launchpad:        applyLaunchpad,
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	if applyDryRun {
		summary, err := dryRunSummary(opts, colorsPath)
		if err != nil {
			return err
		}
		fmt.Print(summary)
		return nil
	}

	dist, err := marble.NewDistribution(cfg.Marble.SourcesDir, logger)
	if err != nil {
		return err
	}
	scriptDir, err := dist.ScriptDir()
	if err != nil {
		return fmt.Errorf("%w (run 'chromaflow theme install' first)", err)
	}

	if !session.ShellRunning() {
		logger.Warn("GNOME Shell does not appear to be running; the theme will install but cannot be activated")
	}

	if err := marble.NewConfig(colorsPath).Update(params); err != nil {
		return err
	}

	installer := marble.NewInstaller(scriptDir, logger)
	installer.SetPython(cfg.Marble.Python)
	if err := installer.Install(ctx, opts); err != nil {
		return err
	}

	fmt.Print(marble.ExtensionsHint(name, mode))

	recordHistory(ctx, logger, history.Entry{
		Wallpaper:  resolved,
		Hex:        rgb.Hex(),
		Hue:        params.Hue,
		Saturation: params.Saturation,
		Name:       name,
		Mode:       mode,
	})

	if !noNotify {
		err := session.Notify(session.Notification{
			Summary: "Chromaflow",
			Body:    fmt.Sprintf("Theme %s installed", name),
		})
		if err != nil {
			logger.Debug("notification failed", "error", err)
		}
	}

	return nil
}

// chooseColour picks the theme colour: --color wins, otherwise the
// extracted palette decides, via the picker or its dominant colour.
func chooseColour(ctx context.Context, wallpaperPath string, backend palette.Backend, interactive bool, logger hclog.Logger) (colour.RGB, bool, error) {
	if applyColor != "" {
		rgb, err := colour.ParseHex(applyColor)
		if err != nil {
			return colour.RGB{}, false, err
		}
		return rgb, true, nil
	}

	if !palette.IsValidBackend(backend) {
		return colour.RGB{}, false, fmt.Errorf("invalid palette backend: %q (valid backends: %v)", backend, palette.ValidBackends())
	}

	extractor, err := palette.NewExtractor(backend, logger)
	if err != nil {
		return colour.RGB{}, false, err
	}
	pal, err := extractor.Extract(ctx, wallpaperPath)
	if err != nil {
		return colour.RGB{}, false, fmt.Errorf("failed to extract palette: %w", err)
	}

	if !interactive {
		rgb, err := pal.Dominant()
		if err != nil {
			return colour.RGB{}, false, err
		}
		logger.Debug("using dominant palette colour", "hex", rgb.Hex())
		return rgb, true, nil
	}

	if !ui.InteractiveTerminal() {
		return colour.RGB{}, false, fmt.Errorf("no terminal for the palette picker; pass --color to select non-interactively")
	}

	return ui.RunPicker(pal)
}

// dryRunSummary shows what apply would write and run, without doing it.
func dryRunSummary(opts marble.Options, colorsPath string) (string, error) {
	payload := map[string]map[string]map[string]int{
		"colors": {
			"extracted": {
				"h": opts.Params.Hue,
				"s": opts.Params.Saturation,
			},
		},
	}
	data, err := json.MarshalIndent(payload, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to encode colours: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Would update %s with:\n%s\n", colorsPath, data)
	fmt.Fprintf(&b, "Would run: python %s\n", strings.Join(marble.BuildArgs(opts), " "))
	return b.String(), nil
}

// recordHistory stores the applied theme. History is best-effort: a
// missing database never fails an apply.
func recordHistory(ctx context.Context, logger hclog.Logger, entry history.Entry) {
	store, err := openHistory()
	if err != nil {
		logger.Debug("history unavailable", "error", err)
		return
	}
	defer store.Close()

	if err := store.Record(ctx, entry); err != nil {
		logger.Debug("failed to record history", "error", err)
	}
}
