package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"chromaflow/internal/colour"
	"chromaflow/internal/palette"
	"chromaflow/internal/wallpaper"
)

var (
	// Palette command flags
	paletteBackend   string
	paletteJSON      bool
	paletteNoPreview bool
)

// paletteCmd represents the palette command
var paletteCmd = &cobra.Command{
	Use:   "palette <wallpaper>",
	Short: "Extract and print a wallpaper's colour palette",
	Long: `Extract a sixteen colour palette from a wallpaper and print it with
truecolour swatches.

The wallpaper may be a file, a directory (a random image is picked) or
an HTTPS URL. The pywal backend shells out to wal when available; the
builtin backend clusters pixels itself.

Examples:
  # Print the palette with swatches
  chromaflow palette wallpaper.jpg

  # Force the builtin extractor
  chromaflow palette --backend builtin wallpaper.jpg

  # JSON output for scripting
  chromaflow palette --json wallpaper.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runPalette,
}

func init() {
	paletteCmd.Flags().StringVar(&paletteBackend, "backend", "", "palette backend (auto, pywal, builtin)")
	paletteCmd.Flags().BoolVar(&paletteJSON, "json", false, "output as JSON")
	paletteCmd.Flags().BoolVar(&paletteNoPreview, "no-preview", false, "print hex codes without colour swatches")
}

// runPalette executes the palette command.
func runPalette(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	logger := newLogger(cfg)

	backend := paletteBackend
	if backend == "" {
		backend = cfg.Palette.Backend
	}
	if !palette.IsValidBackend(palette.Backend(backend)) {
		return fmt.Errorf("invalid palette backend: %q (valid backends: %v)", backend, palette.ValidBackends())
	}

	ctx := cmd.Context()
	resolved, err := wallpaper.Resolve(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve wallpaper: %w", err)
	}

	extractor, err := palette.NewExtractor(palette.Backend(backend), logger)
	if err != nil {
		return err
	}
	pal, err := extractor.Extract(ctx, resolved)
	if err != nil {
		return fmt.Errorf("failed to extract palette: %w", err)
	}

	if paletteJSON {
		data, err := pal.ToJSON()
		if err != nil {
			return fmt.Errorf("failed to encode palette: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Print(formatSwatches(pal, !paletteNoPreview))
	return nil
}

// formatSwatches renders the palette as numbered swatch lines, matching
// the indices the picker shows.
func formatSwatches(pal *palette.Palette, preview bool) string {
	var b strings.Builder
	for i, c := range pal.Colours {
		if preview {
			fmt.Fprintf(&b, "%2d  %s\n", i, colour.FormatColourWithPreview(c, 8))
		} else {
			fmt.Fprintf(&b, "%2d  %s\n", i, c.Hex())
		}
	}
	return b.String()
}
