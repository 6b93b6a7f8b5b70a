package marble

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"chromaflow/internal/colour"
)

// Theme modes understood by the Marble install script.
const (
	ModeLight = "light"
	ModeDark  = "dark"
)

// ValidModes returns the theme modes the installer accepts.
func ValidModes() []string {
	return []string{ModeLight, ModeDark}
}

// IsValidMode checks if the given mode is understood by the installer.
func IsValidMode(mode string) bool {
	for _, valid := range ValidModes() {
		if mode == valid {
			return true
		}
	}
	return false
}

// Options configures a Marble theme installation.
type Options struct {
	// Params are the extracted theme parameters to install.
	Params colour.ThemeParams

	// Name is the theme name passed to the install script.
	Name string

	// Mode is the theme mode, "light" or "dark".
	Mode string

	// Filled selects more vibrant accent colours.
	Filled bool

	// PanelDefaultSize keeps the default panel size.
	// Mutually exclusive with PanelNoPill and PanelTextColor.
	PanelDefaultSize bool

	// PanelNoPill removes the panel button background.
	PanelNoPill bool

	// PanelTextColor sets the panel text colour.
	PanelTextColor bool

	// Opaque makes the background colour opaque.
	Opaque bool

	// Launchpad swaps the Show Apps icon for the macOS Launchpad icon.
	Launchpad bool
}

// Validate checks the options for consistency before invoking the installer.
func (o Options) Validate() error {
	if o.Name == "" {
		return fmt.Errorf("theme name cannot be empty")
	}
	if !IsValidMode(o.Mode) {
		return fmt.Errorf("invalid theme mode: %q (valid modes: %v)", o.Mode, ValidModes())
	}

	panelFlags := 0
	for _, set := range []bool{o.PanelDefaultSize, o.PanelNoPill, o.PanelTextColor} {
		if set {
			panelFlags++
		}
	}
	if panelFlags > 1 {
		return fmt.Errorf("panel options are mutually exclusive")
	}

	return nil
}

// DefaultThemeName derives a theme name from the wallpaper filename and the
// selected colour, e.g. "sunset-#aa33cc".
func DefaultThemeName(wallpaperPath string, rgb colour.RGB) string {
	stem := strings.TrimSuffix(filepath.Base(wallpaperPath), filepath.Ext(wallpaperPath))
	return fmt.Sprintf("%s-%s", stem, rgb.Hex())
}

// BuildArgs returns the install script argument list for the given options.
// Flag order matches what the Marble install script documents.
func BuildArgs(opts Options) []string {
	args := []string{
		"install.py",
		fmt.Sprintf("--hue=%d", opts.Params.Hue),
		fmt.Sprintf("--sat=%d", opts.Params.Saturation),
		fmt.Sprintf("--name=%s", opts.Name),
		fmt.Sprintf("--mode=%s", opts.Mode),
	}

	if opts.Filled {
		args = append(args, "--filled")
	}
	if opts.PanelDefaultSize {
		args = append(args, "--panel_default_size")
	}
	if opts.PanelNoPill {
		args = append(args, "--panel_no_pill")
	}
	if opts.PanelTextColor {
		args = append(args, "--panel_text_color")
	}
	if opts.Opaque {
		args = append(args, "--opaque")
	}
	if opts.Launchpad {
		args = append(args, "--launchpad")
	}

	return args
}

// Installer runs the Marble install script.
type Installer struct {
	// dir is the directory holding install.py.
	dir string

	// python is the interpreter used to run the install script.
	python string

	logger hclog.Logger
}

// NewInstaller creates an Installer for the Marble sources in dir.
func NewInstaller(dir string, logger hclog.Logger) *Installer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Installer{
		dir:    dir,
		python: "python",
		logger: logger,
	}
}

// SetPython overrides the interpreter used to run the install script.
// An empty value keeps the default.
func (i *Installer) SetPython(python string) {
	if python != "" {
		i.python = python
	}
}

// Install runs the Marble install script with the given options.
func (i *Installer) Install(ctx context.Context, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	args := BuildArgs(opts)
	i.logger.Debug("running marble installer", "dir", i.dir, "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, i.python, args...) // #nosec G204 - Arguments built from validated options
	cmd.Dir = i.dir

	output, err := cmd.CombinedOutput()
	if err != nil {
		if len(output) > 0 {
			i.logger.Debug("marble installer output", "output", string(output))
		}
		return fmt.Errorf("marble installer failed: %w", err)
	}

	return nil
}

// ExtensionsHint returns the manual steps to activate an installed theme.
// GNOME picks themes up through the Extensions app, so the final switch
// stays with the user.
func ExtensionsHint(name, mode string) string {
	var b strings.Builder
	b.WriteString("\nTheme created successfully!\n")
	b.WriteString("\nTo apply the theme:\n")
	b.WriteString("1. Open Extensions app\n")
	b.WriteString("2. Go to 'User Themes' settings\n")
	fmt.Fprintf(&b, "3. Select 'Marble-%s-%s' from the dropdown\n", name, mode)
	b.WriteString("4. Give Chromaflow a star on GitHub if you liked it!\n")
	return b.String()
}
