// Package cli provides the command-line interface for Chromaflow.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"chromaflow/internal/config"
	"chromaflow/internal/version"
)

var (
	// Global flags
	globalVerbose  bool
	globalLogLevel string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "chromaflow",
		Short: "Create Marble shell themes from wallpaper colours",
		Long: `Chromaflow extracts colour palettes from wallpapers and installs matching
Marble themes for GNOME Shell.

Pick a colour from the extracted palette, or pass one directly, and
Chromaflow derives the hue and saturation the Marble installer needs,
updates its colors.json and runs the install script for you.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// normalizeFlags accepts underscores in flag names so flags can be spelled
// the same way as their config file keys (--log_level, --no_notify).
func normalizeFlags(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func init() {
	rootCmd.SetGlobalNormalizationFunc(normalizeFlags)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&globalLogLevel, "log-level", "", "log level (trace, debug, info, warn, error)")

	// Set version template
	rootCmd.SetVersionTemplate(version.String() + "\n")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "output version information as JSON")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(deriveCmd)
	rootCmd.AddCommand(paletteCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(watchCmd)
}

// newLogger builds the logger handed to subprocess-running components.
// --verbose forces debug, otherwise --log-level beats the config file.
func newLogger(cfg config.Config) hclog.Logger {
	level := cfg.LogLevel
	if globalLogLevel != "" {
		level = globalLogLevel
	}

	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}
	if globalVerbose {
		lvl = hclog.Debug
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "chromaflow",
		Output: os.Stderr,
		Level:  lvl,
	})
}

// loadConfig reads the config file, falling back to defaults on error.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}
	return cfg
}

// version command flags
var versionJSON bool

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionJSON {
			out, err := json.MarshalIndent(version.Get(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode version information: %w", err)
			}
			fmt.Println(string(out))
			return nil
		}
		fmt.Println(version.String())
		return nil
	},
}
