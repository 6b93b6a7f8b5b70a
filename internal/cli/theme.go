package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"chromaflow/internal/config"
	"chromaflow/internal/marble"
)

// themeCmd represents the theme command
var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Manage the Marble theme sources",
	Long:  `Manage the Marble shell theme sources the apply command installs from.`,
}

// themeInstallCmd represents the theme install command
var themeInstallCmd = &cobra.Command{
	Use:   "install <url|archive>",
	Short: "Install the Marble sources from a release archive",
	Long: `Download or read a Marble release archive and unpack it so apply can
run the bundled install script.

Remote sources must be HTTPS. Supported archives: .tar.gz, .tar.xz,
.tar.bz2 and .zip.

Examples:
  chromaflow theme install https://github.com/imarkoff/Marble-shell-theme/archive/refs/heads/main.tar.gz
  chromaflow theme install ~/Downloads/Marble-main.zip`,
	Args: cobra.ExactArgs(1),
	RunE: runThemeInstall,
}

func init() {
	themeCmd.AddCommand(themeInstallCmd)
}

// runThemeInstall executes the theme install command.
func runThemeInstall(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	logger := newLogger(cfg)

	dist, err := marble.NewDistribution(cfg.Marble.SourcesDir, logger)
	if err != nil {
		return err
	}

	source := args[0]
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		err = dist.InstallFromURL(cmd.Context(), source)
	} else {
		err = dist.InstallFromArchive(config.ExpandUser(source))
	}
	if err != nil {
		return err
	}

	scriptDir, err := dist.ScriptDir()
	if err != nil {
		return err
	}

	fmt.Printf("Marble sources installed to %s\n", scriptDir)
	return nil
}
