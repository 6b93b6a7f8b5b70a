package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"chromaflow/internal/colour"
)

var (
	// Convert command flags
	convertJSON bool
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <hex>",
	Short: "Convert a hex colour to HSL",
	Long: `Convert a hex colour code to its HSL representation.

Accepts six hex digits with or without a leading #. Hue is reported in
degrees, saturation and lightness as percentages.

Examples:
  # Convert a colour
  chromaflow convert '#336699'

  # Same colour, without the #
  chromaflow convert 336699

  # JSON output
  chromaflow convert --json '#336699'`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().BoolVar(&convertJSON, "json", false, "output as JSON")
}

// runConvert executes the convert command.
func runConvert(cmd *cobra.Command, args []string) error {
	hsl, err := colour.Convert(args[0])
	if err != nil {
		return err
	}

	output, err := formatHSL(hsl, convertJSON)
	if err != nil {
		return err
	}

	fmt.Print(output)
	return nil
}

// formatHSL renders an HSL value as text or JSON.
func formatHSL(hsl colour.HSL, asJSON bool) (string, error) {
	if asJSON {
		data, err := json.MarshalIndent(hsl, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode HSL: %w", err)
		}
		return string(data) + "\n", nil
	}
	return hsl.String() + "\n", nil
}
