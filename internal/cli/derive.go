package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"chromaflow/internal/colour"
)

var (
	// Derive command flags
	deriveJSON bool
)

// deriveCmd represents the derive command
var deriveCmd = &cobra.Command{
	Use:   "derive <hex>",
	Short: "Derive Marble theme parameters from a hex colour",
	Long: `Derive the hue and saturation parameters the Marble installer expects
from a hex colour code.

The hue passes through unchanged; saturation is clamped to 30-100 so
accents stay visible even for washed-out colours.

Examples:
  chromaflow derive '#336699'
  chromaflow derive --json 336699`,
	Args: cobra.ExactArgs(1),
	RunE: runDerive,
}

func init() {
	deriveCmd.Flags().BoolVar(&deriveJSON, "json", false, "output as JSON")
}

// runDerive executes the derive command.
func runDerive(cmd *cobra.Command, args []string) error {
	hsl, err := colour.Convert(args[0])
	if err != nil {
		return err
	}
	params := colour.Derive(hsl)

	output, err := formatParams(params, deriveJSON)
	if err != nil {
		return err
	}

	fmt.Print(output)
	return nil
}

// formatParams renders theme parameters as text or JSON.
func formatParams(params colour.ThemeParams, asJSON bool) (string, error) {
	if asJSON {
		data, err := json.MarshalIndent(params, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode parameters: %w", err)
		}
		return string(data) + "\n", nil
	}
	return params.String() + "\n", nil
}
