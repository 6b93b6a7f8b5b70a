package cli

import (
	"strings"
	"testing"

	"chromaflow/internal/colour"
)

func TestFormatParams(t *testing.T) {
	params := colour.ThemeParams{Hue: 210, Saturation: 68}

	tests := []struct {
		name   string
		asJSON bool
		want   []string
	}{
		{"text", false, []string{"hue=210 sat=68"}},
		{"json", true, []string{`"hue": 210`, `"saturation": 68`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatParams(params, tt.asJSON)
			if err != nil {
				t.Fatalf("formatParams() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("formatParams() = %q, missing %q", got, want)
				}
			}
		})
	}
}

func TestRunDeriveRejectsMalformed(t *testing.T) {
	if err := runDerive(deriveCmd, []string{"#12345"}); err == nil {
		t.Fatal("runDerive(#12345) error = nil, want malformed colour error")
	}
}
