package colour

import "testing"

func TestDerive(t *testing.T) {
	tests := []struct {
		name string
		hsl  HSL
		want ThemeParams
	}{
		{
			name: "saturation below floor is raised",
			hsl:  HSL{H: 120, S: 0, L: 50},
			want: ThemeParams{Hue: 120, Saturation: 30},
		},
		{
			name: "saturation just below floor",
			hsl:  HSL{H: 45, S: 29, L: 70},
			want: ThemeParams{Hue: 45, Saturation: 30},
		},
		{
			name: "saturation at floor passes through",
			hsl:  HSL{H: 45, S: 30, L: 70},
			want: ThemeParams{Hue: 45, Saturation: 30},
		},
		{
			name: "saturation in range passes through",
			hsl:  HSL{H: 200, S: 65, L: 40},
			want: ThemeParams{Hue: 200, Saturation: 65},
		},
		{
			name: "saturation at ceiling passes through",
			hsl:  HSL{H: 0, S: 100, L: 50},
			want: ThemeParams{Hue: 0, Saturation: 100},
		},
		{
			name: "out of range saturation is capped",
			hsl:  HSL{H: 10, S: 150, L: 50},
			want: ThemeParams{Hue: 10, Saturation: 100},
		},
		{
			name: "negative saturation is raised to floor",
			hsl:  HSL{H: 10, S: -5, L: 50},
			want: ThemeParams{Hue: 10, Saturation: 30},
		},
		{
			name: "hue 360 passes through unchanged",
			hsl:  HSL{H: 360, S: 100, L: 50},
			want: ThemeParams{Hue: 360, Saturation: 100},
		},
		{
			name: "out of range hue passes through unchanged",
			hsl:  HSL{H: 720, S: 50, L: 50},
			want: ThemeParams{Hue: 720, Saturation: 50},
		},
		{
			name: "negative hue passes through unchanged",
			hsl:  HSL{H: -45, S: 50, L: 50},
			want: ThemeParams{Hue: -45, Saturation: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Derive(tt.hsl); got != tt.want {
				t.Errorf("Derive(%+v) = %+v, want %+v", tt.hsl, got, tt.want)
			}
		})
	}
}

func TestDeriveHuePassThrough(t *testing.T) {
	for h := -360; h <= 720; h += 15 {
		got := Derive(HSL{H: h, S: 50, L: 50})
		if got.Hue != h {
			t.Errorf("Derive().Hue = %d, want %d", got.Hue, h)
		}
	}
}

func TestDeriveIdempotent(t *testing.T) {
	tests := []struct {
		name string
		hsl  HSL
	}{
		{name: "low saturation", hsl: HSL{H: 15, S: 2, L: 90}},
		{name: "mid saturation", hsl: HSL{H: 200, S: 55, L: 40}},
		{name: "full saturation", hsl: HSL{H: 300, S: 100, L: 50}},
		{name: "over-range saturation", hsl: HSL{H: 300, S: 400, L: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := Derive(tt.hsl)
			twice := Derive(once.HSL())
			if twice != once {
				t.Errorf("Derive(Derive(x)) = %+v, want %+v", twice, once)
			}
		})
	}
}

func TestDeriveFromConvert(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want ThemeParams
	}{
		{
			name: "saturated red keeps saturation",
			hex:  "#FF0000",
			want: ThemeParams{Hue: 0, Saturation: 100},
		},
		{
			name: "grey is lifted to the floor",
			hex:  "#808080",
			want: ThemeParams{Hue: 0, Saturation: 30},
		},
		{
			name: "washed-out blue is lifted to the floor",
			hex:  "#767a82",
			want: ThemeParams{Hue: 220, Saturation: 30},
		},
		{
			name: "steel blue keeps saturation",
			hex:  "#336699",
			want: ThemeParams{Hue: 210, Saturation: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hsl, err := Convert(tt.hex)
			if err != nil {
				t.Fatalf("Convert(%q) error = %v", tt.hex, err)
			}
			if got := Derive(hsl); got != tt.want {
				t.Errorf("Derive(Convert(%q)) = %+v, want %+v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestThemeParamsString(t *testing.T) {
	p := ThemeParams{Hue: 210, Saturation: 68}
	if got, want := p.String(), "hue=210 sat=68"; got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}
