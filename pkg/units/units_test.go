package units

import (
	"math"
	"strings"
	"testing"
)

func TestByName(t *testing.T) {
	tests := []struct {
		name     string
		isMetric bool
		cmToUnit float64
	}{
		{"in", false, 1.0 / 2.54},
		{"ft", false, 1.0 / 30.48},
		{"mm", true, 10.0},
		{"cm", true, 1.0},
		{"m", true, 0.01},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ByName(tt.name)
			if err != nil {
				t.Fatalf("ByName(%q): %v", tt.name, err)
			}
			if cfg.IsMetric != tt.isMetric {
				t.Errorf("IsMetric = %v, want %v", cfg.IsMetric, tt.isMetric)
			}
			if math.Abs(cfg.CmToUnit-tt.cmToUnit) > 1e-12 {
				t.Errorf("CmToUnit = %v, want %v", cfg.CmToUnit, tt.cmToUnit)
			}
		})
	}
}

func TestByNameUnsupported(t *testing.T) {
	_, err := ByName("furlong")
	if err == nil {
		t.Fatal("expected error for unsupported unit")
	}
	if !strings.Contains(err.Error(), "furlong") || !strings.Contains(err.Error(), "mm") {
		t.Errorf("error should name the bad unit and list supported ones: %v", err)
	}
}

func TestNormalizePrecision(t *testing.T) {
	in, _ := ByName("in")
	if got := in.NormalizePrecision(32); got != 32 {
		t.Errorf("valid precision changed: %d", got)
	}
	if got := in.NormalizePrecision(7); got != DefaultPrecisionImperial {
		t.Errorf("invalid precision = %d, want default %d", got, DefaultPrecisionImperial)
	}
	mm, _ := ByName("mm")
	if got := mm.NormalizePrecision(16); got != DefaultPrecisionMetric {
		t.Errorf("imperial precision on metric config = %d, want default %d", got, DefaultPrecisionMetric)
	}
}

func TestFormatLengthImperial(t *testing.T) {
	in, _ := ByName("in")
	tests := []struct {
		value     float64
		precision int
		want      string
	}{
		{12.1875, 16, `12 3/16"`},
		{12.5, 16, `12 1/2"`}, // fraction reduces
		{10.0, 16, `10"`},
		{0.25, 4, `1/4"`},
		{5.51, 0, `6"`},
		{-1.5, 16, `-1 1/2"`},
	}
	for _, tt := range tests {
		if got := in.FormatLength(tt.value, tt.precision); got != tt.want {
			t.Errorf("FormatLength(%v, %d) = %q, want %q", tt.value, tt.precision, got, tt.want)
		}
	}
}

func TestFormatLengthMetric(t *testing.T) {
	mm, _ := ByName("mm")
	tests := []struct {
		value     float64
		precision int
		want      string
	}{
		{44.449, 10, "44.4mm"},
		{44.46, 1, "44mm"},
		{44.26, 2, "44.5mm"},
		{7.0, 1, "7mm"},
	}
	for _, tt := range tests {
		if got := mm.FormatLength(tt.value, tt.precision); got != tt.want {
			t.Errorf("FormatLength(%v, %d) = %q, want %q", tt.value, tt.precision, got, tt.want)
		}
	}
}

func TestPrecisionLabel(t *testing.T) {
	in, _ := ByName("in")
	if got := in.PrecisionLabel(16); got != `1/16"` {
		t.Errorf("PrecisionLabel(16) = %q", got)
	}
	mm, _ := ByName("mm")
	if got := mm.PrecisionLabel(10); got != "0.1mm" {
		t.Errorf("PrecisionLabel(10) = %q", got)
	}
}
