package units

import (
	"fmt"
	"math"
	"strings"
)

// FormatLength renders a display-unit length for a bend sheet at the given
// precision (a fraction denominator; see ValidPrecisions*). Imperial values
// come out as tape fractions ("12 3/16\""), metric values as decimals with
// only as many places as the precision needs. Precision 0 rounds to whole
// units in both systems.
func (c Config) FormatLength(value float64, precision int) string {
	precision = c.NormalizePrecision(precision)
	if precision == 0 {
		return fmt.Sprintf("%.0f%s", math.Round(value), c.Symbol)
	}
	if c.IsMetric {
		step := 1.0 / float64(precision)
		rounded := math.Round(value/step) * step
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", rounded), "0"), ".") + c.Symbol
	}
	return formatFraction(value, precision) + c.Symbol
}

// PrecisionLabel names a precision choice the way the settings dialog
// displays it, e.g. "1/16\"" or "0.1mm".
func (c Config) PrecisionLabel(precision int) string {
	precision = c.NormalizePrecision(precision)
	if precision == 0 {
		return "1" + c.Symbol
	}
	if c.IsMetric {
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", 1.0/float64(precision)), "0"), ".") + c.Symbol
	}
	return fmt.Sprintf("1/%d%s", precision, c.Symbol)
}

// formatFraction rounds value to the nearest 1/denom and renders it as a
// whole number plus a reduced fraction.
func formatFraction(value float64, denom int) string {
	neg := value < 0
	value = math.Abs(value)

	ticks := int(math.Round(value * float64(denom)))
	whole := ticks / denom
	num := ticks % denom

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	if num == 0 {
		fmt.Fprintf(&sb, "%d", whole)
		return sb.String()
	}

	g := gcd(num, denom)
	num /= g
	d := denom / g

	if whole > 0 {
		fmt.Fprintf(&sb, "%d %d/%d", whole, num, d)
	} else {
		fmt.Fprintf(&sb, "%d/%d", num, d)
	}
	return sb.String()
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
