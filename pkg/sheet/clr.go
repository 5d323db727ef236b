package sheet

import (
	"math"

	"github.com/chazu/mandrel/pkg/units"
)

// CLRToleranceRatio is the relative tolerance for detecting mismatched
// bend radii. 0.2% of the nominal CLR absorbs CAD rounding and die wear
// (5.5" CLR allows ±0.011", 140mm allows ±0.28mm) while still catching
// bends drawn with genuinely different dies.
const CLRToleranceRatio = 0.002

// clrToleranceFloor prevents false mismatches on very small radii where
// the relative tolerance collapses below representable differences.
const clrToleranceFloor = 0.001

// ValidateCLR converts each bend's radius (cm) to display units and checks
// them against the first for consistency. The first radius becomes the
// working CLR. A mismatch is a recoverable, reported condition, not an
// error: computation proceeds with the working CLR and the raw values are
// retained for diagnostics. A CLR that is zero or negative is degenerate
// geometry and is itself flagged as a mismatch.
func ValidateCLR(radiiCm []float64, cfg units.Config) (clr float64, mismatch bool, values []float64) {
	if len(radiiCm) == 0 {
		return 0, false, nil
	}

	values = make([]float64, len(radiiCm))
	for i, r := range radiiCm {
		values[i] = r * cfg.CmToUnit
	}

	clr = values[0]
	if clr <= 0 {
		return 0, true, values
	}

	tol := math.Max(clr*CLRToleranceRatio, clrToleranceFloor)
	for _, v := range values {
		if math.Abs(v-clr) > tol {
			return clr, true, values
		}
	}
	return clr, false, values
}
