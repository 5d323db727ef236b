package path

import (
	"math"

	"github.com/chazu/mandrel/pkg/geom"
)

// Axis describes the dominant travel direction of a chain, used to label
// the bend sheet and to offer the operator the reverse ordering.
type Axis struct {
	Name      string // "X", "Y" or "Z"
	Index     int    // 0, 1 or 2
	Direction string // signed label, e.g. "+X"
	Opposite  string // the reverse label, e.g. "-X"
}

// PrimaryAxis determines the axis with the greatest absolute displacement
// between the chain's start and end points. Exact ties resolve in X, Y, Z
// priority order; zero displacement defaults to the X axis with an
// arbitrary sign. Both behaviors are load-bearing for sheet labeling and
// must not change without coordinating with consumers.
func PrimaryAxis(start, end geom.Point3) Axis {
	d := end.Sub(start)
	abs := [3]float64{math.Abs(d.X), math.Abs(d.Y), math.Abs(d.Z)}
	comp := [3]float64{d.X, d.Y, d.Z}
	names := [3]string{"X", "Y", "Z"}

	max := abs[0]
	for _, a := range abs[1:] {
		if a > max {
			max = a
		}
	}

	idx := 2
	switch {
	case abs[0] == max:
		idx = 0
	case abs[1] == max:
		idx = 1
	}

	ax := Axis{Name: names[idx], Index: idx}
	if comp[idx] > 0 {
		ax.Direction = "+" + ax.Name
		ax.Opposite = "-" + ax.Name
	} else {
		ax.Direction = "-" + ax.Name
		ax.Opposite = "+" + ax.Name
	}
	return ax
}
