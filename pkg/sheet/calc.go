package sheet

import (
	"fmt"
	"math"

	"github.com/chazu/mandrel/pkg/geom"
	"github.com/chazu/mandrel/pkg/path"
	"github.com/chazu/mandrel/pkg/units"
)

// InsufficientGeometryError reports a bend without two adjacent straights:
// fewer direction vectors than bends + 1.
type InsufficientGeometryError struct {
	Vectors int
	Bends   int
}

func (e *InsufficientGeometryError) Error() string {
	return fmt.Sprintf("insufficient geometry: %d direction vectors for %d bends, need at least %d",
		e.Vectors, e.Bends, e.Bends+1)
}

// calcStraightsAndBends orients the straight elements head-to-tail from the
// chain's start point and derives the straight sections, bend angles and
// bend-plane rotations. Element endpoints are in cm; the returned sections
// are in display units. clr is already in display units.
func calcStraightsAndBends(
	straightElems []path.Element,
	bendCount int,
	pathStart geom.Point3,
	clr float64,
	cfg units.Config,
) ([]StraightSection, []BendData, error) {
	if len(straightElems) == 0 {
		return nil, nil, fmt.Errorf("no straight sections found in path, cannot calculate bend data")
	}

	// The raw endpoint pairs carry no orientation. Flip the first straight
	// toward the chain start, then flip each following straight toward the
	// previous straight's end.
	corrected := make([][2]geom.Point3, 0, len(straightElems))
	first := straightElems[0].Endpoints
	if geom.Distance(first[1], pathStart) < geom.Distance(first[0], pathStart) {
		first[0], first[1] = first[1], first[0]
	}
	corrected = append(corrected, first)

	for i := 1; i < len(straightElems); i++ {
		prevEnd := corrected[i-1][1]
		cur := straightElems[i].Endpoints
		if geom.Distance(cur[1], prevEnd) < geom.Distance(cur[0], prevEnd) {
			cur[0], cur[1] = cur[1], cur[0]
		}
		corrected = append(corrected, cur)
	}

	straights := make([]StraightSection, 0, len(corrected))
	vectors := make([]geom.Vec3, 0, len(corrected))
	for i, pts := range corrected {
		v := pts[1].Sub(pts[0])
		vectors = append(vectors, v)
		straights = append(straights, StraightSection{
			Number: i + 1,
			Length: v.Magnitude() * cfg.CmToUnit,
			Start:  pts[0].Scale(cfg.CmToUnit),
			End:    pts[1].Scale(cfg.CmToUnit),
			Vector: v,
		})
	}

	if len(vectors) < bendCount+1 {
		return nil, nil, &InsufficientGeometryError{Vectors: len(vectors), Bends: bendCount}
	}

	// Each bend's plane normal comes from its adjacent direction vectors.
	normals := make([]geom.Vec3, bendCount)
	for i := 0; i < bendCount; i++ {
		normals[i] = vectors[i].Cross(vectors[i+1])
	}

	bends := make([]BendData, 0, bendCount)
	for i := 0; i < bendCount; i++ {
		angle, err := geom.AngleBetween(vectors[i], vectors[i+1])
		if err != nil {
			return nil, nil, fmt.Errorf("bend %d angle: %w", i+1, err)
		}

		var rotation *float64
		if i > 0 {
			rot, err := geom.Rotation(normals[i-1], normals[i])
			if err != nil {
				return nil, nil, fmt.Errorf("bend %d rotation: %w", i+1, err)
			}
			rotation = floatPtr(rot)
		}

		bends = append(bends, BendData{
			Number:    i + 1,
			Angle:     angle,
			Rotation:  rotation,
			ArcLength: clr * angle * math.Pi / 180,
		})
	}

	return straights, bends, nil
}
