package sheet

import "fmt"

// buildSegments lays the straights and bend arcs out on one cumulative
// timeline starting at extraMaterial, and derives the operator mark
// positions (bend start minus die offset). A straight segment records the
// rotation of the bend that immediately follows it; rotation describes the
// plane transition and belongs to the straight feeding the bend, so bend
// segments never carry one.
func buildSegments(
	straights []StraightSection,
	bends []BendData,
	extraMaterial float64,
	dieOffset float64,
) ([]PathSegment, []MarkPosition) {
	segments := make([]PathSegment, 0, len(straights)+len(bends))
	marks := make([]MarkPosition, 0, len(bends))
	cumulative := extraMaterial

	for i, s := range straights {
		var rotation *float64
		if i < len(bends) {
			rotation = bends[i].Rotation
		}
		segments = append(segments, PathSegment{
			Kind:     SegmentStraight,
			Name:     fmt.Sprintf("Straight %d", s.Number),
			Length:   s.Length,
			StartsAt: cumulative,
			EndsAt:   cumulative + s.Length,
			Rotation: rotation,
		})
		cumulative += s.Length

		if i < len(bends) {
			b := bends[i]
			segments = append(segments, PathSegment{
				Kind:      SegmentBend,
				Name:      fmt.Sprintf("BEND %d", b.Number),
				Length:    b.ArcLength,
				StartsAt:  cumulative,
				EndsAt:    cumulative + b.ArcLength,
				BendAngle: floatPtr(b.Angle),
			})
			marks = append(marks, MarkPosition{
				BendNumber: b.Number,
				Position:   cumulative - dieOffset,
				BendAngle:  b.Angle,
				Rotation:   b.Rotation,
			})
			cumulative += b.ArcLength
		}
	}

	return segments, marks
}
