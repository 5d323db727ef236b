package sheet

import (
	"github.com/chazu/mandrel/pkg/geom"
	"github.com/chazu/mandrel/pkg/units"
)

// SegmentKind distinguishes the two kinds of timeline segments.
type SegmentKind int

const (
	SegmentStraight SegmentKind = iota
	SegmentBend
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentStraight:
		return "straight"
	case SegmentBend:
		return "bend"
	default:
		return "unknown"
	}
}

// StraightSection is one straight run of the tube, oriented so Start→End
// follows the chain's travel direction. Lengths and coordinates are in
// display units. Immutable once built.
type StraightSection struct {
	Number int         `json:"number"` // 1-based position in the chain
	Length float64     `json:"length"`
	Start  geom.Point3 `json:"start"`
	End    geom.Point3 `json:"end"`
	Vector geom.Vec3   `json:"vector"` // End - Start, in cm
}

// BendData describes one bend. Rotation is the twist of this bend's plane
// relative to the previous bend's plane; the first bend has no previous
// plane and carries a nil Rotation, which is distinct from zero.
type BendData struct {
	Number    int      `json:"number"`
	Angle     float64  `json:"angle"` // degrees, 0-180
	Rotation  *float64 `json:"rotation,omitempty"`
	ArcLength float64  `json:"arcLength"` // CLR x angle in radians, display units
}

// PathSegment is one entry in the cumulative timeline measured from the
// tube's cut end (including any extra lead-in material). Rotation is
// carried by the straight segment that feeds the rotated bend; bend
// segments never carry one.
type PathSegment struct {
	Kind      SegmentKind `json:"kind"`
	Name      string      `json:"name"`
	Length    float64     `json:"length"`
	StartsAt  float64     `json:"startsAt"`
	EndsAt    float64     `json:"endsAt"`
	BendAngle *float64    `json:"bendAngle,omitempty"` // bend segments only
	Rotation  *float64    `json:"rotation,omitempty"`  // straight segments only
}

// MarkPosition tells the operator where to mark the tube for one bend:
// the bend segment's start offset minus the die offset.
type MarkPosition struct {
	BendNumber int      `json:"bendNumber"`
	Position   float64  `json:"position"`
	BendAngle  float64  `json:"bendAngle"`
	Rotation   *float64 `json:"rotation,omitempty"`
}

// Params are the operator-entered settings for one bend sheet run, all in
// display units.
type Params struct {
	TubeOD     string  `json:"tubeOD"`
	DieOffset  float64 `json:"dieOffset"`
	MinGrip    float64 `json:"minGrip"`
	MinTail    float64 `json:"minTail"`
	Precision  int     `json:"precision"`
	BenderName string  `json:"benderName"`
	DieName    string  `json:"dieName"`
}

// Sheet is the complete bend sheet produced by one generation run. It is
// built once and never mutated; each run's Sheet is owned by the caller.
type Sheet struct {
	ComponentName string `json:"componentName"`
	TubeOD        string `json:"tubeOD"`

	CLR         float64   `json:"clr"`
	CLRMismatch bool      `json:"clrMismatch"`
	CLRValues   []float64 `json:"clrValues"`

	DieOffset  float64 `json:"dieOffset"`
	Precision  int     `json:"precision"`
	MinGrip    float64 `json:"minGrip"`
	MinTail    float64 `json:"minTail"`
	BenderName string  `json:"benderName,omitempty"`
	DieName    string  `json:"dieName,omitempty"`

	TravelDirection string `json:"travelDirection"`
	StartsWithBend  bool   `json:"startsWithBend"`
	EndsWithBend    bool   `json:"endsWithBend"`

	Straights []StraightSection `json:"straights"`
	Bends     []BendData        `json:"bends"`
	Segments  []PathSegment     `json:"segments"`
	Marks     []MarkPosition    `json:"marks"`

	ExtraMaterial   float64 `json:"extraMaterial"`
	TotalCenterline float64 `json:"totalCenterline"`
	TotalCutLength  float64 `json:"totalCutLength"`

	GripViolations []int `json:"gripViolations,omitempty"` // straight numbers shorter than MinGrip
	TailViolation  bool  `json:"tailViolation"`

	Units units.Config `json:"units"`
}

// floatPtr returns a pointer to v, for optional rotation/angle fields.
func floatPtr(v float64) *float64 {
	return &v
}
