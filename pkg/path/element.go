package path

import (
	"fmt"

	"github.com/chazu/mandrel/pkg/geom"
)

// Kind distinguishes straight runs from circular-arc bends.
type Kind int

const (
	KindStraight Kind = iota
	KindBend
)

func (k Kind) String() string {
	switch k {
	case KindStraight:
		return "straight"
	case KindBend:
		return "bend"
	default:
		return "unknown"
	}
}

// Element is one input segment of the tube centerline. Endpoints are
// captured once at construction so later changes to the originating
// geometry cannot desynchronize the model. The Source field is an opaque
// identifier owned by whatever produced the element (CAD entity token,
// script line); core logic passes it through but never interprets it.
type Element struct {
	Kind      Kind
	Source    string
	Endpoints [2]geom.Point3
	Radius    float64 // bend radius in cm; zero for straights
}

// NewStraight creates a straight element between two endpoints (cm).
// A zero-length element, where the endpoints are not separated by more
// than the connectivity tolerance, is an error rather than being dropped.
func NewStraight(source string, a, b geom.Point3) (Element, error) {
	return newElement(KindStraight, source, a, b, 0)
}

// NewBend creates a bend element with the given centerline radius (cm).
// The endpoints are the arc's two ends, not its center.
func NewBend(source string, a, b geom.Point3, radius float64) (Element, error) {
	return newElement(KindBend, source, a, b, radius)
}

func newElement(kind Kind, source string, a, b geom.Point3, radius float64) (Element, error) {
	if geom.Close(a, b, geom.ConnectTolerance) {
		return Element{}, fmt.Errorf("%s element %q is degenerate: endpoints %.4g cm apart, below the %.4g cm connectivity tolerance",
			kind, source, geom.Distance(a, b), geom.ConnectTolerance)
	}
	return Element{
		Kind:      kind,
		Source:    source,
		Endpoints: [2]geom.Point3{a, b},
		Radius:    radius,
	}, nil
}

// swapped returns the element with its endpoints reversed.
func (e Element) swapped() Element {
	e.Endpoints[0], e.Endpoints[1] = e.Endpoints[1], e.Endpoints[0]
	return e
}

// touches reports whether p lies within the connectivity tolerance of
// either endpoint of e.
func (e Element) touches(p geom.Point3) bool {
	return geom.Close(p, e.Endpoints[0], geom.ConnectTolerance) ||
		geom.Close(p, e.Endpoints[1], geom.ConnectTolerance)
}
