package path

import (
	"fmt"
	"strings"

	"github.com/chazu/mandrel/pkg/geom"
)

// OrderingError reports that the input elements do not form one simple
// connected chain. Elements holds 1-based indices into the original input
// when the offending elements are known.
type OrderingError struct {
	Message  string
	Elements []int
}

func (e *OrderingError) Error() string {
	if len(e.Elements) == 0 {
		return "path ordering: " + e.Message
	}
	idx := make([]string, len(e.Elements))
	for i, n := range e.Elements {
		idx[i] = fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("path ordering: %s (elements %s)", e.Message, strings.Join(idx, ", "))
}

// AlternationError reports two adjacent elements of the same kind in an
// ordered chain. Positions are 1-based chain positions.
type AlternationError struct {
	First  int
	Second int
	Kind   Kind
}

func (e *AlternationError) Error() string {
	return fmt.Sprintf("elements %d and %d are both %s segments; the path must alternate straights and bends",
		e.First, e.Second, e.Kind)
}

// Order reconstructs the single connected chain formed by elements,
// returning a permutation with each element oriented so its first endpoint
// joins the previous element. The input is treated as edges of an
// undirected graph where two elements connect iff any endpoint of one lies
// within the connectivity tolerance of any endpoint of the other.
//
// Returns an *OrderingError when the elements contain a branch, a gap
// (multiple chains), or a closed loop.
func Order(elements []Element) ([]Element, error) {
	if len(elements) == 0 {
		return nil, &OrderingError{Message: "no elements selected"}
	}
	if len(elements) == 1 {
		return []Element{elements[0]}, nil
	}

	// Count, per endpoint, how many other elements it touches. An endpoint
	// touching more than one neighbor is a branch; a simple open chain has
	// exactly two free endpoints overall.
	free := 0
	startIdx := -1
	for i, e := range elements {
		for _, ep := range e.Endpoints {
			n := 0
			for j, other := range elements {
				if j == i {
					continue
				}
				if other.touches(ep) {
					n++
				}
			}
			switch {
			case n > 1:
				return nil, &OrderingError{
					Message:  fmt.Sprintf("endpoint (%.3f, %.3f, %.3f) touches %d other elements; the path branches", ep.X, ep.Y, ep.Z, n),
					Elements: []int{i + 1},
				}
			case n == 0:
				free++
				if startIdx < 0 {
					startIdx = i
				}
			}
		}
	}
	if free == 0 {
		return nil, &OrderingError{Message: "elements form a closed loop with no free end"}
	}
	if free > 2 {
		return nil, &OrderingError{
			Message: fmt.Sprintf("found %d unconnected endpoints; the selection contains gaps or multiple separate chains", free),
		}
	}

	// Walk from the free end, orienting each element head-to-tail.
	used := make([]bool, len(elements))
	first := elements[startIdx]
	if !front(first, elements, startIdx) {
		first = first.swapped()
	}
	ordered := []Element{first}
	used[startIdx] = true
	tail := first.Endpoints[1]

	for len(ordered) < len(elements) {
		next := -1
		for j, e := range elements {
			if used[j] || !e.touches(tail) {
				continue
			}
			next = j
			break
		}
		if next < 0 {
			return nil, &OrderingError{
				Message: fmt.Sprintf("chain ends after %d of %d elements; remaining elements are not connected", len(ordered), len(elements)),
			}
		}
		e := elements[next]
		if !geom.Close(e.Endpoints[0], tail, geom.ConnectTolerance) {
			e = e.swapped()
		}
		ordered = append(ordered, e)
		used[next] = true
		tail = e.Endpoints[1]
	}

	return ordered, nil
}

// front reports whether the first endpoint of e is the free one, i.e. the
// endpoint not touching any other element.
func front(e Element, all []Element, self int) bool {
	for j, other := range all {
		if j == self {
			continue
		}
		if other.touches(e.Endpoints[0]) {
			return false
		}
	}
	return true
}

// ValidateAlternation checks that an ordered chain alternates straight and
// bend elements. A chain may begin or end with either kind, but two
// adjacent elements of the same kind indicate a merged sketch entity or a
// missing selection and are reported as an *AlternationError.
func ValidateAlternation(ordered []Element) error {
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Kind == ordered[i-1].Kind {
			return &AlternationError{First: i, Second: i + 1, Kind: ordered[i].Kind}
		}
	}
	return nil
}

// FreeEndpoint returns the endpoint of element that is not connected to
// any other element in the chain. It is meant for the chain's boundary
// elements; for an interior element both endpoints are connected and the
// first endpoint is returned as a defined fallback.
func FreeEndpoint(element Element, chain []Element) geom.Point3 {
	for _, ep := range element.Endpoints {
		connected := false
		for _, other := range chain {
			if other == element {
				continue
			}
			if other.touches(ep) {
				connected = true
				break
			}
		}
		if !connected {
			return ep
		}
	}
	return element.Endpoints[0]
}
