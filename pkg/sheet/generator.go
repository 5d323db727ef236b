package sheet

import (
	"fmt"

	"github.com/chazu/mandrel/pkg/geom"
	"github.com/chazu/mandrel/pkg/path"
	"github.com/chazu/mandrel/pkg/units"
)

// MinElementCount is the smallest selection that can describe a bent tube:
// a straight, a bend, and another straight.
const MinElementCount = 3

// Generator produces bend sheets for one unit configuration.
type Generator struct {
	units units.Config
}

// NewGenerator creates a Generator for the given unit configuration.
func NewGenerator(cfg units.Config) *Generator {
	return &Generator{units: cfg}
}

// GenerateFromElements runs the full pipeline on an unordered element
// collection: ordering, alternation validation, travel direction, then the
// bend calculations. This is the entry point the application shell calls
// with whatever the script engine or a future CAD import produced.
func (g *Generator) GenerateFromElements(elements []path.Element, component string, params Params) (*Sheet, error) {
	if len(elements) < MinElementCount {
		return nil, fmt.Errorf("select all straight sections and bends of the tube path first: need at least %d elements, got %d",
			MinElementCount, len(elements))
	}

	ordered, err := path.Order(elements)
	if err != nil {
		return nil, err
	}
	if err := path.ValidateAlternation(ordered); err != nil {
		return nil, err
	}

	start := path.FreeEndpoint(ordered[0], ordered)
	end := path.FreeEndpoint(ordered[len(ordered)-1], ordered)
	axis := path.PrimaryAxis(start, end)

	return g.Generate(ordered, start, component, axis.Direction, params)
}

// Generate builds the complete bend sheet from an already ordered and
// validated chain. start must be the chain's free start endpoint (cm).
func (g *Generator) Generate(ordered []path.Element, start geom.Point3, component, travelDirection string, params Params) (*Sheet, error) {
	var straightElems []path.Element
	var radii []float64
	for _, e := range ordered {
		switch e.Kind {
		case path.KindStraight:
			straightElems = append(straightElems, e)
		case path.KindBend:
			radii = append(radii, e.Radius)
		}
	}

	clr, clrMismatch, clrValues := ValidateCLR(radii, g.units)

	straights, bends, err := calcStraightsAndBends(straightElems, len(radii), start, clr, g.units)
	if err != nil {
		return nil, err
	}

	// First feed is what the bender can grip ahead of the first bend. A
	// short first feed is made up with extra cut material rather than
	// reported as a violation.
	extraMaterial := 0.0
	if params.MinGrip > 0 {
		firstFeed := straights[0].Length - params.DieOffset
		if deficit := params.MinGrip - firstFeed; deficit > 0 {
			extraMaterial = deficit
		}
	}

	// Intermediate straights shorter than the grip cannot be held for
	// their following bend. Reported, not fatal.
	var gripViolations []int
	if params.MinGrip > 0 && len(straights) > 1 {
		for _, s := range straights[:len(straights)-1] {
			if s.Length < params.MinGrip {
				gripViolations = append(gripViolations, s.Number)
			}
		}
	}

	tailViolation := params.MinTail > 0 && straights[len(straights)-1].Length < params.MinTail

	segments, marks := buildSegments(straights, bends, extraMaterial, params.DieOffset)

	totalStraights := 0.0
	for _, s := range straights {
		totalStraights += s.Length
	}
	totalArcs := 0.0
	for _, b := range bends {
		totalArcs += b.ArcLength
	}

	return &Sheet{
		ComponentName:   component,
		TubeOD:          params.TubeOD,
		CLR:             clr,
		CLRMismatch:     clrMismatch,
		CLRValues:       clrValues,
		DieOffset:       params.DieOffset,
		Precision:       g.units.NormalizePrecision(params.Precision),
		MinGrip:         params.MinGrip,
		MinTail:         params.MinTail,
		BenderName:      params.BenderName,
		DieName:         params.DieName,
		TravelDirection: travelDirection,
		StartsWithBend:  ordered[0].Kind == path.KindBend,
		EndsWithBend:    ordered[len(ordered)-1].Kind == path.KindBend,
		Straights:       straights,
		Bends:           bends,
		Segments:        segments,
		Marks:           marks,
		ExtraMaterial:   extraMaterial,
		TotalCenterline: totalStraights + totalArcs,
		TotalCutLength:  totalStraights + totalArcs + extraMaterial,
		GripViolations:  gripViolations,
		TailViolation:   tailViolation,
		Units:           g.units,
	}, nil
}
