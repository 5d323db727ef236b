package sheet

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/chazu/mandrel/pkg/geom"
	"github.com/chazu/mandrel/pkg/path"
)

// buildTestChain creates a planar two-bend tube in cm:
// 10 cm straight, 90 degree bend, 10 cm straight, 90 degree bend,
// 10 cm straight, all with CLR 2.
func buildTestChain(t *testing.T) []path.Element {
	t.Helper()
	mk := func(e path.Element, err error) path.Element {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
		return e
	}
	return []path.Element{
		mk(path.NewStraight("s1", geom.Point3{}, geom.Point3{X: 10})),
		mk(path.NewBend("b1", geom.Point3{X: 10}, geom.Point3{X: 11, Y: 1}, 2)),
		mk(path.NewStraight("s2", geom.Point3{X: 11, Y: 1}, geom.Point3{X: 11, Y: 11})),
		mk(path.NewBend("b2", geom.Point3{X: 11, Y: 11}, geom.Point3{X: 12, Y: 12}, 2)),
		mk(path.NewStraight("s3", geom.Point3{X: 12, Y: 12}, geom.Point3{X: 22, Y: 12})),
	}
}

func TestGenerateFromElements(t *testing.T) {
	gen := NewGenerator(cmConfig(t))
	s, err := gen.GenerateFromElements(buildTestChain(t), "frame rail", Params{TubeOD: "4.445"})
	if err != nil {
		t.Fatalf("GenerateFromElements() error: %v", err)
	}

	if len(s.Straights) != 3 || len(s.Bends) != 2 {
		t.Fatalf("got %d straights, %d bends; want 3, 2", len(s.Straights), len(s.Bends))
	}
	if s.CLR != 2.0 || s.CLRMismatch {
		t.Errorf("CLR = %v (mismatch %v), want 2.0 without mismatch", s.CLR, s.CLRMismatch)
	}
	if s.TravelDirection != "+X" {
		t.Errorf("travel direction = %q, want +X", s.TravelDirection)
	}
	if s.StartsWithBend || s.EndsWithBend {
		t.Error("chain starts and ends with straights")
	}
	if s.ComponentName != "frame rail" {
		t.Errorf("component = %q", s.ComponentName)
	}

	for i, b := range s.Bends {
		if math.Abs(b.Angle-90) > 1e-6 {
			t.Errorf("bend %d angle = %v, want 90", i+1, b.Angle)
		}
		if math.Abs(b.ArcLength-math.Pi) > 1e-9 {
			t.Errorf("bend %d arc length = %v, want pi", i+1, b.ArcLength)
		}
	}
	if s.Bends[0].Rotation != nil {
		t.Error("first bend must have no rotation")
	}
	if s.Bends[1].Rotation == nil {
		t.Error("second bend must have a rotation")
	}

	// Timeline round-trip: the final segment ends at extra material plus
	// all straight and arc lengths, summed in timeline order.
	want := s.ExtraMaterial
	for _, seg := range s.Segments {
		want += seg.Length
	}
	if got := s.Segments[len(s.Segments)-1].EndsAt; got != want {
		t.Errorf("final EndsAt = %v, want %v", got, want)
	}
	if math.Abs(s.TotalCenterline-(30+2*math.Pi)) > 1e-9 {
		t.Errorf("total centerline = %v, want %v", s.TotalCenterline, 30+2*math.Pi)
	}
}

func TestGenerateGripAndTailPolicies(t *testing.T) {
	gen := NewGenerator(cmConfig(t))
	params := Params{
		DieOffset: 0.5,
		MinGrip:   12,
		MinTail:   11,
	}
	s, err := gen.GenerateFromElements(buildTestChain(t), "", params)
	if err != nil {
		t.Fatalf("GenerateFromElements() error: %v", err)
	}

	// First feed is 10 - 0.5 = 9.5; the 2.5 deficit becomes extra cut
	// material rather than a violation.
	if math.Abs(s.ExtraMaterial-2.5) > 1e-9 {
		t.Errorf("extra material = %v, want 2.5", s.ExtraMaterial)
	}
	if !reflect.DeepEqual(s.GripViolations, []int{1, 2}) {
		t.Errorf("grip violations = %v, want [1 2]", s.GripViolations)
	}
	if !s.TailViolation {
		t.Error("10 cm tail under an 11 cm minimum must be flagged")
	}
	if math.Abs(s.TotalCutLength-(s.TotalCenterline+2.5)) > 1e-9 {
		t.Errorf("cut length = %v, want centerline + 2.5", s.TotalCutLength)
	}

	// Mark positions shift with the extra material: bend 1 starts at
	// 2.5 + 10, minus the 0.5 die offset.
	if math.Abs(s.Marks[0].Position-12.0) > 1e-9 {
		t.Errorf("mark 1 = %v, want 12.0", s.Marks[0].Position)
	}
}

func TestGenerateTooFewElements(t *testing.T) {
	gen := NewGenerator(cmConfig(t))
	chain := buildTestChain(t)
	_, err := gen.GenerateFromElements(chain[:2], "", Params{})
	if err == nil {
		t.Fatal("expected error for a two-element selection")
	}
	if !strings.Contains(err.Error(), "at least 3") {
		t.Errorf("error should state the minimum selection: %v", err)
	}
}

func TestGenerateNoStraights(t *testing.T) {
	gen := NewGenerator(cmConfig(t))
	b, err := path.NewBend("b1", geom.Point3{}, geom.Point3{X: 1, Y: 1}, 2)
	if err != nil {
		t.Fatal(err)
	}
	_, err = gen.Generate([]path.Element{b}, geom.Point3{}, "", "+X", Params{})
	if err == nil {
		t.Fatal("expected fatal error for a path with no straight sections")
	}
	if !strings.Contains(err.Error(), "no straight sections") {
		t.Errorf("error = %v", err)
	}
}

func TestGenerateIdempotent(t *testing.T) {
	gen := NewGenerator(cmConfig(t))
	params := Params{TubeOD: "4.445", DieOffset: 0.5, MinGrip: 5, Precision: 1}

	first, err := gen.GenerateFromElements(buildTestChain(t), "rail", params)
	if err != nil {
		t.Fatal(err)
	}
	second, err := gen.GenerateFromElements(buildTestChain(t), "rail", params)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated runs on identical input must produce identical sheets")
	}
}

func TestGenerateCLRMismatchIsRecoverable(t *testing.T) {
	mk := func(e path.Element, err error) path.Element {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
		return e
	}
	// Second bend drawn with a visibly different radius.
	chain := []path.Element{
		mk(path.NewStraight("s1", geom.Point3{}, geom.Point3{X: 10})),
		mk(path.NewBend("b1", geom.Point3{X: 10}, geom.Point3{X: 11, Y: 1}, 5.0)),
		mk(path.NewStraight("s2", geom.Point3{X: 11, Y: 1}, geom.Point3{X: 11, Y: 11})),
		mk(path.NewBend("b2", geom.Point3{X: 11, Y: 11}, geom.Point3{X: 12, Y: 12}, 5.1)),
		mk(path.NewStraight("s3", geom.Point3{X: 12, Y: 12}, geom.Point3{X: 22, Y: 12})),
	}
	gen := NewGenerator(cmConfig(t))
	s, err := gen.GenerateFromElements(chain, "", Params{})
	if err != nil {
		t.Fatalf("CLR mismatch must not abort generation: %v", err)
	}
	if !s.CLRMismatch {
		t.Error("mismatch flag not set")
	}
	if s.CLR != 5.0 {
		t.Errorf("working CLR = %v, want first radius 5.0", s.CLR)
	}
	if !reflect.DeepEqual(s.CLRValues, []float64{5.0, 5.1}) {
		t.Errorf("raw CLR values = %v", s.CLRValues)
	}
}
