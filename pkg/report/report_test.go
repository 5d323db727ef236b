package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chazu/mandrel/pkg/sheet"
	"github.com/chazu/mandrel/pkg/units"
)

func testSheet(t *testing.T) *sheet.Sheet {
	t.Helper()
	cfg, err := units.ByName("cm")
	if err != nil {
		t.Fatal(err)
	}
	rot := 90.0
	angle := 90.0
	return &sheet.Sheet{
		ComponentName:   "frame rail",
		TubeOD:          "4.445",
		CLR:             8.89,
		TravelDirection: "+X",
		Precision:       1,
		Straights: []sheet.StraightSection{
			{Number: 1, Length: 10},
			{Number: 2, Length: 10},
		},
		Bends: []sheet.BendData{
			{Number: 1, Angle: angle, ArcLength: 13.96},
		},
		Segments: []sheet.PathSegment{
			{Kind: sheet.SegmentStraight, Name: "Straight 1", Length: 10, StartsAt: 0, EndsAt: 10, Rotation: &rot},
			{Kind: sheet.SegmentBend, Name: "Bend 1", Length: 13.96, StartsAt: 10, EndsAt: 23.96, BendAngle: &angle},
			{Kind: sheet.SegmentStraight, Name: "Straight 2", Length: 10, StartsAt: 23.96, EndsAt: 33.96},
		},
		Marks: []sheet.MarkPosition{
			{BendNumber: 1, Position: 9.5, BendAngle: angle},
		},
		TotalCenterline: 33.96,
		TotalCutLength:  33.96,
		Units:           cfg,
	}
}

func TestWriteProducesPDF(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testSheet(t)); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("no output written")
	}
	if !strings.HasPrefix(buf.String(), "%PDF-") {
		t.Errorf("output does not start with a PDF header: %q", buf.String()[:8])
	}
}

func TestWriteWithWarnings(t *testing.T) {
	s := testSheet(t)
	s.CLRMismatch = true
	s.CLRValues = []float64{8.89, 9.2}
	s.MinGrip = 12
	s.GripViolations = []int{1}
	s.TailViolation = true
	s.MinTail = 11
	s.BenderName = "JD2 Model 32"
	s.DieName = "1.75 x 5.5"

	var buf bytes.Buffer
	if err := Write(&buf, s); err != nil {
		t.Fatalf("Write() with warnings: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("no output written")
	}
}

func TestWarningLines(t *testing.T) {
	s := testSheet(t)
	s.Precision = 10
	s.CLRMismatch = true
	s.CLRValues = []float64{8.89, 9.2}
	s.MinGrip = 12
	s.GripViolations = []int{1, 2}
	s.TailViolation = true
	s.MinTail = 11

	lines := warningLines(s)
	want := []string{
		"CLR mismatch: bends were drawn with different radii 8.9cm, 9.2cm; calculations use 8.9cm.",
		"Straight 1 is shorter than the minimum grip 12cm.",
		"Straight 2 is shorter than the minimum grip 12cm.",
		"Final straight is shorter than the minimum tail 11cm.",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(want), lines)
	}
	for i, l := range lines {
		if l != want[i] {
			t.Errorf("lines[%d] = %q, want %q", i, l, want[i])
		}
	}
	for _, l := range lines {
		if strings.ContainsAny(l, "[]") {
			t.Errorf("line carries slice syntax: %q", l)
		}
	}
}

func TestWarningLinesCleanSheet(t *testing.T) {
	if lines := warningLines(testSheet(t)); len(lines) != 0 {
		t.Errorf("clean sheet produced warnings: %q", lines)
	}
}

func TestWriteMinimalSheet(t *testing.T) {
	cfg, err := units.ByName("in")
	if err != nil {
		t.Fatal(err)
	}
	s := &sheet.Sheet{
		TravelDirection: "+Y",
		Precision:       16,
		Units:           cfg,
	}
	var buf bytes.Buffer
	if err := Write(&buf, s); err != nil {
		t.Fatalf("Write() on minimal sheet: %v", err)
	}
}
