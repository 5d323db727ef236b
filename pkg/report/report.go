// Package report renders a bend sheet as a single-page PDF for the
// shop floor: a setup block, the feed/bend timeline, the mark table,
// and any grip or tail warnings. Rendering uses seehuhn.de/go/pdf with
// the 14 standard fonts, so the output has no embedded font payload.
package report

import (
	"fmt"
	"io"
	"strings"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/font"
	"seehuhn.de/go/pdf/font/standard"

	"github.com/chazu/mandrel/pkg/sheet"
)

// Page geometry in PDF points, A4 portrait.
const (
	marginLeft  = 54.0
	marginRight = 54.0
	marginTop   = 64.0

	headerSize = 16.0
	bodySize   = 9.0
	labelSize  = 7.5
	rowStep    = 13.0
)

// renderer carries the page, fonts, and a downward-moving cursor.
type renderer struct {
	page    *document.Page
	regular font.Layouter
	bold    font.Layouter
	y       float64
	width   float64
}

// Write renders the sheet as a complete PDF document on w.
func Write(w io.Writer, s *sheet.Sheet) error {
	paper := document.A4
	page, err := document.WriteSinglePage(w, paper, pdf.V1_7, nil)
	if err != nil {
		return fmt.Errorf("create pdf page: %w", err)
	}

	regular := standard.Helvetica.New()
	bold := standard.HelveticaBold.New()

	r := &renderer{
		page:    page,
		regular: regular,
		bold:    bold,
		y:       paper.URy - marginTop,
		width:   paper.URx - marginRight,
	}

	r.header(s)
	r.setupBlock(s)
	r.segmentTable(s)
	r.markTable(s)
	r.totals(s)
	r.warnings(s)

	if err := page.Close(); err != nil {
		return fmt.Errorf("close pdf: %w", err)
	}
	return nil
}

// text draws one string at (x, r.y) without moving the cursor.
func (r *renderer) text(f font.Layouter, size float64, x float64, s string) {
	r.page.TextBegin()
	r.page.TextSetFont(f, size)
	r.page.TextFirstLine(x, r.y)
	r.page.TextShow(s)
	r.page.TextEnd()
}

// rule draws a horizontal divider at the cursor and advances past it.
func (r *renderer) rule() {
	r.page.SetLineWidth(0.5)
	r.page.MoveTo(marginLeft, r.y)
	r.page.LineTo(r.width, r.y)
	r.page.Stroke()
	r.y -= rowStep
}

func (r *renderer) advance(dy float64) {
	r.y -= dy
}

func (r *renderer) header(s *sheet.Sheet) {
	title := "Bend Sheet"
	if s.ComponentName != "" {
		title = "Bend Sheet: " + s.ComponentName
	}
	r.text(r.bold, headerSize, marginLeft, title)
	r.advance(rowStep * 1.8)
}

// fmtLen renders a length at the sheet's precision in its display units.
func fmtLen(s *sheet.Sheet, v float64) string {
	return s.Units.FormatLength(v, s.Precision)
}

func (r *renderer) setupBlock(s *sheet.Sheet) {
	pairs := []struct{ label, value string }{
		{"Tube OD", s.TubeOD + s.Units.Symbol},
		{"CLR", fmtLen(s, s.CLR)},
		{"Die offset", fmtLen(s, s.DieOffset)},
		{"Precision", s.Units.PrecisionLabel(s.Precision)},
		{"Travel", s.TravelDirection},
	}
	if s.BenderName != "" {
		pairs = append(pairs, struct{ label, value string }{"Bender", s.BenderName})
	}
	if s.DieName != "" {
		pairs = append(pairs, struct{ label, value string }{"Die", s.DieName})
	}

	// Two label/value pairs per row.
	const pairWidth = 170.0
	for i := 0; i < len(pairs); i += 2 {
		x := marginLeft
		for j := i; j < i+2 && j < len(pairs); j++ {
			r.text(r.bold, labelSize, x, pairs[j].label)
			r.text(r.regular, bodySize, x+60, pairs[j].value)
			x += pairWidth
		}
		r.advance(rowStep)
	}
	r.advance(rowStep * 0.5)
	r.rule()
}

// Segment table columns, x offsets from the left margin.
var segCols = []float64{0, 110, 190, 270, 350, 420}

func (r *renderer) segmentTable(s *sheet.Sheet) {
	heads := []string{"Segment", "Length", "Starts at", "Ends at", "Angle", "Rotation"}
	for i, h := range heads {
		r.text(r.bold, labelSize, marginLeft+segCols[i], h)
	}
	r.advance(rowStep)

	for _, seg := range s.Segments {
		cells := []string{
			seg.Name,
			fmtLen(s, seg.Length),
			fmtLen(s, seg.StartsAt),
			fmtLen(s, seg.EndsAt),
			"",
			"",
		}
		if seg.BendAngle != nil {
			cells[4] = fmt.Sprintf("%.1f°", *seg.BendAngle)
		}
		if seg.Rotation != nil {
			cells[5] = fmt.Sprintf("%.1f°", *seg.Rotation)
		}
		for i, c := range cells {
			if c == "" {
				continue
			}
			r.text(r.regular, bodySize, marginLeft+segCols[i], c)
		}
		r.advance(rowStep)
	}
	r.advance(rowStep * 0.5)
	r.rule()
}

var markCols = []float64{0, 110, 190, 270}

func (r *renderer) markTable(s *sheet.Sheet) {
	if len(s.Marks) == 0 {
		return
	}
	heads := []string{"Mark", "Position", "Angle", "Rotation"}
	for i, h := range heads {
		r.text(r.bold, labelSize, marginLeft+markCols[i], h)
	}
	r.advance(rowStep)

	for _, m := range s.Marks {
		cells := []string{
			fmt.Sprintf("Bend %d", m.BendNumber),
			fmtLen(s, m.Position),
			fmt.Sprintf("%.1f°", m.BendAngle),
			"",
		}
		if m.Rotation != nil {
			cells[3] = fmt.Sprintf("%.1f°", *m.Rotation)
		}
		for i, c := range cells {
			if c == "" {
				continue
			}
			r.text(r.regular, bodySize, marginLeft+markCols[i], c)
		}
		r.advance(rowStep)
	}
	r.advance(rowStep * 0.5)
	r.rule()
}

func (r *renderer) totals(s *sheet.Sheet) {
	rows := []struct{ label, value string }{
		{"Extra material", fmtLen(s, s.ExtraMaterial)},
		{"Total centerline", fmtLen(s, s.TotalCenterline)},
		{"Cut length", fmtLen(s, s.TotalCutLength)},
	}
	for _, row := range rows {
		r.text(r.bold, labelSize, marginLeft, row.label)
		r.text(r.regular, bodySize, marginLeft+90, row.value)
		r.advance(rowStep)
	}
}

// warningLines formats the sheet's recoverable problems as operator-facing
// sentences, lengths rendered at the sheet's precision.
func warningLines(s *sheet.Sheet) []string {
	var lines []string
	if s.CLRMismatch {
		radii := make([]string, len(s.CLRValues))
		for i, v := range s.CLRValues {
			radii[i] = fmtLen(s, v)
		}
		lines = append(lines, fmt.Sprintf(
			"CLR mismatch: bends were drawn with different radii %s; calculations use %s.",
			strings.Join(radii, ", "), fmtLen(s, s.CLR)))
	}
	for _, n := range s.GripViolations {
		lines = append(lines, fmt.Sprintf(
			"Straight %d is shorter than the minimum grip %s.", n, fmtLen(s, s.MinGrip)))
	}
	if s.TailViolation {
		lines = append(lines, fmt.Sprintf(
			"Final straight is shorter than the minimum tail %s.", fmtLen(s, s.MinTail)))
	}
	return lines
}

func (r *renderer) warnings(s *sheet.Sheet) {
	lines := warningLines(s)
	if len(lines) == 0 {
		return
	}

	r.advance(rowStep * 0.5)
	r.text(r.bold, labelSize, marginLeft, "WARNINGS")
	r.advance(rowStep)
	for _, l := range lines {
		r.text(r.regular, bodySize, marginLeft, l)
		r.advance(rowStep)
	}
}
