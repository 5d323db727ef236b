package path

import (
	"testing"

	"github.com/chazu/mandrel/pkg/geom"
)

func TestPrimaryAxis(t *testing.T) {
	tests := []struct {
		name       string
		start, end geom.Point3
		wantName   string
		wantIndex  int
		wantDir    string
		wantOpp    string
	}{
		{"x positive", geom.Point3{}, geom.Point3{X: 10, Y: 1, Z: 0.5}, "X", 0, "+X", "-X"},
		{"y positive", geom.Point3{}, geom.Point3{X: 1, Y: 10, Z: 0.5}, "Y", 1, "+Y", "-Y"},
		{"z positive", geom.Point3{}, geom.Point3{X: 1, Y: 0.5, Z: 10}, "Z", 2, "+Z", "-Z"},
		{"x negative", geom.Point3{X: 10}, geom.Point3{Y: 1, Z: 0.5}, "X", 0, "-X", "+X"},
		{"y negative", geom.Point3{Y: 10}, geom.Point3{X: 1, Z: 0.5}, "Y", 1, "-Y", "+Y"},
		{"z negative", geom.Point3{Z: 10}, geom.Point3{X: 1, Y: 0.5}, "Z", 2, "-Z", "+Z"},
		{"x wins tie with y", geom.Point3{}, geom.Point3{X: 10, Y: 10}, "X", 0, "+X", "-X"},
		{"y wins tie with z", geom.Point3{}, geom.Point3{Y: 10, Z: 10}, "Y", 1, "+Y", "-Y"},
		{"all equal picks x", geom.Point3{}, geom.Point3{X: 5, Y: 5, Z: 5}, "X", 0, "+X", "-X"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ax := PrimaryAxis(tt.start, tt.end)
			if ax.Name != tt.wantName || ax.Index != tt.wantIndex {
				t.Errorf("axis = %s/%d, want %s/%d", ax.Name, ax.Index, tt.wantName, tt.wantIndex)
			}
			if ax.Direction != tt.wantDir || ax.Opposite != tt.wantOpp {
				t.Errorf("direction = %s/%s, want %s/%s", ax.Direction, ax.Opposite, tt.wantDir, tt.wantOpp)
			}
		})
	}
}

func TestPrimaryAxisZeroDisplacement(t *testing.T) {
	ax := PrimaryAxis(geom.Point3{X: 5, Y: 5, Z: 5}, geom.Point3{X: 5, Y: 5, Z: 5})
	if ax.Name != "X" || ax.Index != 0 {
		t.Errorf("zero displacement axis = %s/%d, want X/0", ax.Name, ax.Index)
	}
	// Sign is arbitrary for zero displacement; only the axis is defined.
	if ax.Direction != "+X" && ax.Direction != "-X" {
		t.Errorf("direction = %s, want +X or -X", ax.Direction)
	}
}
