// Package preview builds a 3D preview solid of the tube from an
// ordered path, using the github.com/deadsy/sdfx SDF-based CAD library.
// Each element becomes a round-capped capsule along its chord; the
// union of capsules approximates the bent tube closely enough for an
// on-screen sanity check of the path before material is cut.
package preview

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/mandrel/pkg/path"
)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 200

// Solid wraps an sdf.SDF3 tube solid.
type Solid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *Solid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// TubeSolid builds the preview solid for an ordered element chain.
// tubeRadius is half the tube OD, in the same units as the element
// coordinates.
func TubeSolid(elements []path.Element, tubeRadius float64) (*Solid, error) {
	if len(elements) == 0 {
		return nil, fmt.Errorf("no elements to preview")
	}
	if tubeRadius <= 0 {
		return nil, fmt.Errorf("tube radius must be positive, got %v", tubeRadius)
	}

	var parts []sdf.SDF3
	for i, e := range elements {
		c, err := capsule(e, tubeRadius)
		if err != nil {
			return nil, fmt.Errorf("element %d (%s): %w", i+1, e.Source, err)
		}
		parts = append(parts, c)
	}
	return &Solid{s: sdf.Union3D(parts...)}, nil
}

// capsule builds a round-capped cylinder along the element's chord.
// sdf.Cylinder3D extends along Z centered at the origin, so the capsule
// is rotated onto the chord direction and translated to the midpoint.
func capsule(e path.Element, radius float64) (sdf.SDF3, error) {
	a, b := e.Endpoints[0], e.Endpoints[1]
	d := b.Sub(a)
	length := d.Magnitude()

	// Round caps bridge the gaps where bend chords meet straights; the
	// rounding can never exceed half the cylinder height.
	round := math.Min(radius, length/2)
	c, err := sdf.Cylinder3D(length, radius, round)
	if err != nil {
		return nil, fmt.Errorf("cylinder: %w", err)
	}

	// Align +Z with the chord: tilt by the polar angle around Y, then
	// spin to the azimuth around Z.
	polar := math.Acos(d.Z / length)
	azimuth := math.Atan2(d.Y, d.X)
	mid := v3.Vec{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2, Z: (a.Z + b.Z) / 2}

	m := sdf.Translate3d(mid).Mul(sdf.RotateZ(azimuth)).Mul(sdf.RotateY(polar))
	return sdf.Transform3D(c, m), nil
}

// ToMesh converts a solid to a triangle mesh using marching cubes at
// the default resolution.
func ToMesh(s *Solid) *Mesh {
	return ToMeshCells(s, defaultMeshCells)
}

// ToMeshCells converts a solid to a triangle mesh with an explicit
// marching cubes cell count.
func ToMeshCells(s *Solid, cells int) *Mesh {
	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(s.s, renderer)

	numVerts := len(triangles) * 3
	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}
}
