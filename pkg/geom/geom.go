package geom

import (
	"fmt"
	"math"
)

// ZeroTolerance is the magnitude below which a vector is considered
// degenerate and must not be used for direction computations.
const ZeroTolerance = 1e-10

// ConnectTolerance is the default endpoint connectivity tolerance in cm.
// Two endpoints closer than this are treated as the same joint.
const ConnectTolerance = 0.1

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float64
}

// Point3 is a 3D point. Kept distinct from Vec3 so that positions and
// directions cannot be mixed up at call sites.
type Point3 struct {
	X, Y, Z float64
}

// ZeroVectorError reports a degenerate vector where a direction or plane
// normal was required. It is never silently coerced to zero.
type ZeroVectorError struct {
	Operand string  // which operand was degenerate, e.g. "first vector"
	Mag     float64 // the offending magnitude
}

func (e *ZeroVectorError) Error() string {
	return fmt.Sprintf("%s has near-zero magnitude %.3g, cannot determine direction", e.Operand, e.Mag)
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Magnitude returns the Euclidean norm. The zero vector yields 0.0.
func (v Vec3) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Dot returns the dot product v·w.
func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the cross product v×w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Sub returns the vector from q to p, i.e. p - q.
func (p Point3) Sub(q Point3) Vec3 {
	return Vec3{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Scale returns the point with each coordinate multiplied by s.
// Used for unit conversion of stored positions.
func (p Point3) Scale(s float64) Point3 {
	return Point3{p.X * s, p.Y * s, p.Z * s}
}

// Distance returns the distance between two points.
func Distance(p, q Point3) float64 {
	return p.Sub(q).Magnitude()
}

// Close reports whether two points are within tol of each other.
// The comparison is symmetric in p and q.
func Close(p, q Point3, tol float64) bool {
	return Distance(p, q) <= tol
}

// AngleBetween returns the angle between two vectors in degrees, in
// [0, 180]. It uses atan2(|a×b|, a·b) instead of acos of the normalized
// dot product, which stays finite for nearly parallel vectors where
// rounding pushes the cosine outside [-1, 1].
//
// Returns a *ZeroVectorError if either vector is degenerate.
func AngleBetween(a, b Vec3) (float64, error) {
	if m := a.Magnitude(); m < ZeroTolerance {
		return 0, &ZeroVectorError{Operand: "first vector", Mag: m}
	}
	if m := b.Magnitude(); m < ZeroTolerance {
		return 0, &ZeroVectorError{Operand: "second vector", Mag: m}
	}
	cross := a.Cross(b).Magnitude()
	dot := a.Dot(b)
	return math.Atan2(cross, dot) * 180 / math.Pi, nil
}

// Rotation returns the signed-magnitude twist between two bend-plane
// normals in degrees, in [0, 180]. A degenerate normal means the adjacent
// straights were collinear and the bend plane is ambiguous; that is
// surfaced as a *ZeroVectorError rather than treated as zero rotation.
func Rotation(n1, n2 Vec3) (float64, error) {
	if m := n1.Magnitude(); m < ZeroTolerance {
		return 0, &ZeroVectorError{Operand: "first plane normal", Mag: m}
	}
	if m := n2.Magnitude(); m < ZeroTolerance {
		return 0, &ZeroVectorError{Operand: "second plane normal", Mag: m}
	}
	return AngleBetween(n1, n2)
}
