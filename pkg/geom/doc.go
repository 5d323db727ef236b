// Package geom provides the 3D vector and point math used by the
// path ordering and bend calculation pipeline. All values are in the
// CAD-internal unit (cm) unless stated otherwise.
package geom
