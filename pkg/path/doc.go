// Package path reconstructs an ordered tube centerline from an unordered
// collection of straight and bend segments. Connectivity between segment
// endpoints is inferred with a tolerance, so the package also validates
// that the result is a single simple chain with correctly alternating
// element kinds.
package path
