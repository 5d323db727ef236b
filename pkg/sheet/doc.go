// Package sheet turns an ordered tube centerline into a bend sheet: the
// oriented straight sections, bend angles and rotations, the cumulative
// segment timeline, and the operator mark positions. Fatal geometry
// problems are returned as typed errors; recoverable findings (CLR
// mismatch, grip and tail violations) are carried in the result for the
// consumer to surface as warnings.
package sheet
