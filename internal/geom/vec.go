// Package geom provides the small amount of vector math the overlay needs:
// screen-space positions for widget placement and velocity-change vectors
// for burn magnitude reporting.
package geom

import "math"

// Vec3 is a three-component vector. It is used both for widget positions in
// the host scene and for maneuver burn vectors.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// Add returns the component-wise sum of v and o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns the component-wise difference v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v with every component multiplied by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Magnitude returns the Euclidean length of v.
func (v Vec3) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Lerp computes the affine blend from*t + to*(1-t).
//
// t is intentionally not clamped: callers use factors outside [0,1] to
// extrapolate beyond either endpoint. Lerp(from, to, 2) lands past from at
// twice the to→from offset.
func Lerp(from, to Vec3, t float64) Vec3 {
	return from.Scale(t).Add(to.Scale(1 - t))
}
