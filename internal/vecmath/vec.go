// Package vecmath provides the 3D geometry helpers used by the physics code.
//
// Vectors are [mgl64.Vec3] values; this package only adds what mathgl does not
// ship: finiteness checks, horizontal distances, and the radial/tangential
// decomposition needed to keep a bob on a sphere.
package vecmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is the vector type used throughout the simulator.
type Vec3 = mgl64.Vec3

// Zero is the zero vector.
var Zero = Vec3{}

// New builds a vector from its components.
func New(x, y, z float64) Vec3 { return Vec3{x, y, z} }

// LenSq returns |v|².
func LenSq(v Vec3) float64 { return v.Dot(v) }

// DistSq returns |a-b|².
func DistSq(a, b Vec3) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}

// HorizontalDistSq returns the squared distance between a and b projected onto
// the xy plane.
func HorizontalDistSq(a, b Vec3) float64 {
	dx, dy := a[0]-b[0], a[1]-b[1]
	return dx*dx + dy*dy
}

// Horizontal drops the z component.
func Horizontal(v Vec3) Vec3 { return Vec3{v[0], v[1], 0} }

// IsFinite reports whether every component is neither NaN nor ±Inf.
func IsFinite(v Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Unit returns v/|v| and false when |v| is too small to normalize.
func Unit(v Vec3) (Vec3, bool) {
	l := v.Len()
	if l < 1e-12 {
		return Zero, false
	}
	return v.Mul(1 / l), true
}

// Radial returns the component of v along the unit vector n.
func Radial(v, n Vec3) Vec3 { return n.Mul(v.Dot(n)) }

// Tangential removes the component of v along the unit vector n.
func Tangential(v, n Vec3) Vec3 { return v.Sub(Radial(v, n)) }

// OntoSphere moves p radially onto the sphere of radius r around c. A point at
// the centre is left unchanged.
func OntoSphere(p, c Vec3, r float64) Vec3 {
	n, ok := Unit(p.Sub(c))
	if !ok {
		return p
	}
	return c.Add(n.Mul(r))
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b Vec3, t float64) Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}
