// Package astro provides the vector and rotation algebra shared by the
// attitude, optics and horizon packages.
package astro

import (
	"fmt"
	"math"
)

// Vec3 represents a 3D vector in any reference frame.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns a unit vector in the same direction.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return Vec3{X: v.X / n, Y: v.Y / n, Z: v.Z / n}
}

// Scale returns the vector scaled by a factor.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// Neg returns the opposite vector.
func (v Vec3) Neg() Vec3 {
	return Vec3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// Dot returns the scalar product.
func (v Vec3) Dot(u Vec3) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// Cross returns v × u.
func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		X: v.Y*u.Z - v.Z*u.Y,
		Y: v.Z*u.X - v.X*u.Z,
		Z: v.X*u.Y - v.Y*u.X,
	}
}

// UnitCross returns the normalized cross product v × u.
func (v Vec3) UnitCross(u Vec3) Vec3 {
	return v.Cross(u).Normalized()
}

// Angle returns the angle between two vectors in radians.
func (v Vec3) Angle(u Vec3) float64 {
	return math.Acos(Clamp(v.Normalized().Dot(u.Normalized())))
}

// Slice returns the components as a slice, in X, Y, Z order.
func (v Vec3) Slice() []float64 {
	return []float64{v.X, v.Y, v.Z}
}

// RotateVector rotates v by angle about the unit axis k (right-handed).
func RotateVector(k Vec3, angle float64, v Vec3) Vec3 {
	s, c := math.Sincos(angle)
	return v.Scale(c).Add(k.Cross(v).Scale(s)).Add(k.Scale(k.Dot(v) * (1 - c)))
}

// Clamp limits x to [-1, 1] before it reaches an inverse trig function.
func Clamp(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

// Frame names a coordinate frame a vector or matrix is expressed in.
type Frame string

const (
	FrameBRCS  Frame = "BRCS" // basic reference (inertial)
	FrameSM    Frame = "SM"   // IMU stable member
	FrameNB    Frame = "NB"   // navigation base
	FrameCSM   Frame = "CSM-NB"
	FrameLM    Frame = "LM-NB"
	FrameCSMSM Frame = "CSM-SM"
	FrameLMSM  Frame = "LM-SM"
	FrameSB    Frame = "SB" // sextant base
	FrameLVLH  Frame = "LVLH"
	FrameBody  Frame = "BODY" // central-body fixed
)

// Transform is a rotation tagged with the frames it maps between.
// M·v takes a vector expressed in From and expresses it in To.
type Transform struct {
	M    Mat3  `json:"m"`
	From Frame `json:"from"`
	To   Frame `json:"to"`
}

// NewTransform tags m as the rotation from one frame to another.
func NewTransform(m Mat3, from, to Frame) Transform {
	return Transform{M: m, From: from, To: to}
}

// Then chains next after t. t.To must equal next.From; a mismatch is a
// programming error and panics.
func (t Transform) Then(next Transform) Transform {
	if t.To != next.From {
		panic(fmt.Sprintf("astro: cannot chain %s->%s with %s->%s", t.From, t.To, next.From, next.To))
	}
	return Transform{M: next.M.Mul(t.M), From: t.From, To: next.To}
}

// Inverse returns the reverse transform.
func (t Transform) Inverse() Transform {
	return Transform{M: t.M.T(), From: t.To, To: t.From}
}

// Apply expresses v (given in t.From) in t.To.
func (t Transform) Apply(v Vec3) Vec3 {
	return t.M.MulVec(v)
}

func (t Transform) String() string {
	return fmt.Sprintf("%s->%s", t.From, t.To)
}
