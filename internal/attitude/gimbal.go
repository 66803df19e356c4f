// Package attitude converts between reference matrices, IMU gimbal angles
// and body attitudes, including docked CSM/LM pairs.
package attitude

import (
	"math"

	"github.com/litescript/ls-optics/internal/astro"
)

// GimbalAngles is an IMU gimbal triple in radians. The order is fixed:
// outer, inner, middle. It is not a commutative Euler sequence.
type GimbalAngles struct {
	Outer  float64 `json:"outer"`
	Inner  float64 `json:"inner"`
	Middle float64 `json:"middle"`
}

// Degrees returns the angles in degrees, outer first.
func (g GimbalAngles) Degrees() (outer, inner, middle float64) {
	const k = 180 / math.Pi
	return g.Outer * k, g.Inner * k, g.Middle * k
}

// NearGimbalLock reports whether the middle gimbal is within the lock
// region, where cos(middle) falls to the threshold or below.
func (g GimbalAngles) NearGimbalLock(threshold float64) bool {
	return math.Cos(g.Middle) <= threshold
}

// SMNB returns the stable member to navigation base rotation for a set of
// gimbal angles.
func SMNB(g GimbalAngles) astro.Mat3 {
	sO, cO := math.Sincos(g.Outer)
	sI, cI := math.Sincos(g.Inner)
	sM, cM := math.Sincos(g.Middle)

	return astro.Mat3{
		{cI * cM, sM, -sI * cM},
		{-cI*sM*cO + sI*sO, cM * cO, sI*sM*cO + cI*sO},
		{cI*sM*sO + sI*cO, -cM * sO, -sI*sM*sO + cI*cO},
	}
}

// GimbalAnglesFrom extracts the gimbal angles that realize brcsToNB under
// the given REFSMMAT (BRCS to stable member). All three angles are returned
// in [0, 2π). Near middle = ±90° the outer and inner angles are
// ill-conditioned; the result is still returned.
func GimbalAnglesFrom(refsmmat, brcsToNB astro.Mat3) GimbalAngles {
	smnb := brcsToNB.Mul(refsmmat.T())
	x, y, z := smnb.Row(0), smnb.Row(1), smnb.Row(2)

	middle := math.Atan2(x.Y, math.Hypot(x.X, x.Z))
	inner := math.Atan2(-x.Z, x.X)
	outer := math.Atan2(-z.Y, y.Y)

	return GimbalAngles{
		Outer:  astro.Wrap(outer),
		Inner:  astro.Wrap(inner),
		Middle: astro.Wrap(middle),
	}
}

// Platform returns the BRCS to navigation base transform of a vehicle
// whose IMU is aligned to refsmmat and reads the given gimbal angles.
func Platform(v Vehicle, refsmmat astro.Mat3, g GimbalAngles) astro.Transform {
	ref := astro.NewTransform(refsmmat, astro.FrameBRCS, v.SM())
	return ref.Then(astro.NewTransform(SMNB(g), v.SM(), v.NB()))
}

// ReattachREFSMMAT returns the gimbal angles that hold the attitude given by
// (from, g) when the IMU is aligned to the REFSMMAT to instead.
func ReattachREFSMMAT(from, to astro.Mat3, g GimbalAngles) GimbalAngles {
	return GimbalAnglesFrom(to, SMNB(g).Mul(from))
}
