package optics

import (
	"math"

	"github.com/litescript/ls-optics/internal/astro"
	"github.com/litescript/ls-optics/internal/attitude"
)

// CSMCOAS is the crew optical alignment sight mounted in the CSM forward
// window. A is the elevation (pitch) angle, B the lateral position.
type CSMCOAS struct{}

func (CSMCOAS) Name() string { return "COAS" }

func (CSMCOAS) Vehicle() attitude.Vehicle { return attitude.CSM }

func (CSMCOAS) Labels() (a, b string) { return "SPA", "SXP" }

func (CSMCOAS) Vector(a Angles) astro.Vec3 {
	sP, cP := math.Sincos(a.A)
	sX, cX := math.Sincos(a.B)
	return astro.Vec3{X: cP * cX, Y: sX, Z: sP * cX}
}

func (CSMCOAS) Angles(u astro.Vec3) Angles {
	u = u.Normalized()
	return Angles{
		A: math.Atan2(u.Z, u.X),
		B: math.Asin(astro.Clamp(u.Y)),
	}
}

// InView accepts ±5° laterally, down to 15° below and up to 36.5° above
// the +X boresight.
func (CSMCOAS) InView(u astro.Vec3) bool {
	u = u.Normalized()
	if math.Asin(math.Abs(astro.Clamp(u.Y))) >= 5*deg {
		return false
	}
	off := math.Acos(astro.Clamp(u.X))
	if u.Z < 0 {
		return off <= 15*deg
	}
	return off <= 36.5*deg
}

// COASAxis selects the LM window the COAS is mounted in.
type COASAxis int

const (
	// COASOverhead is the overhead window, boresight +Z.
	COASOverhead COASAxis = iota
	// COASForward is the forward window, boresight +X.
	COASForward
)

// LMCOAS is the LM crew optical alignment sight. A is the elevation angle,
// B the lateral position.
type LMCOAS struct {
	Axis COASAxis
}

func (c LMCOAS) Name() string {
	if c.Axis == COASForward {
		return "COAS +X"
	}
	return "COAS +Z"
}

func (LMCOAS) Vehicle() attitude.Vehicle { return attitude.LM }

func (LMCOAS) Labels() (a, b string) { return "EL", "SXP" }

func (c LMCOAS) Vector(a Angles) astro.Vec3 {
	sE, cE := math.Sincos(a.A)
	sS, cS := math.Sincos(a.B)
	if c.Axis == COASForward {
		return astro.Vec3{X: cE * cS, Y: sS, Z: sE * cS}
	}
	return astro.Vec3{X: sS, Y: -sE * cS, Z: cE * cS}
}

func (c LMCOAS) Angles(u astro.Vec3) Angles {
	u = u.Normalized()
	if c.Axis == COASForward {
		return Angles{
			A: math.Atan2(u.Z, u.X),
			B: math.Asin(astro.Clamp(u.Y)),
		}
	}
	return Angles{
		A: math.Atan2(-u.Y, u.Z),
		B: math.Asin(astro.Clamp(u.X)),
	}
}

// InView applies the window limits: forward ±5° laterally, -5° to +35° in
// elevation; overhead ±5° laterally, -10° to +70° in elevation.
func (c LMCOAS) InView(u astro.Vec3) bool {
	u = u.Normalized()
	if c.Axis == COASForward {
		if math.Asin(math.Abs(astro.Clamp(u.Y))) >= 5*deg {
			return false
		}
		off := math.Acos(astro.Clamp(u.X))
		if u.Z < 0 {
			return off <= 5*deg
		}
		return off <= 35*deg
	}
	if math.Abs(u.X) >= math.Cos(85*deg) {
		return false
	}
	off := math.Acos(astro.Clamp(u.Z))
	if u.Y < 0 {
		return off < 70*deg
	}
	return off < 10*deg
}
