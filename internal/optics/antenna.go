package optics

import (
	"math"

	"github.com/litescript/ls-optics/internal/astro"
	"github.com/litescript/ls-optics/internal/attitude"
)

// Antennas have full-sphere coverage; mechanical stops are not modelled.

// HGA is the CSM high gain antenna. A is pitch, B is yaw.
type HGA struct{}

func (HGA) Name() string { return "HGA" }

func (HGA) Vehicle() attitude.Vehicle { return attitude.CSM }

func (HGA) Labels() (a, b string) { return "PCH", "YAW" }

func (HGA) Vector(a Angles) astro.Vec3 {
	return pitchYawVector(a.A, a.B)
}

func (HGA) Angles(u astro.Vec3) Angles {
	p, y := pitchYawAngles(u)
	return Angles{A: p, B: y}
}

func (HGA) InView(astro.Vec3) bool { return true }

// NBSA returns the LM navigation base to steerable antenna base matrix.
func NBSA() astro.Mat3 {
	return astro.RotZ(45 * deg)
}

// Steerable is the LM steerable S-band antenna. A is pitch, B is yaw.
type Steerable struct{}

func (Steerable) Name() string { return "S-BAND" }

func (Steerable) Vehicle() attitude.Vehicle { return attitude.LM }

func (Steerable) Labels() (a, b string) { return "PCH", "YAW" }

func (Steerable) Vector(a Angles) astro.Vec3 {
	return NBSA().TMulVec(pitchYawVector(a.A, a.B))
}

func (Steerable) Angles(u astro.Vec3) Angles {
	p, y := pitchYawAngles(NBSA().MulVec(u))
	return Angles{A: p, B: y}
}

func (Steerable) InView(astro.Vec3) bool { return true }

// RendezvousRadar is the LM rendezvous radar. A is the trunnion angle as
// displayed, B the shaft angle.
type RendezvousRadar struct{}

func (RendezvousRadar) Name() string { return "RR" }

func (RendezvousRadar) Vehicle() attitude.Vehicle { return attitude.LM }

func (RendezvousRadar) Labels() (a, b string) { return "TRN", "SFT" }

func (RendezvousRadar) Vector(a Angles) astro.Vec3 {
	sT, cT := math.Sincos(astro.TwoPi - a.A)
	sS, cS := math.Sincos(a.B)
	return astro.Vec3{X: sS * cT, Y: -sT, Z: cS * cT}
}

func (RendezvousRadar) Angles(u astro.Vec3) Angles {
	u = u.Normalized()
	trunnion := astro.Wrap(-math.Asin(astro.Clamp(u.Y)))
	return Angles{
		A: astro.Wrap(astro.TwoPi - trunnion),
		B: astro.Wrap(math.Atan2(u.X, u.Z)),
	}
}

func (RendezvousRadar) InView(astro.Vec3) bool { return true }

func pitchYawVector(pitch, yaw float64) astro.Vec3 {
	sP, cP := math.Sincos(pitch)
	sY, cY := math.Sincos(yaw)
	return astro.Vec3{X: cY * cP, Y: sY * cP, Z: -sP}
}

// pitchYawAngles returns pitch in [-π/2, π/2] and yaw in [0, 2π).
func pitchYawAngles(u astro.Vec3) (pitch, yaw float64) {
	u = u.Normalized()
	proj := astro.Vec3{X: u.X, Y: u.Y}.Normalized()
	yaw = math.Acos(astro.Clamp(proj.X))
	if proj.Y < 0 {
		yaw = astro.TwoPi - yaw
	}
	pitch = math.Acos(astro.Clamp(u.Z)) - math.Pi/2
	return pitch, yaw
}
