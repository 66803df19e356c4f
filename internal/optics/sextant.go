package optics

import (
	"math"

	"github.com/litescript/ls-optics/internal/astro"
	"github.com/litescript/ls-optics/internal/attitude"
)

// sextantTilt is the rotation of the sextant base about the navigation
// base Y axis.
const sextantTilt = -0.5676353234

// SextantFOV is the half angle of the sextant field about the shaft axis.
const SextantFOV = 38 * deg

// SBNB returns the sextant base to navigation base matrix.
func SBNB() astro.Mat3 {
	return astro.RotY(sextantTilt)
}

// Sextant is the CSM sextant. A is the shaft angle, B the trunnion angle.
type Sextant struct{}

func (Sextant) Name() string { return "SXT" }
func (Sextant) Vehicle() attitude.Vehicle { return attitude.CSM }
func (Sextant) Labels() (a, b string) { return "SFT", "TRN" }

func (Sextant) Vector(a Angles) astro.Vec3 {
	sS, cS := math.Sincos(a.A)
	sT, cT := math.Sincos(a.B)
	return SBNB().MulVec(astro.Vec3{X: sT * cS, Y: sT * sS, Z: cT})
}

func (Sextant) Angles(u astro.Vec3) Angles {
	sb := SBNB().TMulVec(u.Normalized())
	z := astro.Vec3{Z: 1}

	tpa := z.UnitCross(sb)
	shaft := math.Atan2(-tpa.X, tpa.Y)
	return Angles{
		A: astro.Wrap(shaft),
		B: math.Acos(astro.Clamp(sb.Z)),
	}
}

func (Sextant) InView(u astro.Vec3) bool {
	return withinCone(u.Normalized(), SBNB().MulVec(astro.Vec3{Z: 1}), SextantFOV)
}
