package agop

import (
	"time"

	"github.com/litescript/ls-optics/internal/astro"
	"github.com/litescript/ls-optics/internal/attitude"
	"github.com/litescript/ls-optics/internal/ephem"
)

var surfaceTitles = map[int]string{
	SurfaceTwoStars:    "TWO STARS",
	SurfaceStarGravity: "STAR AND GRAVITY",
	SurfaceLVLH:        "LVLH ATTITUDE",
	SurfaceGimbals:     "GIMBAL ANGLES",
}

// surfaceAlign computes the LM navigation base to Moon-fixed matrix on the
// surface and the local roll, pitch and yaw it amounts to.
func (r *run) surfaceAlign(p SurfaceAlign) error {
	lat, lng := p.Site.Lat.Rad(), p.Site.Lng.Rad()
	local := attitude.SurfaceFrame(lat, lng)

	var nbToMCT astro.Mat3
	var discrepancy float64
	switch p.Sub {
	case SurfaceTwoStars, SurfaceStarGravity:
		sol, err := r.surfaceSightings(p)
		if err != nil {
			return err
		}
		nbToMCT, discrepancy = sol.M, sol.Discrepancy
	case SurfaceLVLH:
		nbToMCT = attitude.SurfaceAttitude(p.Attitude.angles()).Mul(local).T()
	case SurfaceGimbals:
		m, err := r.inertialToFixed(p.Times[0])
		if err != nil {
			return err
		}
		brcsToNB := attitude.SMNB(p.Gimbals.angles()).Mul(r.req.LMREFSMMAT)
		nbToMCT = m.Mul(brcsToNB.T())
	}

	att := attitude.SurfaceAnglesFrom(nbToMCT.T().Mul(local.T()))
	r.rep.setMatrix(nbToMCT, astro.FrameLM, astro.FrameBody)

	r.println("        LUNAR SURFACE ALIGN")
	r.printf("MODE %d %s", p.Sub, surfaceTitles[p.Sub])
	r.printf("LAT %+08.3f LONG %+08.3f", deg(lat), deg(lng))
	r.println("", "NB TO MCT")
	r.println(matrixText(nbToMCT, "%+.8f %+.8f %+.8f")...)
	r.println("")
	r.printf("R %06.2f P %06.2f Y %06.2f", deg(att.Roll), deg(att.Pitch), deg(att.Yaw))
	if p.Sub == SurfaceTwoStars {
		r.printf("STAR ANGLE DIFFERENCE %.3f DEG", deg(discrepancy))
	}
	return nil
}

// surfaceSightings solves the navigation base orientation from one or two
// star sightings, with the local vertical standing in for the second star
// in the star and gravity technique.
func (r *run) surfaceSightings(p SurfaceAlign) (attitude.Solution, error) {
	inst, err := r.instrument(p.Instrument)
	if err != nil {
		return attitude.Solution{}, err
	}

	n := 2
	if p.Sub == SurfaceStarGravity {
		n = 1
	}
	var pairs [2]attitude.Pair
	for i := 0; i < n; i++ {
		star, err := r.star(p.Stars[i])
		if err != nil {
			return attitude.Solution{}, err
		}
		m, err := r.inertialToFixed(p.Times[i])
		if err != nil {
			return attitude.Solution{}, err
		}
		pairs[i] = attitude.Pair{From: inst.Vector(p.Sightings[i].instrumentAngles(p.Instrument.Kind)), To: m.MulVec(star)}
	}
	if p.Sub == SurfaceStarGravity {
		up := attitude.SMNB(p.Gimbals.angles()).MulVec(astro.Vec3{X: 1})
		pairs[1] = attitude.Pair{From: up, To: p.Site.BodyFixed(r.Constants.LandingSiteRadius).Normalized()}
	}

	sol, err := attitude.Solve(pairs[0], pairs[1])
	if err != nil {
		return attitude.Solution{}, fail(ErrStarsTooClose, err)
	}
	return sol, nil
}

func (r *run) inertialToFixed(t time.Time) (astro.Mat3, error) {
	m, err := r.Converter.Matrix(t, ephem.FrameMCI, ephem.FrameMCT)
	if err != nil {
		return astro.Mat3{}, fail(ErrConversion, err)
	}
	return m, nil
}
