package attitude

import (
	"math"

	"github.com/litescript/ls-optics/internal/astro"
)

// parallelTol is the cross-product magnitude below which two unit vectors
// are treated as parallel.
const parallelTol = 1e-9

// LVLHAngles is a roll, pitch, yaw attitude relative to a local frame, in
// radians.
type LVLHAngles struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// LVLHAttitude returns the BRCS to navigation base matrix for an attitude
// given relative to the local vertical/local horizontal frame of (r, v).
func LVLHAttitude(att LVLHAngles, r, v astro.Vec3) astro.Mat3 {
	sP, cP := math.Sincos(att.Pitch)
	sY, cY := math.Sincos(att.Yaw)
	sR, cR := math.Sincos(att.Roll)

	zP := r.Normalized().Neg()
	yP := r.UnitCross(v).Neg()
	xP := yP.Cross(zP)

	al := sP * sR
	be := sP * cR
	xB := combine(xP, yP, zP, cY*cP, sY*cP, -sP)
	yB := combine(xP, yP, zP, al*cY-sY*cR, al*sY+cY*cR, cP*sR)
	zB := combine(xP, yP, zP, be*cY+sY*sR, be*sY-cY*sR, cP*cR)

	return astro.Rows(xB, yB, zB)
}

func combine(x, y, z astro.Vec3, a, b, c float64) astro.Vec3 {
	return x.Scale(a).Add(y.Scale(b)).Add(z.Scale(c))
}

// ThreeAxisPointing returns the BRCS to navigation base matrix that points
// bodyAxis (navigation base) along the inertial line of sight los. omicron
// rolls the vehicle about the line of sight, measured from the orbital
// plane of (r, v). When bodyAxis lies along +Y the roll reference falls
// back to +Z.
func ThreeAxisPointing(bodyAxis, los, r, v astro.Vec3, omicron float64) astro.Mat3 {
	bodyAxis = bodyAxis.Normalized()
	los = los.Normalized()

	ref := bodyAxis.Cross(astro.Vec3{Y: 1})
	if ref.Norm() < parallelTol {
		ref = bodyAxis.Cross(astro.Vec3{Z: 1})
	}
	bodyRef := ref.Normalized()

	normal := v.UnitCross(r)
	inPlane := los.UnitCross(normal)
	inertialRef := inPlane.Scale(math.Cos(omicron)).Add(los.UnitCross(inPlane).Scale(math.Sin(omicron)))

	bodyY := bodyRef.UnitCross(bodyAxis)
	bodyZ := bodyRef.Cross(bodyY)
	inertialY := inertialRef.UnitCross(los)
	inertialZ := inertialRef.Cross(inertialY)

	return axisgen(inertialY, inertialZ, bodyY, bodyZ)
}

// PTCAttitude returns the passive thermal control attitude for a vehicle
// with unit vectors toward the Earth (toEarth) and the Sun (toSun): +X
// normal to both, +Z toward the Earth.
func PTCAttitude(toEarth, toSun astro.Vec3) astro.Mat3 {
	x := toEarth.UnitCross(toSun)
	y := x.Cross(toEarth).Neg()
	z := x.Cross(y)
	return astro.Rows(x, y, z)
}

// LandingSiteREFSMMAT returns the REFSMMAT with +X along the landing site
// radius and +Z along the orbit-plane component normal to it.
func LandingSiteREFSMMAT(rLS, r, v astro.Vec3) astro.Mat3 {
	x := rLS.Normalized()
	z := r.Cross(v).UnitCross(x)
	y := z.UnitCross(x)
	return astro.Rows(x, y, z)
}

// SurfaceFrame returns the body-fixed to local surface matrix at a landing
// site: +X up, +Y east, +Z north.
func SurfaceFrame(lat, lng float64) astro.Mat3 {
	sLat, cLat := math.Sincos(lat)
	sLng, cLng := math.Sincos(lng)
	return astro.Mat3{
		{cLat * cLng, cLat * sLng, sLat},
		{-sLng, cLng, 0},
		{-sLat * cLng, -sLat * sLng, cLat},
	}
}

// SurfaceAttitude returns the local surface frame to navigation base
// matrix for a yaw-pitch-roll sequence, Rz(yaw)·Ry(pitch)·Rx(roll).
func SurfaceAttitude(att LVLHAngles) astro.Mat3 {
	return astro.RotZ(att.Yaw).Mul(astro.RotY(att.Pitch)).Mul(astro.RotX(att.Roll))
}

// SurfaceAnglesFrom inverts SurfaceAttitude. Roll and yaw are returned in
// [0, 2π), pitch in [-π/2, π/2].
func SurfaceAnglesFrom(m astro.Mat3) LVLHAngles {
	return LVLHAngles{
		Roll:  astro.Wrap(math.Atan2(-m[2][1], m[2][2])),
		Pitch: math.Asin(astro.Clamp(m[2][0])),
		Yaw:   astro.Wrap(math.Atan2(-m[1][0], m[0][0])),
	}
}
