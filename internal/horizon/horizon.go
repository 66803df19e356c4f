// Package horizon computes horizon tangent points and landmark sightlines
// about a central body.
package horizon

import (
	"errors"
	"fmt"
	"math"

	"github.com/litescript/ls-optics/internal/astro"
)

// ErrInsideBody is returned when the observer is on or below the horizon
// ellipse, where no tangent exists.
var ErrInsideBody = errors.New("horizon: observer inside body")

// ErrParallel is returned when a star lies along the sightline it should
// define a plane with.
var ErrParallel = errors.New("horizon: star parallel to sightline")

// minSinAngle is the smallest sine of the star to sightline angle that
// still fixes a plane.
const minSinAngle = 1e-9

// Ellipse is the horizon section of a body: semi-axes along the horizon
// frame X and Y, in metres.
type Ellipse struct {
	A, B float64
}

// Sphere returns a circular horizon of radius r.
func Sphere(r float64) Ellipse {
	return Ellipse{A: r, B: r}
}

// Normal returns the unit normal star × line of the plane containing a
// star direction and a sightline.
func Normal(star, line astro.Vec3) (astro.Vec3, error) {
	n := star.Normalized().Cross(line.Normalized())
	if n.Norm() < minSinAngle {
		return astro.Vec3{}, ErrParallel
	}
	return n.Normalized(), nil
}

// Frame returns the horizon plane frame for a star direction and an
// observer position: rows are the in-plane axes followed by the plane
// normal. The plane contains both the star and the observer. When the
// plane is the XY plane the first axis falls back to the observer
// direction.
func Frame(star, r astro.Vec3) (astro.Mat3, error) {
	u2, err := Normal(star, r)
	if err != nil {
		return astro.Mat3{}, err
	}
	u0 := astro.Vec3{Z: 1}.UnitCross(u2)
	if u0 == (astro.Vec3{}) {
		u0 = r.Normalized()
	}
	u1 := u2.Cross(u0)
	return astro.Rows(u0, u1, u2), nil
}

// Tangents returns the two points where lines from the observer at r graze
// the horizon ellipse, in the plane of the star direction. The near point
// is the one whose sightline lies closer to the star. r and the returned
// points are body-centred.
func Tangents(r, star astro.Vec3, e Ellipse) (near, far astro.Vec3, err error) {
	m, err := Frame(star, r)
	if err != nil {
		return astro.Vec3{}, astro.Vec3{}, err
	}
	rh := m.MulVec(r)
	sh := m.MulVec(star.Normalized())

	a := rh.X*rh.X/(e.A*e.A) + rh.Y*rh.Y/(e.B*e.B)
	if a <= 1 {
		return astro.Vec3{}, astro.Vec3{}, fmt.Errorf("%w: |r| = %.0f m", ErrInsideBody, r.Norm())
	}
	k := math.Sqrt(a - 1)
	alpha := e.A / e.B * rh.Y * k
	beta := e.B / e.A * rh.X * k

	t0 := astro.Vec3{X: rh.X + alpha, Y: rh.Y - beta}.Scale(1 / a)
	t1 := astro.Vec3{X: rh.X - alpha, Y: rh.Y + beta}.Scale(1 / a)

	if sh.Dot(t1.Sub(rh).Normalized()) > sh.Dot(t0.Sub(rh).Normalized()) {
		t0, t1 = t1, t0
	}
	return m.TMulVec(t0), m.TMulVec(t1), nil
}

// SunElevation returns the sine of the Sun's elevation above the local
// horizontal at a body-centred surface point.
func SunElevation(point, sun astro.Vec3) float64 {
	return sun.Sub(point).Normalized().Dot(point.Normalized())
}

// SelectLit picks the tangent point with the higher Sun elevation. isNear
// reports whether the near point was chosen; ties go to the far point.
func SelectLit(near, far, sun astro.Vec3) (point astro.Vec3, isNear bool) {
	if SunElevation(near, sun) > SunElevation(far, sun) {
		return near, true
	}
	return far, false
}

// PointingToHorizon returns the unit vector from an observer at r to the
// horizon of a sphere of the given radius, rotated about plane. upper
// selects the positive rotation.
func PointingToHorizon(r, plane astro.Vec3, radius float64, upper bool) astro.Vec3 {
	alpha := math.Asin(astro.Clamp(radius / r.Norm()))
	if !upper {
		alpha = -alpha
	}
	return astro.RotateVector(plane.Normalized(), alpha, r.Normalized().Neg())
}

// Site is a surface point in body-fixed coordinates given by latitude,
// longitude (radians) and altitude above the reference radius (metres).
type Site struct {
	Lat astro.Angle `json:"lat"`
	Lng astro.Angle `json:"lng"`
	Alt float64     `json:"alt"`
}

// BodyFixed returns the site position vector for a body of the given
// reference radius.
func (s Site) BodyFixed(radius float64) astro.Vec3 {
	return astro.FromLatLong(s.Lat.Rad(), s.Lng.Rad(), radius+s.Alt)
}

// SinElevation returns the sine of the elevation of an observer at r as
// seen from a site at position site, both in the same frame.
func SinElevation(r, site astro.Vec3) float64 {
	return r.Sub(site).Normalized().Dot(site.Normalized())
}
