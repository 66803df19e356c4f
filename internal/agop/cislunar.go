package agop

import (
	"github.com/litescript/ls-optics/internal/astro"
	"github.com/litescript/ls-optics/internal/attitude"
	"github.com/litescript/ls-optics/internal/ephem"
	"github.com/litescript/ls-optics/internal/horizon"
	"github.com/litescript/ls-optics/internal/optics"
)

func (r *run) cislunar(p CislunarNav) error {
	body := ephem.BodyEarth
	if p.Sub == CislunarMoonHorizon || p.Sub == CislunarMoonLandmark {
		body = ephem.BodyMoon
	}
	star, err := r.star(p.Star)
	if err != nil {
		return err
	}

	r.println(
		"                  OST CISLUNAR NAVIGATION",
		"   GET STAR ID HORZ OPTICS ANGLES INERTIAL ATTITUDE",
		"HR:MIN:SEC DEC/OCT N-F   SFT     TRN     R      P      Y",
	)

	return r.each(func(sv ephem.StateVector) error {
		pos, err := r.position(sv, body)
		if err != nil {
			return err
		}

		var target astro.Vec3
		flag := "     "
		switch p.Sub {
		case CislunarEarthHorizon, CislunarMoonHorizon:
			point, isNear, err := r.litHorizon(pos, star, body, sv)
			if err != nil {
				return err
			}
			target = point
			flag = " FAR "
			if isNear {
				flag = "NEAR "
			}
			r.rep.NearHorizon = &isNear
		default:
			target, err = r.landmark(p.Landmark, body, sv.Time)
			if err != nil {
				return err
			}
		}

		brcsToNB, err := landmarkLineAttitude(pos, target, star)
		if err != nil {
			return err
		}
		g := attitude.GimbalAnglesFrom(r.req.CSMREFSMMAT, brcsToNB)
		a := optics.Point(optics.Sextant{}, brcsToNB, star)
		r.rep.setGimbals(g)

		o, i, m := g.Degrees()
		r.printf("%s %s %s%+07.2f %+07.3f %06.2f %06.2f %06.2f",
			r.get(sv.Time), starID(p.Star.ID), flag, deg(a.A), deg(a.B), o, i, m)
		return nil
	})
}

// litHorizon returns the sunlit horizon tangent point about body for a
// spacecraft at pos (body-centred) and whether it is the near one.
func (r *run) litHorizon(pos, star astro.Vec3, body ephem.Body, sv ephem.StateVector) (astro.Vec3, bool, error) {
	b, err := r.bodies(sv.Time)
	if err != nil {
		return astro.Vec3{}, false, err
	}
	radius := r.Constants.MoonRadius
	sun := b.MoonSun()
	if body == ephem.BodyEarth {
		radius = r.Constants.EarthRadius + r.Constants.EarthHorizonHeight
		sun = b.EarthSun
	}

	near, far, err := horizon.Tangents(pos, star, horizon.Sphere(radius))
	if err != nil {
		return astro.Vec3{}, false, fail(ErrConversion, err)
	}
	point, isNear := horizon.SelectLit(near, far, sun)
	return point, isNear, nil
}

// landmarkLineAttitude returns the attitude that puts the landmark line of
// sight from pos to target along the sextant base +Z axis with the star in
// the sextant base XZ plane.
func landmarkLineAttitude(pos, target, star astro.Vec3) (astro.Mat3, error) {
	los := target.Sub(pos).Normalized()
	y, err := horizon.Normal(star, los)
	if err != nil {
		return astro.Mat3{}, fail(ErrConversion, err)
	}
	x := y.UnitCross(los)
	return optics.SBNB().Mul(astro.Rows(x, y, los)), nil
}

