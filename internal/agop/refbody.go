package agop

import (
	"strings"

	"github.com/litescript/ls-optics/internal/astro"
	"github.com/litescript/ls-optics/internal/ephem"
)

func (r *run) referenceBody(p ReferenceBody) error {
	r.printf("MODE %d   REFERENCE BODY COMPUTATION", ModeReferenceBody)

	if p.Sub == RefBodySummary {
		return r.referenceSummary()
	}

	r.println(
		"   GET         RA         DEC          UNIT VECTOR        ",
		"HR:MIN:SEC HR:MIN:SEC HR:MIN:SEC",
	)
	return r.each(func(sv ephem.StateVector) error {
		u, err := r.referenceLine(p, sv)
		if err != nil {
			return err
		}
		ra, dec := astro.RADec(u)
		r.println(r.get(sv.Time) + " " + astro.FormatRA(ra) + "  " + astro.FormatDec(dec) + "  " + unitText(u))
		return nil
	})
}

// referenceLine returns the unit line of sight from the spacecraft to the
// reference body selected by p.
func (r *run) referenceLine(p ReferenceBody, sv ephem.StateVector) (astro.Vec3, error) {
	pos, err := r.position(sv, ephem.BodyEarth)
	if err != nil {
		return astro.Vec3{}, err
	}

	var target astro.Vec3
	switch p.Sub {
	case RefBodyEarth:
		return pos.Neg().Normalized(), nil
	case RefBodyEarthLandmark:
		target, err = r.landmark(p.Landmark, ephem.BodyEarth, sv.Time)
		if err != nil {
			return astro.Vec3{}, err
		}
	default:
		b, err := r.bodies(sv.Time)
		if err != nil {
			return astro.Vec3{}, err
		}
		switch p.Sub {
		case RefBodyMoon:
			target = b.EarthMoon
		case RefBodySun:
			target = b.EarthSun
		case RefBodyMoonLandmark:
			lmk, err := r.landmark(p.Landmark, ephem.BodyMoon, sv.Time)
			if err != nil {
				return astro.Vec3{}, err
			}
			target = lmk.Add(b.EarthMoon)
		}
	}
	return target.Sub(pos).Normalized(), nil
}

func (r *run) referenceSummary() error {
	sv, err := r.first()
	if err != nil {
		return err
	}
	pos, err := r.position(sv, ephem.BodyEarth)
	if err != nil {
		return err
	}
	b, err := r.bodies(sv.Time)
	if err != nil {
		return err
	}

	r.println(
		"   GET         SPACECRAFT             EARTH    ",
		"HR:MIN:SEC    RA        DEC       RA        DEC",
		r.get(sv.Time)+" "+raDec(pos)+" "+raDec(pos.Neg()),
		"",
		"                  MOON                 SUN       ",
		"              RA        DEC       RA        DEC  ",
		strings.Repeat(" ", 10)+raDec(b.EarthMoon.Sub(pos))+" "+raDec(b.EarthSun.Sub(pos)),
	)
	return nil
}

func (r *run) starCatalog(p StarLookup) error {
	u, err := r.star(p.Star)
	if err != nil {
		return err
	}
	ra, dec := astro.RADec(u)
	r.println(
		"                 STAR CATALOG",
		"STAR ID     RA        DEC            UNIT VECTOR",
		"DEC/OCT HR:MIN:SEC HR:MIN:SEC",
		starID(p.Star.ID)+" "+astro.FormatRA(ra)+"  "+astro.FormatDec(dec)+"  "+unitText(u),
	)
	return nil
}
