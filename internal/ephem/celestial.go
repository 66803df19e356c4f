package ephem

import (
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/solar"

	"github.com/litescript/ls-optics/internal/astro"
)

// Bodies holds Earth-centred inertial positions of the Moon and Sun.
type Bodies struct {
	EarthMoon         astro.Vec3 // Earth to Moon, m
	EarthMoonVelocity astro.Vec3 // Moon velocity relative to Earth, m/s
	EarthSun          astro.Vec3 // Earth to Sun, m
}

// MoonSun returns the Moon to Sun vector.
func (b Bodies) MoonSun() astro.Vec3 {
	return b.EarthSun.Sub(b.EarthMoon)
}

// Celestial supplies Moon and Sun positions.
type Celestial interface {
	Bodies(t time.Time) (Bodies, error)
}

// moonVelocityStep is the half interval of the central difference used for
// the Moon's velocity.
const moonVelocityStep = 60 * time.Second

// Meeus computes Moon and Sun positions from the analytical series in
// Meeus, Astronomical Algorithms. Positions are referred to the mean
// equator and equinox of date.
type Meeus struct{}

// Bodies implements Celestial.
func (Meeus) Bodies(t time.Time) (Bodies, error) {
	jd := julian.TimeToJD(t.UTC())

	r := moon(jd)
	before := moon(julian.TimeToJD(t.Add(-moonVelocityStep).UTC()))
	after := moon(julian.TimeToJD(t.Add(moonVelocityStep).UTC()))
	v := after.Sub(before).Scale(1 / (2 * moonVelocityStep.Seconds()))

	ra, dec := solar.ApparentEquatorial(jd)
	dist := solar.Radius(base.J2000Century(jd)) * AU

	return Bodies{
		EarthMoon:         r,
		EarthMoonVelocity: v,
		EarthSun:          astro.FromRADec(ra.Rad(), dec.Rad()).Scale(dist),
	}, nil
}

func moon(jd float64) astro.Vec3 {
	lon, lat, dist := moonposition.Position(jd)
	eps := nutation.MeanObliquity(jd)
	ra, dec := coord.EclToEq(lon, lat, eps.Sin(), eps.Cos())
	return astro.FromRADec(ra.Rad(), dec.Rad()).Scale(dist * 1000)
}
