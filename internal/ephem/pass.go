package ephem

import (
	"fmt"
	"math"
	"time"

	"github.com/litescript/ls-optics/internal/astro"
	"github.com/litescript/ls-optics/internal/horizon"
)

// Pass is a period during which a surface site sees the spacecraft above
// the horizon.
type Pass struct {
	AOS          time.Time
	Peak         time.Time
	LOS          time.Time
	MaxElevation float64 // radians
	// RiseFound and SetFound are false when the pass was already in
	// progress at the start of the span or still in progress at its end.
	RiseFound bool
	SetFound  bool
}

// Scanner locates visibility events by stepping through an ephemeris's
// tabulated times and interpolating the crossings.
type Scanner struct {
	Converter Converter
}

// StationPasses returns the passes of the spacecraft over a site position
// given in the body-fixed frame of body. Elevation is geometric, from the
// local vertical of the site.
func (s Scanner) StationPasses(eph Ephemeris, site astro.Vec3, body Body) ([]Pass, error) {
	return s.passes(eph, func(t time.Time) (float64, error) {
		return s.Elevation(eph, site, body, t)
	})
}

// Elevation returns the spacecraft elevation in radians as seen from a
// body-fixed site position at t.
func (s Scanner) Elevation(eph Ephemeris, site astro.Vec3, body Body, t time.Time) (float64, error) {
	sv, err := eph.Sample(t)
	if err != nil {
		return 0, err
	}
	r, err := s.Converter.Position(sv.R, t, sv.Body.Inertial(), body.Fixed())
	if err != nil {
		return 0, err
	}
	return math.Asin(astro.Clamp(horizon.SinElevation(r, site))), nil
}

func (s Scanner) passes(eph Ephemeris, elev func(time.Time) (float64, error)) ([]Pass, error) {
	type sample struct {
		t  time.Time
		el float64
	}

	times := eph.Times()
	samples := make([]sample, len(times))
	for i, t := range times {
		el, err := elev(t)
		if err != nil {
			return nil, err
		}
		samples[i] = sample{t: t, el: el}
	}

	var passes []Pass
	var cur *Pass
	for i, curr := range samples {
		above := curr.el >= 0

		if cur == nil && above {
			cur = &Pass{AOS: curr.t, Peak: curr.t, MaxElevation: curr.el}
			if i > 0 {
				prev := samples[i-1]
				cur.AOS = interpolateCrossing(prev.t, curr.t, prev.el, curr.el, 0)
				cur.RiseFound = true
			}
		}
		if cur == nil {
			continue
		}

		if curr.el > cur.MaxElevation {
			cur.MaxElevation = curr.el
			cur.Peak = curr.t
		}
		if !above {
			prev := samples[i-1]
			cur.LOS = interpolateCrossing(prev.t, curr.t, prev.el, curr.el, 0)
			cur.SetFound = true
			passes = append(passes, *cur)
			cur = nil
		}
	}
	if cur != nil {
		cur.LOS = samples[len(samples)-1].t
		passes = append(passes, *cur)
	}
	return passes, nil
}

// Window is the visibility of a star from the spacecraft.
type Window struct {
	AOS time.Time
	LOS time.Time
	// VisibleAtStart is set when the star was already clear at the search
	// start, so AOS is not an actual event.
	VisibleAtStart bool
	// LOSFound is false when the star stays clear to the end of the span;
	// LOS is then the span end.
	LOSFound bool
}

// StarWindow returns the first visibility window of an inertial star
// direction, occulted by the ephemeris's central body, at or after from.
func (s Scanner) StarWindow(eph Ephemeris, star astro.Vec3, from time.Time) (Window, error) {
	star = star.Normalized()
	clearanceAt := func(t time.Time) (float64, error) {
		sv, err := eph.Sample(t)
		if err != nil {
			return 0, err
		}
		return Clearance(sv.R, star, sv.Body.Radius()), nil
	}

	_, end := eph.Span()
	times := []time.Time{from}
	for _, t := range eph.Times() {
		if t.After(from) {
			times = append(times, t)
		}
	}

	var w Window
	var prevT time.Time
	var prevC float64
	found := false
	for i, t := range times {
		c, err := clearanceAt(t)
		if err != nil {
			return Window{}, err
		}
		switch {
		case !found && c >= 0:
			found = true
			if i == 0 {
				w.AOS, w.VisibleAtStart = t, true
			} else {
				w.AOS = interpolateCrossing(prevT, t, prevC, c, 0)
			}
		case found && c < 0:
			w.LOS = interpolateCrossing(prevT, t, prevC, c, 0)
			w.LOSFound = true
			return w, nil
		}
		prevT, prevC = t, c
	}
	if !found {
		return Window{}, fmt.Errorf("%w: star occulted to %s", ErrNotVisible, end.UTC().Format(time.RFC3339))
	}
	w.LOS = end
	return w, nil
}

// Clearance measures how far the line of sight from r along unit direction
// u passes above a sphere of the given radius about the origin, as a
// fraction of the radius. Directions away from the body return 1.
func Clearance(r, u astro.Vec3, radius float64) float64 {
	along := r.Dot(u)
	if along >= 0 {
		return 1
	}
	miss := r.Sub(u.Scale(along)).Norm()
	return math.Min(1, (miss-radius)/radius)
}

// interpolateCrossing finds the time when a sampled value crosses a
// threshold.
func interpolateCrossing(t1, t2 time.Time, v1, v2, threshold float64) time.Time {
	if v2 == v1 {
		return t1
	}
	fraction := (threshold - v1) / (v2 - v1)
	if fraction < 0 {
		fraction = 0
	} else if fraction > 1 {
		fraction = 1
	}
	dt := t2.Sub(t1)
	return t1.Add(time.Duration(float64(dt) * fraction))
}
