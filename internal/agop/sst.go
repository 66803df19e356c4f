package agop

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/litescript/ls-optics/internal/astro"
	"github.com/litescript/ls-optics/internal/attitude"
	"github.com/litescript/ls-optics/internal/elevation"
	"github.com/litescript/ls-optics/internal/ephem"
	"github.com/litescript/ls-optics/internal/horizon"
	"github.com/litescript/ls-optics/internal/optics"
)

// sighting is the solved geometry of one star sighting table entry.
type sighting struct {
	at      time.Time
	hasTime bool
	los     astro.Vec3
	g       attitude.GimbalAngles
	readout optics.Angles
	inView  bool
	pass    *landmarkPass
}

type landmarkPass struct {
	elevation float64
	closest   float64
	peak      time.Time
}

func (r *run) starSighting(p StarSighting) error {
	inst, err := r.instrument(p.Instrument)
	if err != nil {
		return err
	}

	var s sighting
	switch p.Sub {
	case SSTLandmarkFixedInstrument, SSTLandmarkFixedAttitude:
		s, err = r.landmarkSighting(p, inst)
	case SSTStarFixedInstrument, SSTStarFixedAttitude:
		s, err = r.starTargetSighting(p, inst)
	case SSTImaginaryStar:
		if inst.Vehicle() != p.Vehicle {
			return invalid("%s is not on the %s", inst.Name(), p.Vehicle)
		}
		s = r.imaginaryStar(p, inst)
	case SSTImaginaryStarPartner:
		if inst.Vehicle() == p.Vehicle {
			return invalid("%s is not on the partner of the %s", inst.Name(), p.Vehicle)
		}
		s = r.imaginaryStar(p, inst)
	}
	if err != nil {
		return err
	}

	r.rep.setGimbals(s.g)
	r.sightingTable(p, inst, s)
	return nil
}

// solve fills the unknown half of a sighting: the gimbal angles that hold
// the fixed readout on the line of sight, or the readout of the line of
// sight at the fixed gimbal angles.
func (r *run) solve(p StarSighting, inst optics.Instrument, s *sighting, sv ephem.StateVector, fixedInstrument bool) {
	if fixedInstrument {
		s.readout = p.Readout.instrumentAngles(p.Instrument.Kind)
		m := attitude.ThreeAxisPointing(inst.Vector(s.readout), s.los, sv.R, sv.V, 0)
		csm, lm := r.dockedPair(inst.Vehicle(), attitude.GimbalAnglesFrom(r.req.refsmmat(inst.Vehicle()), m))
		s.g = csm
		if p.Vehicle == attitude.LM {
			s.g = lm
		}
		s.inView = true
		return
	}
	s.g = p.Gimbals.angles()
	u := r.onVehicle(inst, p.Vehicle, s.g).MulVec(s.los)
	s.readout = inst.Angles(u)
	s.inView = inst.InView(u)
}

// landmarkSighting takes the sighting when the spacecraft first climbs to
// the requested elevation above the landmark.
func (r *run) landmarkSighting(p StarSighting, inst optics.Instrument) (sighting, error) {
	eph, err := r.ephemeris()
	if err != nil {
		return sighting{}, err
	}
	body := eph.Body()
	site := p.Landmark.BodyFixed(r.Constants.radius(body))
	passes, err := r.Search.StationPasses(eph, site, body)
	if err != nil {
		return sighting{}, fail(ErrInterpolation, err)
	}
	if len(passes) == 0 {
		return sighting{}, fail(ErrNotInSight, errors.New("no pass in span"))
	}
	pass := passes[0]
	if p.Elevation.Rad() > pass.MaxElevation {
		return sighting{}, fail(ErrNotInSight, fmt.Errorf("pass peaks at %.2f deg", deg(pass.MaxElevation)))
	}

	sinElev := func(t time.Time) (float64, error) {
		sv, err := eph.Sample(t)
		if err != nil {
			return 0, fail(ErrInterpolation, err)
		}
		pos, err := r.Converter.Position(sv.R, t, sv.Body.Inertial(), body.Fixed())
		if err != nil {
			return 0, fail(ErrConversion, err)
		}
		return horizon.SinElevation(pos, site), nil
	}
	at, err := r.Finder.Search(sinElev, pass.AOS, eph.Times(), math.Sin(p.Elevation.Rad()))
	switch {
	case errors.Is(err, elevation.ErrNoBracket):
		return sighting{}, fail(ErrNotInSight, err)
	case errors.Is(err, elevation.ErrNoConvergence):
		return sighting{}, fail(ErrInterpolation, err)
	case err != nil:
		return sighting{}, err
	}

	sv, err := eph.Sample(at)
	if err != nil {
		return sighting{}, fail(ErrInterpolation, err)
	}
	target, err := r.landmark(p.Landmark, body, at)
	if err != nil {
		return sighting{}, err
	}
	closest, err := r.landmarkRange(eph, p.Landmark, body, pass.Peak)
	if err != nil {
		return sighting{}, err
	}

	s := sighting{
		at:      at,
		hasTime: true,
		los:     target.Sub(sv.R).Normalized(),
		pass:    &landmarkPass{elevation: p.Elevation.Rad(), closest: closest, peak: pass.Peak},
	}
	r.solve(p, inst, &s, sv, p.Sub == SSTLandmarkFixedInstrument)
	return s, nil
}

func (r *run) landmarkRange(eph ephem.Ephemeris, site horizon.Site, body ephem.Body, t time.Time) (float64, error) {
	sv, err := eph.Sample(t)
	if err != nil {
		return 0, fail(ErrInterpolation, err)
	}
	target, err := r.landmark(site, body, t)
	if err != nil {
		return 0, err
	}
	return target.Sub(sv.R).Norm(), nil
}

// starTargetSighting takes the sighting at the star's first acquisition.
func (r *run) starTargetSighting(p StarSighting, inst optics.Instrument) (sighting, error) {
	eph, err := r.ephemeris()
	if err != nil {
		return sighting{}, err
	}
	star, err := r.star(p.Star)
	if err != nil {
		return sighting{}, err
	}
	start, _ := eph.Span()
	w, err := r.Search.StarWindow(eph, star, start)
	if errors.Is(err, ephem.ErrNotVisible) {
		return sighting{}, fail(ErrNoAOS, err)
	}
	if err != nil {
		return sighting{}, fail(ErrInterpolation, err)
	}
	sv, err := eph.Sample(w.AOS)
	if err != nil {
		return sighting{}, fail(ErrInterpolation, err)
	}

	s := sighting{at: w.AOS, hasTime: true, los: star}
	r.solve(p, inst, &s, sv, p.Sub == SSTStarFixedInstrument)
	return s, nil
}

// imaginaryStar returns the inertial direction the instrument looks along
// at the given readout and attitude.
func (r *run) imaginaryStar(p StarSighting, inst optics.Instrument) sighting {
	g := p.Gimbals.angles()
	a := p.Readout.instrumentAngles(p.Instrument.Kind)
	los := r.onVehicle(inst, p.Vehicle, g).TMulVec(inst.Vector(a))
	return sighting{los: los.Normalized(), g: g, readout: a, inView: true}
}

func (r *run) sightingTable(p StarSighting, inst optics.Instrument, s sighting) {
	landmark := p.Sub == SSTLandmarkFixedInstrument || p.Sub == SSTLandmarkFixedAttitude
	imaginary := p.Sub == SSTImaginaryStar || p.Sub == SSTImaginaryStarPartner

	tgtID := fmt.Sprintf("%03d", p.Star.ID)
	switch {
	case landmark:
		tgtID = "LMK"
	case imaginary:
		tgtID = "STAR"
	}

	blank := strings.Repeat(" ", 9)
	tgtDec, tgtRA, losDec, losRA := blank, blank, "", ""
	if !landmark {
		ra, dec := astro.RADec(s.los)
		losDec = "     LOS DEC    " + astro.FormatDec(dec)
		losRA = "     LOS RT ASC " + astro.FormatRA(ra)
		if !imaginary {
			tgtDec, tgtRA = astro.FormatDec(dec), astro.FormatRA(ra)
		}
	}

	o, i, m := s.g.Degrees()
	r.println("                   STAR SIGHTING TABLE", "")
	r.printf("               VEHICLE %s MODE %d", vehicleName(p.Vehicle), p.Sub)
	r.println("  TGTID " + tgtID)
	r.printf("                       OG   %06.2f", o)
	r.printf(" TGT DEC   %s   IG   %06.2f%s", tgtDec, i, losDec)
	r.printf("TGT RT ASC %s   MG   %06.2f%s", tgtRA, m, losRA)
	r.println("", "", "")

	gett := blank
	if s.hasTime {
		gett = r.get(s.at)
	}
	r.println("  GND PT DATA          OPTICS " + opticsName(inst, p.Instrument) + "  GETT " + gett)

	var left []string
	if s.pass != nil {
		left = []string{
			fmt.Sprintf("  LAT   %+08.3f", p.Landmark.Lat.Degrees()),
			fmt.Sprintf("  LONG  %+08.3f", p.Landmark.Lng.Degrees()),
			fmt.Sprintf("  ALT   %08.3f", p.Landmark.Alt/1000),
			fmt.Sprintf("  ELV   %07.3f", deg(s.pass.elevation)),
			fmt.Sprintf("  CA    %08.1f", s.pass.closest/1000),
			"  GETCA " + r.get(s.pass.peak),
		}
	}
	la, lb := inst.Labels()
	shown := optics.Display(p.Instrument.Kind, s.readout)
	right := []string{
		fmt.Sprintf("%-3s %07.3f", la, deg(shown.A)),
		fmt.Sprintf("%-3s %07.3f", lb, deg(shown.B)),
	}
	for n := 0; n < len(left) || n < len(right); n++ {
		var l, rt string
		if n < len(left) {
			l = left[n]
		}
		if n < len(right) {
			rt = right[n]
		}
		r.println(strings.TrimRight(fmt.Sprintf("%-23s%s", l, rt), " "))
	}
	if !s.inView {
		r.println("  OUTSIDE " + inst.Name() + " FIELD OF VIEW")
	}
}

func opticsName(inst optics.Instrument, s InstrumentSpec) string {
	switch s.Kind {
	case optics.KindCSMCOAS:
		return "COAS   "
	case optics.KindAOT:
		return fmt.Sprintf("AOT/%d  ", s.Detent)
	}
	return fmt.Sprintf("%-7s", inst.Name())
}
