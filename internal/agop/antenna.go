package agop

import (
	"fmt"
	"math"

	"github.com/litescript/ls-optics/internal/astro"
	"github.com/litescript/ls-optics/internal/attitude"
	"github.com/litescript/ls-optics/internal/ephem"
	"github.com/litescript/ls-optics/internal/horizon"
	"github.com/litescript/ls-optics/internal/optics"
)

var antennaKinds = [3]optics.Kind{optics.KindHGA, optics.KindSteerable, optics.KindRendezvousRadar}

func vehicleName(v attitude.Vehicle) string {
	if v == attitude.LM {
		return "LEM"
	}
	return "CSM"
}

func (r *run) antenna(p AntennaPointing) error {
	inst, err := r.instrument(InstrumentSpec{Kind: antennaKinds[(p.Sub-1)%3]})
	if err != nil {
		return err
	}
	fixed := p.Sub >= AntennaHGAFixed

	site := p.Site
	if p.Station != "" {
		st, err := r.Stations.Lookup(p.Station)
		if err != nil {
			return fail(ErrStation, err)
		}
		site = st.Site
	}

	r.println("    STEERABLE ANTENNA POINTING PROGRAM")
	r.printf("MODE %d ACTIVE VEH %-4sPOINTING VEH %s", p.Sub, vehicleName(inst.Vehicle()), vehicleName(p.Vehicle))
	r.println(
		"          ********CSM********  *********LM********",
		"    GET   PCH YAW OGA IGA MGA  PCH YAW OGA IGA MGA",
	)

	return r.each(func(sv ephem.StateVector) error {
		los, err := r.stationLine(sv, site)
		if err != nil {
			return err
		}

		var ant optics.Angles
		var csm, lm attitude.GimbalAngles
		if fixed {
			ant = p.Antenna.angles()
			omicron := math.Pi
			if p.HeadsUp {
				omicron = 0
			}
			m := attitude.ThreeAxisPointing(inst.Vector(ant), los, sv.R, sv.V, omicron)
			g := attitude.GimbalAnglesFrom(r.req.refsmmat(inst.Vehicle()), m)
			csm, lm = r.dockedPair(inst.Vehicle(), g)
		} else {
			g := p.Gimbals.angles()
			ant = optics.Point(inst, r.onVehicle(inst, p.Vehicle, g), los)
			csm, lm = r.dockedPair(p.Vehicle, g)
		}

		r.rep.Antenna = &Readout{A: astro.Angle(ant.A), B: astro.Angle(ant.B)}
		if p.Vehicle == attitude.LM {
			r.rep.setGimbals(lm)
		} else {
			r.rep.setGimbals(csm)
		}

		csmAnt, lmAnt := "       ", "       "
		col := fmt.Sprintf("%03.0f %03.0f", deg(ant.A), deg(ant.B))
		if inst.Vehicle() == attitude.LM {
			lmAnt = col
		} else {
			csmAnt = col
		}
		r.println(r.get(sv.Time) + " " + csmAnt + " " + wholeGimbals(csm) + "  " + lmAnt + " " + wholeGimbals(lm))
		return nil
	})
}

// stationLine returns the inertial unit line of sight from the spacecraft
// to an Earth surface site.
func (r *run) stationLine(sv ephem.StateVector, site horizon.Site) (astro.Vec3, error) {
	pos, err := r.position(sv, ephem.BodyEarth)
	if err != nil {
		return astro.Vec3{}, err
	}
	target, err := r.landmark(site, ephem.BodyEarth, sv.Time)
	if err != nil {
		return astro.Vec3{}, err
	}
	return target.Sub(pos).Normalized(), nil
}

// dockedPair returns the CSM and LM gimbal angles of the docked stack when
// vehicle v holds gimbal angles g.
func (r *run) dockedPair(v attitude.Vehicle, g attitude.GimbalAngles) (csm, lm attitude.GimbalAngles) {
	d := r.req.Docking
	if v == attitude.LM {
		return d.LMToCSMGimbals(r.req.CSMREFSMMAT, r.req.LMREFSMMAT, g), g
	}
	return g, d.CSMToLMGimbals(r.req.CSMREFSMMAT, r.req.LMREFSMMAT, g)
}

func wholeGimbals(g attitude.GimbalAngles) string {
	o, i, m := g.Degrees()
	return fmt.Sprintf("%03.0f %03.0f %03.0f", o, i, m)
}
