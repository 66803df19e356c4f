package agop

import (
	"fmt"
	"math"

	"github.com/litescript/ls-optics/internal/astro"
	"github.com/litescript/ls-optics/internal/attitude"
	"github.com/litescript/ls-optics/internal/ephem"
)

const attitudeColumns = "HR:MIN:SEC  OGA     IGA     MGA  "

func (r *run) thermalControl() error {
	r.println(
		"     PASSIVE THERMAL CONTROL     ",
		"   GET            ATTITUDE       ",
		attitudeColumns,
	)
	return r.each(func(sv ephem.StateVector) error {
		pos, err := r.position(sv, ephem.BodyEarth)
		if err != nil {
			return err
		}
		b, err := r.bodies(sv.Time)
		if err != nil {
			return err
		}
		m := attitude.PTCAttitude(pos.Neg().Normalized(), b.EarthSun.Sub(pos).Normalized())
		r.csmAttitudeLine(sv, m)
		return nil
	})
}

func (r *run) horizonAlign(p HorizonAlign) error {
	r.println(
		"        HORIZON ALIGNMENT        ",
		"   GET            ATTITUDE       ",
		attitudeColumns,
	)
	return r.each(func(sv ephem.StateVector) error {
		radius := r.Constants.EarthRadius
		if sv.Body == ephem.BodyMoon {
			radius = r.Constants.LandingSiteRadius
		}
		dist := sv.R.Norm()
		if dist <= radius {
			return fail(ErrConversion, fmt.Errorf("spacecraft %.0f m below the %.0f m horizon", dist, radius))
		}

		att := attitude.LVLHAngles{Pitch: -math.Acos(radius / dist)}
		if p.HeadsUp {
			att.Pitch -= r.Constants.HorizonBias
		} else {
			att.Roll = math.Pi
			att.Pitch += r.Constants.HorizonBias
		}
		if p.Sub == HorizonYaw180 {
			att.Yaw = math.Pi
		}

		r.csmAttitudeLine(sv, attitude.LVLHAttitude(att, sv.R, sv.V))
		return nil
	})
}

// csmAttitudeLine reports a CSM attitude as gimbal angles under the CSM
// REFSMMAT.
func (r *run) csmAttitudeLine(sv ephem.StateVector, brcsToNB astro.Mat3) {
	g := attitude.GimbalAnglesFrom(r.req.CSMREFSMMAT, brcsToNB)
	r.rep.setGimbals(g)
	r.rep.setMatrix(brcsToNB, astro.FrameBRCS, astro.FrameCSM)

	o, i, m := g.Degrees()
	r.printf("%s %+07.2f %+07.2f %+07.2f", r.get(sv.Time), o, i, m)
}
