package ephem

import (
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"

	"github.com/litescript/ls-optics/internal/astro"
)

// Frame is a body-centred coordinate system.
type Frame int

const (
	FrameECI Frame = iota // Earth-centred inertial
	FrameMCI              // Moon-centred inertial
	FrameECT              // Earth-centred, Earth-fixed
	FrameMCT              // Moon-centred, Moon-fixed
)

func (f Frame) String() string {
	switch f {
	case FrameECI:
		return "ECI"
	case FrameMCI:
		return "MCI"
	case FrameECT:
		return "ECT"
	case FrameMCT:
		return "MCT"
	default:
		return fmt.Sprintf("Frame(%d)", int(f))
	}
}

func (f Frame) centre() Body {
	if f == FrameMCI || f == FrameMCT {
		return BodyMoon
	}
	return BodyEarth
}

// Converter expresses vectors in another frame.
type Converter interface {
	// Matrix returns the rotation from one frame's axes to another's at t.
	Matrix(t time.Time, from, to Frame) (astro.Mat3, error)
	// Position converts a position vector, shifting origin between the
	// Earth and the Moon as needed.
	Position(r astro.Vec3, t time.Time, from, to Frame) (astro.Vec3, error)
}

// Rotating converts between the inertial and body-fixed frames using
// Greenwich apparent sidereal time for the Earth and the IAU rotation
// model for the Moon.
type Rotating struct {
	Celestial Celestial
}

// NewRotating returns a converter backed by the Meeus Moon ephemeris.
func NewRotating() *Rotating {
	return &Rotating{Celestial: Meeus{}}
}

// Matrix implements Converter.
func (c *Rotating) Matrix(t time.Time, from, to Frame) (astro.Mat3, error) {
	a, err := inertialToFrame(t, from)
	if err != nil {
		return astro.Mat3{}, err
	}
	b, err := inertialToFrame(t, to)
	if err != nil {
		return astro.Mat3{}, err
	}
	return b.Mul(a.T()), nil
}

// Position implements Converter.
func (c *Rotating) Position(r astro.Vec3, t time.Time, from, to Frame) (astro.Vec3, error) {
	a, err := inertialToFrame(t, from)
	if err != nil {
		return astro.Vec3{}, err
	}
	b, err := inertialToFrame(t, to)
	if err != nil {
		return astro.Vec3{}, err
	}

	v := a.TMulVec(r)
	if from.centre() != to.centre() {
		bodies, err := c.Celestial.Bodies(t)
		if err != nil {
			return astro.Vec3{}, err
		}
		if from.centre() == BodyMoon {
			v = v.Add(bodies.EarthMoon)
		} else {
			v = v.Sub(bodies.EarthMoon)
		}
	}
	return b.MulVec(v), nil
}

// inertialToFrame returns the rotation from inertial axes to f.
func inertialToFrame(t time.Time, f Frame) (astro.Mat3, error) {
	switch f {
	case FrameECI, FrameMCI:
		return astro.Identity(), nil
	case FrameECT:
		return EarthFixed(t), nil
	case FrameMCT:
		return MoonFixed(t), nil
	default:
		return astro.Mat3{}, fmt.Errorf("%w: %v", ErrUnsupportedFrame, f)
	}
}

// EarthFixed returns the inertial to Earth-fixed rotation at t.
func EarthFixed(t time.Time) astro.Mat3 {
	gast := sidereal.Apparent(julian.TimeToJD(t.UTC()))
	return astro.RotZ(gast.Angle().Rad())
}

// IAU lunar rotation elements, degrees.
const (
	moonPoleRA   = 269.9949
	moonPoleRAT  = 0.0031
	moonPoleDec  = 66.5392
	moonPoleDecT = 0.0130
	moonW0       = 38.3213
	moonWRate    = 13.17635815
)

var j2000 = time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)

// MoonFixed returns the inertial to Moon-fixed rotation at t.
func MoonFixed(t time.Time) astro.Mat3 {
	d := t.Sub(j2000).Hours() / 24
	c := d / 36525

	ra := (moonPoleRA + moonPoleRAT*c) * math.Pi / 180
	dec := (moonPoleDec + moonPoleDecT*c) * math.Pi / 180
	w := astro.Wrap((moonW0 + moonWRate*d) * math.Pi / 180)

	return astro.RotZ(w).Mul(astro.RotX(math.Pi/2 - dec)).Mul(astro.RotZ(math.Pi/2 + ra))
}
