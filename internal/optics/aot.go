package optics

import (
	"fmt"
	"math"

	"github.com/litescript/ls-optics/internal/astro"
	"github.com/litescript/ls-optics/internal/attitude"
)

// AOTFOV is the half angle of the alignment optical telescope field.
const AOTFOV = 30 * deg

// Detent is an AOT viewing position: boresight azimuth and elevation in
// the LM navigation base.
type Detent struct {
	Az float64 `json:"az"`
	El float64 `json:"el"`
}

// DefaultDetents returns the six AOT detent positions, front first and
// then left-front, right-front, right-rear, rear and left-rear.
func DefaultDetents() [6]Detent {
	el := 45 * deg
	return [6]Detent{
		{Az: 0, El: el},
		{Az: -60 * deg, El: el},
		{Az: 60 * deg, El: el},
		{Az: 120 * deg, El: el},
		{Az: 180 * deg, El: el},
		{Az: -120 * deg, El: el},
	}
}

// Boresight returns the detent line of sight in LM navigation base
// coordinates.
func (d Detent) Boresight() astro.Vec3 {
	sA, cA := math.Sincos(d.Az)
	sE, cE := math.Sincos(d.El)
	return astro.Vec3{X: sE, Y: cE * sA, Z: cE * cA}
}

// AOTLine identifies the reticle line used for a sighting.
type AOTLine int

const (
	LinePlusY AOTLine = iota + 1
	LinePlusX
	LineMinusY
	LineMinusX
)

// offset is the angle from the +Y line to l, measured in the reticle
// rotation direction.
func (l AOTLine) offset() float64 {
	switch l {
	case LinePlusX:
		return 270 * deg
	case LineMinusY:
		return 180 * deg
	case LineMinusX:
		return 90 * deg
	default:
		return 0
	}
}

func (l AOTLine) String() string {
	switch l {
	case LinePlusY:
		return "+Y"
	case LinePlusX:
		return "+X"
	case LineMinusY:
		return "-Y"
	case LineMinusX:
		return "-X"
	default:
		return fmt.Sprintf("line(%d)", int(l))
	}
}

// AOT is the LM alignment optical telescope at one detent. A is the
// reticle rotation, B the spiral rotation. A zero reading for both denotes
// a star centred on the boresight.
type AOT struct {
	Detent Detent
	Line   AOTLine
}

func (AOT) Name() string { return "AOT" }

func (AOT) Vehicle() attitude.Vehicle { return attitude.LM }

func (AOT) Labels() (a, b string) { return "RET", "SPI" }

// reticleAxes returns the detent reticle X and Y axes at zero rotation.
func (a AOT) reticleAxes() (x, y astro.Vec3) {
	o := a.Detent.Boresight()
	sA, cA := math.Sincos(a.Detent.Az)
	yp := astro.Vec3{Y: cA, Z: -sA}
	xp := yp.Cross(o)

	sR, cR := math.Sincos(-a.Detent.Az)
	x = xp.Scale(cR).Add(yp.Scale(sR))
	y = xp.Scale(-sR).Add(yp.Scale(cR))
	return x, y
}

func (a AOT) Vector(r Angles) astro.Vec3 {
	o := a.Detent.Boresight()
	if r.A == 0 && r.B == 0 {
		return o
	}

	yrot := r.A + a.Line.offset()
	sep := astro.PMod(r.B-yrot, astro.TwoPi) / 12

	x, y := a.reticleAxes()
	sY, cY := math.Sincos(yrot)
	line := x.Scale(-sY).Add(y.Scale(cY))
	return o.Scale(math.Cos(sep)).Add(line.Cross(o).Scale(math.Sin(sep)))
}

func (a AOT) Angles(u astro.Vec3) Angles {
	o := a.Detent.Boresight()
	u = u.Normalized()
	if o.Cross(u).Norm() < 1e-12 {
		return Angles{}
	}

	c1 := astro.Clamp(o.Dot(u))
	ts2 := o.UnitCross(astro.Vec3{X: 1})
	ts4 := o.UnitCross(u)
	theta := math.Acos(astro.Clamp(ts4.Dot(ts2)))
	if ts4.Dot(o.UnitCross(ts2)) < 0 {
		theta = astro.TwoPi - theta
	}

	yrot := astro.Wrap(theta + a.Detent.Az)
	return Angles{
		A: astro.Wrap(yrot - a.Line.offset()),
		B: astro.Wrap(yrot + 12*math.Acos(c1)),
	}
}

func (a AOT) InView(u astro.Vec3) bool {
	return withinCone(u.Normalized(), a.Detent.Boresight(), AOTFOV)
}
