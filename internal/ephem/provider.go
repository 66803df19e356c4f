// Package ephem supplies spacecraft state vectors, Sun and Moon positions
// and reference frame conversions.
package ephem

import (
	"errors"
	"fmt"
	"time"

	"github.com/litescript/ls-optics/internal/astro"
)

// Physical constants, SI units.
const (
	EarthRadius        = 6.373338e6
	MoonRadius         = 1.73809e6
	EarthHorizonHeight = 28000.0
	EarthRotationRate  = 7.29211514667e-5 // rad/s
	AU                 = 1.495978707e11
)

var (
	ErrOutOfSpan        = errors.New("ephem: time outside ephemeris span")
	ErrEmpty            = errors.New("ephem: fewer than two state vectors")
	ErrUnsorted         = errors.New("ephem: state vectors not in time order")
	ErrUnsupportedFrame = errors.New("ephem: unsupported frame")
	ErrNotVisible       = errors.New("ephem: no visibility in span")
)

// Body is a central body.
type Body int

const (
	BodyEarth Body = iota
	BodyMoon
)

// String returns the body name.
func (b Body) String() string {
	switch b {
	case BodyEarth:
		return "earth"
	case BodyMoon:
		return "moon"
	default:
		return "unknown"
	}
}

// Radius returns the body's reference radius in metres.
func (b Body) Radius() float64 {
	if b == BodyMoon {
		return MoonRadius
	}
	return EarthRadius
}

// Inertial returns the body-centred inertial frame.
func (b Body) Inertial() Frame {
	if b == BodyMoon {
		return FrameMCI
	}
	return FrameECI
}

// Fixed returns the body-fixed rotating frame.
func (b Body) Fixed() Frame {
	if b == BodyMoon {
		return FrameMCT
	}
	return FrameECT
}

// StateVector is a position and velocity relative to a central body, in
// that body's inertial frame. Units are metres and metres per second.
type StateVector struct {
	Time time.Time  `json:"time"`
	R    astro.Vec3 `json:"r"`
	V    astro.Vec3 `json:"v"`
	Body Body       `json:"body"`
}

// Ephemeris is a sampled spacecraft trajectory.
type Ephemeris interface {
	// Body is the central body of the state vectors.
	Body() Body
	// Span returns the first and last valid times.
	Span() (start, end time.Time)
	// Times returns the tabulated sample times in order.
	Times() []time.Time
	// Sample returns the state vector at t, interpolated when t falls
	// between tabulated times.
	Sample(t time.Time) (StateVector, error)
}

// Mode selects where the spacecraft ephemeris comes from.
type Mode int

const (
	ModeFile     Mode = iota // Tabulated state vectors from a JSON file
	ModeHorizons             // JPL Horizons vectors
	ModeTLE                  // SGP4 from a two-line element set
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeFile:
		return "file"
	case ModeHorizons:
		return "horizons"
	case ModeTLE:
		return "tle"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode string.
func ParseMode(s string) Mode {
	switch s {
	case "horizons":
		return ModeHorizons
	case "tle":
		return ModeTLE
	default:
		return ModeFile
	}
}

// ParseBody parses a body name as produced by Body.String.
func ParseBody(s string) (Body, error) {
	switch s {
	case "earth", "EARTH":
		return BodyEarth, nil
	case "moon", "MOON":
		return BodyMoon, nil
	default:
		return 0, fmt.Errorf("unknown body %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (b Body) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Body) UnmarshalText(text []byte) error {
	v, err := ParseBody(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}
