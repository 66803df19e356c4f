// Package optics models the sighting instruments and antennas: the
// mapping between device readouts and navigation base line-of-sight
// vectors in both directions, and each device's field of view.
package optics

import (
	"fmt"
	"math"

	"github.com/litescript/ls-optics/internal/astro"
	"github.com/litescript/ls-optics/internal/attitude"
)

const deg = math.Pi / 180

// Angles is a device readout pair in radians. The meaning of A and B is
// fixed per instrument; see Instrument.Labels.
type Angles struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// Instrument is a sighting device or antenna mounted on one vehicle.
type Instrument interface {
	// Name is the display name used in reports.
	Name() string
	// Vehicle is the vehicle whose navigation base the device is fixed to.
	Vehicle() attitude.Vehicle
	// Labels names the A and B readouts.
	Labels() (a, b string)
	// Vector maps a readout to a unit line of sight in navigation base
	// coordinates.
	Vector(Angles) astro.Vec3
	// Angles maps a navigation base unit vector to the device readout.
	Angles(astro.Vec3) Angles
	// InView reports whether a navigation base unit vector lies inside the
	// device's field of view.
	InView(astro.Vec3) bool
}

// Point returns the readout that points inst along an inertial line of
// sight for a vehicle attitude given as a BRCS to navigation base matrix.
func Point(inst Instrument, brcsToNB astro.Mat3, los astro.Vec3) Angles {
	return inst.Angles(brcsToNB.MulVec(los.Normalized()))
}

// Kind enumerates the instrument variants.
type Kind int

const (
	KindSextant Kind = iota
	KindLMCOAS
	KindAOT
	KindCSMCOAS
	KindHGA
	KindSteerable
	KindRendezvousRadar
)

var kindNames = map[Kind]string{
	KindSextant:         "sextant",
	KindLMCOAS:          "lm-coas",
	KindAOT:             "aot",
	KindCSMCOAS:         "csm-coas",
	KindHGA:             "hga",
	KindSteerable:       "steerable",
	KindRendezvousRadar: "rr",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKind parses an instrument name as produced by Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown instrument %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Optical reports whether the kind is a sighting instrument rather than
// an antenna.
func (k Kind) Optical() bool {
	switch k {
	case KindSextant, KindLMCOAS, KindAOT, KindCSMCOAS:
		return true
	}
	return false
}

// Config selects the variant-specific options of an instrument.
type Config struct {
	COASAxis COASAxis
	Detent   Detent
	Line     AOTLine
}

// New constructs the instrument of the given kind.
func New(k Kind, cfg Config) (Instrument, error) {
	switch k {
	case KindSextant:
		return Sextant{}, nil
	case KindLMCOAS:
		return LMCOAS{Axis: cfg.COASAxis}, nil
	case KindAOT:
		return AOT{Detent: cfg.Detent, Line: cfg.Line}, nil
	case KindCSMCOAS:
		return CSMCOAS{}, nil
	case KindHGA:
		return HGA{}, nil
	case KindSteerable:
		return Steerable{}, nil
	case KindRendezvousRadar:
		return RendezvousRadar{}, nil
	default:
		return nil, fmt.Errorf("unknown instrument kind %d", k)
	}
}

// Display converts model angles of an instrument of kind k to the
// readout convention printed in reports and accepted in requests. The CSM
// COAS shaft pitch angle reads with the opposite sign to the elevation of
// the line of sight above the +X boresight.
func Display(k Kind, a Angles) Angles {
	if k == KindCSMCOAS {
		a.A = -a.A
	}
	return a
}

// FromDisplay inverts Display.
func FromDisplay(k Kind, a Angles) Angles {
	return Display(k, a)
}

// withinCone reports whether u lies strictly inside the cone of the given
// half angle about boresight.
func withinCone(u, boresight astro.Vec3, halfAngle float64) bool {
	return math.Acos(astro.Clamp(u.Dot(boresight))) < halfAngle
}
