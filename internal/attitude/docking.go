package attitude

import (
	"fmt"
	"math"
	"strings"

	"github.com/litescript/ls-optics/internal/astro"
)

// Vehicle identifies one of the two spacecraft of a docked stack.
type Vehicle int

const (
	CSM Vehicle = iota
	LM
)

func (v Vehicle) String() string {
	switch v {
	case CSM:
		return "CSM"
	case LM:
		return "LM"
	default:
		return "UNKNOWN"
	}
}

// ParseVehicle parses "CSM" or "LM" (also "LEM"), ignoring case.
func ParseVehicle(s string) (Vehicle, error) {
	switch strings.ToUpper(s) {
	case "CSM":
		return CSM, nil
	case "LM", "LEM":
		return LM, nil
	default:
		return 0, fmt.Errorf("unknown vehicle %q", s)
	}
}

func (v Vehicle) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Vehicle) UnmarshalText(text []byte) error {
	p, err := ParseVehicle(string(text))
	if err != nil {
		return err
	}
	*v = p
	return nil
}

// Partner returns the other vehicle of the stack.
func (v Vehicle) Partner() Vehicle {
	if v == CSM {
		return LM
	}
	return CSM
}

// NB returns the vehicle's navigation base frame.
func (v Vehicle) NB() astro.Frame {
	if v == LM {
		return astro.FrameLM
	}
	return astro.FrameCSM
}

// SM returns the vehicle's stable member frame.
func (v Vehicle) SM() astro.Frame {
	if v == LM {
		return astro.FrameLMSM
	}
	return astro.FrameCSMSM
}

// DockingGeometry fixes the relative orientation of the CSM and LM
// navigation bases through the docking angle.
type DockingGeometry struct {
	Angle float64 // radians
}

// CSMToLM returns the CSM navigation base to LM navigation base transform.
func (d DockingGeometry) CSMToLM() astro.Transform {
	s, c := math.Sincos(d.Angle)
	m := astro.Mat3{
		{-1, 0, 0},
		{0, -c, -s},
		{0, -s, c},
	}
	return astro.NewTransform(m, astro.FrameCSM, astro.FrameLM)
}

// ToPartner re-expresses a transform ending in one vehicle's navigation
// base in the docked partner's navigation base.
func (d DockingGeometry) ToPartner(t astro.Transform) astro.Transform {
	switch t.To {
	case astro.FrameCSM:
		return t.Then(d.CSMToLM())
	case astro.FrameLM:
		return t.Then(d.CSMToLM().Inverse())
	default:
		panic(fmt.Sprintf("attitude: %s does not end in a vehicle navigation base", t))
	}
}

// VectorToPartner expresses a navigation base vector of vehicle v in the
// partner's navigation base.
func (d DockingGeometry) VectorToPartner(v Vehicle, u astro.Vec3) astro.Vec3 {
	if v == CSM {
		return d.CSMToLM().Apply(u)
	}
	return d.CSMToLM().Inverse().Apply(u)
}

// CSMToLMGimbals converts CSM gimbal angles to the LM gimbal angles of the
// docked stack.
func (d DockingGeometry) CSMToLMGimbals(csmREFSMMAT, lmREFSMMAT astro.Mat3, csm GimbalAngles) GimbalAngles {
	lmNB := d.ToPartner(Platform(CSM, csmREFSMMAT, csm))
	return GimbalAnglesFrom(lmREFSMMAT, lmNB.M)
}

// LMToCSMGimbals converts LM gimbal angles to the CSM gimbal angles of the
// docked stack.
func (d DockingGeometry) LMToCSMGimbals(csmREFSMMAT, lmREFSMMAT astro.Mat3, lm GimbalAngles) GimbalAngles {
	csmNB := d.ToPartner(Platform(LM, lmREFSMMAT, lm))
	return GimbalAnglesFrom(csmREFSMMAT, csmNB.M)
}

// LMREFSMMAT derives the LM REFSMMAT from the CSM platform and the LM
// gimbal angles of the docked stack.
func (d DockingGeometry) LMREFSMMAT(csmREFSMMAT astro.Mat3, csm, lm GimbalAngles) astro.Mat3 {
	lmNB := d.ToPartner(Platform(CSM, csmREFSMMAT, csm))
	nbToSM := astro.NewTransform(SMNB(lm), astro.FrameLMSM, astro.FrameLM).Inverse()
	return lmNB.Then(nbToSM).M
}

// CSMREFSMMAT derives the CSM REFSMMAT from the LM platform and the CSM
// gimbal angles of the docked stack.
func (d DockingGeometry) CSMREFSMMAT(lmREFSMMAT astro.Mat3, csm, lm GimbalAngles) astro.Mat3 {
	csmNB := d.ToPartner(Platform(LM, lmREFSMMAT, lm))
	nbToSM := astro.NewTransform(SMNB(csm), astro.FrameCSMSM, astro.FrameCSM).Inverse()
	return csmNB.Then(nbToSM).M
}
