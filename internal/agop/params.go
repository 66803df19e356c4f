package agop

import (
	"fmt"
	"time"

	"github.com/litescript/ls-optics/internal/astro"
	"github.com/litescript/ls-optics/internal/attitude"
	"github.com/litescript/ls-optics/internal/horizon"
	"github.com/litescript/ls-optics/internal/optics"
)

// Params is the mode-specific part of a Request. Exactly one type per
// primary mode implements it.
type Params interface {
	Mode() Mode
	// SubMode is the secondary selector, or 0 for modes without one.
	SubMode() int
	validate() error
}

// StarRef names a catalog star, or a target given by right ascension and
// declination when ID exceeds catalog.MaxStarID.
type StarRef struct {
	ID  int         `json:"id"`
	RA  astro.Angle `json:"ra,omitempty"`
	Dec astro.Angle `json:"dec,omitempty"`
}

// Gimbals is an IMU gimbal triple as entered, in degrees on the wire.
type Gimbals struct {
	Outer  astro.Angle `json:"outer"`
	Inner  astro.Angle `json:"inner"`
	Middle astro.Angle `json:"middle"`
}

func (g Gimbals) angles() attitude.GimbalAngles {
	return attitude.GimbalAngles{Outer: g.Outer.Rad(), Inner: g.Inner.Rad(), Middle: g.Middle.Rad()}
}

// Readout is an instrument reading as entered, in degrees on the wire.
type Readout struct {
	A astro.Angle `json:"a"`
	B astro.Angle `json:"b"`
}

func (r Readout) angles() optics.Angles {
	return optics.Angles{A: r.A.Rad(), B: r.B.Rad()}
}

// instrumentAngles returns the model angles of a reading taken with an
// instrument of kind k.
func (r Readout) instrumentAngles(k optics.Kind) optics.Angles {
	return optics.FromDisplay(k, r.angles())
}

// InstrumentSpec selects an instrument and its variant options.
type InstrumentSpec struct {
	Kind     optics.Kind     `json:"kind"`
	Detent   int             `json:"detent,omitempty"`
	COASAxis optics.COASAxis `json:"coas_axis,omitempty"`
	Line     optics.AOTLine  `json:"line,omitempty"`
}

func (s InstrumentSpec) validate() error {
	if s.Detent < 0 || s.Detent >= len(Constants{}.Detents) {
		return fmt.Errorf("detent %d out of range 0..%d", s.Detent, len(Constants{}.Detents)-1)
	}
	return nil
}

func checkSub(sub, max int) error {
	if sub < 1 || sub > max {
		return fmt.Errorf("sub-mode %d out of range 1..%d", sub, max)
	}
	return nil
}

func checkOptical(s InstrumentSpec) error {
	if !s.Kind.Optical() {
		return fmt.Errorf("%s is not a sighting instrument", s.Kind)
	}
	return s.validate()
}

// Cislunar sub-modes.
const (
	CislunarEarthHorizon = iota + 1
	CislunarMoonHorizon
	CislunarEarthLandmark
	CislunarMoonLandmark
)

// CislunarNav computes sextant angles and the IMU attitude for a star to
// horizon or star to landmark sighting.
type CislunarNav struct {
	Sub      int          `json:"sub"`
	Star     StarRef      `json:"star"`
	Landmark horizon.Site `json:"landmark"`
}

func (CislunarNav) Mode() Mode        { return ModeCislunar }
func (p CislunarNav) SubMode() int    { return p.Sub }
func (p CislunarNav) validate() error { return checkSub(p.Sub, 4) }

// Reference body sub-modes.
const (
	RefBodySummary = iota + 1
	RefBodyEarth
	RefBodyMoon
	RefBodySun
	RefBodyEarthLandmark
	RefBodyMoonLandmark
)

// ReferenceBody tabulates lines of sight from the spacecraft to the Earth,
// the Moon, the Sun or a landmark.
type ReferenceBody struct {
	Sub      int          `json:"sub"`
	Landmark horizon.Site `json:"landmark"`
}

func (ReferenceBody) Mode() Mode        { return ModeReferenceBody }
func (p ReferenceBody) SubMode() int    { return p.Sub }
func (p ReferenceBody) validate() error { return checkSub(p.Sub, 6) }

// StarLookup prints the catalog entry of one star.
type StarLookup struct {
	Star StarRef `json:"star"`
}

func (StarLookup) Mode() Mode      { return ModeStarCatalog }
func (StarLookup) SubMode() int    { return 0 }
func (StarLookup) validate() error { return nil }

// Antenna pointing sub-modes.
const (
	AntennaHGAMovable = iota + 1
	AntennaSteerableMovable
	AntennaRRMovable
	AntennaHGAFixed
	AntennaSteerableFixed
	AntennaRRFixed
)

// AntennaPointing points an antenna at a ground station for a given
// attitude, or the vehicle for a given antenna setting.
type AntennaPointing struct {
	Sub int `json:"sub"`
	// Station is a catalog code. When empty, Site is used.
	Station string       `json:"station,omitempty"`
	Site    horizon.Site `json:"site"`
	// Vehicle owns Gimbals and is the vehicle whose angles are reported
	// alongside the antenna's.
	Vehicle attitude.Vehicle `json:"vehicle"`
	Gimbals Gimbals          `json:"gimbals"`
	// Antenna is the fixed pitch and yaw for the fixed sub-modes.
	Antenna Readout `json:"antenna"`
	HeadsUp bool    `json:"heads_up"`
}

func (AntennaPointing) Mode() Mode        { return ModeAntenna }
func (p AntennaPointing) SubMode() int    { return p.Sub }
func (p AntennaPointing) validate() error { return checkSub(p.Sub, 6) }

// ThermalControl computes the passive thermal control attitude.
type ThermalControl struct{}

func (ThermalControl) Mode() Mode      { return ModeThermalControl }
func (ThermalControl) SubMode() int    { return 0 }
func (ThermalControl) validate() error { return nil }

// Horizon alignment sub-modes.
const (
	HorizonYaw0 = iota + 1
	HorizonYaw180
)

// HorizonAlign computes the attitude that lays the horizon along the
// window reference.
type HorizonAlign struct {
	Sub     int  `json:"sub"`
	HeadsUp bool `json:"heads_up"`
}

func (HorizonAlign) Mode() Mode        { return ModeHorizonAlign }
func (p HorizonAlign) SubMode() int    { return p.Sub }
func (p HorizonAlign) validate() error { return checkSub(p.Sub, 2) }

// Optical support table sub-modes.
const (
	OSTBurnHorizon = iota + 1
	OSTAlignmentCheck
	OSTComputeREFSMMAT
	OSTDockingAlignment
	OSTPointAOT
	OSTREFSMMATToREFSMMAT
)

// Docking alignment options: which quantity is the unknown.
const (
	DockingLMREFSMMAT = iota
	DockingLMGimbals
	DockingCSMGimbals
	DockingCSMREFSMMAT
)

// OpticalSupport is the optical support table.
type OpticalSupport struct {
	Sub        int              `json:"sub"`
	Vehicle    attitude.Vehicle `json:"vehicle"`
	Instrument InstrumentSpec   `json:"instrument"`
	// Gimbals holds the attitude of Vehicle, one entry per sighting. For
	// docking alignment the entries are the CSM and the LM angles.
	Gimbals [2]Gimbals `json:"gimbals"`
	// Stars lists the input stars. An empty list in the alignment check
	// searches the catalog from StartingStar.
	Stars        []StarRef  `json:"stars,omitempty"`
	StartingStar int        `json:"starting_star,omitempty"`
	Sightings    [2]Readout `json:"sightings"`
	Docking      int        `json:"docking_option"`
	// Target is the REFSMMAT the attitude is re-expressed under.
	Target astro.Mat3 `json:"target"`
}

func (OpticalSupport) Mode() Mode     { return ModeOpticalSupport }
func (p OpticalSupport) SubMode() int { return p.Sub }

func (p OpticalSupport) validate() error {
	if err := checkSub(p.Sub, 6); err != nil {
		return err
	}
	switch p.Sub {
	case OSTAlignmentCheck, OSTComputeREFSMMAT:
		if err := checkOptical(p.Instrument); err != nil {
			return err
		}
	case OSTPointAOT:
		if err := p.Instrument.validate(); err != nil {
			return err
		}
	}
	switch p.Sub {
	case OSTComputeREFSMMAT:
		if len(p.Stars) < 2 {
			return fmt.Errorf("two stars required, got %d", len(p.Stars))
		}
	case OSTPointAOT:
		if len(p.Stars) < 1 {
			return fmt.Errorf("a star is required")
		}
	case OSTDockingAlignment:
		if p.Docking < DockingLMREFSMMAT || p.Docking > DockingCSMREFSMMAT {
			return fmt.Errorf("docking option %d out of range 0..3", p.Docking)
		}
	case OSTREFSMMATToREFSMMAT:
		if p.Target == (astro.Mat3{}) {
			return fmt.Errorf("a target REFSMMAT is required")
		}
	case OSTAlignmentCheck:
		if len(p.Stars) > maxStars {
			return fmt.Errorf("at most %d input stars, got %d", maxStars, len(p.Stars))
		}
	}
	return nil
}

// Star sighting table sub-modes.
const (
	SSTLandmarkFixedInstrument = iota + 1
	SSTStarFixedInstrument
	SSTLandmarkFixedAttitude
	SSTStarFixedAttitude
	SSTImaginaryStar
	SSTImaginaryStarPartner
)

// StarSighting is the star sighting table.
type StarSighting struct {
	Sub        int              `json:"sub"`
	Vehicle    attitude.Vehicle `json:"vehicle"`
	Instrument InstrumentSpec   `json:"instrument"`
	Gimbals    Gimbals          `json:"gimbals"`
	Star       StarRef          `json:"star"`
	Landmark   horizon.Site     `json:"landmark"`
	// Elevation is the landmark elevation at which the sighting is taken.
	Elevation astro.Angle `json:"elevation"`
	// Readout is the fixed instrument setting.
	Readout Readout `json:"readout"`
}

func (StarSighting) Mode() Mode     { return ModeStarSighting }
func (p StarSighting) SubMode() int { return p.Sub }

func (p StarSighting) validate() error {
	if err := checkSub(p.Sub, 6); err != nil {
		return err
	}
	return checkOptical(p.Instrument)
}

// Lunar surface alignment sub-modes.
const (
	SurfaceTwoStars = iota + 1
	SurfaceStarGravity
	SurfaceLVLH
	SurfaceGimbals
)

// SurfaceAlign computes the LM navigation base orientation on the lunar
// surface.
type SurfaceAlign struct {
	Sub        int            `json:"sub"`
	Instrument InstrumentSpec `json:"instrument"`
	Stars      [2]StarRef     `json:"stars"`
	Sightings  [2]Readout     `json:"sightings"`
	// Times are the sighting times; the first is also the time of the
	// gimbal angles.
	Times    [2]time.Time  `json:"times"`
	Gimbals  Gimbals       `json:"gimbals"`
	Attitude LVLH          `json:"attitude"`
	Site     horizon.Site  `json:"site"`
}

// LVLH is a roll, pitch, yaw triple as entered, in degrees on the wire.
type LVLH struct {
	Roll  astro.Angle `json:"roll"`
	Pitch astro.Angle `json:"pitch"`
	Yaw   astro.Angle `json:"yaw"`
}

func (a LVLH) angles() attitude.LVLHAngles {
	return attitude.LVLHAngles{Roll: a.Roll.Rad(), Pitch: a.Pitch.Rad(), Yaw: a.Yaw.Rad()}
}

func (SurfaceAlign) Mode() Mode     { return ModeSurfaceAlign }
func (p SurfaceAlign) SubMode() int { return p.Sub }

func (p SurfaceAlign) validate() error {
	if err := checkSub(p.Sub, 4); err != nil {
		return err
	}
	if p.Sub == SurfaceTwoStars || p.Sub == SurfaceStarGravity {
		k := p.Instrument.Kind
		if k != optics.KindLMCOAS && k != optics.KindAOT {
			return fmt.Errorf("%s cannot be used on the surface", k)
		}
		return p.Instrument.validate()
	}
	return nil
}
