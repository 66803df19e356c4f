package agop

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/litescript/ls-optics/internal/astro"
	"github.com/litescript/ls-optics/internal/attitude"
)

// requestFile is the JSON form of a Request. REFSMMATs default to the
// identity and the step to one hour.
type requestFile struct {
	Mode         Mode            `json:"mode"`
	Launch       time.Time       `json:"launch"`
	Step         string          `json:"step,omitempty"`
	CSMREFSMMAT  *astro.Mat3     `json:"csm_refsmmat,omitempty"`
	LMREFSMMAT   *astro.Mat3     `json:"lm_refsmmat,omitempty"`
	DockingAngle astro.Angle     `json:"docking_angle"`
	Params       json.RawMessage `json:"params"`
}

// DefaultStep is the sampling step when a request file names none.
const DefaultStep = time.Hour

// DecodeRequest reads a JSON request. The ephemeris is attached by the
// caller.
func DecodeRequest(r io.Reader) (Request, error) {
	var f requestFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return Request{}, fmt.Errorf("decode request: %w", err)
	}

	step := DefaultStep
	if f.Step != "" {
		d, err := time.ParseDuration(f.Step)
		if err != nil {
			return Request{}, fmt.Errorf("decode request: step: %w", err)
		}
		step = d
	}

	params, err := decodeParams(f.Mode, f.Params)
	if err != nil {
		return Request{}, fmt.Errorf("decode request: %s params: %w", f.Mode, err)
	}

	return Request{
		Launch:      f.Launch,
		Step:        step,
		CSMREFSMMAT: matrixOrIdentity(f.CSMREFSMMAT),
		LMREFSMMAT:  matrixOrIdentity(f.LMREFSMMAT),
		Docking:     attitude.DockingGeometry{Angle: f.DockingAngle.Rad()},
		Params:      params,
	}, nil
}

func matrixOrIdentity(m *astro.Mat3) astro.Mat3 {
	if m == nil {
		return astro.Identity()
	}
	return *m
}

func decodeParams(m Mode, raw json.RawMessage) (Params, error) {
	switch m {
	case ModeCislunar:
		return decodeInto[CislunarNav](raw)
	case ModeReferenceBody:
		return decodeInto[ReferenceBody](raw)
	case ModeStarCatalog:
		return decodeInto[StarLookup](raw)
	case ModeAntenna:
		return decodeInto[AntennaPointing](raw)
	case ModeThermalControl:
		return ThermalControl{}, nil
	case ModeHorizonAlign:
		return decodeInto[HorizonAlign](raw)
	case ModeOpticalSupport:
		return decodeInto[OpticalSupport](raw)
	case ModeStarSighting:
		return decodeInto[StarSighting](raw)
	case ModeSurfaceAlign:
		return decodeInto[SurfaceAlign](raw)
	}
	return nil, fmt.Errorf("unknown mode %d", int(m))
}

func decodeInto[T Params](raw json.RawMessage) (Params, error) {
	var p T
	if len(raw) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return p, nil
}
