// Package agop is the generalized optics program: a request dispatcher that
// runs one of nine pointing computations against an ephemeris and returns a
// fixed-width text report.
package agop

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/litescript/ls-optics/internal/astro"
	"github.com/litescript/ls-optics/internal/attitude"
	"github.com/litescript/ls-optics/internal/catalog"
	"github.com/litescript/ls-optics/internal/elevation"
	"github.com/litescript/ls-optics/internal/ephem"
	"github.com/litescript/ls-optics/internal/horizon"
	"github.com/litescript/ls-optics/internal/logging"
	"github.com/litescript/ls-optics/internal/optics"
)

// Sample and search caps.
const (
	maxSamples = 10
	maxStars   = 10
)

// Mode is a primary computation mode.
type Mode int

const (
	ModeCislunar Mode = iota + 1
	ModeReferenceBody
	ModeStarCatalog
	ModeAntenna
	ModeThermalControl
	ModeHorizonAlign
	ModeOpticalSupport
	ModeStarSighting
	ModeSurfaceAlign
)

var modeNames = map[Mode]string{
	ModeCislunar:       "cislunar",
	ModeReferenceBody:  "refbody",
	ModeStarCatalog:    "catalog",
	ModeAntenna:        "antenna",
	ModeThermalControl: "ptc",
	ModeHorizonAlign:   "horizon",
	ModeOpticalSupport: "ost",
	ModeStarSighting:   "sst",
	ModeSurfaceAlign:   "lsad",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "unknown"
}

// ParseMode accepts a mode name or its number.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if s == name || s == fmt.Sprint(int(m)) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Constants are the system constants the computations depend on.
type Constants struct {
	Detents [6]optics.Detent
	// HorizonBias is added to the horizon alignment pitch, toward the
	// horizon when heads up.
	HorizonBias        float64
	EarthRadius        float64
	MoonRadius         float64
	LandingSiteRadius  float64
	EarthHorizonHeight float64
	// GimbalLockCos is the cos(middle gimbal) at or below which an attitude
	// is treated as gimbal locked.
	GimbalLockCos float64
}

// DefaultConstants returns the standard constant set.
func DefaultConstants() Constants {
	return Constants{
		Detents:            optics.DefaultDetents(),
		EarthRadius:        ephem.EarthRadius,
		MoonRadius:         ephem.MoonRadius,
		LandingSiteRadius:  ephem.MoonRadius,
		EarthHorizonHeight: ephem.EarthHorizonHeight,
		GimbalLockCos:      0.2,
	}
}

func (c Constants) radius(b ephem.Body) float64 {
	if b == ephem.BodyMoon {
		return c.MoonRadius
	}
	return c.EarthRadius
}

// StarCatalog resolves a catalog star to a BRCS unit vector.
type StarCatalog interface {
	Vector(id int) (astro.Vec3, error)
}

// StationCatalog resolves a ground station code.
type StationCatalog interface {
	Lookup(code string) (catalog.Station, error)
}

// SightlineSearch finds long-span visibility events.
type SightlineSearch interface {
	StationPasses(eph ephem.Ephemeris, site astro.Vec3, body ephem.Body) ([]ephem.Pass, error)
	StarWindow(eph ephem.Ephemeris, star astro.Vec3, from time.Time) (ephem.Window, error)
}

// Recorder observes completed requests.
type Recorder interface {
	ObserveRequest(mode, code string, elapsed time.Duration, lines int, truncated bool)
}

// Request is one computation.
type Request struct {
	// Ephemeris is sampled from its start time at Step.
	Ephemeris ephem.Ephemeris
	// Launch is the epoch ground elapsed times are measured from.
	Launch      time.Time
	Step        time.Duration
	CSMREFSMMAT astro.Mat3
	LMREFSMMAT  astro.Mat3
	Docking     attitude.DockingGeometry
	Params      Params
}

func (r Request) refsmmat(v attitude.Vehicle) astro.Mat3 {
	if v == attitude.LM {
		return r.LMREFSMMAT
	}
	return r.CSMREFSMMAT
}

// Engine runs requests. Its collaborators are read-only, so one engine can
// serve concurrent requests.
type Engine struct {
	Constants Constants
	Converter ephem.Converter
	Celestial ephem.Celestial
	Stars     StarCatalog
	Stations  StationCatalog
	Search    SightlineSearch
	Finder    elevation.Finder
	Logger    *logging.Logger
	Recorder  Recorder
}

// NewEngine returns an engine with the default catalogs, search and
// constants.
func NewEngine(conv ephem.Converter, cel ephem.Celestial) *Engine {
	return &Engine{
		Constants: DefaultConstants(),
		Converter: conv,
		Celestial: cel,
		Stars:     catalog.DefaultStars(),
		Stations:  catalog.DefaultStations(),
		Search:    ephem.Scanner{Converter: conv},
		Finder:    elevation.DefaultFinder(),
		Logger:    logging.Discard(),
	}
}

// Run executes req. Failures are reported through Report.Code; Run itself
// never fails.
func (e *Engine) Run(req Request) *Report {
	start := time.Now()
	log := e.Logger
	if log == nil {
		log = logging.Discard()
	}

	rep := &Report{}
	err := e.dispatch(req, rep)
	if err != nil {
		rep.fail(err)
		log.Warn("%s %d: %v", rep.Mode, rep.Sub, err)
	} else {
		log.Debug("%s %d: %d lines", rep.Mode, rep.Sub, len(rep.Lines))
	}

	if e.Recorder != nil {
		e.Recorder.ObserveRequest(rep.Mode.String(), rep.Code.Label(), time.Since(start), len(rep.Lines), rep.Truncated)
	}
	return rep
}

func (e *Engine) dispatch(req Request, rep *Report) error {
	if req.Params == nil {
		return invalid("no mode parameters")
	}
	rep.Mode, rep.Sub = req.Params.Mode(), req.Params.SubMode()
	if err := req.Params.validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	r := &run{Engine: e, req: req, rep: rep}
	switch p := req.Params.(type) {
	case CislunarNav:
		return r.cislunar(p)
	case ReferenceBody:
		return r.referenceBody(p)
	case StarLookup:
		return r.starCatalog(p)
	case AntennaPointing:
		return r.antenna(p)
	case ThermalControl:
		return r.thermalControl()
	case HorizonAlign:
		return r.horizonAlign(p)
	case OpticalSupport:
		return r.opticalSupport(p)
	case StarSighting:
		return r.starSighting(p)
	case SurfaceAlign:
		return r.surfaceAlign(p)
	}
	return invalid("unsupported parameters %T", req.Params)
}

// run carries one request through a mode. It holds the ephemeris for the
// duration of the call.
type run struct {
	*Engine
	req Request
	rep *Report
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

func fail(code Code, err error) error {
	return fmt.Errorf("%w: %v", code, err)
}

func (r *run) printf(format string, args ...interface{}) {
	r.rep.Lines = append(r.rep.Lines, fmt.Sprintf(format, args...))
}

func (r *run) println(lines ...string) {
	r.rep.Lines = append(r.rep.Lines, lines...)
}

func (r *run) ephemeris() (ephem.Ephemeris, error) {
	if r.req.Ephemeris == nil {
		return nil, invalid("no ephemeris")
	}
	return r.req.Ephemeris, nil
}

// each calls fn for the state vector at every step from the ephemeris
// start, at most maxSamples times. Report.Truncated is set when the cap
// stops the loop before the span end.
func (r *run) each(fn func(sv ephem.StateVector) error) error {
	eph, err := r.ephemeris()
	if err != nil {
		return err
	}
	if r.req.Step <= 0 {
		return invalid("step %v must be positive", r.req.Step)
	}

	t, end := eph.Span()
	for n := 0; !t.After(end); n++ {
		if n == maxSamples {
			r.rep.Truncated = true
			return nil
		}
		sv, err := eph.Sample(t)
		if err != nil {
			return fail(ErrInterpolation, err)
		}
		if err := fn(sv); err != nil {
			return err
		}
		t = t.Add(r.req.Step)
	}
	return nil
}

// first returns the state vector at the ephemeris start.
func (r *run) first() (ephem.StateVector, error) {
	eph, err := r.ephemeris()
	if err != nil {
		return ephem.StateVector{}, err
	}
	start, _ := eph.Span()
	sv, err := eph.Sample(start)
	if err != nil {
		return ephem.StateVector{}, fail(ErrInterpolation, err)
	}
	return sv, nil
}

// get formats a time as ground elapsed time.
func (r *run) get(t time.Time) string {
	return astro.FormatElapsed(t.Sub(r.req.Launch))
}

func (r *run) bodies(t time.Time) (ephem.Bodies, error) {
	b, err := r.Celestial.Bodies(t)
	if err != nil {
		return ephem.Bodies{}, fail(ErrEphemerides, err)
	}
	return b, nil
}

func (r *run) star(ref StarRef) (astro.Vec3, error) {
	if ref.ID > catalog.MaxStarID {
		return astro.FromRADec(ref.RA.Rad(), ref.Dec.Rad()), nil
	}
	u, err := r.Stars.Vector(ref.ID)
	if err != nil {
		return astro.Vec3{}, fail(ErrCatalog, err)
	}
	return u, nil
}

// position expresses a state vector's position in body's inertial frame.
func (r *run) position(sv ephem.StateVector, body ephem.Body) (astro.Vec3, error) {
	if sv.Body == body {
		return sv.R, nil
	}
	p, err := r.Converter.Position(sv.R, sv.Time, sv.Body.Inertial(), body.Inertial())
	if err != nil {
		return astro.Vec3{}, fail(ErrConversion, err)
	}
	return p, nil
}

// landmark returns a surface site in body's inertial frame at t.
func (r *run) landmark(site horizon.Site, body ephem.Body, t time.Time) (astro.Vec3, error) {
	p, err := r.Converter.Position(site.BodyFixed(r.Constants.radius(body)), t, body.Fixed(), body.Inertial())
	if err != nil {
		return astro.Vec3{}, fail(ErrConversion, err)
	}
	return p, nil
}

func (r *run) instrument(s InstrumentSpec) (optics.Instrument, error) {
	cfg := optics.Config{COASAxis: s.COASAxis, Line: s.Line}
	if s.Kind == optics.KindAOT {
		d, err := r.detent(s.Detent)
		if err != nil {
			return nil, err
		}
		cfg.Detent = d
	}
	inst, err := optics.New(s.Kind, cfg)
	if err != nil {
		return nil, invalid("%v", err)
	}
	return inst, nil
}

func (r *run) detent(i int) (optics.Detent, error) {
	if i < 0 || i >= len(r.Constants.Detents) {
		return optics.Detent{}, invalid("AOT detent %d out of range", i)
	}
	return r.Constants.Detents[i], nil
}

// platform returns the BRCS to navigation base matrix of v.
func (r *run) platform(v attitude.Vehicle, g attitude.GimbalAngles) astro.Mat3 {
	return attitude.Platform(v, r.req.refsmmat(v), g).M
}

// onVehicle returns the BRCS to navigation base matrix of inst's vehicle
// when the attitude is held by v.
func (r *run) onVehicle(inst optics.Instrument, v attitude.Vehicle, g attitude.GimbalAngles) astro.Mat3 {
	t := attitude.Platform(v, r.req.refsmmat(v), g)
	if inst.Vehicle() != v {
		t = r.req.Docking.ToPartner(t)
	}
	return t.M
}

func codeOf(err error) Code {
	var c Code
	if errors.As(err, &c) {
		return c
	}
	return ErrInvalidRequest
}
