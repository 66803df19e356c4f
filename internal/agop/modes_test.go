package agop

import (
	"math"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-optics/internal/astro"
	"github.com/litescript/ls-optics/internal/attitude"
	"github.com/litescript/ls-optics/internal/catalog"
	"github.com/litescript/ls-optics/internal/ephem"
	"github.com/litescript/ls-optics/internal/horizon"
	"github.com/litescript/ls-optics/internal/optics"
)

func starAt(id int, u astro.Vec3) StarRef {
	ra, dec := astro.RADec(u)
	return StarRef{ID: id, RA: astro.Angle(ra), Dec: astro.Angle(dec)}
}

func gimbalsOf(g attitude.GimbalAngles) Gimbals {
	return Gimbals{Outer: astro.Angle(g.Outer), Inner: astro.Angle(g.Inner), Middle: astro.Angle(g.Middle)}
}

func lastSample(t *testing.T, eph ephem.Ephemeris, step time.Duration) ephem.StateVector {
	t.Helper()
	start, end := eph.Span()
	at := start
	for !at.Add(step).After(end) {
		at = at.Add(step)
	}
	sv, err := eph.Sample(at)
	if err != nil {
		t.Fatal(err)
	}
	return sv
}

func vecClose(a, b astro.Vec3, tol float64) bool {
	return a.Sub(b).Norm() <= tol
}

type stubSearch struct {
	passes []ephem.Pass
	window ephem.Window
	err    error
}

func (s stubSearch) StationPasses(ephem.Ephemeris, astro.Vec3, ephem.Body) ([]ephem.Pass, error) {
	return s.passes, s.err
}

// siteSearch records the site position the engine asks about.
type siteSearch struct {
	stubSearch
	site *astro.Vec3
}

func (s siteSearch) StationPasses(_ ephem.Ephemeris, site astro.Vec3, _ ephem.Body) ([]ephem.Pass, error) {
	*s.site = site
	return s.passes, s.err
}

func (s stubSearch) StarWindow(ephem.Ephemeris, astro.Vec3, time.Time) (ephem.Window, error) {
	return s.window, s.err
}

func TestStarCatalogMode(t *testing.T) {
	rep := newTestEngine().Run(Request{Params: StarLookup{Star: StarRef{ID: 13}}})
	mustSucceed(t, rep)

	if len(rep.Lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(rep.Lines), rep.Text())
	}
	if want := "013/015 101:17:14  -16:42:58  "; !strings.HasPrefix(rep.Lines[3], want) {
		t.Errorf("line = %q, want prefix %q", rep.Lines[3], want)
	}
}

func TestStarCatalogUnknown(t *testing.T) {
	rep := newTestEngine().Run(Request{Params: StarLookup{Star: StarRef{ID: 399}}})
	if rep.Code != ErrCatalog {
		t.Errorf("Code = %v, want catalog", rep.Code.Label())
	}
}

func TestReferenceBodyEarth(t *testing.T) {
	rep := newTestEngine().Run(baseRequest(t, ReferenceBody{Sub: RefBodyEarth}))
	mustSucceed(t, rep)

	first := rep.Lines[3]
	if !strings.HasPrefix(first, "000:00:00 180:00:00  +00:00:00  -1.00000") {
		t.Errorf("first line = %q", first)
	}
	if got := len(rep.Lines) - 3; got != 6 {
		t.Errorf("%d sample lines, want 6", got)
	}
}

func TestReferenceBodySummary(t *testing.T) {
	rep := newTestEngine().Run(baseRequest(t, ReferenceBody{Sub: RefBodySummary}))
	mustSucceed(t, rep)

	if len(rep.Lines) != 8 {
		t.Fatalf("got %d lines:\n%s", len(rep.Lines), rep.Text())
	}
	// Spacecraft on +X, so the Earth is at RA 180.
	if !strings.HasPrefix(rep.Lines[3], "000:00:00 000:00:00 +00:00:00 180:00:00") {
		t.Errorf("summary line = %q", rep.Lines[3])
	}
}

func TestCislunarEarthLandmark(t *testing.T) {
	site := horizon.Site{}
	star := astro.FromRADec(140*degree, 0)
	req := baseRequest(t, CislunarNav{Sub: CislunarEarthLandmark, Star: starAt(401, star), Landmark: site})
	rep := newTestEngine().Run(req)
	mustSucceed(t, rep)

	// At the first sample the landmark is straight down (-X), 40° from
	// the star.
	fields := strings.Fields(rep.Lines[3])
	if len(fields) != 7 || fields[1] != "401/621" {
		t.Fatalf("first line = %q", rep.Lines[3])
	}
	if trn, _ := strconv.ParseFloat(fields[3], 64); math.Abs(trn-40) > 1e-3 {
		t.Errorf("trunnion = %v, want 40", trn)
	}

	sv := lastSample(t, req.Ephemeris, req.Step)
	los := site.BodyFixed(ephem.EarthRadius).Sub(sv.R).Normalized()
	sb := optics.SBNB().TMulVec(attitude.SMNB(rep.Gimbals.angles()).MulVec(los))
	if !vecClose(sb, astro.Vec3{Z: 1}, 1e-9) {
		t.Errorf("landmark line in sextant base = %+v, want +Z", sb)
	}
	if rep.NearHorizon != nil {
		t.Error("NearHorizon set for a landmark sighting")
	}
}

func TestCislunarStarAlongSightline(t *testing.T) {
	tests := []struct {
		name string
		sub  int
		star astro.Vec3
	}{
		// At the first sample the spacecraft is on +X and the landmark
		// straight below it.
		{"landmark line", CislunarEarthLandmark, astro.Vec3{X: -1}},
		{"horizon plane", CislunarEarthHorizon, astro.Vec3{X: 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := baseRequest(t, CislunarNav{Sub: tc.sub, Star: starAt(401, tc.star), Landmark: horizon.Site{}})
			rep := newTestEngine().Run(req)
			if rep.Code != ErrConversion {
				t.Fatalf("Code = %v, want conversion", rep.Code.Label())
			}
			if strings.Contains(rep.Text(), "NaN") {
				t.Errorf("report prints NaN:\n%s", rep.Text())
			}
			if rep.Gimbals != nil {
				t.Errorf("gimbals set: %+v", *rep.Gimbals)
			}
		})
	}
}

func TestCislunarEarthHorizon(t *testing.T) {
	req := baseRequest(t, CislunarNav{Sub: CislunarEarthHorizon, Star: StarRef{ID: 13}})
	rep := newTestEngine().Run(req)
	mustSucceed(t, rep)

	if rep.NearHorizon == nil {
		t.Fatal("NearHorizon not set")
	}
	for _, line := range rep.Lines[3:] {
		if !strings.Contains(line, " NEAR ") && !strings.Contains(line, " FAR ") {
			t.Errorf("line without horizon flag: %q", line)
		}
	}
}

func TestAntennaFixedHGA(t *testing.T) {
	site := horizon.Site{Lat: astro.Deg(20), Lng: astro.Deg(10)}
	ant := Readout{A: astro.Deg(10), B: astro.Deg(30)}
	req := baseRequest(t, AntennaPointing{Sub: AntennaHGAFixed, Site: site, Antenna: ant, HeadsUp: true})
	req.CSMREFSMMAT = astro.RotZ(0.3)
	rep := newTestEngine().Run(req)
	mustSucceed(t, rep)

	sv := lastSample(t, req.Ephemeris, req.Step)
	los := site.BodyFixed(ephem.EarthRadius).Sub(sv.R).Normalized()
	nb := attitude.Platform(attitude.CSM, req.CSMREFSMMAT, rep.Gimbals.angles()).Apply(los)
	got := optics.HGA{}.Angles(nb)
	if math.Abs(got.A-10*degree) > 1e-9 || angleDiff(got.B, 30*degree) > 1e-9 {
		t.Errorf("HGA reads (%v, %v) deg, want (10, 30)", deg(got.A), deg(got.B))
	}
	if !strings.HasPrefix(rep.Lines[1], "MODE 4 ACTIVE VEH CSM POINTING VEH CSM") {
		t.Errorf("header = %q", rep.Lines[1])
	}
}

func TestAntennaMovableSteerable(t *testing.T) {
	g := attitude.GimbalAngles{Outer: 0.2, Inner: 1.1, Middle: 0.3}
	req := baseRequest(t, AntennaPointing{Sub: AntennaSteerableMovable, Station: "gds", Vehicle: attitude.CSM, Gimbals: gimbalsOf(g)})
	req.Docking = attitude.DockingGeometry{Angle: 60 * degree}
	rep := newTestEngine().Run(req)
	mustSucceed(t, rep)

	gds, err := catalog.DefaultStations().Lookup("GDS")
	if err != nil {
		t.Fatal(err)
	}
	sv := lastSample(t, req.Ephemeris, req.Step)
	los := gds.Site.BodyFixed(ephem.EarthRadius).Sub(sv.R).Normalized()
	lmNB := req.Docking.ToPartner(attitude.Platform(attitude.CSM, req.CSMREFSMMAT, g))
	want := optics.Steerable{}.Angles(lmNB.Apply(los))

	if rep.Antenna == nil {
		t.Fatal("no antenna angles")
	}
	if math.Abs(rep.Antenna.A.Rad()-want.A) > 1e-9 || angleDiff(rep.Antenna.B.Rad(), want.B) > 1e-9 {
		t.Errorf("antenna = %+v, want %+v", rep.Antenna, want)
	}
}

func TestAntennaUnknownStation(t *testing.T) {
	rep := newTestEngine().Run(baseRequest(t, AntennaPointing{Sub: AntennaHGAMovable, Station: "XYZ"}))
	if rep.Code != ErrStation {
		t.Errorf("Code = %v, want station", rep.Code.Label())
	}
	if last := rep.Lines[len(rep.Lines)-1]; last != "GROUND STATION NOT FOUND" {
		t.Errorf("last line = %q", last)
	}
}

func TestThermalControl(t *testing.T) {
	req := baseRequest(t, ThermalControl{})
	rep := newTestEngine().Run(req)
	mustSucceed(t, rep)

	sv := lastSample(t, req.Ephemeris, req.Step)
	want := attitude.PTCAttitude(sv.R.Neg().Normalized(), testBodies.EarthSun.Sub(sv.R).Normalized())
	if rep.Matrix == nil || !rep.Matrix.M.EqualApprox(want, 1e-12) {
		t.Fatalf("matrix = %+v, want %v", rep.Matrix, want)
	}
	if rep.Matrix.From != astro.FrameBRCS || rep.Matrix.To != astro.FrameCSM {
		t.Errorf("matrix frames %s", rep.Matrix)
	}
}

func TestHorizonAlign(t *testing.T) {
	tests := []struct {
		name    string
		p       HorizonAlign
		roll    float64
		yaw     float64
		pitchUp bool
	}{
		{"heads up yaw 0", HorizonAlign{Sub: HorizonYaw0, HeadsUp: true}, 0, 0, true},
		{"heads down yaw 180", HorizonAlign{Sub: HorizonYaw180}, math.Pi, math.Pi, false},
	}

	e := newTestEngine()
	e.Constants.HorizonBias = 2 * degree
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := baseRequest(t, tc.p)
			rep := e.Run(req)
			mustSucceed(t, rep)

			sv := lastSample(t, req.Ephemeris, req.Step)
			pitch := -math.Acos(ephem.EarthRadius / sv.R.Norm())
			if tc.pitchUp {
				pitch -= 2 * degree
			} else {
				pitch += 2 * degree
			}
			want := attitude.LVLHAttitude(attitude.LVLHAngles{Roll: tc.roll, Pitch: pitch, Yaw: tc.yaw}, sv.R, sv.V)
			if !rep.Matrix.M.EqualApprox(want, 1e-12) {
				t.Errorf("matrix = %v, want %v", rep.Matrix.M, want)
			}
		})
	}
}

func TestHorizonAlignInsideBody(t *testing.T) {
	req := baseRequest(t, HorizonAlign{Sub: HorizonYaw0})
	req.Ephemeris = circularTable(t, ephem.BodyEarth, 6e6, 3, time.Minute)
	if rep := newTestEngine().Run(req); rep.Code != ErrConversion {
		t.Errorf("Code = %v, want conversion", rep.Code.Label())
	}
}

func TestOSTBurnHorizon(t *testing.T) {
	req := baseRequest(t, OpticalSupport{Sub: OSTBurnHorizon})
	// LM +X points north, normal to the orbit plane.
	req.LMREFSMMAT = astro.Rows(astro.Vec3{Z: 1}, astro.Vec3{Y: 1}, astro.Vec3{X: -1})
	rep := newTestEngine().Run(req)
	mustSucceed(t, rep)

	m := rep.Matrix.M
	if !m.IsOrthonormal(1e-12) {
		t.Fatalf("matrix not orthonormal: %v", m)
	}
	if !vecClose(m.Row(0), astro.Vec3{Z: 1}, 1e-12) {
		t.Errorf("X axis moved to %+v", m.Row(0))
	}
	r := 2e7
	want := math.Sqrt(1 - (ephem.EarthRadius/r)*(ephem.EarthRadius/r))
	if got := m.Row(2).Dot(astro.Vec3{X: -1}); math.Abs(got-want) > 1e-12 {
		t.Errorf("Z·nadir = %v, want %v", got, want)
	}
	if !strings.HasPrefix(rep.Lines[2], "GETHOR 000:00:00 IMU ") {
		t.Errorf("line = %q", rep.Lines[2])
	}
}

func TestOSTAlignmentCheck(t *testing.T) {
	u := optics.Sextant{}.Vector(optics.Angles{A: 30 * degree, B: 10 * degree})
	p := OpticalSupport{
		Sub:        OSTAlignmentCheck,
		Instrument: InstrumentSpec{Kind: optics.KindSextant},
		Stars:      []StarRef{starAt(401, u), starAt(402, u.Neg())},
	}
	rep := newTestEngine().Run(baseRequest(t, p))
	mustSucceed(t, rep)

	rows := rep.Lines[8:]
	if len(rows) != 1 {
		t.Fatalf("got %d star rows:\n%s", len(rows), rep.Text())
	}
	if !strings.HasPrefix(rows[0], "   /401         030.00 010.000") {
		t.Errorf("row = %q", rows[0])
	}
	if !strings.HasSuffix(rows[0], " *000:00:00 *000:50:00") {
		t.Errorf("row AOS/LOS = %q", rows[0])
	}
}

func TestOSTAlignmentCheckSearchesCatalog(t *testing.T) {
	p := OpticalSupport{Sub: OSTAlignmentCheck, Instrument: InstrumentSpec{Kind: optics.KindAOT, Detent: 0}, Vehicle: attitude.LM}
	rep := newTestEngine().Run(baseRequest(t, p))
	mustSucceed(t, rep)

	rows := rep.Lines[8:]
	if len(rows) > maxStars {
		t.Errorf("%d rows, cap is %d", len(rows), maxStars)
	}
	for _, row := range rows {
		if !strings.HasPrefix(row, "  0/") {
			t.Errorf("row without detent = %q", row)
		}
	}
}

func TestOSTComputeREFSMMAT(t *testing.T) {
	truth := astro.RotZ(0.4).Mul(astro.RotX(0.7))
	gims := [2]attitude.GimbalAngles{
		{Outer: 0.1, Inner: 0.5, Middle: 0.2},
		{Outer: 0.3, Inner: 2.0, Middle: -0.1},
	}
	sights := [2]Readout{
		{A: astro.Deg(30), B: astro.Deg(20)},
		{A: astro.Deg(200), B: astro.Deg(35)},
	}

	p := OpticalSupport{Sub: OSTComputeREFSMMAT, Instrument: InstrumentSpec{Kind: optics.KindSextant}}
	for i := range gims {
		nb := optics.Sextant{}.Vector(sights[i].angles())
		star := attitude.SMNB(gims[i]).Mul(truth).TMulVec(nb)
		p.Stars = append(p.Stars, starAt(401+i, star))
		p.Gimbals[i] = gimbalsOf(gims[i])
		p.Sightings[i] = sights[i]
	}

	rep := newTestEngine().Run(baseRequest(t, p))
	mustSucceed(t, rep)

	if !rep.Matrix.M.EqualApprox(truth, 1e-9) {
		t.Errorf("REFSMMAT = %v, want %v", rep.Matrix.M, truth)
	}
	if rep.Matrix.To != astro.FrameCSMSM {
		t.Errorf("REFSMMAT frame = %s", rep.Matrix.To)
	}
	if last := rep.Lines[len(rep.Lines)-1]; last != "STAR ANGLE DIFFERENCE 0.000 DEG" {
		t.Errorf("last line = %q", last)
	}
	if !strings.HasPrefix(rep.Lines[2], "XIXE ") {
		t.Errorf("matrix line = %q", rep.Lines[2])
	}
}

func TestOSTComputeREFSMMATStarsTooClose(t *testing.T) {
	p := OpticalSupport{
		Sub:        OSTComputeREFSMMAT,
		Instrument: InstrumentSpec{Kind: optics.KindSextant},
		Stars: []StarRef{
			{ID: 401, RA: astro.Deg(10), Dec: astro.Deg(0)},
			{ID: 402, RA: astro.Deg(10.2), Dec: astro.Deg(0)},
		},
		Sightings: [2]Readout{{A: astro.Deg(10), B: astro.Deg(20)}, {A: astro.Deg(80), B: astro.Deg(30)}},
	}
	rep := newTestEngine().Run(baseRequest(t, p))
	if rep.Code != ErrStarsTooClose {
		t.Fatalf("Code = %v, want stars_too_close", rep.Code.Label())
	}
	if rep.Matrix != nil {
		t.Error("matrix reported on failure")
	}
}

func TestOSTDockingAlignment(t *testing.T) {
	csmRef := astro.RotZ(0.3)
	lmRef := astro.RotX(0.5)
	dock := attitude.DockingGeometry{Angle: 60 * degree}
	csm := attitude.GimbalAngles{Outer: 0.4, Inner: 1.2, Middle: 0.1}
	lm := dock.CSMToLMGimbals(csmRef, lmRef, csm)

	tests := []struct {
		option int
		title  string
		lines  int
		check  func(t *testing.T, rep *Report)
	}{
		{DockingLMREFSMMAT, "LM REFSMMAT", 13, func(t *testing.T, rep *Report) {
			if !rep.Matrix.M.EqualApprox(lmRef, 1e-9) {
				t.Errorf("LM REFSMMAT = %v", rep.Matrix.M)
			}
		}},
		{DockingLMGimbals, "LM ATTITUDE", 8, func(t *testing.T, rep *Report) {
			if g := rep.Gimbals.angles(); angleDiff(g.Outer, lm.Outer) > 1e-9 || angleDiff(g.Middle, lm.Middle) > 1e-9 {
				t.Errorf("LM gimbals = %+v, want %+v", g, lm)
			}
		}},
		{DockingCSMGimbals, "CSM ATTITUDE", 8, func(t *testing.T, rep *Report) {
			if g := rep.Gimbals.angles(); angleDiff(g.Inner, csm.Inner) > 1e-9 || angleDiff(g.Middle, csm.Middle) > 1e-9 {
				t.Errorf("CSM gimbals = %+v, want %+v", g, csm)
			}
		}},
		{DockingCSMREFSMMAT, "CSM REFSMMAT", 13, func(t *testing.T, rep *Report) {
			if !rep.Matrix.M.EqualApprox(csmRef, 1e-9) {
				t.Errorf("CSM REFSMMAT = %v", rep.Matrix.M)
			}
		}},
	}

	for _, tc := range tests {
		t.Run(tc.title, func(t *testing.T) {
			p := OpticalSupport{Sub: OSTDockingAlignment, Docking: tc.option}
			p.Gimbals = [2]Gimbals{gimbalsOf(csm), gimbalsOf(lm)}
			req := baseRequest(t, p)
			req.CSMREFSMMAT, req.LMREFSMMAT, req.Docking = csmRef, lmRef, dock

			rep := newTestEngine().Run(req)
			mustSucceed(t, rep)
			if len(rep.Lines) != tc.lines {
				t.Errorf("got %d lines, want %d:\n%s", len(rep.Lines), tc.lines, rep.Text())
			}
			if want := tc.title + " IS COMPUTED"; strings.TrimSpace(rep.Lines[1]) != want {
				t.Errorf("title = %q", rep.Lines[1])
			}
			tc.check(t, rep)
		})
	}
}

func TestOSTPointAOTDetentZero(t *testing.T) {
	p := OpticalSupport{
		Sub:        OSTPointAOT,
		Instrument: InstrumentSpec{Kind: optics.KindAOT, Detent: 0},
		Stars:      []StarRef{{ID: 13}},
	}
	req := baseRequest(t, p)
	req.Docking = attitude.DockingGeometry{Angle: 60 * degree}
	rep := newTestEngine().Run(req)
	mustSucceed(t, rep)

	star, err := catalog.DefaultStars().Vector(13)
	if err != nil {
		t.Fatal(err)
	}
	lmNB := req.Docking.ToPartner(attitude.Platform(attitude.CSM, req.CSMREFSMMAT, rep.Gimbals.angles()))
	want := optics.DefaultDetents()[0].Boresight()
	if got := lmNB.Apply(star); !vecClose(got, want, 1e-9) {
		t.Errorf("star in LM NB = %+v, want detent 0 boresight %+v", got, want)
	}
	if !strings.HasPrefix(rep.Lines[2], "CSM GIMBAL ANGLES: ") {
		t.Errorf("line = %q", rep.Lines[2])
	}
}

func TestOSTReattach(t *testing.T) {
	from := astro.RotZ(0.3)
	target := astro.RotX(0.2).Mul(astro.RotY(-0.4))
	g0 := attitude.GimbalAngles{Outer: 0.5, Inner: 0.1, Middle: 0.2}
	p := OpticalSupport{Sub: OSTREFSMMATToREFSMMAT, Target: target}
	p.Gimbals[0] = gimbalsOf(g0)

	req := baseRequest(t, p)
	req.CSMREFSMMAT = from
	rep := newTestEngine().Run(req)
	mustSucceed(t, rep)

	got := attitude.SMNB(rep.Gimbals.angles()).Mul(target)
	if want := attitude.SMNB(g0).Mul(from); !got.EqualApprox(want, 1e-9) {
		t.Errorf("attitude changed: %v, want %v", got, want)
	}
}

func TestStarSightingImaginaryStar(t *testing.T) {
	g := attitude.GimbalAngles{Outer: 0.2, Inner: 0.9, Middle: 0.1}
	readout := Readout{A: astro.Deg(30), B: astro.Deg(20)}
	p := StarSighting{Sub: SSTImaginaryStar, Instrument: InstrumentSpec{Kind: optics.KindSextant}, Gimbals: gimbalsOf(g), Readout: readout}
	rep := newTestEngine().Run(baseRequest(t, p))
	mustSucceed(t, rep)

	los := attitude.SMNB(g).TMulVec(optics.Sextant{}.Vector(readout.angles()))
	_, dec := astro.RADec(los)
	if !strings.HasSuffix(rep.Lines[5], "LOS DEC    "+astro.FormatDec(dec)) {
		t.Errorf("LOS DEC line = %q", rep.Lines[5])
	}
	if rep.Lines[3] != "  TGTID STAR" {
		t.Errorf("TGTID line = %q", rep.Lines[3])
	}
}

func TestStarSightingCSMCOASReadoutSign(t *testing.T) {
	g := attitude.GimbalAngles{Outer: 0.2, Inner: 0.9, Middle: 0.1}
	readout := Readout{A: astro.Deg(-10), B: astro.Deg(2)}
	p := StarSighting{Sub: SSTImaginaryStar, Instrument: InstrumentSpec{Kind: optics.KindCSMCOAS}, Gimbals: gimbalsOf(g), Readout: readout}
	rep := newTestEngine().Run(baseRequest(t, p))
	mustSucceed(t, rep)

	// SPA -10 looks 10 degrees above the +X boresight.
	above := optics.CSMCOAS{}.Vector(optics.Angles{A: 10 * degree, B: 2 * degree})
	_, dec := astro.RADec(attitude.SMNB(g).TMulVec(above))
	if !strings.HasSuffix(rep.Lines[5], "LOS DEC    "+astro.FormatDec(dec)) {
		t.Errorf("LOS DEC line = %q", rep.Lines[5])
	}
	if !strings.Contains(rep.Text(), "SPA -10.000") || !strings.Contains(rep.Text(), "SXP 002.000") {
		t.Errorf("readout not in display convention:\n%s", rep.Text())
	}
}

func TestStarSightingImaginaryVehicleCheck(t *testing.T) {
	tests := []struct {
		name    string
		sub     int
		vehicle attitude.Vehicle
		want    Code
	}{
		{"own vehicle", SSTImaginaryStar, attitude.CSM, OK},
		{"instrument on partner", SSTImaginaryStar, attitude.LM, ErrInvalidRequest},
		{"partner", SSTImaginaryStarPartner, attitude.LM, OK},
		{"partner is self", SSTImaginaryStarPartner, attitude.CSM, ErrInvalidRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := StarSighting{Sub: tc.sub, Vehicle: tc.vehicle, Instrument: InstrumentSpec{Kind: optics.KindSextant}}
			if rep := newTestEngine().Run(baseRequest(t, p)); rep.Code != tc.want {
				t.Errorf("Code = %v, want %v", rep.Code.Label(), tc.want.Label())
			}
		})
	}
}

func TestStarSightingStar(t *testing.T) {
	star := astro.Vec3{Z: 1}
	readout := Readout{A: astro.Deg(40), B: astro.Deg(20)}

	t.Run("fixed instrument", func(t *testing.T) {
		p := StarSighting{Sub: SSTStarFixedInstrument, Instrument: InstrumentSpec{Kind: optics.KindSextant}, Star: starAt(401, star), Readout: readout}
		rep := newTestEngine().Run(baseRequest(t, p))
		mustSucceed(t, rep)

		got := optics.Sextant{}.Angles(attitude.SMNB(rep.Gimbals.angles()).MulVec(star))
		if angleDiff(got.A, 40*degree) > 1e-9 || math.Abs(got.B-20*degree) > 1e-9 {
			t.Errorf("sextant reads (%v, %v) deg", deg(got.A), deg(got.B))
		}
	})

	t.Run("fixed attitude", func(t *testing.T) {
		boresight := optics.SBNB().MulVec(astro.Vec3{Z: 1})
		p := StarSighting{Sub: SSTStarFixedAttitude, Instrument: InstrumentSpec{Kind: optics.KindSextant}, Star: starAt(401, boresight)}
		rep := newTestEngine().Run(baseRequest(t, p))
		mustSucceed(t, rep)

		if strings.Contains(rep.Text(), "OUTSIDE") {
			t.Errorf("boresight star reported outside the field:\n%s", rep.Text())
		}
		if !strings.Contains(rep.Text(), "TRN 000.000") {
			t.Errorf("trunnion not zero:\n%s", rep.Text())
		}
	})

	t.Run("never visible", func(t *testing.T) {
		e := newTestEngine()
		e.Search = stubSearch{err: ephem.ErrNotVisible}
		p := StarSighting{Sub: SSTStarFixedAttitude, Instrument: InstrumentSpec{Kind: optics.KindSextant}, Star: StarRef{ID: 1}}
		if rep := e.Run(baseRequest(t, p)); rep.Code != ErrNoAOS {
			t.Errorf("Code = %v, want no_aos", rep.Code.Label())
		}
	})
}

func TestStarSightingLandmark(t *testing.T) {
	site := horizon.Site{Lng: astro.Deg(90)}
	req := baseRequest(t, StarSighting{
		Sub:        SSTLandmarkFixedAttitude,
		Instrument: InstrumentSpec{Kind: optics.KindSextant},
		Landmark:   site,
		Elevation:  astro.Deg(5),
	})
	req.Ephemeris = circularTable(t, ephem.BodyEarth, 7e6, 7, 10*time.Minute)

	rep := newTestEngine().Run(req)
	mustSucceed(t, rep)
	text := rep.Text()
	for _, want := range []string{"  TGTID LMK", "  ELV   005.000", "  GETCA 000:"} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in:\n%s", want, text)
		}
	}
}

func TestStarSightingLandmarkNotInSight(t *testing.T) {
	tests := []struct {
		name   string
		search stubSearch
	}{
		{"no pass", stubSearch{}},
		{"pass too low", stubSearch{passes: []ephem.Pass{{AOS: epoch, Peak: epoch, LOS: epoch, MaxElevation: 2 * degree}}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine()
			e.Search = tc.search
			p := StarSighting{Sub: SSTLandmarkFixedInstrument, Instrument: InstrumentSpec{Kind: optics.KindSextant}, Elevation: astro.Deg(10)}
			if rep := e.Run(baseRequest(t, p)); rep.Code != ErrNotInSight {
				t.Errorf("Code = %v, want not_in_sight", rep.Code.Label())
			}
		})
	}
}

func TestStarSightingLandmarkUsesEngineRadius(t *testing.T) {
	var got astro.Vec3
	e := newTestEngine()
	e.Constants.EarthRadius = 6.4e6
	e.Search = siteSearch{site: &got}
	site := horizon.Site{Lat: astro.Deg(30), Lng: astro.Deg(45), Alt: 1000}
	p := StarSighting{Sub: SSTLandmarkFixedInstrument, Instrument: InstrumentSpec{Kind: optics.KindSextant}, Landmark: site, Elevation: astro.Deg(10)}

	if rep := e.Run(baseRequest(t, p)); rep.Code != ErrNotInSight {
		t.Fatalf("Code = %v, want not_in_sight", rep.Code.Label())
	}
	if want := site.BodyFixed(6.4e6); !vecClose(got, want, 1e-6) {
		t.Errorf("site = %v, want %v", got, want)
	}
}

func TestSurfaceAlign(t *testing.T) {
	site := horizon.Site{Lat: astro.Deg(0.67), Lng: astro.Deg(23.47)}
	att := LVLH{Roll: astro.Deg(10), Pitch: astro.Deg(5), Yaw: astro.Deg(30)}
	const wantLine = "R 010.00 P 005.00 Y 030.00"

	e := newTestEngine()
	lvlh := e.Run(Request{Params: SurfaceAlign{Sub: SurfaceLVLH, Site: site, Attitude: att}})
	mustSucceed(t, lvlh)
	truth := lvlh.Matrix.M

	t.Run("lvlh", func(t *testing.T) {
		if !containsLine(lvlh.Lines, wantLine) {
			t.Errorf("missing %q in:\n%s", wantLine, lvlh.Text())
		}
	})

	t.Run("gimbals", func(t *testing.T) {
		g := attitude.GimbalAnglesFrom(astro.Identity(), truth.T())
		rep := e.Run(Request{
			LMREFSMMAT: astro.Identity(),
			Params:     SurfaceAlign{Sub: SurfaceGimbals, Site: site, Gimbals: gimbalsOf(g)},
		})
		mustSucceed(t, rep)
		if !rep.Matrix.M.EqualApprox(truth, 1e-9) {
			t.Errorf("NB to MCT = %v, want %v", rep.Matrix.M, truth)
		}
	})

	t.Run("two stars", func(t *testing.T) {
		aot := optics.AOT{Detent: optics.DefaultDetents()[0], Line: optics.LinePlusY}
		sights := [2]Readout{{A: astro.Deg(40), B: astro.Deg(40 + 12*8)}, {A: astro.Deg(250), B: astro.Deg(250 + 12*15)}}
		p := SurfaceAlign{Sub: SurfaceTwoStars, Site: site, Sightings: sights, Times: [2]time.Time{epoch, epoch}}
		p.Instrument = InstrumentSpec{Kind: optics.KindAOT, Line: optics.LinePlusY}
		for i, s := range sights {
			p.Stars[i] = starAt(401+i, truth.MulVec(aot.Vector(s.angles())))
		}

		rep := e.Run(Request{Params: p})
		mustSucceed(t, rep)
		if !rep.Matrix.M.EqualApprox(truth, 1e-9) {
			t.Errorf("NB to MCT = %v, want %v", rep.Matrix.M, truth)
		}
		if !containsLine(rep.Lines, wantLine) {
			t.Errorf("missing %q in:\n%s", wantLine, rep.Text())
		}
	})
}

func containsLine(lines []string, want string) bool {
	for _, l := range lines {
		if l == want {
			return true
		}
	}
	return false
}
