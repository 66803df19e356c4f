package agop

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/litescript/ls-optics/internal/astro"
	"github.com/litescript/ls-optics/internal/attitude"
	"github.com/litescript/ls-optics/internal/catalog"
	"github.com/litescript/ls-optics/internal/ephem"
	"github.com/litescript/ls-optics/internal/horizon"
	"github.com/litescript/ls-optics/internal/optics"
)

// maxLPD is the largest landing point designator angle that can be read.
const maxLPD = 70 * math.Pi / 180

// navigationStars is the highest catalog number of the navigation set,
// which is also listed in octal.
const navigationStars = 37

func (r *run) opticalSupport(p OpticalSupport) error {
	switch p.Sub {
	case OSTBurnHorizon:
		return r.burnHorizon(p)
	case OSTAlignmentCheck:
		return r.alignmentCheck(p)
	case OSTComputeREFSMMAT:
		return r.computeREFSMMAT(p)
	case OSTDockingAlignment:
		return r.dockingAlignment(p)
	case OSTPointAOT:
		return r.pointAOT(p)
	default:
		return r.reattach(p)
	}
}

func (r *run) ostHeader(sub int, veh string) {
	r.printf("MODE %d  OPTICAL SIGHTING TABLE  VEH %s", sub, veh)
}

// burnHorizon computes the LM attitude that lays the horizon along the
// window burn reference, holding the current X axis, and the landing
// point designator angle at which the horizon appears.
func (r *run) burnHorizon(p OpticalSupport) error {
	sv, err := r.first()
	if err != nil {
		return err
	}
	radius := r.Constants.radius(sv.Body)
	if sv.R.Norm() <= radius {
		return fail(ErrConversion, horizon.ErrInsideBody)
	}

	cur := r.platform(attitude.LM, p.Gimbals[0].angles())
	x, y, z := cur.Row(0), cur.Row(1), cur.Row(2)

	down := horizonToward(sv.R, x, radius, z)
	yNew := down.UnitCross(x)
	m := astro.Rows(x, yNew, x.Cross(yNew))
	g := attitude.GimbalAnglesFrom(r.req.LMREFSMMAT, m)
	r.rep.setGimbals(g)
	r.rep.setMatrix(m, astro.FrameBRCS, astro.FrameLM)

	lpd := math.Asin(astro.Clamp(-horizonToward(sv.R, y, radius, z).Dot(x)))
	lpdText := "N/A"
	if lpd >= 0 && lpd <= maxLPD {
		lpdText = fmt.Sprintf("%.1f", deg(lpd))
	}

	o, _, _ := g.Degrees()
	r.ostHeader(OSTBurnHorizon, "LM")
	r.println("***BURN HORIZON CHECK***")
	r.printf("GETHOR %s IMU %05.1f LPD %s", r.get(sv.Time), o, lpdText)
	return nil
}

// horizonToward returns whichever horizon direction in the plane normal to
// axis lies closer to ref.
func horizonToward(pos, axis astro.Vec3, radius float64, ref astro.Vec3) astro.Vec3 {
	upper := horizon.PointingToHorizon(pos, axis, radius, true)
	lower := horizon.PointingToHorizon(pos, axis, radius, false)
	if lower.Dot(ref) > upper.Dot(ref) {
		return lower
	}
	return upper
}

// alignmentCheck lists up to ten stars in the instrument field for the
// given attitude, with their readouts and visibility window.
func (r *run) alignmentCheck(p OpticalSupport) error {
	inst, err := r.instrument(p.Instrument)
	if err != nil {
		return err
	}
	eph, err := r.ephemeris()
	if err != nil {
		return err
	}
	start, _ := eph.Span()
	g := p.Gimbals[0].angles()
	brcsToNB := r.onVehicle(inst, p.Vehicle, g)
	r.rep.setGimbals(g)

	o, i, m := g.Degrees()
	r.ostHeader(OSTAlignmentCheck, vehicleName(p.Vehicle))
	r.println("*******************BODY ATTITUDES*******************")
	r.printf("     OGA %06.2f", o)
	r.printf("     IGA %06.2f", i)
	r.printf("     MGA %06.2f", m)
	r.println("************ALIGNMENT AND MANEUVER CHECK************")
	r.println(strings.Repeat(" ", 10) + checkTitle(inst, p.Instrument.Kind))
	r.println(" STAR DEC OCT    " + checkColumns(p.Instrument.Kind) + "       AOS       LOS")

	ids, explicit := r.checkCandidates(p)
	found := 0
	for n, id := range ids {
		if found == maxStars {
			break
		}
		var u astro.Vec3
		if explicit {
			if u, err = r.star(p.Stars[n]); err != nil {
				return err
			}
		} else if u, err = r.Stars.Vector(id); err != nil {
			continue
		}

		sNB := brcsToNB.MulVec(u)
		if !inst.InView(sNB) {
			continue
		}
		w, err := r.Search.StarWindow(eph, u, start)
		if errors.Is(err, ephem.ErrNotVisible) {
			continue
		}
		if err != nil {
			return fail(ErrInterpolation, err)
		}

		r.println(r.checkRow(p.Instrument, id, inst.Angles(sNB), w))
		found++
	}
	return nil
}

// checkCandidates returns the star numbers to test: the input stars, or
// the catalog from the starting star on.
func (r *run) checkCandidates(p OpticalSupport) (ids []int, explicit bool) {
	if len(p.Stars) > 0 {
		for _, s := range p.Stars {
			ids = append(ids, s.ID)
		}
		return ids, true
	}
	first := p.StartingStar
	if first < 1 {
		first = 1
	}
	for id := first; id <= catalog.MaxStarID; id++ {
		ids = append(ids, id)
	}
	return ids, false
}

func checkTitle(inst optics.Instrument, k optics.Kind) string {
	switch k {
	case optics.KindLMCOAS:
		return "LM " + inst.Name()
	case optics.KindCSMCOAS:
		return "CSM COAS"
	}
	return inst.Name()
}

func checkColumns(k optics.Kind) string {
	switch k {
	case optics.KindLMCOAS:
		return " AZ     EL"
	case optics.KindAOT:
		return " A1     A2"
	case optics.KindCSMCOAS:
		return "SPA    SXP"
	}
	return "SFT    TRN"
}

func (r *run) checkRow(s InstrumentSpec, id int, a optics.Angles, w ephem.Window) string {
	a = optics.Display(s.Kind, a)
	var b strings.Builder
	if s.Kind == optics.KindAOT {
		fmt.Fprintf(&b, "  %d", s.Detent)
	} else {
		b.WriteString("   ")
	}
	fmt.Fprintf(&b, "/%03d   ", id)
	if id <= navigationStars {
		fmt.Fprintf(&b, "%03o   ", id)
	} else {
		b.WriteString("      ")
	}

	switch s.Kind {
	case optics.KindSextant:
		fmt.Fprintf(&b, "%06.2f %06.3f", deg(a.A), deg(a.B))
	case optics.KindLMCOAS:
		fmt.Fprintf(&b, " %+05.1f  %+05.1f", deg(a.B), deg(a.A))
	case optics.KindAOT:
		fmt.Fprintf(&b, "%06.2f %06.2f", deg(a.A), deg(a.B))
	case optics.KindCSMCOAS:
		fmt.Fprintf(&b, " %+05.1f   %+04.1f", deg(a.A), deg(a.B))
	}

	b.WriteString(mark(w.VisibleAtStart) + r.get(w.AOS))
	b.WriteString(mark(!w.LOSFound) + r.get(w.LOS))
	return b.String()
}

// mark flags an AOS or LOS that is a span boundary rather than an event.
func mark(boundary bool) string {
	if boundary {
		return " *"
	}
	return "  "
}

// computeREFSMMAT derives the REFSMMAT from two star sightings, each taken
// at its own gimbal angles.
func (r *run) computeREFSMMAT(p OpticalSupport) error {
	inst, err := r.instrument(p.Instrument)
	if err != nil {
		return err
	}

	var pairs [2]attitude.Pair
	for i := range pairs {
		star, err := r.star(p.Stars[i])
		if err != nil {
			return err
		}
		u := inst.Vector(p.Sightings[i].instrumentAngles(p.Instrument.Kind))
		if inst.Vehicle() != p.Vehicle {
			u = r.req.Docking.VectorToPartner(inst.Vehicle(), u)
		}
		pairs[i] = attitude.Pair{From: star, To: attitude.SMNB(p.Gimbals[i].angles()).TMulVec(u)}
	}

	sol, err := attitude.Solve(pairs[0], pairs[1])
	if err != nil {
		return fail(ErrStarsTooClose, err)
	}
	r.rep.setMatrix(sol.M, astro.FrameBRCS, p.Vehicle.SM())

	r.ostHeader(OSTComputeREFSMMAT, vehicleName(p.Vehicle))
	r.println("")
	r.println(refsmmatText(sol.M)...)
	r.println("")
	r.printf("STAR ANGLE DIFFERENCE %.3f DEG", deg(sol.Discrepancy))
	return nil
}

// dockingAlignment solves the docked stack for whichever of the four
// platform quantities the option names.
func (r *run) dockingAlignment(p OpticalSupport) error {
	d := r.req.Docking
	csmRef, lmRef := r.req.CSMREFSMMAT, r.req.LMREFSMMAT
	csm, lm := p.Gimbals[0].angles(), p.Gimbals[1].angles()
	csmLabel, lmLabel := "CUR   ", "CUR   "

	var title string
	var calc *astro.Mat3
	switch p.Docking {
	case DockingLMREFSMMAT:
		title, lmLabel = "LM REFSMMAT", "CALC  "
		lmRef = d.LMREFSMMAT(csmRef, csm, lm)
		calc = &lmRef
		r.rep.setMatrix(lmRef, astro.FrameBRCS, astro.FrameLMSM)
	case DockingLMGimbals:
		title, lmLabel = "LM ATTITUDE", "CALC  "
		lm = d.CSMToLMGimbals(csmRef, lmRef, csm)
		r.rep.setGimbals(lm)
	case DockingCSMGimbals:
		title, csmLabel = "CSM ATTITUDE", "CALC  "
		csm = d.LMToCSMGimbals(csmRef, lmRef, lm)
		r.rep.setGimbals(csm)
	case DockingCSMREFSMMAT:
		title, csmLabel = "CSM REFSMMAT", "CALC  "
		csmRef = d.CSMREFSMMAT(lmRef, csm, lm)
		calc = &csmRef
		r.rep.setMatrix(csmRef, astro.FrameBRCS, astro.FrameCSMSM)
	}

	r.println(
		"                 DOCKING ALIGNMENT PROCESSOR",
		strings.Repeat(" ", 19)+title+" IS COMPUTED",
		"              *******                     *******",
		"              * CSM *                     * LEM *",
		"              *******                     *******",
		"         IMU GIMBAL ANGLES           IMU GIMBAL ANGLES",
		"REFSMMAT OGA    IGA    MGA REFSMMAT  OGA    IGA    MGA",
		csmLabel+gimbalText(csm)+" "+lmLabel+gimbalText(lm)+" ",
	)
	if calc != nil {
		r.println("", "              CALCULATED REFSMMAT")
		r.println(matrixText(*calc, "%010.7f %010.7f %010.7f")...)
	}
	return nil
}

// pointAOT points the LM AOT detent boresight of the docked stack at a
// star by maneuvering the CSM. If the first roll lands near gimbal lock
// the CSM is rolled a further 90° about the line of sight.
func (r *run) pointAOT(p OpticalSupport) error {
	sv, err := r.first()
	if err != nil {
		return err
	}
	star, err := r.star(p.Stars[0])
	if err != nil {
		return err
	}
	d, err := r.detent(p.Instrument.Detent)
	if err != nil {
		return err
	}
	boresight := d.Boresight()
	axis := r.req.Docking.CSMToLM().Inverse().Apply(boresight)

	var g attitude.GimbalAngles
	for _, omicron := range []float64{0, math.Pi / 2} {
		m := attitude.ThreeAxisPointing(axis, star, sv.R, sv.V, omicron)
		g = attitude.GimbalAnglesFrom(r.req.CSMREFSMMAT, m)
		if !g.NearGimbalLock(r.Constants.GimbalLockCos) {
			break
		}
	}
	r.rep.setGimbals(g)

	r.println("POINT AOT WITH CSM", "", "CSM GIMBAL ANGLES: "+gimbalText(g))
	return nil
}

// reattach re-expresses the vehicle attitude under the target REFSMMAT.
func (r *run) reattach(p OpticalSupport) error {
	g := attitude.ReattachREFSMMAT(r.req.refsmmat(p.Vehicle), p.Target, p.Gimbals[0].angles())
	r.rep.setGimbals(g)
	r.println("REFSMMAT TO REFSMMAT", "", "GIMBAL ANGLES: "+gimbalText(g))
	return nil
}
