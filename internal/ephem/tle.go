package ephem

import (
	"fmt"
	"math"
	"strings"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/litescript/ls-optics/internal/astro"
)

// TLE is an Earth-orbit ephemeris propagated with SGP4 from a two-line
// element set. Output is in the TEME frame, used here as Earth-centred
// inertial.
type TLE struct {
	sat   satellite.Satellite
	start time.Time
	end   time.Time
	step  time.Duration
}

// NewTLE parses a two-line element set and tabulates it from start to end
// at step.
func NewTLE(line1, line2 string, start, end time.Time, step time.Duration) (*TLE, error) {
	if err := validateTLELines(line1, line2); err != nil {
		return nil, fmt.Errorf("invalid TLE: %w", err)
	}
	if !end.After(start) || step <= 0 {
		return nil, fmt.Errorf("invalid TLE span %s to %s step %s", start, end, step)
	}

	// go-satellite calls log.Fatal on malformed input, hence the checks above.
	sat := satellite.TLEToSat(strings.TrimSpace(line1), strings.TrimSpace(line2), satellite.GravityWGS72)
	if sat.Error != 0 {
		return nil, fmt.Errorf("sgp4 init failed: code=%d %s", sat.Error, sat.ErrorStr)
	}
	return &TLE{sat: sat, start: start, end: end, step: step}, nil
}

func validateTLELines(line1, line2 string) error {
	line1 = strings.TrimSpace(line1)
	line2 = strings.TrimSpace(line2)

	if len(line1) != 69 {
		return fmt.Errorf("line1 length %d, expected 69", len(line1))
	}
	if len(line2) != 69 {
		return fmt.Errorf("line2 length %d, expected 69", len(line2))
	}
	if line1[0] != '1' {
		return fmt.Errorf("line1 must start with '1', got '%c'", line1[0])
	}
	if line2[0] != '2' {
		return fmt.Errorf("line2 must start with '2', got '%c'", line2[0])
	}
	return nil
}

// Body implements Ephemeris.
func (e *TLE) Body() Body { return BodyEarth }

// Span implements Ephemeris.
func (e *TLE) Span() (start, end time.Time) { return e.start, e.end }

// Times implements Ephemeris.
func (e *TLE) Times() []time.Time {
	var out []time.Time
	for t := e.start; !t.After(e.end); t = t.Add(e.step) {
		out = append(out, t)
	}
	return out
}

// Sample implements Ephemeris. Propagation is to whole seconds.
func (e *TLE) Sample(t time.Time) (StateVector, error) {
	if t.Before(e.start) || t.After(e.end) {
		return StateVector{}, fmt.Errorf("%w: %s", ErrOutOfSpan, t.UTC().Format(time.RFC3339))
	}

	u := t.UTC()
	pos, vel := satellite.Propagate(e.sat, u.Year(), int(u.Month()), u.Day(), u.Hour(), u.Minute(), u.Second())
	if math.IsNaN(pos.X) || math.IsNaN(pos.Y) || math.IsNaN(pos.Z) ||
		math.IsInf(pos.X, 0) || math.IsInf(pos.Y, 0) || math.IsInf(pos.Z, 0) {
		return StateVector{}, fmt.Errorf("sgp4 propagation failed at %s: output is NaN/Inf", u.Format(time.RFC3339))
	}

	return StateVector{
		Time: t,
		R:    astro.Vec3{X: pos.X * 1000, Y: pos.Y * 1000, Z: pos.Z * 1000},
		V:    astro.Vec3{X: vel.X * 1000, Y: vel.Y * 1000, Z: vel.Z * 1000},
		Body: BodyEarth,
	}, nil
}
