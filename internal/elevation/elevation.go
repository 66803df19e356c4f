// Package elevation finds the time at which a monotonic elevation profile
// crosses a target value.
package elevation

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNoBracket is returned when no sample reaches the target.
	ErrNoBracket = errors.New("elevation: target not reached in span")
	// ErrNoConvergence is returned when bisection hits the iteration cap.
	ErrNoConvergence = errors.New("elevation: bisection did not converge")
)

// Func evaluates the quantity being searched (typically the sine of an
// elevation angle) at a time.
type Func func(t time.Time) (float64, error)

// Finder is a bisection root-finder over time.
type Finder struct {
	// Epsilon is the bracket width at which the search stops.
	Epsilon time.Duration
	// MaxIterations caps the number of bisection steps.
	MaxIterations int
}

// DefaultFinder returns a finder with a one second tolerance and a 100
// step cap.
func DefaultFinder() Finder {
	return Finder{Epsilon: time.Second, MaxIterations: 100}
}

// Bracket scans samples in order, starting from left, and returns the
// last time below target and the first sample time above it. samples at or
// before left are skipped.
func (f Finder) Bracket(fn Func, left time.Time, samples []time.Time, target float64) (lo, hi time.Time, err error) {
	lo = left
	for _, t := range samples {
		if !t.After(left) {
			continue
		}
		v, err := fn(t)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if v > target {
			return lo, t, nil
		}
		lo = t
	}
	return time.Time{}, time.Time{}, ErrNoBracket
}

// Crossing bisects [lo, hi] for the time fn first exceeds target. fn(lo)
// must be at or below target and fn(hi) above it. The midpoint of the
// final bracket is returned.
func (f Finder) Crossing(fn Func, lo, hi time.Time, target float64) (time.Time, error) {
	for i := 0; hi.Sub(lo) > f.Epsilon; i++ {
		if i >= f.MaxIterations {
			return time.Time{}, fmt.Errorf("%w after %d steps (bracket %v)", ErrNoConvergence, i, hi.Sub(lo))
		}
		mid := lo.Add(hi.Sub(lo) / 2)
		v, err := fn(mid)
		if err != nil {
			return time.Time{}, err
		}
		if v > target {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo.Add(hi.Sub(lo) / 2), nil
}

// Search brackets the crossing from samples and then bisects it.
func (f Finder) Search(fn Func, left time.Time, samples []time.Time, target float64) (time.Time, error) {
	lo, hi, err := f.Bracket(fn, left, samples, target)
	if err != nil {
		return time.Time{}, err
	}
	return f.Crossing(fn, lo, hi, target)
}
