package attitude

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/litescript/ls-optics/internal/astro"
)

// MinSeparation is the smallest angle, in radians, two sighting directions
// may subtend and still constrain a three-axis attitude.
const MinSeparation = 0.01

// ErrIllConditioned is returned when a sighting pair is too close together.
var ErrIllConditioned = errors.New("ill-conditioned sighting pair")

// Pair is one direction known in two frames.
type Pair struct {
	From astro.Vec3 // e.g. reference/inertial
	To   astro.Vec3 // e.g. measured in the navigation base
}

// Solution is the result of a two-vector attitude determination.
type Solution struct {
	// M maps From-frame vectors to To-frame vectors.
	M astro.Mat3
	// Discrepancy is |arc(From) - arc(To)| in radians.
	Discrepancy float64
}

// Solve returns the rotation that carries the first pair's From direction
// exactly onto its To direction and uses the second pair only to fix the
// roll about it.
func Solve(first, second Pair) (Solution, error) {
	arcFrom := first.From.Angle(second.From)
	arcTo := first.To.Angle(second.To)
	if arcFrom < MinSeparation || arcTo < MinSeparation {
		return Solution{}, fmt.Errorf("%w: %.4f/%.4f rad apart", ErrIllConditioned, arcFrom, arcTo)
	}

	return Solution{
		M:           axisgen(first.From, second.From, first.To, second.To),
		Discrepancy: math.Abs(arcFrom - arcTo),
	}, nil
}

// axisgen builds an orthonormal triad on each side and equates them:
// M = T·Fᵀ, with the triads stored as matrix columns.
func axisgen(fromA, fromB, toA, toB astro.Vec3) astro.Mat3 {
	f := triad(fromA, fromB)
	t := triad(toA, toB)

	var m mat.Dense
	m.Mul(t, f.T())
	return astro.FromDense(&m)
}

func triad(a, b astro.Vec3) *mat.Dense {
	x := a.Normalized()
	y := a.UnitCross(b)
	z := x.Cross(y)

	d := mat.NewDense(3, 3, nil)
	d.SetCol(0, x.Slice())
	d.SetCol(1, y.Slice())
	d.SetCol(2, z.Slice())
	return d
}
