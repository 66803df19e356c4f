package agop

import (
	"fmt"
	"math"

	"github.com/litescript/ls-optics/internal/astro"
	"github.com/litescript/ls-optics/internal/attitude"
)

func deg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// gimbalText renders outer, inner and middle as DDD.DD.
func gimbalText(g attitude.GimbalAngles) string {
	o, i, m := g.Degrees()
	return fmt.Sprintf("%06.2f %06.2f %06.2f", o, i, m)
}

// starID renders a star number in decimal and octal.
func starID(id int) string {
	return fmt.Sprintf("%03d/%03o", id, id)
}

func raDec(u astro.Vec3) string {
	ra, dec := astro.RADec(u)
	return astro.FormatRA(ra) + " " + astro.FormatDec(dec)
}

func unitText(u astro.Vec3) string {
	return fmt.Sprintf("%+.5f %+.5f %+.5f", u.X, u.Y, u.Z)
}

// matrixText renders a matrix as three rows with the given row format,
// which takes three values.
func matrixText(m astro.Mat3, format string) []string {
	out := make([]string, 3)
	for i, row := range m {
		out[i] = fmt.Sprintf(format, row[0], row[1], row[2])
	}
	return out
}

// refsmmatText renders a REFSMMAT with its element names, XIXE through
// ZIZE.
func refsmmatText(m astro.Mat3) []string {
	axes := [3]string{"X", "Y", "Z"}
	out := make([]string, 3)
	for i, row := range m {
		a := axes[i]
		out[i] = fmt.Sprintf("%sIXE %+.8f %sIYE %+.8f %sIZE %+.8f", a, row[0], a, row[1], a, row[2])
	}
	return out
}
