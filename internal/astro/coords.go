package astro

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/unit"
)

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

// PMod returns x modulo y in [0, y).
func PMod(x, y float64) float64 {
	return unit.PMod(x, y)
}

// Wrap normalizes an angle to [0, 2π).
func Wrap(a float64) float64 {
	return unit.Angle(a).Mod1().Rad()
}

// LatLong returns the latitude and longitude of v in radians. Applied to a
// direction in an inertial frame this is declination and right ascension.
func LatLong(v Vec3) (lat, lng float64) {
	u := v.Normalized()
	return math.Atan2(u.Z, math.Hypot(u.X, u.Y)), math.Atan2(u.Y, u.X)
}

// FromLatLong returns the vector of the given length at a latitude and
// longitude.
func FromLatLong(lat, lng, r float64) Vec3 {
	sLat, cLat := math.Sincos(lat)
	sLng, cLng := math.Sincos(lng)
	return Vec3{X: r * cLat * cLng, Y: r * cLat * sLng, Z: r * sLat}
}

// RADec returns right ascension in [0, 2π) and declination of a direction.
func RADec(v Vec3) (ra, dec float64) {
	dec, lng := LatLong(v)
	return unit.RAFromRad(lng).Rad(), dec
}

// FromRADec returns the unit vector for a right ascension and declination.
func FromRADec(ra, dec float64) Vec3 {
	return FromLatLong(dec, ra, 1)
}

// FormatRA renders a right ascension in degrees as DDD:MM:SS.
func FormatRA(ra float64) string {
	d, m, s := sexagesimal(unit.RAFromRad(ra).Deg())
	return fmt.Sprintf("%03d:%02d:%02d", d, m, s)
}

// FormatDec renders a declination as ±DD:MM:SS.
func FormatDec(dec float64) string {
	sign := "+"
	if dec < 0 {
		sign = "-"
	}
	d, m, s := sexagesimal(unit.Angle(dec).Deg())
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, d, m, s)
}

func sexagesimal(deg float64) (d, m, s int) {
	total := int(math.Abs(math.Round(deg * 3600)))
	return total / 3600, (total % 3600) / 60, total % 60
}

// FormatElapsed renders an elapsed time as HHH:MM:SS. Negative values are
// prefixed with a minus sign.
func FormatElapsed(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	total := int64(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%s%03d:%02d:%02d", sign, total/3600, (total%3600)/60, total%60)
}

// Angle is a plane angle in radians that encodes to JSON in degrees.
type Angle float64

// Deg constructs an Angle from degrees.
func Deg(d float64) Angle {
	return Angle(unit.AngleFromDeg(d))
}

// Rad returns the angle in radians.
func (a Angle) Rad() float64 { return float64(a) }

// Degrees returns the angle in degrees.
func (a Angle) Degrees() float64 { return unit.Angle(a).Deg() }

// MarshalJSON encodes the angle in degrees.
func (a Angle) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Degrees())
}

// UnmarshalJSON decodes an angle given in degrees.
func (a *Angle) UnmarshalJSON(b []byte) error {
	var d float64
	if err := json.Unmarshal(b, &d); err != nil {
		return err
	}
	*a = Deg(d)
	return nil
}
