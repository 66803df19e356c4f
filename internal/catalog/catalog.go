// Package catalog provides the star and ground station reference data.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/litescript/ls-optics/internal/astro"
	"github.com/litescript/ls-optics/internal/ephem"
	"github.com/litescript/ls-optics/internal/horizon"
)

// MaxStarID is the largest catalog star ID. Larger IDs denote a target
// given by right ascension and declination.
const MaxStarID = 400

var (
	ErrUnknownStar    = errors.New("catalog: unknown star")
	ErrUnknownStation = errors.New("catalog: unknown station")
)

// Star is a catalog star.
type Star struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	RADeg  float64 `json:"ra"`  // Right ascension in degrees (J2000)
	DecDeg float64 `json:"dec"` // Declination in degrees (J2000)
	Mag    float64 `json:"mag"` // Apparent visual magnitude
}

// Vector returns the unit vector toward the star in the reference frame.
func (s Star) Vector() astro.Vec3 {
	return astro.FromRADec(s.RADeg*math.Pi/180, s.DecDeg*math.Pi/180)
}

// Stars is a star catalog indexed by ID.
type Stars struct {
	byID map[int]Star
}

// DefaultStars returns the navigation stars followed by the bright star
// extension.
func DefaultStars() *Stars {
	all := make([]Star, 0, len(navigationStars)+len(brightStars))
	all = append(all, navigationStars...)
	all = append(all, brightStars...)
	c, _ := NewStars(all)
	return c
}

// NewStars builds a catalog. IDs must be unique and within 1..MaxStarID.
func NewStars(stars []Star) (*Stars, error) {
	c := &Stars{byID: make(map[int]Star, len(stars))}
	for _, s := range stars {
		if s.ID < 1 || s.ID > MaxStarID {
			return nil, fmt.Errorf("star %q: id %d out of range", s.Name, s.ID)
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("star %q: duplicate id %d", s.Name, s.ID)
		}
		c.byID[s.ID] = s
	}
	return c, nil
}

// ReadStars decodes a JSON array of stars.
func ReadStars(r io.Reader) (*Stars, error) {
	var stars []Star
	if err := json.NewDecoder(r).Decode(&stars); err != nil {
		return nil, fmt.Errorf("failed to decode star catalog: %w", err)
	}
	return NewStars(stars)
}

// Lookup returns the star with the given ID.
func (c *Stars) Lookup(id int) (Star, error) {
	s, ok := c.byID[id]
	if !ok {
		return Star{}, fmt.Errorf("%w: %d", ErrUnknownStar, id)
	}
	return s, nil
}

// Vector returns the unit vector of a catalog star.
func (c *Stars) Vector(id int) (astro.Vec3, error) {
	s, err := c.Lookup(id)
	if err != nil {
		return astro.Vec3{}, err
	}
	return s.Vector(), nil
}

// All returns the stars in ID order.
func (c *Stars) All() []Star {
	out := make([]Star, 0, len(c.byID))
	for _, s := range c.byID {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Station is a tracking station or surface landmark.
type Station struct {
	Code string       `json:"code"`
	Name string       `json:"name"`
	Site horizon.Site `json:"site"`
	Body ephem.Body   `json:"body"`
}

// Stations is a station catalog indexed by code.
type Stations struct {
	byCode map[string]Station
}

// DefaultStations returns the manned space flight network sites.
func DefaultStations() *Stations {
	c := &Stations{byCode: make(map[string]Station, len(msfnStations))}
	for _, s := range msfnStations {
		c.byCode[s.Code] = s
	}
	return c
}

// Lookup returns the station with the given code, ignoring case.
func (c *Stations) Lookup(code string) (Station, error) {
	s, ok := c.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Station{}, fmt.Errorf("%w: %q", ErrUnknownStation, code)
	}
	return s, nil
}

// All returns the stations sorted by code.
func (c *Stations) All() []Station {
	out := make([]Station, 0, len(c.byCode))
	for _, s := range c.byCode {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func earthSite(code, name string, latDeg, lngDeg, alt float64) Station {
	return Station{
		Code: code,
		Name: name,
		Site: horizon.Site{Lat: astro.Deg(latDeg), Lng: astro.Deg(lngDeg), Alt: alt},
		Body: ephem.BodyEarth,
	}
}

var msfnStations = []Station{
	earthSite("ACN", "Ascension", -7.955, -14.328, 0),
	earthSite("BDA", "Bermuda", 32.351, -64.658, 0),
	earthSite("CRO", "Carnarvon", -24.907, 113.724, 0),
	earthSite("CYI", "Canary Islands", 27.764, -15.635, 0),
	earthSite("GBM", "Grand Bahama", 26.633, -78.238, 0),
	earthSite("GDS", "Goldstone", 35.4267, -116.8900, 1000),
	earthSite("GWM", "Guam", 13.310, 144.734, 0),
	earthSite("GYM", "Guaymas", 27.963, -110.721, 0),
	earthSite("HAW", "Hawaii", 22.126, -159.665, 0),
	earthSite("HSK", "Honeysuckle Creek", -35.5831, 148.9770, 1100),
	earthSite("MAD", "Madrid", 40.4314, -4.2481, 800),
	earthSite("MIL", "Merritt Island", 28.508, -80.693, 0),
	earthSite("TEX", "Corpus Christi", 27.654, -97.378, 0),
}
