package ephem

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/litescript/ls-optics/internal/astro"
)

// Table is an ephemeris of tabulated state vectors, interpolated with
// cubic Hermite polynomials on position and velocity.
type Table struct {
	body    Body
	vectors []StateVector
}

// NewTable builds a table from time-ordered state vectors. All vectors
// must share body.
func NewTable(body Body, vectors []StateVector) (*Table, error) {
	if len(vectors) < 2 {
		return nil, ErrEmpty
	}
	for i := 1; i < len(vectors); i++ {
		if !vectors[i].Time.After(vectors[i-1].Time) {
			return nil, fmt.Errorf("%w at index %d", ErrUnsorted, i)
		}
	}
	out := make([]StateVector, len(vectors))
	for i, sv := range vectors {
		sv.Body = body
		out[i] = sv
	}
	return &Table{body: body, vectors: out}, nil
}

// Body implements Ephemeris.
func (t *Table) Body() Body { return t.body }

// Span implements Ephemeris.
func (t *Table) Span() (start, end time.Time) {
	return t.vectors[0].Time, t.vectors[len(t.vectors)-1].Time
}

// Times implements Ephemeris.
func (t *Table) Times() []time.Time {
	out := make([]time.Time, len(t.vectors))
	for i, sv := range t.vectors {
		out[i] = sv.Time
	}
	return out
}

// Sample implements Ephemeris.
func (t *Table) Sample(at time.Time) (StateVector, error) {
	start, end := t.Span()
	if at.Before(start) || at.After(end) {
		return StateVector{}, fmt.Errorf("%w: %s not in [%s, %s]", ErrOutOfSpan,
			at.UTC().Format(time.RFC3339), start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339))
	}

	i := sort.Search(len(t.vectors), func(i int) bool {
		return !t.vectors[i].Time.Before(at)
	})
	if t.vectors[i].Time.Equal(at) {
		return t.vectors[i], nil
	}
	return hermite(t.vectors[i-1], t.vectors[i], at), nil
}

func hermite(a, b StateVector, at time.Time) StateVector {
	h := b.Time.Sub(a.Time).Seconds()
	s := at.Sub(a.Time).Seconds() / h
	s2, s3 := s*s, s*s*s

	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2

	d00 := (6*s2 - 6*s) / h
	d10 := 3*s2 - 4*s + 1
	d01 := (-6*s2 + 6*s) / h
	d11 := 3*s2 - 2*s

	return StateVector{
		Time: at,
		R:    a.R.Scale(h00).Add(a.V.Scale(h10 * h)).Add(b.R.Scale(h01)).Add(b.V.Scale(h11 * h)),
		V:    a.R.Scale(d00).Add(a.V.Scale(d10)).Add(b.R.Scale(d01)).Add(b.V.Scale(d11)),
		Body: a.Body,
	}
}

// tableFile is the on-disk form of a table.
type tableFile struct {
	Body    Body         `json:"body"`
	Vectors []vectorFile `json:"vectors"`
}

type vectorFile struct {
	Time time.Time  `json:"time"`
	R    [3]float64 `json:"r"`
	V    [3]float64 `json:"v"`
}

// ReadTable decodes a JSON table:
//
//	{"body": "moon", "vectors": [{"time": "...", "r": [x, y, z], "v": [vx, vy, vz]}]}
func ReadTable(r io.Reader) (*Table, error) {
	var f tableFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode ephemeris: %w", err)
	}
	vectors := make([]StateVector, len(f.Vectors))
	for i, v := range f.Vectors {
		vectors[i] = StateVector{
			Time: v.Time,
			R:    astro.Vec3{X: v.R[0], Y: v.R[1], Z: v.R[2]},
			V:    astro.Vec3{X: v.V[0], Y: v.V[1], Z: v.V[2]},
		}
	}
	return NewTable(f.Body, vectors)
}

// WriteTable encodes t in the form read by ReadTable.
func WriteTable(w io.Writer, t *Table) error {
	f := tableFile{Body: t.body, Vectors: make([]vectorFile, len(t.vectors))}
	for i, sv := range t.vectors {
		f.Vectors[i] = vectorFile{
			Time: sv.Time,
			R:    [3]float64{sv.R.X, sv.R.Y, sv.R.Z},
			V:    [3]float64{sv.V.X, sv.V.Y, sv.V.Z},
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}
