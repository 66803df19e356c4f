package agop

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/litescript/ls-optics/internal/astro"
	"github.com/litescript/ls-optics/internal/attitude"
)

// Report is the result of one request.
type Report struct {
	Mode  Mode     `json:"mode"`
	Sub   int      `json:"sub,omitempty"`
	Lines []string `json:"lines"`
	// Matrix is a derived REFSMMAT (BRCS to stable member of the owning
	// vehicle) or navigation base orientation.
	Matrix *astro.Transform `json:"matrix,omitempty"`
	// Gimbals is the computed attitude, when the mode produces one.
	Gimbals *Gimbals `json:"gimbals,omitempty"`
	// Antenna is the last computed antenna pitch and yaw.
	Antenna     *Readout `json:"antenna,omitempty"`
	NearHorizon *bool    `json:"near_horizon,omitempty"`
	// Truncated is set when the sample cap ended the table before the end
	// of the ephemeris.
	Truncated bool   `json:"truncated,omitempty"`
	Code      Code   `json:"code,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

// Failed reports whether the request ended with an error code.
func (r *Report) Failed() bool {
	return r.Code != OK
}

func (r *Report) fail(err error) {
	r.Code = codeOf(err)
	r.Detail = err.Error()
	r.Lines = append(r.Lines, r.Code.Error())
}

func (r *Report) setGimbals(g attitude.GimbalAngles) {
	r.Gimbals = &Gimbals{Outer: astro.Angle(g.Outer), Inner: astro.Angle(g.Inner), Middle: astro.Angle(g.Middle)}
}

func (r *Report) setMatrix(m astro.Mat3, from, to astro.Frame) {
	t := astro.NewTransform(m, from, to)
	r.Matrix = &t
}

// Text returns the report lines joined by newlines.
func (r *Report) Text() string {
	if len(r.Lines) == 0 {
		return ""
	}
	return strings.Join(r.Lines, "\n") + "\n"
}

// WriteText writes the report lines.
func (r *Report) WriteText(w io.Writer) error {
	_, err := io.WriteString(w, r.Text())
	return err
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
