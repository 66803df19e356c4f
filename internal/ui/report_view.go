package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-optics/internal/agop"
	"github.com/litescript/ls-optics/internal/state"
)

// Styles for the report pager
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("60"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("46"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// ReportModel pages through one report.
type ReportModel struct {
	width  int
	height int
	offset int
	entry  *state.Entry
	body   []string
}

// NewReportModel creates an empty report pager.
func NewReportModel() ReportModel {
	return ReportModel{}
}

// SetSize updates the viewport size.
func (m ReportModel) SetSize(width, height int) ReportModel {
	m.width = width
	m.height = height
	m.offset = m.clampOffset(m.offset)
	return m
}

// SetEntry shows a report from the top.
func (m ReportModel) SetEntry(e *state.Entry) ReportModel {
	m.entry = e
	m.offset = 0
	m.body = nil
	if e != nil {
		m.body = reportBody(e.Report)
	}
	return m
}

// pageSize is the number of body lines shown below the title.
func (m ReportModel) pageSize() int {
	if m.height <= 2 {
		return 1
	}
	return m.height - 2
}

func (m ReportModel) clampOffset(off int) int {
	maxOff := len(m.body) - m.pageSize()
	if off > maxOff {
		off = maxOff
	}
	if off < 0 {
		off = 0
	}
	return off
}

// Update handles scrolling keys.
func (m ReportModel) Update(msg tea.Msg) (ReportModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			m.offset--
		case "down", "j":
			m.offset++
		case "pgup", "b":
			m.offset -= m.pageSize()
		case "pgdown", " ", "f":
			m.offset += m.pageSize()
		case "home", "g":
			m.offset = 0
		case "end", "G":
			m.offset = len(m.body)
		}
		m.offset = m.clampOffset(m.offset)
	}
	return m, nil
}

// View renders the visible page of the report.
func (m ReportModel) View() string {
	if m.entry == nil {
		return dimStyle.Render("  No reports yet.")
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n\n")

	end := m.offset + m.pageSize()
	if end > len(m.body) {
		end = len(m.body)
	}
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderLine(i))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m ReportModel) renderTitle() string {
	rep := m.entry.Report
	title := titleStyle.Render(m.entry.Request)
	mode := labelStyle.Render(fmt.Sprintf("MODE %d %s", int(rep.Mode), strings.ToUpper(rep.Mode.String())))
	if rep.Sub > 0 {
		mode += labelStyle.Render(fmt.Sprintf(" SUB %d", rep.Sub))
	}

	outcome := okStyle.Render("ok")
	if rep.Failed() {
		outcome = errorStyle.Render(rep.Code.Label())
	}
	elapsed := dimStyle.Render(m.entry.Elapsed.String())
	return "  " + title + "  " + mode + "  " + outcome + "  " + elapsed
}

func (m ReportModel) renderLine(i int) string {
	line := m.body[i]
	rep := m.entry.Report
	switch {
	case i < len(rep.Lines) && isHeading(line):
		return "  " + headerStyle.Render(line)
	case rep.Failed() && i == len(rep.Lines)-1:
		return "  " + errorStyle.Render(line)
	case i >= len(rep.Lines):
		return "  " + dimStyle.Render(line)
	}
	return "  " + rowStyle.Render(line)
}

// isHeading reports whether a report line is a title or column heading
// rather than data: it carries no digits, or starts with a MODE banner.
func isHeading(line string) bool {
	if strings.HasPrefix(strings.TrimSpace(line), "MODE ") {
		return true
	}
	return strings.TrimSpace(line) != "" && !strings.ContainsAny(line, "0123456789")
}

// reportBody is the report's own lines followed by its derived values.
func reportBody(rep *agop.Report) []string {
	body := append([]string(nil), rep.Lines...)

	var extra []string
	if rep.Matrix != nil {
		extra = append(extra, "matrix "+rep.Matrix.String())
		for _, row := range rep.Matrix.M {
			extra = append(extra, fmt.Sprintf("  %+.8f %+.8f %+.8f", row[0], row[1], row[2]))
		}
	}
	if g := rep.Gimbals; g != nil {
		extra = append(extra, fmt.Sprintf("gimbals outer %.2f inner %.2f middle %.2f",
			g.Outer.Degrees(), g.Inner.Degrees(), g.Middle.Degrees()))
	}
	if a := rep.Antenna; a != nil {
		extra = append(extra, fmt.Sprintf("antenna %.2f %.2f", a.A.Degrees(), a.B.Degrees()))
	}
	if rep.NearHorizon != nil {
		if *rep.NearHorizon {
			extra = append(extra, "horizon near")
		} else {
			extra = append(extra, "horizon far")
		}
	}
	if rep.Truncated {
		extra = append(extra, "table truncated at the sample cap")
	}
	if rep.Detail != "" {
		extra = append(extra, "detail "+rep.Detail)
	}

	if len(extra) > 0 {
		body = append(body, "")
		body = append(body, extra...)
	}
	return body
}
