// Package ui provides the terminal report viewer using Bubble Tea.
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-optics/internal/state"
	"github.com/litescript/ls-optics/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewReport ViewMode = iota
	ViewEvents
)

// Msg types for Bubble Tea
type (
	// SnapshotMsg carries a fresh session snapshot.
	SnapshotMsg struct {
		Snapshot state.Snapshot
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	state *state.Manager

	viewMode ViewMode
	width    int
	height   int
	ready    bool

	report ReportModel
	events EventsModel

	snapshot state.Snapshot
	selected int
}

// New creates a new root UI model showing the session's latest report.
func New(stateMgr *state.Manager) Model {
	m := Model{
		state:  stateMgr,
		report: NewReportModel(),
		events: NewEventsModel(),
	}
	return m.applySnapshot(stateMgr.Snapshot(), true)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "1", "r":
			m.viewMode = ViewReport
		case "2", "e":
			m.viewMode = ViewEvents
		case "tab":
			m.viewMode = (m.viewMode + 1) % 2
		case "left", "h", "p":
			m = m.selectEntry(m.selected - 1)
		case "right", "l", "n":
			m = m.selectEntry(m.selected + 1)
		case "ctrl+r":
			m = m.applySnapshot(m.state.Snapshot(), false)
		default:
			cmd = m.updateActiveView(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Title, tabs and footer take five lines
		contentHeight := msg.Height - 5
		m.report = m.report.SetSize(msg.Width, contentHeight)
		m.events = m.events.SetSize(msg.Width, contentHeight)

	case SnapshotMsg:
		m = m.applySnapshot(msg.Snapshot, true)

	default:
		cmd = m.updateActiveView(msg)
	}

	return m, cmd
}

// applySnapshot stores a snapshot, optionally moving to its newest entry.
func (m Model) applySnapshot(snap state.Snapshot, follow bool) Model {
	m.snapshot = snap
	m.events = m.events.UpdateData(snap.Events)
	if follow {
		return m.selectEntry(len(snap.Entries) - 1)
	}
	return m.selectEntry(m.selected)
}

func (m Model) selectEntry(i int) Model {
	n := len(m.snapshot.Entries)
	if n == 0 {
		m.selected = 0
		m.report = m.report.SetEntry(nil)
		return m
	}
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	e := m.snapshot.Entries[i]
	if m.report.entry == nil || m.report.entry.Report != e.Report {
		m.report = m.report.SetEntry(&e)
	}
	m.selected = i
	return m
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewReport:
		m.report, cmd = m.report.Update(msg)
	case ViewEvents:
		m.events, cmd = m.events.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewReport:
		content = m.report.View()
	case ViewEvents:
		content = m.events.View()
	}
	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	title := renderGradient("  LS-OPTICS")
	return title + muted.Render(fmt.Sprintf("  optics and attitude reports · v%s", version.Version)) + "\n" + m.renderTabs()
}

// renderGradient renders text with a horizontal truecolor gradient.
func renderGradient(text string) string {
	runes := []rune(text)
	var b strings.Builder
	for col, r := range runes {
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(gradientColor(col, len(runes))))
		b.WriteString(style.Render(string(r)))
	}
	return b.String()
}

// gradientColor returns a hex color for a column of the title gradient:
// blue to purple to magenta.
func gradientColor(col, width int) string {
	x := float64(col) / float64(width)

	var r, g, b float64
	if x < 0.5 {
		t := x / 0.5
		r = 59 + t*(139-59)
		g = 130 + t*(92-130)
		b = 246
	} else {
		t := (x - 0.5) / 0.5
		r = 139 + t*(217-139)
		g = 92 + t*(70-92)
		b = 246 + t*(239-246)
	}
	return fmt.Sprintf("#%02X%02X%02X", clampByte(r), clampByte(g), clampByte(b))
}

func clampByte(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return int(v)
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Report", "[2] Events"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	n := len(m.snapshot.Entries)
	status := dimStyle.Render("no reports")
	if n > 0 {
		status = dimStyle.Render(fmt.Sprintf("report %d/%d", m.selected+1, n))
	}
	if m.snapshot.Failures > 0 {
		status += "  " + errorStyle.Render(fmt.Sprintf("%d failed", m.snapshot.Failures))
	}

	var help string
	switch m.viewMode {
	case ViewEvents:
		help = dimStyle.Render("↑↓: scroll | tab: switch view | q: quit")
	default:
		help = dimStyle.Render("←/→: report | ↑↓ pgup/pgdn: scroll | tab: switch view | q: quit")
	}
	return "  " + status + "  " + dimStyle.Render("|") + "  " + help
}

// SendSnapshot creates a command that delivers a session snapshot.
func SendSnapshot(snapshot state.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return SnapshotMsg{Snapshot: snapshot}
	}
}
