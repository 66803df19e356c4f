package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-optics/internal/state"
)

var eventStyles = map[state.EventType]lipgloss.Style{
	state.EventFailed:      lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	state.EventTruncated:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	state.EventGimbalLock:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
	state.EventHorizonFlip: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
}

// EventsModel lists session events, newest first.
type EventsModel struct {
	width  int
	height int
	offset int
	events []state.Event
}

// NewEventsModel creates an empty events list.
func NewEventsModel() EventsModel {
	return EventsModel{}
}

// SetSize updates the viewport size.
func (m EventsModel) SetSize(width, height int) EventsModel {
	m.width = width
	m.height = height
	m.offset = m.clampOffset(m.offset)
	return m
}

// UpdateData replaces the event list. Events arrive oldest first.
func (m EventsModel) UpdateData(events []state.Event) EventsModel {
	m.events = make([]state.Event, len(events))
	for i, e := range events {
		m.events[len(events)-1-i] = e
	}
	m.offset = m.clampOffset(m.offset)
	return m
}

func (m EventsModel) pageSize() int {
	if m.height <= 2 {
		return 1
	}
	return m.height - 2
}

func (m EventsModel) clampOffset(off int) int {
	if maxOff := len(m.events) - m.pageSize(); off > maxOff {
		off = maxOff
	}
	if off < 0 {
		off = 0
	}
	return off
}

// Update handles scrolling keys.
func (m EventsModel) Update(msg tea.Msg) (EventsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			m.offset--
		case "down", "j":
			m.offset++
		case "home", "g":
			m.offset = 0
		case "end", "G":
			m.offset = len(m.events)
		}
		m.offset = m.clampOffset(m.offset)
	}
	return m, nil
}

// View renders the visible events.
func (m EventsModel) View() string {
	if len(m.events) == 0 {
		return dimStyle.Render("  No events.")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-12s  %-12s  %-4s  %-20s  %s", "TIME", "TYPE", "MODE", "REQUEST", "DETAIL")))
	b.WriteString("\n\n")

	end := m.offset + m.pageSize()
	if end > len(m.events) {
		end = len(m.events)
	}
	for i := m.offset; i < end; i++ {
		b.WriteString(renderEvent(m.events[i]))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderEvent(e state.Event) string {
	style, ok := eventStyles[e.Type]
	if !ok {
		style = rowStyle
	}
	detail := e.Detail
	if e.Code != "" {
		detail = strings.TrimSpace(e.Code + " " + detail)
	}
	return fmt.Sprintf("  %s  %s  %-4s  %-20s  %s",
		dimStyle.Render(e.Timestamp.Format("15:04:05.000")),
		style.Render(fmt.Sprintf("%-12s", e.Type)),
		e.Mode,
		truncate(e.Request, 20),
		detail)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
