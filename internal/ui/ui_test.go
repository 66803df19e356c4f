package ui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-optics/internal/agop"
	"github.com/litescript/ls-optics/internal/astro"
	"github.com/litescript/ls-optics/internal/state"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func longEntry(n int) *state.Entry {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("LINE %03d", i)
	}
	return &state.Entry{
		Request: "ost.json",
		Report:  &agop.Report{Mode: agop.ModeOpticalSupport, Sub: 2, Lines: lines},
	}
}

func TestReportModelScrollClamp(t *testing.T) {
	m := NewReportModel().SetSize(80, 12).SetEntry(longEntry(30))

	tests := []struct {
		key  tea.KeyMsg
		want int
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, 0},
		{tea.KeyMsg{Type: tea.KeyDown}, 1},
		{tea.KeyMsg{Type: tea.KeyEnd}, 20},
		{runeKey("j"), 20},
		{tea.KeyMsg{Type: tea.KeyPgUp}, 10},
		{tea.KeyMsg{Type: tea.KeyHome}, 0},
		{tea.KeyMsg{Type: tea.KeyPgDown}, 10},
	}
	for _, tc := range tests {
		m, _ = m.Update(tc.key)
		if m.offset != tc.want {
			t.Errorf("after %q offset = %d, want %d", tc.key.String(), m.offset, tc.want)
		}
	}

	view := m.View()
	if !strings.Contains(view, "LINE 010") || !strings.Contains(view, "LINE 019") {
		t.Errorf("page does not start at line 10:\n%s", view)
	}
	if strings.Contains(view, "LINE 009") || strings.Contains(view, "LINE 020") {
		t.Errorf("page shows lines outside the window:\n%s", view)
	}
}

func TestReportModelShortReportDoesNotScroll(t *testing.T) {
	m := NewReportModel().SetSize(80, 40).SetEntry(longEntry(5))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	if m.offset != 0 {
		t.Errorf("offset = %d, want 0", m.offset)
	}
}

func TestReportModelTitle(t *testing.T) {
	e := longEntry(3)
	e.Report.Code = agop.ErrStarsTooClose
	view := NewReportModel().SetSize(100, 20).SetEntry(e).View()

	for _, want := range []string{"ost.json", "MODE 7", "SUB 2", agop.ErrStarsTooClose.Label()} {
		if !strings.Contains(view, want) {
			t.Errorf("title missing %q:\n%s", want, view)
		}
	}
}

func TestReportBodyDerivedValues(t *testing.T) {
	near := true
	tr := astro.NewTransform(astro.Identity(), astro.FrameBRCS, astro.FrameSM)
	rep := &agop.Report{
		Mode:        agop.ModeHorizonAlign,
		Lines:       []string{"MODE 6"},
		Matrix:      &tr,
		Gimbals:     &agop.Gimbals{Outer: astro.Deg(10), Inner: astro.Deg(20), Middle: astro.Deg(30)},
		NearHorizon: &near,
		Truncated:   true,
	}

	body := reportBody(rep)
	if body[0] != "MODE 6" || body[1] != "" {
		t.Fatalf("body starts %q", body[:2])
	}
	joined := strings.Join(body, "\n")
	for _, want := range []string{
		"matrix BRCS->SM",
		"  +1.00000000 +0.00000000 +0.00000000",
		"gimbals outer 10.00 inner 20.00 middle 30.00",
		"horizon near",
		"table truncated",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("body missing %q:\n%s", want, joined)
		}
	}
}

func TestIsHeading(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"MODE 7 OST 2", true},
		{"STAR  RA  DEC", true},
		{"   /401         030.00 010.000", false},
		{"", false},
	}
	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			if got := isHeading(tc.line); got != tc.want {
				t.Errorf("isHeading(%q) = %v, want %v", tc.line, got, tc.want)
			}
		})
	}
}

func TestEventsModelNewestFirst(t *testing.T) {
	at := time.Date(1969, 7, 20, 20, 17, 0, 0, time.UTC)
	events := []state.Event{
		{Type: state.EventTruncated, Timestamp: at, Request: "first.json", Mode: "cis"},
		{Type: state.EventFailed, Timestamp: at.Add(time.Second), Request: "second.json", Mode: "sst", Code: "no_aos"},
	}
	m := NewEventsModel().SetSize(100, 20).UpdateData(events)

	if m.events[0].Request != "second.json" {
		t.Fatalf("first row = %s, want second.json", m.events[0].Request)
	}
	view := m.View()
	if strings.Index(view, "second.json") > strings.Index(view, "first.json") {
		t.Errorf("events not newest first:\n%s", view)
	}
	if !strings.Contains(view, "no_aos") {
		t.Errorf("failed event missing its code:\n%s", view)
	}
}

func TestEventsModelEmpty(t *testing.T) {
	if view := NewEventsModel().View(); !strings.Contains(view, "No events") {
		t.Errorf("view = %q", view)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 20); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("requests/ost-docking.json", 10); got != "requests/…" {
		t.Errorf("truncate = %q", got)
	}
}

func newSession(t *testing.T, n int) *state.Manager {
	t.Helper()
	mgr := state.NewManager(state.DefaultConfig())
	for i := 0; i < n; i++ {
		mgr.Record(fmt.Sprintf("r%d.json", i), &agop.Report{Mode: agop.ModeStarCatalog, Lines: []string{fmt.Sprintf("report %d", i)}}, time.Millisecond)
	}
	return mgr
}

func TestModelFollowsNewestReport(t *testing.T) {
	m := New(newSession(t, 3))
	if m.selected != 2 || m.report.entry == nil || m.report.entry.Request != "r2.json" {
		t.Fatalf("selected %d entry %+v", m.selected, m.report.entry)
	}

	steps := []struct {
		key  tea.KeyMsg
		want int
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, 1},
		{runeKey("p"), 0},
		{runeKey("h"), 0},
		{tea.KeyMsg{Type: tea.KeyRight}, 1},
		{runeKey("n"), 2},
		{runeKey("l"), 2},
	}
	var model tea.Model = m
	for _, s := range steps {
		model, _ = model.Update(s.key)
		got := model.(Model)
		if got.selected != s.want {
			t.Errorf("after %q selected = %d, want %d", s.key.String(), got.selected, s.want)
		}
		if want := fmt.Sprintf("r%d.json", s.want); got.report.entry.Request != want {
			t.Errorf("after %q report = %s, want %s", s.key.String(), got.report.entry.Request, want)
		}
	}
}

func TestModelRefreshKeepsSelection(t *testing.T) {
	mgr := newSession(t, 2)
	var model tea.Model = New(mgr)
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyLeft})

	mgr.Record("r2.json", &agop.Report{Mode: agop.ModeStarCatalog}, 0)
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m := model.(Model)
	if m.selected != 0 || len(m.snapshot.Entries) != 3 {
		t.Errorf("selected %d of %d", m.selected, len(m.snapshot.Entries))
	}

	model, _ = model.Update(SendSnapshot(mgr.Snapshot())())
	if m := model.(Model); m.selected != 2 {
		t.Errorf("snapshot message selected %d, want 2", m.selected)
	}
}

func TestModelViewSwitching(t *testing.T) {
	var model tea.Model = New(newSession(t, 1))
	if got := model.View(); got != "Initializing..." {
		t.Errorf("view before size = %q", got)
	}

	model, _ = model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if view := model.View(); !strings.Contains(view, "report 0") || !strings.Contains(view, "report 1/1") {
		t.Errorf("report view:\n%s", view)
	}

	model, _ = model.Update(runeKey("2"))
	if model.(Model).viewMode != ViewEvents {
		t.Fatal("2 did not switch to events")
	}
	if view := model.View(); !strings.Contains(view, "No events") {
		t.Errorf("events view:\n%s", view)
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	if model.(Model).viewMode != ViewReport {
		t.Error("tab did not cycle back to the report")
	}

	_, cmd := model.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestModelEmptySession(t *testing.T) {
	var model tea.Model = New(state.NewManager(state.DefaultConfig()))
	model, _ = model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	view := model.View()
	if !strings.Contains(view, "No reports yet") || !strings.Contains(view, "no reports") {
		t.Errorf("empty view:\n%s", view)
	}
}

func TestGradientColor(t *testing.T) {
	if got := gradientColor(0, 10); got != "#3B82F6" {
		t.Errorf("start color = %s", got)
	}
	if got := clampByte(300); got != 255 {
		t.Errorf("clampByte(300) = %d", got)
	}
}
