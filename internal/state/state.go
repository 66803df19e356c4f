// Package state keeps the thread-safe history of the reports produced in
// one session of the command line tool.
package state

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/litescript/ls-optics/internal/agop"
)

// EventType classifies a noteworthy report outcome.
type EventType string

const (
	EventFailed      EventType = "FAILED"
	EventTruncated   EventType = "TRUNCATED"
	EventGimbalLock  EventType = "GIMBAL_LOCK"
	EventHorizonFlip EventType = "HORIZON_FLIP"
)

// Event is raised when a report is recorded.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Request   string    `json:"request"`
	Mode      string    `json:"mode"`
	Code      string    `json:"code,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Entry is one recorded report.
type Entry struct {
	Request string
	Report  *agop.Report
	Elapsed time.Duration
	At      time.Time
}

// Config holds configuration for the state manager.
type Config struct {
	MaxHistoryLen int
	MaxEvents     int
	// GimbalLockCos is the cos(middle gimbal) at or below which a
	// reported attitude raises EventGimbalLock.
	GimbalLockCos float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MaxHistoryLen: 100,
		MaxEvents:     50,
		GimbalLockCos: agop.DefaultConstants().GimbalLockCos,
	}
}

// Manager records reports and the events they raise.
type Manager struct {
	mu sync.RWMutex

	history       []Entry
	maxHistoryLen int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	// Near-horizon flag of the last report per request, for flip detection.
	prevNear map[string]bool

	failures      int
	lastError     error
	gimbalLockCos float64
	now           func() time.Time
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	maxHistory := cfg.MaxHistoryLen
	if maxHistory <= 0 {
		maxHistory = 100
	}
	return &Manager{
		maxHistoryLen: maxHistory,
		maxEvents:     maxEvents,
		events:        make([]Event, 0, maxEvents),
		prevNear:      make(map[string]bool),
		gimbalLockCos: cfg.GimbalLockCos,
		now:           time.Now,
	}
}

// Record adds a report produced for the named request.
func (m *Manager) Record(request string, rep *agop.Report, elapsed time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	at := m.now()
	m.detectEvents(request, rep, at)

	m.history = append(m.history, Entry{Request: request, Report: rep, Elapsed: elapsed, At: at})
	if len(m.history) > m.maxHistoryLen {
		m.history = m.history[1:]
	}
	if rep.Failed() {
		m.failures++
	}
}

// RecordError notes a request that could not be run at all, such as an
// unreadable request file.
func (m *Manager) RecordError(request string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastError = err
	m.failures++
	m.addEvent(Event{Type: EventFailed, Timestamp: m.now(), Request: request, Detail: err.Error()})
}

func (m *Manager) detectEvents(request string, rep *agop.Report, at time.Time) {
	base := Event{Timestamp: at, Request: request, Mode: rep.Mode.String()}

	if rep.Failed() {
		e := base
		e.Type, e.Code, e.Detail = EventFailed, rep.Code.Label(), rep.Detail
		m.addEvent(e)
	}
	if rep.Truncated {
		e := base
		e.Type = EventTruncated
		m.addEvent(e)
	}
	if g := rep.Gimbals; g != nil && math.Abs(math.Cos(g.Middle.Rad())) <= m.gimbalLockCos {
		e := base
		e.Type, e.Detail = EventGimbalLock, fmt.Sprintf("middle gimbal %.2f deg", g.Middle.Degrees())
		m.addEvent(e)
	}
	if rep.NearHorizon != nil {
		if prev, ok := m.prevNear[request]; ok && prev != *rep.NearHorizon {
			e := base
			e.Type, e.Detail = EventHorizonFlip, horizonName(*rep.NearHorizon)
			m.addEvent(e)
		}
		m.prevNear[request] = *rep.NearHorizon
	}
}

func horizonName(near bool) string {
	if near {
		return "near horizon"
	}
	return "far horizon"
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot is an immutable copy of the session.
type Snapshot struct {
	Entries   []Entry
	Events    []Event
	Failures  int
	LastError error
}

// Last returns the most recent entry, if any.
func (s Snapshot) Last() (Entry, bool) {
	if len(s.Entries) == 0 {
		return Entry{}, false
	}
	return s.Entries[len(s.Entries)-1], true
}

// Snapshot returns a consistent snapshot of the session.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]Entry, len(m.history))
	copy(entries, m.history)

	return Snapshot{
		Entries:   entries,
		Events:    m.getEventsOrdered(),
		Failures:  m.failures,
		LastError: m.lastError,
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// HasData reports whether any report has been recorded.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.history) > 0
}
