package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/litescript/ls-optics/internal/agop"
	"github.com/litescript/ls-optics/internal/ephem"
	"github.com/litescript/ls-optics/internal/logging"
)

// ephemSource attaches a spacecraft ephemeris to each request.
type ephemSource struct {
	mode    ephem.Mode
	path    string // table file for ModeFile, element set for ModeTLE
	target  string
	center  string
	start   time.Time
	span    time.Duration
	horizon *ephem.HorizonsClient
	logger  *logging.Logger

	table *ephem.Table // loaded file table, reused across requests
}

// window returns the sampling window for a request: the -start flag when
// given, else the request's launch epoch.
func (s *ephemSource) window(req agop.Request) (time.Time, time.Time, error) {
	start := s.start
	if start.IsZero() {
		start = req.Launch
	}
	if start.IsZero() {
		return time.Time{}, time.Time{}, fmt.Errorf("no start time: set -start or the request launch")
	}
	return start, start.Add(s.span), nil
}

// Attach resolves the ephemeris for req.
func (s *ephemSource) Attach(ctx context.Context, req *agop.Request) error {
	switch s.mode {
	case ephem.ModeHorizons:
		t, err := s.fetchHorizons(ctx, *req)
		if err != nil {
			return err
		}
		req.Ephemeris = t
	case ephem.ModeTLE:
		e, err := s.loadTLE(*req)
		if err != nil {
			return err
		}
		req.Ephemeris = e
	default:
		t, err := s.loadTable()
		if err != nil {
			return err
		}
		req.Ephemeris = t
	}
	return nil
}

func (s *ephemSource) loadTable() (*ephem.Table, error) {
	if s.table != nil {
		return s.table, nil
	}
	if s.path == "" {
		return nil, fmt.Errorf("file ephemeris needs -ephem")
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open ephemeris: %w", err)
	}
	defer f.Close()

	t, err := ephem.ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	start, end := t.Span()
	s.logger.Debug("Loaded %s ephemeris %s: %s to %s", t.Body(), s.path,
		start.Format(time.RFC3339), end.Format(time.RFC3339))
	s.table = t
	return t, nil
}

func (s *ephemSource) fetchHorizons(ctx context.Context, req agop.Request) (*ephem.Table, error) {
	command, info, ok := ephem.ResolveTarget(s.target)
	if command == "" {
		return nil, fmt.Errorf("horizons ephemeris needs -target")
	}
	center := info.Center
	if s.center != "" {
		b, err := ephem.ParseBody(s.center)
		if err != nil {
			return nil, err
		}
		center = b
	} else if !ok {
		center = ephem.BodyEarth
	}

	start, stop, err := s.window(req)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Fetching Horizons vectors for %s about %s", command, center)
	t, err := s.horizon.Vectors(ctx, ephem.HorizonsQuery{
		Command: command,
		Center:  center,
		Start:   start,
		Stop:    stop,
		Step:    req.Step,
	})
	if err != nil {
		return nil, fmt.Errorf("horizons %s: %w", command, err)
	}
	return t, nil
}

func (s *ephemSource) loadTLE(req agop.Request) (*ephem.TLE, error) {
	if s.path == "" {
		return nil, fmt.Errorf("tle ephemeris needs -tle")
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open element set: %w", err)
	}
	defer f.Close()

	line1, line2, err := readElementSet(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	start, end, err := s.window(req)
	if err != nil {
		return nil, err
	}
	return ephem.NewTLE(line1, line2, start, end, req.Step)
}

// readElementSet returns the two element lines of a TLE file. A leading
// name line is skipped.
func readElementSet(r io.Reader) (string, string, error) {
	var line1, line2 string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \r")
		switch {
		case strings.HasPrefix(line, "1 "):
			line1 = line
		case strings.HasPrefix(line, "2 ") && line1 != "":
			line2 = line
		}
		if line2 != "" {
			return line1, line2, nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", "", err
	}
	return "", "", fmt.Errorf("no two-line element set found")
}
