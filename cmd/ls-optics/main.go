// Command ls-optics runs optics and attitude requests and prints their
// fixed-width reports.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/term"

	"github.com/litescript/ls-optics/internal/agop"
	"github.com/litescript/ls-optics/internal/ephem"
	"github.com/litescript/ls-optics/internal/logging"
	"github.com/litescript/ls-optics/internal/metrics"
	"github.com/litescript/ls-optics/internal/state"
	"github.com/litescript/ls-optics/internal/ui"
	"github.com/litescript/ls-optics/internal/version"
)

// CLI flags for output
var (
	jsonMode    bool
	tuiMode     bool
	eventsMode  bool
	metricsFile string
	writeEphem  string
)

const (
	defaultSpan = 24 * time.Hour
	maxSpan     = 30 * 24 * time.Hour
)

var bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#9D4EDD"))

func main() {
	ephemMode := flag.String("ephem-mode", "file", "Ephemeris source (file, horizons, tle)")
	ephemPath := flag.String("ephem", "", "State vector table file for -ephem-mode=file")
	tlePath := flag.String("tle", "", "Two-line element set file for -ephem-mode=tle")
	target := flag.String("target", "", "Horizons target name or NAIF ID for -ephem-mode=horizons")
	center := flag.String("center", "", "Central body for Horizons vectors (earth, moon)")
	startFlag := flag.String("start", "", "Ephemeris start time, RFC3339 (default: request launch)")
	span := flag.Duration("span", defaultSpan, "Ephemeris span for horizons and tle sources")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&jsonMode, "json", false, "Print reports as JSON")
	flag.BoolVar(&tuiMode, "tui", false, "Browse reports in a terminal pager")
	flag.BoolVar(&eventsMode, "events", false, "Show event log after the reports")
	flag.StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to a textfile")
	flag.StringVar(&writeEphem, "write-ephem", "", "Save the first tabulated ephemeris to a file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ls-optics [flags] request.json ... (use - for stdin)\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	// Set up logging
	level, err := logging.ParseLevel(*logLevel)
	logger := logging.New(level)
	if err != nil {
		logger.Warn("%v, using info", err)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if *span <= 0 {
		*span = defaultSpan
	} else if *span > maxSpan {
		*span = maxSpan
	}

	var start time.Time
	if *startFlag != "" {
		start, err = time.Parse(time.RFC3339, *startFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: -start: %v\n", err)
			os.Exit(2)
		}
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// Initialize components
	collector, err := metrics.NewCollector(prometheus.NewRegistry())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	engine := agop.NewEngine(ephem.NewRotating(), ephem.Meeus{})
	engine.Logger = logger.Named("agop")
	engine.Recorder = collector

	stateMgr := state.NewManager(state.DefaultConfig())

	path := *ephemPath
	mode := ephem.ParseMode(*ephemMode)
	if mode == ephem.ModeTLE {
		path = *tlePath
	}
	src := &ephemSource{
		mode:    mode,
		path:    path,
		target:  *target,
		center:  *center,
		start:   start,
		span:    *span,
		horizon: ephem.NewHorizonsClient(),
		logger:  logger.Named("ephem"),
	}

	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	if tuiMode && !isTTY {
		logger.Warn("stdout is not a terminal, printing reports instead of the pager")
		tuiMode = false
	}

	var out io.Writer = os.Stdout
	if tuiMode {
		out = io.Discard
	}

	failed := false
	for _, name := range flag.Args() {
		if ctx.Err() != nil {
			break
		}
		res, err := runRequest(ctx, name, engine, src, logger)
		if err != nil {
			logger.Error("%s: %v", name, err)
			stateMgr.RecordError(name, err)
			failed = true
			continue
		}
		stateMgr.Record(name, res.report, res.elapsed)
		if res.report.Failed() {
			failed = true
		}
		if err := writeReport(out, name, res.report, isTTY); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if metricsFile != "" {
		if err := collector.WriteTextfile(metricsFile); err != nil {
			logger.Error("%v", err)
		}
	}

	if tuiMode {
		p := tea.NewProgram(ui.New(stateMgr), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
			os.Exit(1)
		}
	} else if eventsMode {
		fmt.Println()
		writeEvents(os.Stdout, stateMgr.RecentEvents(20))
	}

	if failed {
		os.Exit(1)
	}
}

type result struct {
	report  *agop.Report
	elapsed time.Duration
}

// runRequest decodes one request file, attaches its ephemeris and runs it.
func runRequest(ctx context.Context, name string, engine *agop.Engine, src *ephemSource, logger *logging.Logger) (result, error) {
	req, err := readRequest(name)
	if err != nil {
		return result{}, err
	}
	if err := src.Attach(ctx, &req); err != nil {
		return result{}, fmt.Errorf("ephemeris: %w", err)
	}

	if writeEphem != "" {
		if t, ok := req.Ephemeris.(*ephem.Table); ok {
			if err := saveTable(writeEphem, t); err != nil {
				logger.Warn("%v", err)
			} else {
				logger.Info("Saved ephemeris to %s", writeEphem)
			}
			writeEphem = ""
		}
	}

	started := time.Now()
	rep := engine.Run(req)
	return result{report: rep, elapsed: time.Since(started)}, nil
}

func readRequest(name string) (agop.Request, error) {
	if name == "-" {
		return agop.DecodeRequest(os.Stdin)
	}
	f, err := os.Open(name)
	if err != nil {
		return agop.Request{}, err
	}
	defer f.Close()
	return agop.DecodeRequest(f)
}

func saveTable(path string, t *ephem.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create ephemeris file: %w", err)
	}
	defer f.Close()
	if err := ephem.WriteTable(f, t); err != nil {
		return fmt.Errorf("write ephemeris file: %w", err)
	}
	return nil
}

// writeReport prints a report, with a styled banner on a terminal.
func writeReport(w io.Writer, name string, rep *agop.Report, isTTY bool) error {
	if jsonMode {
		return rep.WriteJSON(w)
	}
	if isTTY {
		banner := fmt.Sprintf("%s  ls-optics v%s  %s", name, version.Version, rep.Mode)
		fmt.Fprintln(w, bannerStyle.Render(banner))
	}
	if err := rep.WriteText(w); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

// writeEvents prints the session event log.
func writeEvents(w io.Writer, events []state.Event) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events.")
		return
	}
	fmt.Fprintf(w, "%-12s  %-12s  %-8s  %-24s  %s\n", "TIME", "TYPE", "MODE", "REQUEST", "DETAIL")
	for _, e := range events {
		detail := e.Detail
		if e.Code != "" {
			detail = e.Code + " " + detail
		}
		fmt.Fprintf(w, "%-12s  %-12s  %-8s  %-24s  %s\n",
			e.Timestamp.Format("15:04:05.000"), e.Type, e.Mode, e.Request, detail)
	}
}
