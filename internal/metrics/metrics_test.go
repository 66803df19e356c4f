package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}

	c.ObserveRequest("sst", "", 3*time.Millisecond, 12, true)
	c.ObserveRequest("sst", "no_aos", time.Millisecond, 1, false)

	if got := testutil.ToFloat64(c.Requests.WithLabelValues("sst", "ok")); got != 1 {
		t.Errorf("ok requests = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.Requests.WithLabelValues("sst", "no_aos")); got != 1 {
		t.Errorf("failed requests = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.Truncated.WithLabelValues("sst")); got != 1 {
		t.Errorf("truncated = %v, want 1", got)
	}
	if n := histogramSampleCount(t, reg, "optics_report_lines", map[string]string{"mode": "sst"}); n != 2 {
		t.Errorf("report line samples = %d, want 2", n)
	}
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	c.ObserveRequest("pt", "", time.Second, 1, false)
	if c.Gatherer() != prometheus.DefaultGatherer {
		t.Error("nil collector should fall back to the default gatherer")
	}
}

func TestNewCollectorReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewCollector(reg)
	if err != nil {
		t.Fatal(err)
	}
	second, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("second NewCollector: %v", err)
	}
	if first.Requests != second.Requests {
		t.Error("expected the already registered counter to be reused")
	}
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	if err != nil {
		t.Fatal(err)
	}
	c.ObserveRequest("ptc", "", time.Millisecond, 5, false)

	path := filepath.Join(t.TempDir(), "optics.prom")
	if err := c.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `optics_requests_total{code="ok",mode="ptc"} 1`) {
		t.Errorf("textfile missing request counter:\n%s", b)
	}
}

func histogramSampleCount(t *testing.T, gatherer prometheus.Gatherer, name string, labels map[string]string) uint64 {
	t.Helper()

	families, err := gatherer.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.Metric {
			if matchLabels(m.GetLabel(), labels) && m.GetHistogram() != nil {
				return m.GetHistogram().GetSampleCount()
			}
		}
	}
	return 0
}

func matchLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	if len(pairs) != len(want) {
		return false
	}
	for _, p := range pairs {
		if want[p.GetName()] != p.GetValue() {
			return false
		}
	}
	return true
}
