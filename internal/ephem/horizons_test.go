package ephem

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const sampleResult = `*******************************************************************************
Ephemeris / API_USER
$$SOE
2440423.000000000, A.D. 1969-Jul-20 12:00:00.0000,  1.200000000000000E+03, -3.400000000000000E+02,  5.000000000000000E+01,  1.000000000000000E+00,  1.500000000000000E+00, -2.000000000000000E-01,
2440423.041666667, A.D. 1969-Jul-20 13:00:00.0000,  4.800000000000000E+03,  5.000000000000000E+03,  1.000000000000000E+01,  2.000000000000000E-01,  5.000000000000000E-01, -1.000000000000000E-01,
$$EOE
*******************************************************************************`

func sampleBody(t *testing.T) []byte {
	t.Helper()
	b, err := json.Marshal(map[string]string{"result": sampleResult})
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestParseVectorResponse(t *testing.T) {
	table, err := parseVectorResponse(sampleBody(t), BodyMoon)
	if err != nil {
		t.Fatalf("parseVectorResponse: %v", err)
	}
	if table.Body() != BodyMoon {
		t.Errorf("Body = %v, want moon", table.Body())
	}

	start, end := table.Span()
	if want := time.Date(1969, 7, 20, 12, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Errorf("start = %v, want %v", start, want)
	}
	if end.Sub(start) != time.Hour {
		t.Errorf("span = %v, want 1h", end.Sub(start))
	}

	sv, err := table.Sample(start)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(sv.R.X-1.2e6) > 1e-6 || math.Abs(sv.V.Z-(-200)) > 1e-9 {
		t.Errorf("first vector = %+v, want metres", sv)
	}
}

func TestParseVectorResponseErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>"},
		{"api error", `{"error": "No ephemeris for target"}`},
		{"no markers", `{"result": "nothing here"}`},
		{"short line", `{"result": "$$SOE\n2440423.0, A.D. 1969-Jul-20 12:00, 1, 2\n$$EOE"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseVectorResponse([]byte(tc.body), BodyEarth); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestHorizonsClientCaches(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if got := r.URL.Query().Get("EPHEM_TYPE"); got != "VECTORS" {
			t.Errorf("EPHEM_TYPE = %q", got)
		}
		if got := r.URL.Query().Get("CENTER"); !strings.Contains(got, "@301") {
			t.Errorf("CENTER = %q", got)
		}
		w.Write(sampleBody(t))
	}))
	defer srv.Close()

	c := NewHorizonsClient()
	c.baseURL = srv.URL
	q := HorizonsQuery{
		Command: "-85",
		Center:  BodyMoon,
		Start:   time.Date(1969, 7, 20, 12, 0, 0, 0, time.UTC),
		Stop:    time.Date(1969, 7, 20, 13, 0, 0, 0, time.UTC),
		Step:    time.Hour,
	}

	for i := 0; i < 2; i++ {
		if _, err := c.Vectors(context.Background(), q); err != nil {
			t.Fatalf("Vectors: %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("server called %d times, want 1", calls)
	}
}

func TestHorizonsClient_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	start := time.Now().UTC().Truncate(time.Hour).Add(-24 * time.Hour)
	table, err := NewHorizonsClient().Vectors(context.Background(), HorizonsQuery{
		Command: "-85",
		Center:  BodyMoon,
		Start:   start,
		Stop:    start.Add(2 * time.Hour),
		Step:    10 * time.Minute,
	})
	if err != nil {
		t.Fatalf("Vectors failed: %v", err)
	}
	sv, err := table.Sample(start.Add(15 * time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if r := sv.R.Norm(); r < MoonRadius || r > MoonRadius+500e3 {
		t.Errorf("LRO radius = %.0f m", r)
	}
}

func TestFormatStepSize(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{10 * time.Minute, "10 m"},
		{2 * time.Hour, "2 h"},
		{90 * time.Minute, "90 m"},
		{10 * time.Second, "1 m"},
	}
	for _, tc := range tests {
		if got := formatStepSize(tc.d); got != tc.want {
			t.Errorf("formatStepSize(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
