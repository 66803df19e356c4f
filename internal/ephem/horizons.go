package ephem

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/litescript/ls-optics/internal/astro"
)

const (
	// HorizonsAPIURL is the JPL Horizons JSON API endpoint.
	HorizonsAPIURL = "https://ssd.jpl.nasa.gov/api/horizons.api"

	// TableCacheTTL is how long a fetched table is reused.
	TableCacheTTL = 10 * time.Minute

	// RequestTimeout is the HTTP request timeout.
	RequestTimeout = 30 * time.Second
)

// HorizonsQuery selects a vector table from Horizons.
type HorizonsQuery struct {
	Command string // Horizons target, e.g. "-399110" or "301"
	Center  Body
	Start   time.Time
	Stop    time.Time
	Step    time.Duration
}

func (q HorizonsQuery) key() string {
	return fmt.Sprintf("%s@%d/%d/%d/%d", q.Command, q.Center, q.Start.Unix(), q.Stop.Unix(), q.Step)
}

// HorizonsClient fetches spacecraft state vector tables from JPL Horizons.
type HorizonsClient struct {
	client  *http.Client
	baseURL string

	mu    sync.RWMutex
	cache map[string]*cachedTable
}

type cachedTable struct {
	table     *Table
	fetchedAt time.Time
}

// NewHorizonsClient creates a new Horizons API client.
func NewHorizonsClient() *HorizonsClient {
	return &HorizonsClient{
		client:  &http.Client{Timeout: RequestTimeout},
		baseURL: HorizonsAPIURL,
		cache:   make(map[string]*cachedTable),
	}
}

// Vectors returns the state vector table for q, from cache when fresh.
func (c *HorizonsClient) Vectors(ctx context.Context, q HorizonsQuery) (*Table, error) {
	key := q.key()

	c.mu.RLock()
	cached, ok := c.cache[key]
	c.mu.RUnlock()
	if ok && time.Since(cached.fetchedAt) < TableCacheTTL {
		return cached.table, nil
	}

	table, err := c.query(ctx, q)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[key] = &cachedTable{table: table, fetchedAt: time.Now()}
	c.mu.Unlock()

	return table, nil
}

func (c *HorizonsClient) query(ctx context.Context, q HorizonsQuery) (*Table, error) {
	// Values must be quoted with single quotes.
	params := url.Values{}
	params.Set("format", "json")
	params.Set("COMMAND", fmt.Sprintf("'%s'", q.Command))
	params.Set("OBJ_DATA", "NO")
	params.Set("MAKE_EPHEM", "YES")
	params.Set("EPHEM_TYPE", "VECTORS")
	params.Set("CENTER", fmt.Sprintf("'500@%s'", centerCode(q.Center)))
	params.Set("REF_PLANE", "FRAME")
	params.Set("REF_SYSTEM", "ICRF")
	params.Set("VEC_TABLE", "'2'")
	params.Set("VEC_LABELS", "NO")
	params.Set("CSV_FORMAT", "YES")
	params.Set("OUT_UNITS", "'KM-S'")
	params.Set("START_TIME", fmt.Sprintf("'%s'", formatHorizonsTime(q.Start)))
	params.Set("STOP_TIME", fmt.Sprintf("'%s'", formatHorizonsTime(q.Stop)))
	params.Set("STEP_SIZE", fmt.Sprintf("'%s'", formatStepSize(q.Step)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("horizons request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("horizons returned status %d: %s", resp.StatusCode, string(body))
	}

	return parseVectorResponse(body, q.Center)
}

func centerCode(b Body) string {
	if b == BodyMoon {
		return "301"
	}
	return "399"
}

// horizonsResponse represents the JSON API response.
type horizonsResponse struct {
	Signature struct {
		Version string `json:"version"`
		Source  string `json:"source"`
	} `json:"signature"`
	Result string `json:"result"`
	Error  string `json:"error"`
}

// parseVectorResponse parses a CSV vector table out of the JSON response.
func parseVectorResponse(body []byte, center Body) (*Table, error) {
	var resp horizonsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("horizons: %s", resp.Error)
	}

	soeIdx := strings.Index(resp.Result, "$$SOE")
	eoeIdx := strings.Index(resp.Result, "$$EOE")
	if soeIdx == -1 || eoeIdx == -1 || soeIdx >= eoeIdx {
		return nil, fmt.Errorf("could not find vector data markers")
	}

	var vectors []StateVector
	for _, line := range strings.Split(resp.Result[soeIdx+5:eoeIdx], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		sv, err := parseVectorLine(line)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, sv)
	}
	return NewTable(center, vectors)
}

// parseVectorLine parses one CSV record:
//
//	2440423.000000000, A.D. 1969-Jul-20 12:00:00.0000, X, Y, Z, VX, VY, VZ,
//
// Positions are in km and velocities in km/s.
func parseVectorLine(line string) (StateVector, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 8 {
		return StateVector{}, fmt.Errorf("insufficient fields: %d", len(fields))
	}

	t, err := parseHorizonsDateTime(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(fields[1]), "A.D.")))
	if err != nil {
		return StateVector{}, err
	}

	var vals [6]float64
	for i := range vals {
		vals[i], err = strconv.ParseFloat(strings.TrimSpace(fields[2+i]), 64)
		if err != nil {
			return StateVector{}, fmt.Errorf("field %d: %w", 2+i, err)
		}
	}

	return StateVector{
		Time: t,
		R:    astro.Vec3{X: vals[0] * 1000, Y: vals[1] * 1000, Z: vals[2] * 1000},
		V:    astro.Vec3{X: vals[3] * 1000, Y: vals[4] * 1000, Z: vals[5] * 1000},
	}, nil
}

// parseHorizonsDateTime parses Horizons date format like "1969-Jul-20 12:00:00.0000".
func parseHorizonsDateTime(s string) (time.Time, error) {
	for _, layout := range []string{"2006-Jan-02 15:04:05.0000", "2006-Jan-02 15:04:05", "2006-Jan-02 15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
}

// formatHorizonsTime formats a time for Horizons API.
func formatHorizonsTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}

// formatStepSize formats a duration as a Horizons step size.
func formatStepSize(d time.Duration) string {
	minutes := int(d.Minutes())
	if minutes >= 60 && minutes%60 == 0 {
		return fmt.Sprintf("%d h", minutes/60)
	}
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d m", minutes)
}
