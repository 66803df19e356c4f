package ephem

import (
	"math"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
	}{
		{"file", ModeFile},
		{"horizons", ModeHorizons},
		{"tle", ModeTLE},
		{"", ModeFile},        // default
		{"invalid", ModeFile}, // default for unknown
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := ParseMode(tc.input)
			if got != tc.expected {
				t.Errorf("ParseMode(%q) = %v, want %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode     Mode
		expected string
	}{
		{ModeFile, "file"},
		{ModeHorizons, "horizons"},
		{ModeTLE, "tle"},
		{Mode(99), "unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			got := tc.mode.String()
			if got != tc.expected {
				t.Errorf("Mode(%d).String() = %q, want %q", tc.mode, got, tc.expected)
			}
		})
	}
}

func TestBodyFrames(t *testing.T) {
	if BodyEarth.Inertial() != FrameECI || BodyEarth.Fixed() != FrameECT {
		t.Error("Earth frames wrong")
	}
	if BodyMoon.Inertial() != FrameMCI || BodyMoon.Fixed() != FrameMCT {
		t.Error("Moon frames wrong")
	}
	if math.Abs(BodyMoon.Radius()-MoonRadius) > 0 || BodyEarth.Radius() != EarthRadius {
		t.Error("radii wrong")
	}
}
