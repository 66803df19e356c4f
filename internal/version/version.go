// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Report pager TUI, session events, Prometheus textfile export
// 0.2.0 - Horizons and TLE ephemeris sources, landmark and star sighting modes
// 0.1.0 - Initial release: attitude conversions, OST and star catalog reports
