package ephem

import (
	"strconv"
	"strings"
)

// TargetID is a NAIF SPICE ID for a spacecraft or body.
type TargetID int

// TargetInfo maps a short code to a Horizons target.
type TargetInfo struct {
	Code    string   // Short code (e.g., "LRO")
	Name    string   // Full mission name
	NAIFID  TargetID // NAIF SPICE ID
	Center  Body     // Body the spacecraft orbits
	Aliases []string // Alternative codes
}

// NAIF SPICE IDs for cislunar spacecraft available from Horizons.
// Sourced from https://naif.jpl.nasa.gov/pub/naif/toolkit_docs/C/req/naif_ids.html
const (
	NAIFMoon         TargetID = 301
	NAIFLRO          TargetID = -85
	NAIFCapstone     TargetID = -186
	NAIFKoreaLunar   TargetID = -155
	NAIFSLIM         TargetID = -157
	NAIFChandrayaan3 TargetID = -158
	NAIFArtemis1     TargetID = -1023
)

// KnownTargets lists the spacecraft resolvable by code.
var KnownTargets = []TargetInfo{
	{Code: "LRO", Name: "Lunar Reconnaissance Orbiter", NAIFID: NAIFLRO, Center: BodyMoon},
	{Code: "CAPS", Name: "Capstone", NAIFID: NAIFCapstone, Center: BodyMoon, Aliases: []string{"CAPSTONE"}},
	{Code: "KPLO", Name: "Korea Pathfinder Lunar Orbiter", NAIFID: NAIFKoreaLunar, Center: BodyMoon, Aliases: []string{"DANURI"}},
	{Code: "SLIM", Name: "SLIM", NAIFID: NAIFSLIM, Center: BodyMoon},
	{Code: "CH3", Name: "Chandrayaan-3", NAIFID: NAIFChandrayaan3, Center: BodyMoon, Aliases: []string{"CH-3", "CHANDRAYAAN 3"}},
	{Code: "ART1", Name: "Artemis I", NAIFID: NAIFArtemis1, Center: BodyEarth, Aliases: []string{"ARTEMIS 1", "ORION"}},
}

// TargetsByCode maps codes and aliases to target info.
var TargetsByCode = func() map[string]TargetInfo {
	m := make(map[string]TargetInfo)
	for _, t := range KnownTargets {
		m[t.Code] = t
		for _, alias := range t.Aliases {
			m[normalizeName(alias)] = t
		}
	}
	return m
}()

func normalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// ResolveTarget maps a code, alias or numeric ID to a Horizons command
// string. Unknown names pass through unchanged.
func ResolveTarget(name string) (command string, info TargetInfo, ok bool) {
	if t, found := TargetsByCode[normalizeName(name)]; found {
		return strconv.Itoa(int(t.NAIFID)), t, true
	}
	if id, err := strconv.Atoi(strings.TrimSpace(name)); err == nil {
		for _, t := range KnownTargets {
			if int(t.NAIFID) == id {
				return strconv.Itoa(id), t, true
			}
		}
	}
	return strings.TrimSpace(name), TargetInfo{}, false
}
