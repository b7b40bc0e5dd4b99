package domain

import (
	"regexp"
	"strconv"
	"time"
)

// TimeLayout is the timestamp format used by the tracking site's APRS table.
// Times are naive site-local values with no zone information.
const TimeLayout = "2006-01-02 15:04:05"

var (
	// sondeNumberRe matches the sonde serial bound to the sondenumber query
	// parameter, e.g. "track.php?sondenumber=S123456" -> "S123456".
	sondeNumberRe = regexp.MustCompile(`sondenumber=([A-Z0-9]+)`)

	// overrideRe parses a manual landing coordinate string:
	// "<lat>,<lon>" optionally followed by " at <description>".
	overrideRe = regexp.MustCompile(`^([\d.\-]+),([\d.\-]+)(\s+at\s+(.*))?$`)
)

// Coordinates is a WGS-84 latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Valid reports whether the pair lies in [-90,90] x [-180,180]. The tracking
// site is trusted as-is, so an invalid pair is logged rather than rejected.
func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Telemetry is the last reported state of a radiosonde. A record is only ever
// produced whole: if any required field fails to parse, no Telemetry exists.
type Telemetry struct {
	LastSeen   Coordinates
	LastSeenAt time.Time
	Course     float64 // compass bearing, degrees
	Altitude   float64 // meters above sea level
	SpeedMPS   float64 // horizontal speed, converted from km/h at parse time
	ClimbRate  float64 // m/s, negative while descending
}

// DescentRate is the downward vertical speed, i.e. |ClimbRate|.
func (t Telemetry) DescentRate() float64 {
	if t.ClimbRate < 0 {
		return -t.ClimbRate
	}
	return t.ClimbRate
}

// PredictedPoint is the projected ground-impact position together with the
// elapsed time from last-seen to touchdown.
type PredictedPoint struct {
	Coordinates
	TimeToGround float64 // seconds
}

// ManualOverride is a user-supplied landing coordinate added as a third
// waypoint, independent of the computed prediction.
type ManualOverride struct {
	Coordinates
	Description string
}

// KmhToMps converts a speed from km/h to m/s.
func KmhToMps(kmh float64) float64 {
	return kmh * 1000 / 3600
}

// ExtractSondeNumber pulls the sonde serial from a tracking-page URL.
// Returns false when the URL carries no sondenumber parameter.
func ExtractSondeNumber(url string) (string, bool) {
	m := sondeNumberRe.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ParseManualOverride parses a "lat,lon" or "lat,lon at <description>" string.
// Returns false on any grammar or numeric failure; the override is simply
// omitted, never fatal.
func ParseManualOverride(s string) (ManualOverride, bool) {
	m := overrideRe.FindStringSubmatch(s)
	if m == nil {
		return ManualOverride{}, false
	}
	lat, errLat := strconv.ParseFloat(m[1], 64)
	lon, errLon := strconv.ParseFloat(m[2], 64)
	if errLat != nil || errLon != nil {
		return ManualOverride{}, false
	}
	return ManualOverride{
		Coordinates: Coordinates{Lat: lat, Lon: lon},
		Description: m[4],
	}, true
}
