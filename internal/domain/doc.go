// Package domain models radiosonde telemetry from the radiosondy.info
// tracking site and the landing projection derived from it.
//
// # Data Source
//
// radiosondy.info publishes per-sonde tracking pages rendered from APRS
// reports. The page identifies a sonde by the sondenumber query parameter
// (uppercase letters and digits, e.g. "S123456"). The last-seen state lives in
// the first body row of an HTML data table; see the radiosondy package for the
// cell layout.
//
// # Conventions
//
// Timestamps:
//
//	"YYYY-MM-DD HH:MM:SS" with no zone marker. The value is kept naive; it is
//	only echoed back into waypoint names and filenames, never compared across
//	zones.
//
// Speed:
//
//	Reported in km/h and converted to m/s when the record is built, so every
//	consumer downstream of parsing works in SI units.
//
// Climb rate:
//
//	Signed m/s, negative while descending. The source cell often carries
//	trailing unit text, so the canonical rule is: first decimal number found
//	in the cell, 0.0 when the cell contains none. A zero climb rate means the
//	landing projection is undefined ([ErrNotDescending]).
//
// # Landing Model
//
// [Predict] extrapolates with constant course, horizontal speed, and descent
// rate, then moves the start point along a great circle on a spherical Earth
// (R = 6371.0 km). Wind shear during descent is deliberately not modeled; the
// result is a search-area anchor, not a precision estimate.
package domain
