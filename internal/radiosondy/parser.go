// Package radiosondy talks to the radiosondy.info tracking site: fetching
// per-sonde pages and parsing their semi-structured HTML into domain records.
package radiosondy

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/couchcryptid/sonde-recovery/internal/domain"
)

// aprsTableID is the DOM id of the APRS data table on a tracking page.
const aprsTableID = "Table7"

// telemetryCells is the minimum cell count of a usable APRS table row; the
// last-seen fields occupy cells 2 through 8.
const telemetryCells = 9

var (
	// ErrNoDataTable means the page carried no APRS data table or the table
	// had no body row to read.
	ErrNoDataTable = errors.New("no APRS data table in page")

	// climbRateRe pulls the first decimal number out of the climb-rate cell,
	// which often carries unit text, e.g. "-5.2 m/s" -> "-5.2".
	climbRateRe = regexp.MustCompile(`[-+]?\d*\.\d+|\d+`)

	// groundAltitudeRe matches the ground elevation note rendered outside the
	// APRS table, e.g. "Ground Altitude: 354 m".
	groundAltitudeRe = regexp.MustCompile(`Ground Altitude: (\d+) m`)
)

// ParseTelemetry extracts the last-seen telemetry from a tracking page. The
// record is all-or-nothing: a missing table, a short row, an unparsable time,
// or any unparsable numeric cell (climb rate excepted, which defaults to 0)
// rejects the whole record.
func ParseTelemetry(html string, logger *slog.Logger) (domain.Telemetry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return domain.Telemetry{}, fmt.Errorf("parse page: %w", err)
	}

	row := doc.Find("table#" + aprsTableID + " tbody tr").First()
	if row.Length() == 0 {
		return domain.Telemetry{}, ErrNoDataTable
	}

	cells := row.Find("td")
	if cells.Length() < telemetryCells {
		return domain.Telemetry{}, fmt.Errorf("APRS row has %d cells, want at least %d", cells.Length(), telemetryCells)
	}

	cell := func(i int) string {
		return strings.TrimSpace(cells.Eq(i).Text())
	}

	lastSeenAt, err := time.Parse(domain.TimeLayout, cell(2))
	if err != nil {
		return domain.Telemetry{}, fmt.Errorf("parse last-seen time %q: %w", cell(2), err)
	}

	lat, err := parseCellFloat("latitude", cell(3))
	if err != nil {
		return domain.Telemetry{}, err
	}
	lon, err := parseCellFloat("longitude", cell(4))
	if err != nil {
		return domain.Telemetry{}, err
	}
	course, err := parseCellFloat("course", cell(5))
	if err != nil {
		return domain.Telemetry{}, err
	}
	speedKmh, err := parseCellFloat("speed", cell(6))
	if err != nil {
		return domain.Telemetry{}, err
	}
	altitude, err := parseCellFloat("altitude", cell(7))
	if err != nil {
		return domain.Telemetry{}, err
	}

	tel := domain.Telemetry{
		LastSeen:   domain.Coordinates{Lat: lat, Lon: lon},
		LastSeenAt: lastSeenAt,
		Course:     course,
		Altitude:   altitude,
		SpeedMPS:   domain.KmhToMps(speedKmh),
		ClimbRate:  parseClimbRate(cell(8)),
	}

	logger.Info("parsed last-seen telemetry",
		"lat", tel.LastSeen.Lat,
		"lon", tel.LastSeen.Lon,
		"time", tel.LastSeenAt.Format(domain.TimeLayout),
		"course", tel.Course,
		"speed_mps", tel.SpeedMPS,
		"altitude", tel.Altitude,
		"climb_rate", tel.ClimbRate,
	)
	return tel, nil
}

// ParseGroundHeight scans the raw page text for the ground elevation note.
// The scan is independent of table parsing and never fails: pages without the
// note report a ground height of 0.
func ParseGroundHeight(html string) float64 {
	m := groundAltitudeRe.FindStringSubmatch(html)
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return v
}

func parseCellFloat(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", field, raw, err)
	}
	return v, nil
}

// parseClimbRate extracts the first decimal number from the climb-rate cell,
// defaulting to 0 when the cell contains none.
func parseClimbRate(raw string) float64 {
	m := climbRateRe.FindString(raw)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}
