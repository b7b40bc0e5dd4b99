// Package gpxfile assembles recovery waypoints into a GPX document and writes
// it to disk with a deterministic, sonde-and-time derived filename.
package gpxfile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/couchcryptid/sonde-recovery/internal/domain"
)

// Waypoint symbols understood by common GPS viewers.
const (
	SymbolLastSeen         = "transport-airport"
	SymbolPredictedLanding = "z-ico01"
	SymbolManualOverride   = "z-ico02"
)

// filenameTimeLayout renders the last-seen time for filenames and the
// predicted-landing description, e.g. "231027_1000".
const filenameTimeLayout = "060102_1504"

// Document is everything that goes into one waypoint file.
type Document struct {
	SondeNumber  string
	Telemetry    domain.Telemetry
	Predicted    domain.PredictedPoint
	GroundHeight float64
	Override     *domain.ManualOverride // nil when no manual coordinate was supplied
}

// Writer emits GPX waypoint files under a fixed output directory.
// It implements pipeline.WaypointWriter.
type Writer struct {
	outputDir string
	logger    *slog.Logger
}

// NewWriter creates a GPX writer rooted at outputDir.
func NewWriter(outputDir string, logger *slog.Logger) *Writer {
	return &Writer{outputDir: outputDir, logger: logger}
}

// Write serializes the document and writes it to
// <outputDir>/<sonde>_<yymmdd_hhmm>_gpx_waypoint.gpx, returning the path.
func (w *Writer) Write(doc Document) (string, error) {
	g := buildGPX(doc)
	data, err := g.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return "", fmt.Errorf("serialize gpx: %w", err)
	}

	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s_gpx_waypoint.gpx",
		doc.SondeNumber, doc.Telemetry.LastSeenAt.Format(filenameTimeLayout))
	path := filepath.Join(w.outputDir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write gpx file: %w", err)
	}

	w.logger.Info("wrote waypoint file", "path", path, "waypoints", len(g.Waypoints))
	return path, nil
}

// buildGPX lays out the two computed waypoints plus the optional manual
// override, with the names, descriptions, and symbols recovery tooling expects.
func buildGPX(doc Document) *gpx.GPX {
	now := clock.Now()
	g := &gpx.GPX{
		Creator: "sonde-recovery",
		Time:    &now,
	}

	timeStr := doc.Telemetry.LastSeenAt.Format(filenameTimeLayout)

	g.Waypoints = append(g.Waypoints, gpx.GPXPoint{
		Point: gpx.Point{
			Latitude:  doc.Telemetry.LastSeen.Lat,
			Longitude: doc.Telemetry.LastSeen.Lon,
		},
		Name: fmt.Sprintf("%s Last Seen", doc.SondeNumber),
		Description: fmt.Sprintf("Course: %g, Speed %g, Altitude: %g, GroundHeight: %g",
			doc.Telemetry.Course, doc.Telemetry.SpeedMPS, doc.Telemetry.Altitude, doc.GroundHeight),
		Symbol: SymbolLastSeen,
	})

	g.Waypoints = append(g.Waypoints, gpx.GPXPoint{
		Point: gpx.Point{
			Latitude:  doc.Predicted.Lat,
			Longitude: doc.Predicted.Lon,
		},
		Name: fmt.Sprintf("%s Predicted Landing", doc.SondeNumber),
		Description: fmt.Sprintf("Time2Ground: %g, GroundHeight: %g, LandingTime: %s",
			doc.Predicted.TimeToGround, doc.GroundHeight, timeStr),
		Symbol: SymbolPredictedLanding,
	})

	if doc.Override != nil {
		g.Waypoints = append(g.Waypoints, gpx.GPXPoint{
			Point: gpx.Point{
				Latitude:  doc.Override.Lat,
				Longitude: doc.Override.Lon,
			},
			Name:        fmt.Sprintf("%s radiosondy Landing Point", doc.SondeNumber),
			Description: doc.Override.Description,
			Symbol:      SymbolManualOverride,
		})
	}

	return g
}
