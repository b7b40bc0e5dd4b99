// Package pipeline orchestrates one recovery run: fetch the tracking page,
// extract telemetry, project the landing point, write the waypoint file, and
// deliver it. Stages communicate failure by explicit results; the runner
// decides at each boundary whether the run continues.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/sonde-recovery/internal/domain"
	"github.com/couchcryptid/sonde-recovery/internal/gpxfile"
	"github.com/couchcryptid/sonde-recovery/internal/observability"
	"github.com/couchcryptid/sonde-recovery/internal/radiosondy"
)

// PageFetcher retrieves the raw HTML of a tracking page.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

// WaypointWriter serializes a waypoint document to disk and returns its path.
type WaypointWriter interface {
	Write(doc gpxfile.Document) (string, error)
}

// Deliverer uploads a finished waypoint file to a chat.
type Deliverer interface {
	SendDocument(ctx context.Context, chatID, path string) error
}

// Runner executes the fetch-extract-predict-write-deliver sequence.
type Runner struct {
	fetcher   PageFetcher
	writer    WaypointWriter
	deliverer Deliverer // nil when Telegram credentials are absent
	chatID    string
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Runner. Pass a nil deliverer to skip the delivery stage.
func New(fetcher PageFetcher, writer WaypointWriter, deliverer Deliverer, chatID string, logger *slog.Logger, metrics *observability.Metrics) *Runner {
	return &Runner{
		fetcher:   fetcher,
		writer:    writer,
		deliverer: deliverer,
		chatID:    chatID,
		logger:    logger,
		metrics:   metrics,
	}
}

// Run processes one sonde. coordsArg is the optional manual landing
// coordinate string ("lat,lon" or "lat,lon at <description>"); empty means no
// override. An error means the run aborted before producing a waypoint file;
// delivery problems are degraded-but-successful outcomes, not errors.
func (r *Runner) Run(ctx context.Context, url, coordsArg string) error {
	start := time.Now()
	defer func() {
		r.metrics.RunDuration.Observe(time.Since(start).Seconds())
	}()

	sondeNumber, ok := domain.ExtractSondeNumber(url)
	if !ok {
		r.logger.Warn("could not extract sonde number from URL", "url", url)
		return fmt.Errorf("no sonde number in URL %q", url)
	}
	r.logger.Info("processing sonde", "sonde", sondeNumber)

	override := r.parseOverride(coordsArg)

	html, err := r.fetcher.FetchPage(ctx, url)
	if err != nil {
		r.metrics.FetchFailures.Inc()
		return fmt.Errorf("fetch stage: %w", err)
	}
	r.metrics.PagesFetched.Inc()

	tel, err := radiosondy.ParseTelemetry(html, r.logger)
	if err != nil {
		r.metrics.ParseFailures.Inc()
		return fmt.Errorf("extract stage: %w", err)
	}
	r.metrics.TelemetryParsed.Inc()

	if !tel.LastSeen.Valid() {
		r.logger.Warn("last-seen coordinates out of range",
			"lat", tel.LastSeen.Lat, "lon", tel.LastSeen.Lon)
	}

	groundHeight := radiosondy.ParseGroundHeight(html)
	r.logger.Info("ground height", "meters", groundHeight)

	predicted, err := domain.Predict(tel, groundHeight)
	if err != nil {
		return fmt.Errorf("predict stage: %w", err)
	}
	r.logger.Info("predicted landing point",
		"lat", predicted.Lat,
		"lon", predicted.Lon,
		"time_to_ground_s", predicted.TimeToGround,
	)

	path, err := r.writer.Write(gpxfile.Document{
		SondeNumber:  sondeNumber,
		Telemetry:    tel,
		Predicted:    predicted,
		GroundHeight: groundHeight,
		Override:     override,
	})
	if err != nil {
		return fmt.Errorf("write stage: %w", err)
	}
	r.metrics.WaypointsWritten.Inc()

	r.deliver(ctx, path)
	return nil
}

// parseOverride turns the optional manual coordinate argument into an
// override waypoint. Failures only cost the third waypoint.
func (r *Runner) parseOverride(coordsArg string) *domain.ManualOverride {
	if coordsArg == "" {
		return nil
	}
	o, ok := domain.ParseManualOverride(coordsArg)
	if !ok {
		r.logger.Warn("invalid manual coordinates, expected 'lat,lon' or 'lat,lon at <description>'",
			"coords", coordsArg)
		return nil
	}
	r.logger.Info("manual landing coordinates", "lat", o.Lat, "lon", o.Lon, "description", o.Description)
	return &o
}

// deliver uploads the waypoint file. The artifact already exists, so every
// failure here is a warning and the run still counts as successful.
func (r *Runner) deliver(ctx context.Context, path string) {
	if r.deliverer == nil {
		r.metrics.DeliveryFailures.Inc()
		r.logger.Warn("telegram credentials not configured, skipping delivery", "path", path)
		return
	}
	if err := r.deliverer.SendDocument(ctx, r.chatID, path); err != nil {
		r.metrics.DeliveryFailures.Inc()
		r.logger.Warn("delivery failed", "path", path, "error", err)
		return
	}
	r.metrics.DeliveriesSent.Inc()
	r.logger.Info("delivered waypoint file", "path", path, "chat_id", r.chatID)
}
