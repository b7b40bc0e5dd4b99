package observability

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// job is the Pushgateway job label for this batch tool.
const job = "sonde_recovery"

// Metrics holds the Prometheus counters for a recovery run. The tool is a
// one-shot batch job, so instead of exposing a scrape endpoint the counters
// are pushed to a Pushgateway at the end of the run when one is configured.
type Metrics struct {
	registry *prometheus.Registry

	PagesFetched     prometheus.Counter
	FetchFailures    prometheus.Counter
	TelemetryParsed  prometheus.Counter
	ParseFailures    prometheus.Counter
	WaypointsWritten prometheus.Counter
	DeliveriesSent   prometheus.Counter
	DeliveryFailures prometheus.Counter
	RunDuration      prometheus.Histogram
}

// NewMetrics creates and registers all run metrics on a private registry.
// A private registry keeps repeated construction in tests conflict-free and
// is what the Pushgateway pusher gathers from.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		PagesFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sonde_recovery",
			Name:      "pages_fetched_total",
			Help:      "Tracking pages fetched successfully.",
		}),
		FetchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sonde_recovery",
			Name:      "fetch_failures_total",
			Help:      "Tracking page fetches that failed.",
		}),
		TelemetryParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sonde_recovery",
			Name:      "telemetry_parsed_total",
			Help:      "Telemetry records parsed successfully.",
		}),
		ParseFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sonde_recovery",
			Name:      "parse_failures_total",
			Help:      "Pages whose telemetry could not be parsed.",
		}),
		WaypointsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sonde_recovery",
			Name:      "waypoint_files_written_total",
			Help:      "GPX waypoint files written.",
		}),
		DeliveriesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sonde_recovery",
			Name:      "deliveries_sent_total",
			Help:      "Waypoint files delivered to Telegram.",
		}),
		DeliveryFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sonde_recovery",
			Name:      "delivery_failures_total",
			Help:      "Waypoint file deliveries that failed or were skipped.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sonde_recovery",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete fetch-predict-write-deliver run.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}

	m.registry.MustRegister(
		m.PagesFetched,
		m.FetchFailures,
		m.TelemetryParsed,
		m.ParseFailures,
		m.WaypointsWritten,
		m.DeliveriesSent,
		m.DeliveryFailures,
		m.RunDuration,
	)

	return m
}

// Push sends the collected metrics to a Pushgateway. Best effort: a failed or
// unconfigured push is logged and never affects the run result.
func (m *Metrics) Push(ctx context.Context, gatewayURL string, logger *slog.Logger) {
	if gatewayURL == "" {
		return
	}
	if err := push.New(gatewayURL, job).Gatherer(m.registry).PushContext(ctx); err != nil {
		logger.Warn("metrics push failed", "gateway", gatewayURL, "error", err)
		return
	}
	logger.Info("metrics pushed", "gateway", gatewayURL)
}
