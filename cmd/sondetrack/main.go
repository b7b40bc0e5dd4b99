// Command sondetrack turns a radiosondy.info tracking page into a GPX
// waypoint file with the sonde's last-seen position, a predicted landing
// point, and an optional manually supplied landing coordinate, then delivers
// the file to a Telegram chat.
//
// Usage:
//
//	sondetrack [-coords "lat,lon[ at description]"] <tracking-page-url>
//
// Telegram credentials come from ENV_TELEGRAM_BOT_TOKEN and
// ENV_TELEGRAM_CHAT_ID (a .env file is honored); without them the run still
// writes the waypoint file and skips delivery.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/couchcryptid/sonde-recovery/internal/config"
	"github.com/couchcryptid/sonde-recovery/internal/gpxfile"
	"github.com/couchcryptid/sonde-recovery/internal/observability"
	"github.com/couchcryptid/sonde-recovery/internal/pipeline"
	"github.com/couchcryptid/sonde-recovery/internal/radiosondy"
	"github.com/couchcryptid/sonde-recovery/internal/telegram"
)

func main() {
	coords := flag.String("coords", "", "optional manual landing coordinates, 'lat,lon' or 'lat,lon at <description>'")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: sondetrack [-coords lat,lon] <tracking-page-url>")
		os.Exit(2)
	}
	url := flag.Arg(0)

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	fetcher := radiosondy.NewClient(cfg.FetchTimeout, logger)
	writer := gpxfile.NewWriter(cfg.OutputDir, logger)

	// Delivery is feature-gated on credentials; a missing token or chat id
	// downgrades the run to file-only.
	var deliverer pipeline.Deliverer
	if cfg.DeliveryEnabled() {
		deliverer = telegram.NewClient(cfg.TelegramBotToken, cfg.TelegramTimeout, logger)
	}

	runner := pipeline.New(fetcher, writer, deliverer, cfg.TelegramChatID, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := runner.Run(ctx, url, *coords)

	// Push whatever happened, including aborted runs, before deciding the exit code.
	pushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	metrics.Push(pushCtx, cfg.PushgatewayURL, logger)

	if runErr != nil {
		logger.Error("run failed", "error", runErr)
		os.Exit(1)
	}
}
