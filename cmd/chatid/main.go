// Command chatid prints the chats currently visible to the configured bot,
// so the right ENV_TELEGRAM_CHAT_ID can be picked for delivery. Message the
// bot (or post in the target channel) first, then run this.
//
// Usage:
//
//	chatid
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/couchcryptid/sonde-recovery/internal/config"
	"github.com/couchcryptid/sonde-recovery/internal/observability"
	"github.com/couchcryptid/sonde-recovery/internal/telegram"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.TelegramBotToken == "" {
		slog.Error("ENV_TELEGRAM_BOT_TOKEN is required")
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	client := telegram.NewClient(cfg.TelegramBotToken, cfg.TelegramTimeout, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	chats, err := client.ListChats(ctx)
	if err != nil {
		logger.Error("failed to list chats", "error", err)
		os.Exit(1)
	}

	if len(chats) == 0 {
		fmt.Println("No chats found. Send the bot a message and run this again.")
		return
	}

	for _, c := range chats {
		name := c.Title
		if name == "" {
			name = "@" + c.Username
		}
		fmt.Printf("%d\t%s\t%s\n", c.ID, c.Type, name)
	}
}
