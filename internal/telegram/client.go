// Package telegram is a minimal Telegram Bot API client covering the two
// calls this project needs: uploading a document to a chat and listing the
// chats visible to the bot.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Client calls the Telegram Bot API with a bot token.
// It implements pipeline.Deliverer.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a Bot API client.
func NewClient(token string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.telegram.org",
		logger:  logger,
	}
}

// SendDocument uploads the file at path to the given chat.
func (c *Client) SendDocument(ctx context.Context, chatID, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("chat_id", chatID); err != nil {
		return fmt.Errorf("build upload: %w", err)
	}
	part, err := mw.CreateFormFile("document", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("build upload: %w", err)
	}

	u := fmt.Sprintf("%s/bot%s/sendDocument", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, &body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	if _, err := c.do(req); err != nil {
		return err
	}

	c.logger.Info("sent document to telegram", "chat_id", chatID, "file", filepath.Base(path))
	return nil
}

// ChatUpdate is one chat the bot has recently seen traffic from.
type ChatUpdate struct {
	ID       int64
	Type     string
	Title    string
	Username string
}

// ListChats returns the chats present in the bot's pending updates. A chat
// only appears after someone has messaged the bot, which is exactly the
// bootstrap situation the chatid command exists for.
func (c *Client) ListChats(ctx context.Context) ([]ChatUpdate, error) {
	u := fmt.Sprintf("%s/bot%s/getUpdates", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	result, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var updates []update
	if err := json.Unmarshal(result, &updates); err != nil {
		return nil, fmt.Errorf("decode updates: %w", err)
	}

	seen := make(map[int64]bool)
	var chats []ChatUpdate
	for _, upd := range updates {
		msg := upd.Message
		if msg == nil {
			msg = upd.ChannelPost
		}
		if msg == nil || seen[msg.Chat.ID] {
			continue
		}
		seen[msg.Chat.ID] = true
		chats = append(chats, ChatUpdate{
			ID:       msg.Chat.ID,
			Type:     msg.Chat.Type,
			Title:    msg.Chat.Title,
			Username: msg.Chat.Username,
		})
	}
	return chats, nil
}

// do executes a Bot API request and unwraps the standard response envelope.
func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("telegram request: %w", err)
	}
	defer resp.Body.Close()

	var env apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode telegram response: %w", err)
	}
	if !env.OK {
		return nil, fmt.Errorf("telegram API error: %s", env.Description)
	}
	return env.Result, nil
}

// Bot API wire types.

type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

type update struct {
	Message     *message `json:"message"`
	ChannelPost *message `json:"channel_post"`
}

type message struct {
	Chat chat `json:"chat"`
}

type chat struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Username string `json:"username"`
}
