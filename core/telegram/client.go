package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"
)

const (
	methodSend   = "sendMessage"
	methodEdit   = "editMessageText"
	methodPin    = "pinChatMessage"
	methodDelete = "deleteMessage"
)

// Client is a thin Bot API client built on telebot's raw call API.
//
// Every call returns the interpreted envelope. A non-nil error means no
// envelope could be read (see ErrTransport); API rejections are reported
// through Response.OK and never as an error.
type Client struct {
	bot       *tele.Bot
	parseMode string
}

// NewClient creates a client for the given bot token.
// It does not contact Telegram; the first request happens on the first send.
func NewClient(token string, cfg Config) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("telegram token is empty")
	}
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	b, err := tele.NewBot(tele.Settings{
		URL:     strings.TrimRight(cfg.BaseURL, "/"),
		Token:   token,
		Client:  &http.Client{Timeout: time.Duration(timeout) * time.Second},
		Offline: true,
	})
	if err != nil {
		return nil, err
	}
	return &Client{bot: b, parseMode: cfg.ParseMode}, nil
}

// SendMessage posts a new message. threadID 0 addresses the chat root.
func (c *Client) SendMessage(ctx context.Context, chatID string, threadID int, text string) (Response, error) {
	payload := map[string]any{
		"chat_id":                  chatID,
		"text":                     text,
		"disable_web_page_preview": true,
	}
	if c.parseMode != "" {
		payload["parse_mode"] = c.parseMode
	}
	if threadID != 0 {
		payload["message_thread_id"] = threadID
	}
	return c.call(ctx, methodSend, payload)
}

// EditMessage replaces the text of an existing message.
func (c *Client) EditMessage(ctx context.Context, chatID string, messageID int, text string) (Response, error) {
	payload := map[string]any{
		"chat_id":                  chatID,
		"message_id":               messageID,
		"text":                     text,
		"disable_web_page_preview": true,
	}
	if c.parseMode != "" {
		payload["parse_mode"] = c.parseMode
	}
	return c.call(ctx, methodEdit, payload)
}

// PinMessage pins a message without notifying chat members.
func (c *Client) PinMessage(ctx context.Context, chatID string, messageID int) (Response, error) {
	return c.call(ctx, methodPin, map[string]any{
		"chat_id":              chatID,
		"message_id":           messageID,
		"disable_notification": true,
	})
}

// DeleteMessage removes a message.
func (c *Client) DeleteMessage(ctx context.Context, chatID string, messageID int) (Response, error) {
	return c.call(ctx, methodDelete, map[string]any{
		"chat_id":    chatID,
		"message_id": messageID,
	})
}

type envelope struct {
	OK          *bool           `json:"ok"`
	ErrorCode   int             `json:"error_code"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
	Parameters  struct {
		RetryAfter int `json:"retry_after"`
	} `json:"parameters"`
}

func (c *Client) call(ctx context.Context, method string, payload map[string]any) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, &transportError{method: method, err: err}
	}

	// Raw returns the body even when telebot reports an API error, so the
	// envelope is decoded here instead of relying on telebot's error mapping.
	data, rawErr := c.bot.Raw(method, payload)
	if len(data) == 0 {
		if rawErr == nil {
			rawErr = errors.New("empty response body")
		}
		return Response{}, &transportError{method: method, err: rawErr}
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil || env.OK == nil {
		if err == nil {
			err = errors.New("response is not a Bot API envelope")
		}
		return Response{}, &transportError{method: method, err: err}
	}

	resp := Response{
		OK:          *env.OK,
		ErrorCode:   env.ErrorCode,
		Description: env.Description,
		RetryAfter:  env.Parameters.RetryAfter,
	}
	if resp.OK && bytes.HasPrefix(bytes.TrimSpace(env.Result), []byte("{")) {
		var msg struct {
			MessageID int `json:"message_id"`
		}
		if err := json.Unmarshal(env.Result, &msg); err == nil {
			resp.MessageID = msg.MessageID
		}
	}
	return resp, nil
}
