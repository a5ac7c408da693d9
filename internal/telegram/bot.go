// Package telegram is a minimal client for the handful of Bot API methods
// this service needs. Messages use Markdown parse mode.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Bot struct {
	Token  string
	Client *http.Client
}

func NewBot(token string) *Bot {
	return &Bot{
		Token:  token,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// InlineButton is one button of an inline keyboard. CallbackData is echoed
// back in the callback query when the user taps it.
type InlineButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

func (b *Bot) apiURL(method string) string {
	return fmt.Sprintf("https://api.telegram.org/bot%s/%s", b.Token, method)
}

func (b *Bot) call(ctx context.Context, method string, payload map[string]any) error {
	buf, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.apiURL(method), bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("telegram %s: %s", method, resp.Status)
	}
	return nil
}

// Send delivers a plain message. Satisfies notify.Notifier.
func (b *Bot) Send(ctx context.Context, chatID int64, text string) error {
	return b.call(ctx, "sendMessage", map[string]any{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "Markdown",
	})
}

// SendKeyboard delivers a message with an inline keyboard below it.
func (b *Bot) SendKeyboard(ctx context.Context, chatID int64, text string, buttons [][]InlineButton) error {
	return b.call(ctx, "sendMessage", map[string]any{
		"chat_id":      chatID,
		"text":         text,
		"parse_mode":   "Markdown",
		"reply_markup": map[string]any{"inline_keyboard": buttons},
	})
}

// EditKeyboard rewrites an existing message and its keyboard in place, which
// keeps the chat clean when the user toggles habits repeatedly.
func (b *Bot) EditKeyboard(ctx context.Context, chatID int64, messageID int64, text string, buttons [][]InlineButton) error {
	return b.call(ctx, "editMessageText", map[string]any{
		"chat_id":      chatID,
		"message_id":   messageID,
		"text":         text,
		"parse_mode":   "Markdown",
		"reply_markup": map[string]any{"inline_keyboard": buttons},
	})
}

// AnswerCallback acknowledges a callback query so the client stops showing
// its loading state.
func (b *Bot) AnswerCallback(ctx context.Context, callbackID string) error {
	return b.call(ctx, "answerCallbackQuery", map[string]any{
		"callback_query_id": callbackID,
	})
}

// Update is the subset of the Bot API update payload the webhook consumes.
type Update struct {
	Message       *Message       `json:"message"`
	CallbackQuery *CallbackQuery `json:"callback_query"`
}

type Message struct {
	MessageID int64  `json:"message_id"`
	Text      string `json:"text"`
	Chat      Chat   `json:"chat"`
	From      *From  `json:"from"`
}

type Chat struct {
	ID int64 `json:"id"`
}

type From struct {
	FirstName string `json:"first_name"`
}

type CallbackQuery struct {
	ID      string   `json:"id"`
	Data    string   `json:"data"`
	Message *Message `json:"message"`
}
