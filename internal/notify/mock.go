package notify

import (
	"context"
	"log"

	"habitloop-backend/internal/telegram"
)

// Mock logs messages instead of delivering them. Used when no bot token is
// configured, so the server stays fully operable in local development.
type Mock struct{}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Send(ctx context.Context, chatID int64, text string) error {
	log.Printf("📨 [MockNotifier] to %d: %s", chatID, text)
	return nil
}

func (m *Mock) SendKeyboard(ctx context.Context, chatID int64, text string, buttons [][]telegram.InlineButton) error {
	log.Printf("📨 [MockNotifier] to %d (%d button rows): %s", chatID, len(buttons), text)
	return nil
}

func (m *Mock) EditKeyboard(ctx context.Context, chatID int64, messageID int64, text string, buttons [][]telegram.InlineButton) error {
	log.Printf("📨 [MockNotifier] edit %d in %d (%d button rows): %s", messageID, chatID, len(buttons), text)
	return nil
}

func (m *Mock) AnswerCallback(ctx context.Context, callbackID string) error {
	log.Printf("📨 [MockNotifier] answer callback %s", callbackID)
	return nil
}
