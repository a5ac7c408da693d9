package notify

import "context"

// Notifier delivers a rendered message to a chat recipient. This abstraction
// allows swapping the mock with the real Telegram client without refactoring.
type Notifier interface {
	Send(ctx context.Context, chatID int64, text string) error
}
