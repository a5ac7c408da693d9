package email

import (
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"
)

// Sender delivers transactional emails through Resend. Without an API key it
// runs in dev mode and only logs what it would have sent.
type Sender struct {
	apiKey string
	from   string
}

func NewSender(apiKey, from string) *Sender {
	return &Sender{apiKey: apiKey, from: from}
}

// SendWelcome greets a newly registered user. Best-effort: callers fire it
// in a goroutine and registration never fails on email trouble.
func (s *Sender) SendWelcome(to, name string) error {
	if s.apiKey == "" {
		log.Printf("📧 [Dev Mode] Would send welcome email to %s", to)
		return nil
	}

	if name == "" {
		name = "there"
	}
	client := resend.NewClient(s.apiKey)
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: "Welcome to HabitLoop",
		Html: fmt.Sprintf(`
			<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">
				<h2 style="color: #333;">Hi %s! 👋</h2>
				<p>Your account is ready. Set up your habits, routines and reminder
				times from the app, then link the chat bot to get nudges at the
				moments you chose.</p>
				<p style="color: #888; font-size: 14px; margin-top: 16px;">
					You can change or silence reminders at any time.
				</p>
			</div>
		`, name),
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	log.Printf("📧 Welcome email sent to %s (ID: %s)", to, sent.Id)
	return nil
}
