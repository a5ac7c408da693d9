package scheduler

import (
	"fmt"
	"strings"

	"habitloop-backend/internal/models"
)

// Message rendering for reminders and chat commands. The same renderers feed
// the dispatch engine and the bot's command replies.

// RoutineMessage renders the ordered steps of a morning or evening routine,
// or a generic nudge when the user has not configured any steps.
func RoutineMessage(kind string, steps []models.RoutineStep) string {
	var b strings.Builder
	if kind == models.RoutineMorning {
		b.WriteString("🌅 *Good morning!*\n\n")
	} else {
		b.WriteString("🌙 *Evening routine time*\n\n")
	}

	if len(steps) == 0 {
		b.WriteString("You haven't set up this routine yet — add steps from the web app.\n")
	} else {
		for i, s := range steps {
			fmt.Fprintf(&b, "%d. %s %s\n", i+1, s.Emoji, s.Text)
		}
	}

	if kind == models.RoutineMorning {
		b.WriteString("\nLet's get after it! 💪\n\nSend /habits to start checking things off.")
	} else {
		b.WriteString("\nSleep well 🌟")
	}
	return b.String()
}

// MiddayMessage is the static midday check-in prompt.
func MiddayMessage() string {
	return "☀️ *Midday check-in!*\n\n" +
		"How are today's habits going?\n" +
		"Send /habits to update your progress.\n" +
		"Send /summary to see where you stand."
}

// SummaryMessage renders one line per habit plus the encouragement tier
// picked from the completion counts.
func SummaryMessage(date string, habits []models.HabitStatus) string {
	if len(habits) == 0 {
		return "📊 *TODAY'S SUMMARY*\n\nNo habits configured yet — set them up from the web app."
	}

	completed := models.CompletedCount(habits)
	total := len(habits)

	var b strings.Builder
	fmt.Fprintf(&b, "📊 *TODAY'S SUMMARY* (%s)\n\n", date)
	for _, h := range habits {
		icon := "❌"
		if h.Completed {
			icon = "✅"
		}
		fmt.Fprintf(&b, "%s %s %s\n", icon, h.Emoji, h.Name)
	}

	percent := completed * 100 / total
	fmt.Fprintf(&b, "\n%s%s %d%%", strings.Repeat("█", percent/10), strings.Repeat("░", 10-percent/10), percent)
	fmt.Fprintf(&b, "\n\n%d/%d habits completed", completed, total)
	fmt.Fprintf(&b, "\n\n%s", EncouragementTier(completed, total).Message())
	return b.String()
}
