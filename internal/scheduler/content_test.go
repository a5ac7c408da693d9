package scheduler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"habitloop-backend/internal/models"
)

func TestRoutineMessage(t *testing.T) {
	steps := []models.RoutineStep{
		{Text: "Drink water", Emoji: "💧"},
		{Text: "Stretch", Emoji: "🤸"},
	}

	morning := RoutineMessage(models.RoutineMorning, steps)
	assert.Contains(t, morning, "Good morning")
	assert.Contains(t, morning, "1. 💧 Drink water")
	assert.Contains(t, morning, "2. 🤸 Stretch")

	evening := RoutineMessage(models.RoutineEvening, steps)
	assert.Contains(t, evening, "Evening routine")
	assert.Contains(t, evening, "Sleep well")
}

func TestRoutineMessageNoSteps(t *testing.T) {
	msg := RoutineMessage(models.RoutineMorning, nil)
	assert.Contains(t, msg, "haven't set up this routine yet")
}

func TestSummaryMessage(t *testing.T) {
	habits := []models.HabitStatus{
		{Name: "Meditate", Emoji: "🧘", Completed: true},
		{Name: "Read", Emoji: "📚", Completed: true},
		{Name: "Run", Emoji: "🏃", Completed: false},
		{Name: "Journal", Emoji: "📓", Completed: false},
	}

	msg := SummaryMessage("2026-02-18", habits)
	assert.Contains(t, msg, "2026-02-18")
	assert.Contains(t, msg, "✅ 🧘 Meditate")
	assert.Contains(t, msg, "❌ 🏃 Run")
	assert.Contains(t, msg, "2/4 habits completed")
	assert.Contains(t, msg, "█████░░░░░ 50%")
	assert.Contains(t, msg, TierStarted.Message())
}

func TestSummaryMessagePerfectDay(t *testing.T) {
	habits := []models.HabitStatus{
		{Name: "Meditate", Emoji: "🧘", Completed: true},
	}

	msg := SummaryMessage("2026-02-18", habits)
	assert.Contains(t, msg, "1/1 habits completed")
	assert.Equal(t, 10, strings.Count(msg, "█"))
	assert.NotContains(t, msg, "░")
	assert.Contains(t, msg, TierPerfectDay.Message())
}

func TestSummaryMessageNoHabits(t *testing.T) {
	msg := SummaryMessage("2026-02-18", nil)
	assert.Contains(t, msg, "No habits configured yet")
}
