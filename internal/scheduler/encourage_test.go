package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncouragementTier(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      Tier
	}{
		{"all done", 5, 5, TierPerfectDay},
		{"single habit done", 1, 1, TierPerfectDay},
		{"three of five", 3, 5, TierGoodProgress},
		{"four of ten", 4, 10, TierGoodProgress},
		{"one of five", 1, 5, TierStarted},
		{"two of ten", 2, 10, TierStarted},
		{"nothing done", 0, 5, TierNotStarted},
		{"no habits", 0, 0, TierNotStarted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EncouragementTier(tt.completed, tt.total))
		})
	}
}

func TestTierMessages(t *testing.T) {
	assert.Equal(t, "🎉 ALL DONE! A perfect day!", TierPerfectDay.Message())
	assert.Equal(t, "💪 Great work! Keep it up.", TierGoodProgress.Message())
	assert.Equal(t, "🔥 You've started, don't stop now!", TierStarted.Message())
	assert.Equal(t, "⏳ There's still time, let's go!", TierNotStarted.Message())
}
