package scheduler

// Tier is the qualitative bucket for a day's completion counts.
type Tier int

const (
	TierNotStarted Tier = iota
	TierStarted
	TierGoodProgress
	TierPerfectDay
)

// EncouragementTier maps completion counts to a message tier. The good-progress
// cutoff is an absolute count of three, not a ratio.
func EncouragementTier(completed, total int) Tier {
	switch {
	case total > 0 && completed == total:
		return TierPerfectDay
	case completed >= 3:
		return TierGoodProgress
	case completed > 0:
		return TierStarted
	default:
		return TierNotStarted
	}
}

// Message returns the closing line for the tier.
func (t Tier) Message() string {
	switch t {
	case TierPerfectDay:
		return "🎉 ALL DONE! A perfect day!"
	case TierGoodProgress:
		return "💪 Great work! Keep it up."
	case TierStarted:
		return "🔥 You've started, don't stop now!"
	default:
		return "⏳ There's still time, let's go!"
	}
}
