package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// HabitDefinition is one habit a user tracks. Deactivation (Active=false)
// soft-deletes the habit while keeping its historical completion rows.
type HabitDefinition struct {
	ID     bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID bson.ObjectID `bson:"user_id" json:"-"`
	Name   string        `bson:"name" json:"name"`
	Emoji  string        `bson:"emoji" json:"emoji"`
	Order  int           `bson:"order" json:"order"`
	Active bool          `bson:"active" json:"active"`
}

// HabitCompletion is the per-day state of one habit. At most one row exists
// per (user, habit, date); the unique index on those fields is what makes
// toggling safe under concurrent requests.
type HabitCompletion struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    bson.ObjectID `bson:"user_id" json:"-"`
	HabitID   bson.ObjectID `bson:"habit_id" json:"habit_id"`
	Date      string        `bson:"date" json:"date"` // YYYY-MM-DD
	Completed bool          `bson:"completed" json:"completed"`
}

// HabitStatus is a habit definition joined with its completion state for a
// single date. A habit with no completion row reports Completed=false.
type HabitStatus struct {
	ID        bson.ObjectID `json:"id"`
	Name      string        `json:"name"`
	Emoji     string        `json:"emoji"`
	Order     int           `json:"order"`
	Completed bool          `json:"completed"`
}

// CompletedCount counts the checked-off entries in a day's habit list.
func CompletedCount(habits []HabitStatus) int {
	n := 0
	for _, h := range habits {
		if h.Completed {
			n++
		}
	}
	return n
}
