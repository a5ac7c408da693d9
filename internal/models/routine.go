package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Routine kinds.
const (
	RoutineMorning = "morning"
	RoutineEvening = "evening"
)

// ValidRoutineKind reports whether kind names a supported routine.
func ValidRoutineKind(kind string) bool {
	return kind == RoutineMorning || kind == RoutineEvening
}

// RoutineStep is one ordered step of a user's morning or evening routine.
type RoutineStep struct {
	ID     bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID bson.ObjectID `bson:"user_id" json:"-"`
	Kind   string        `bson:"kind" json:"kind"`
	Text   string        `bson:"text" json:"text"`
	Emoji  string        `bson:"emoji" json:"emoji"`
	Order  int           `bson:"order" json:"order"`
}
