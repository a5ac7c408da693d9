package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Reminder kinds. Each kind selects the notification content rendered when
// the configured time matches the clock.
const (
	ReminderMorning = "morning"
	ReminderMidday  = "midday"
	ReminderEvening = "evening"
	ReminderSummary = "summary"
)

// ValidReminderKind reports whether kind names a supported reminder.
func ValidReminderKind(kind string) bool {
	switch kind {
	case ReminderMorning, ReminderMidday, ReminderEvening, ReminderSummary:
		return true
	}
	return false
}

// ValidReminderTime reports whether t is a well-formed HH:MM wall-clock time.
func ValidReminderTime(t string) bool {
	_, err := time.Parse("15:04", t)
	return err == nil
}

// ReminderConfig maps a reminder kind to the time of day it fires for one
// user. Time is a zero-padded HH:MM string compared by equality against the
// formatted clock, so minute granularity is the contract.
type ReminderConfig struct {
	ID     bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID bson.ObjectID `bson:"user_id" json:"-"`
	Kind   string        `bson:"kind" json:"kind"`
	Time   string        `bson:"time" json:"time"`
	Active bool          `bson:"active" json:"active"`
}
