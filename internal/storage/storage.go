// Package storage defines the store contracts the handlers and the reminder
// dispatcher are written against. The Mongo implementations live in
// internal/repository next to an in-memory implementation used by tests.
package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"habitloop-backend/internal/models"
)

var (
	// ErrNotFound signals an unknown user, habit, or link code.
	ErrNotFound = errors.New("not found")
	// ErrConflict signals a uniqueness violation, e.g. a duplicate email.
	ErrConflict = errors.New("conflict")
)

// UserStore persists accounts and their chat link state.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	ByEmail(ctx context.Context, email string) (*models.User, error)
	ByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	ByChatID(ctx context.Context, chatID int64) (*models.User, error)
	// WithChat returns every user with a linked chat identity; the dispatch
	// engine scans exactly this set each tick.
	WithChat(ctx context.Context) ([]models.User, error)
	LinkChat(ctx context.Context, id bson.ObjectID, chatID int64) error
	SetOnboarded(ctx context.Context, id bson.ObjectID) error
	UpdateProfile(ctx context.Context, id bson.ObjectID, name, timezone string) error
}

// HabitStore persists habit definitions and daily completion state.
type HabitStore interface {
	// SetDefinitions replaces the user's habit list with defs, assigning
	// order by position. Completion rows of removed habits are kept.
	SetDefinitions(ctx context.Context, userID bson.ObjectID, defs []models.HabitDefinition) ([]models.HabitDefinition, error)
	Definitions(ctx context.Context, userID bson.ObjectID) ([]models.HabitDefinition, error)
	// ForDate returns the user's active habits in stored order with their
	// completion state for date; no completion row means not completed.
	ForDate(ctx context.Context, userID bson.ObjectID, date string) ([]models.HabitStatus, error)
	// Toggle atomically inverts the completion state for (user, habit, date),
	// creating the row as completed when absent. Unknown or inactive habit
	// ids yield ErrNotFound. Returns the new state.
	Toggle(ctx context.Context, userID, habitID bson.ObjectID, date string) (bool, error)
}

// RoutineStore persists ordered routine steps per kind.
type RoutineStore interface {
	Set(ctx context.Context, userID bson.ObjectID, kind string, steps []models.RoutineStep) ([]models.RoutineStep, error)
	Steps(ctx context.Context, userID bson.ObjectID, kind string) ([]models.RoutineStep, error)
}

// ReminderStore persists per-user reminder times.
type ReminderStore interface {
	Set(ctx context.Context, userID bson.ObjectID, reminders []models.ReminderConfig) ([]models.ReminderConfig, error)
	Active(ctx context.Context, userID bson.ObjectID) ([]models.ReminderConfig, error)
}

// LinkCodeStore persists one-time chat link codes.
type LinkCodeStore interface {
	Create(ctx context.Context, code *models.LinkCode) error
	// Consume marks the code used and returns it. Unknown, expired, or
	// already-used codes yield ErrNotFound.
	Consume(ctx context.Context, code string) (*models.LinkCode, error)
}
