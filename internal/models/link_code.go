package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// LinkCode is a single-use code that binds a chat identity to an account.
// The web app generates one, the user sends it to the bot via /start, and
// consuming it writes the chat id onto the user record.
type LinkCode struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    bson.ObjectID `bson:"user_id" json:"user_id"`
	Code      string        `bson:"code" json:"code"`
	ExpiresAt time.Time     `bson:"expires_at" json:"expires_at"`
	IsUsed    bool          `bson:"is_used" json:"is_used"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
}

func (c *LinkCode) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}
