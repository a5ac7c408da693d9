package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type User struct {
	ID                  bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Email               string        `bson:"email" json:"email"`
	PasswordHash        string        `bson:"password_hash" json:"-"`
	Name                string        `bson:"name" json:"name"`
	Timezone            string        `bson:"timezone" json:"timezone"`
	TelegramChatID      *int64        `bson:"telegram_chat_id,omitempty" json:"-"`
	OnboardingCompleted bool          `bson:"onboarding_completed" json:"onboarding_completed"`
	CreatedAt           time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time     `bson:"updated_at" json:"updated_at"`
}

// TelegramLinked reports whether a chat identity has been bound to the account.
func (u *User) TelegramLinked() bool {
	return u.TelegramChatID != nil
}
