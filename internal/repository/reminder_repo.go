package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"habitloop-backend/internal/models"
)

type ReminderRepo struct {
	db         *mongo.Database
	collection *mongo.Collection
}

func NewReminderRepo(db *mongo.Database) *ReminderRepo {
	return &ReminderRepo{
		db:         db,
		collection: db.Collection("reminder_configs"),
	}
}

// Set replaces the user's entire reminder configuration in one transaction.
func (r *ReminderRepo) Set(ctx context.Context, userID bson.ObjectID, reminders []models.ReminderConfig) ([]models.ReminderConfig, error) {
	docs := make([]interface{}, 0, len(reminders))
	stored := make([]models.ReminderConfig, 0, len(reminders))
	for _, rem := range reminders {
		rem.ID = bson.NewObjectID()
		rem.UserID = userID
		rem.Active = true
		docs = append(docs, rem)
		stored = append(stored, rem)
	}

	err := withTxn(ctx, r.db, func(ctx context.Context) error {
		if _, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
			return err
		}
		if len(docs) == 0 {
			return nil
		}
		_, err := r.collection.InsertMany(ctx, docs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (r *ReminderRepo) Active(ctx context.Context, userID bson.ObjectID) ([]models.ReminderConfig, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID, "active": true})
	if err != nil {
		return nil, err
	}
	reminders := []models.ReminderConfig{}
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

// EnsureIndexes creates necessary indexes for the reminder_configs collection.
func (r *ReminderRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "active", Value: 1}},
	})
	return err
}
