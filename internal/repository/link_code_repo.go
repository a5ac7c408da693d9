package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"habitloop-backend/internal/models"
	"habitloop-backend/internal/storage"
)

type LinkCodeRepo struct {
	collection *mongo.Collection
}

func NewLinkCodeRepo(db *mongo.Database) *LinkCodeRepo {
	return &LinkCodeRepo{
		collection: db.Collection("link_codes"),
	}
}

func (r *LinkCodeRepo) Create(ctx context.Context, code *models.LinkCode) error {
	code.CreatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, code)
	if err != nil {
		return err
	}
	code.ID = result.InsertedID.(bson.ObjectID)
	return nil
}

// Consume marks the code used in the same operation that reads it, so a code
// pasted into two chats can only ever bind one of them.
func (r *LinkCodeRepo) Consume(ctx context.Context, code string) (*models.LinkCode, error) {
	filter := bson.M{
		"code":       code,
		"is_used":    false,
		"expires_at": bson.M{"$gt": time.Now()},
	}
	update := bson.M{"$set": bson.M{"is_used": true}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var lc models.LinkCode
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&lc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &lc, nil
}

// EnsureIndexes creates necessary indexes for the link_codes collection.
func (r *LinkCodeRepo) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0), // TTL: Mongo reaps expired codes
		},
	}
	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
