package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"habitloop-backend/internal/models"
)

type RoutineRepo struct {
	db         *mongo.Database
	collection *mongo.Collection
}

func NewRoutineRepo(db *mongo.Database) *RoutineRepo {
	return &RoutineRepo{
		db:         db,
		collection: db.Collection("routine_steps"),
	}
}

// Set replaces the user's steps for one routine kind in one transaction;
// steps of the other kind are untouched.
func (r *RoutineRepo) Set(ctx context.Context, userID bson.ObjectID, kind string, steps []models.RoutineStep) ([]models.RoutineStep, error) {
	docs := make([]interface{}, 0, len(steps))
	stored := make([]models.RoutineStep, 0, len(steps))
	for i, s := range steps {
		s.ID = bson.NewObjectID()
		s.UserID = userID
		s.Kind = kind
		s.Order = i
		docs = append(docs, s)
		stored = append(stored, s)
	}

	err := withTxn(ctx, r.db, func(ctx context.Context) error {
		if _, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID, "kind": kind}); err != nil {
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

func (r *RoutineRepo) Steps(ctx context.Context, userID bson.ObjectID, kind string) ([]models.RoutineStep, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID, "kind": kind}, opts)
	if err != nil {
		return nil, err
	}
	steps := []models.RoutineStep{}
	if err := cursor.All(ctx, &steps); err != nil {
		return nil, err
	}
	return steps, nil
}

// EnsureIndexes creates necessary indexes for the routine_steps collection.
func (r *RoutineRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "kind", Value: 1}, {Key: "order", Value: 1}},
	})
	return err
}
