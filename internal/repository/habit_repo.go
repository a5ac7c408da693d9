package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"habitloop-backend/internal/models"
	"habitloop-backend/internal/storage"
)

type HabitRepo struct {
	db          *mongo.Database
	definitions *mongo.Collection
	completions *mongo.Collection
}

func NewHabitRepo(db *mongo.Database) *HabitRepo {
	return &HabitRepo{
		db:          db,
		definitions: db.Collection("habit_definitions"),
		completions: db.Collection("habit_completions"),
	}
}

// SetDefinitions replaces the user's habit list in one transaction, so a
// failed save cannot strand the user with an empty list. Completion rows
// referencing removed definitions are deliberately kept for history.
func (r *HabitRepo) SetDefinitions(ctx context.Context, userID bson.ObjectID, defs []models.HabitDefinition) ([]models.HabitDefinition, error) {
	docs := make([]interface{}, 0, len(defs))
	stored := make([]models.HabitDefinition, 0, len(defs))
	for i, d := range defs {
		d.ID = bson.NewObjectID()
		d.UserID = userID
		d.Order = i
		d.Active = true
		docs = append(docs, d)
		stored = append(stored, d)
	}

	err := withTxn(ctx, r.db, func(ctx context.Context) error {
		if _, err := r.definitions.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
			return err
		}
		if len(docs) == 0 {
			return nil
		}
		_, err := r.definitions.InsertMany(ctx, docs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (r *HabitRepo) Definitions(ctx context.Context, userID bson.ObjectID) ([]models.HabitDefinition, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.definitions.Find(ctx, bson.M{"user_id": userID, "active": true}, opts)
	if err != nil {
		return nil, err
	}
	defs := []models.HabitDefinition{}
	if err := cursor.All(ctx, &defs); err != nil {
		return nil, err
	}
	return defs, nil
}

func (r *HabitRepo) ForDate(ctx context.Context, userID bson.ObjectID, date string) ([]models.HabitStatus, error) {
	defs, err := r.Definitions(ctx, userID)
	if err != nil {
		return nil, err
	}

	cursor, err := r.completions.Find(ctx, bson.M{"user_id": userID, "date": date})
	if err != nil {
		return nil, err
	}
	var rows []models.HabitCompletion
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	completed := make(map[bson.ObjectID]bool, len(rows))
	for _, row := range rows {
		completed[row.HabitID] = row.Completed
	}

	habits := make([]models.HabitStatus, 0, len(defs))
	for _, d := range defs {
		habits = append(habits, models.HabitStatus{
			ID:        d.ID,
			Name:      d.Name,
			Emoji:     d.Emoji,
			Order:     d.Order,
			Completed: completed[d.ID],
		})
	}
	return habits, nil
}

// Toggle inverts the completion state in a single FindOneAndUpdate so two
// concurrent toggles on the same key cannot lose an update. The pipeline
// $not on a missing field makes the upserted first row completed=true.
func (r *HabitRepo) Toggle(ctx context.Context, userID, habitID bson.ObjectID, date string) (bool, error) {
	count, err := r.definitions.CountDocuments(ctx, bson.M{"_id": habitID, "user_id": userID, "active": true})
	if err != nil {
		return false, err
	}
	if count == 0 {
		return false, storage.ErrNotFound
	}

	filter := bson.M{"user_id": userID, "habit_id": habitID, "date": date}
	update := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.M{"completed": bson.M{"$not": "$completed"}}}},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var row models.HabitCompletion
	if err := r.completions.FindOneAndUpdate(ctx, filter, update, opts).Decode(&row); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, storage.ErrNotFound
		}
		return false, err
	}
	return row.Completed, nil
}

// EnsureIndexes creates necessary indexes for both habit collections. The
// unique (user_id, habit_id, date) index carries the toggle invariant.
func (r *HabitRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.definitions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "order", Value: 1}},
	})
	if err != nil {
		return err
	}
	_, err = r.completions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "habit_id", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
