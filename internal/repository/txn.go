package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// withTxn runs fn inside a multi-document transaction so a replace-all save
// can never be observed half-applied. Standalone servers reject transactions
// (code 20, IllegalOperation); those fall back to running fn directly.
func withTxn(ctx context.Context, db *mongo.Database, fn func(ctx context.Context) error) error {
	session, err := db.Client().StartSession()
	if err != nil {
		return fn(ctx)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(ctx context.Context) (interface{}, error) {
		return nil, fn(ctx)
	})
	if err != nil && txnUnsupported(err) {
		return fn(ctx)
	}
	return err
}

func txnUnsupported(err error) bool {
	var srvErr mongo.ServerError
	return errors.As(err, &srvErr) && srvErr.HasErrorCode(20)
}
