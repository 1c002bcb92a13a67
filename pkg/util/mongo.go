package util

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// transactionOptions are the majority read and write concerns used by MongoTransaction.
func transactionOptions() *options.TransactionOptions {
	return options.Transaction().
		SetReadConcern(readconcern.Majority()).
		SetWriteConcern(writeconcern.New(writeconcern.WMajority()))
}

// MongoTransaction runs fn once inside a majority transaction and aborts on any error.
// The deployment must be a replica set or sharded cluster.
func MongoTransaction(ctx context.Context, db *mongo.Database, fn func(ctx context.Context) error) error {
	return db.Client().UseSession(ctx, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(transactionOptions()); err != nil {
			return fmt.Errorf("start transaction: %w", err)
		}
		if err := fn(sc); err != nil {
			if abortErr := sc.AbortTransaction(sc); abortErr != nil {
				return fmt.Errorf("abort transaction: %v (cause: %w)", abortErr, err)
			}
			return fmt.Errorf("execute transaction: %w", err)
		}
		if err := sc.CommitTransaction(sc); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
		return nil
	})
}
