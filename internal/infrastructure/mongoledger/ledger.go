// Package mongoledger persists transaction records in MongoDB.
package mongoledger

import (
	"context"
	"fmt"
	"time"

	domledger "cartpay/internal/domain/ledger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	databaseName   = "payment"
	collectionName = "transactions"
)

// Ledger implements ledger.Ledger on a Mongo collection with a unique index
// on transaction_id, so the insert-once guarantee is enforced by the store
// itself rather than by application logic.
type Ledger struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Connect dials mongodb://addr and ensures the unique transaction index
// exists before the ledger accepts writes.
func Connect(ctx context.Context, addr string) (*Ledger, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI("mongodb://"+addr+"/"+databaseName))
	if err != nil {
		return nil, fmt.Errorf("mongoledger: connect %s: %w", addr, err)
	}

	coll := client.Database(databaseName).Collection(collectionName)
	_, err = coll.Indexes().CreateOne(connectCtx, mongo.IndexModel{
		Keys:    bson.D{{Key: "transaction_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongoledger: ensure index: %w", err)
	}

	return &Ledger{client: client, coll: coll}, nil
}

func (l *Ledger) Insert(ctx context.Context, rec domledger.TransactionRecord) error {
	_, err := l.coll.InsertOne(ctx, rec)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domledger.ErrDuplicateTransaction
		}
		return fmt.Errorf("mongoledger: insert %s: %w", rec.TransactionID, err)
	}
	return nil
}

// Close disconnects the underlying client.
func (l *Ledger) Close(ctx context.Context) error {
	return l.client.Disconnect(ctx)
}
