package database

import (
	"context"
	"fmt"
	"time"

	"github.com/dkenzhe/netbuddy/internal/config"
	"github.com/dkenzhe/netbuddy/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDB establishes the MongoDB connection, verifies it with a ping
// and ensures the indexes the engine relies on.
func ConnectDB(cfg *config.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	db := client.Database(cfg.MongoDB)
	if err := ensureIndexes(ctx, db); err != nil {
		return nil, err
	}

	logger.Log.WithField("database", cfg.MongoDB).Info("Connected to MongoDB")
	return db, nil
}

// Disconnect closes the underlying client connection.
func Disconnect(db *mongo.Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Client().Disconnect(ctx); err != nil {
		logger.Log.WithError(err).Error("Failed to close MongoDB connection")
	}
}

// ensureIndexes creates the indexes the engine depends on. The partial
// unique index on buddy_requests enforces at most one pending request per
// ordered (requester, recipient) pair while leaving resolved rows free to
// coexist with a later re-request.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %v", err)
	}

	_, err = db.Collection("buddy_requests").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "requester_id", Value: 1}, {Key: "recipient_id", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"status": "pending"}),
	})
	if err != nil {
		return fmt.Errorf("failed to create buddy_requests index: %v", err)
	}

	_, err = db.Collection("buddy_groups").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "order", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create buddy_groups index: %v", err)
	}

	return nil
}

// TxRunner executes a function inside a multi-document transaction. The
// buddy service uses it so that resolving a request and updating both
// sides' buddy lists commit together or not at all.
type TxRunner struct {
	client *mongo.Client
}

// NewTxRunner wraps the database's client for transactional execution.
func NewTxRunner(db *mongo.Database) *TxRunner {
	return &TxRunner{client: db.Client()}
}

// WithTransaction runs fn inside a session-scoped transaction.
func (t *TxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %v", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
