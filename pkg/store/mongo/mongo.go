// Package mongo implements a settings backend on MongoDB. Each user is one
// document in the settings collection, keyed by user ID, with the settings
// stored as an embedded document.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/forgeboard/pkg/store"
)

// Defaults for [Config].
const (
	DefaultDatabase   = "forgeboard"
	DefaultCollection = "dashboard_settings"
)

// Config holds connection settings.
type Config struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// Backend stores documents in a MongoDB collection.
type Backend struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type record struct {
	ID        string    `bson:"_id"`
	Settings  bson.Raw  `bson:"settings"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// New connects to MongoDB and pings the primary.
func New(ctx context.Context, cfg Config) (*Backend, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongo backend: empty URI")
	}
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetTimeout(cfg.Timeout))
	if err != nil {
		return nil, fmt.Errorf("mongo backend: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo backend: ping: %w", err)
	}
	return &Backend{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Load reads the user's document and converts it back to JSON.
func (b *Backend) Load(ctx context.Context, user string) ([]byte, bool, error) {
	var rec record
	err := b.coll.FindOne(ctx, bson.D{{Key: "_id", Value: user}}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, classify(fmt.Errorf("find settings: %w", err))
	}
	if len(rec.Settings) == 0 {
		return nil, true, nil
	}
	data, err := bson.MarshalExtJSON(rec.Settings, false, false)
	if err != nil {
		return nil, false, fmt.Errorf("decode settings: %w", err)
	}
	return data, true, nil
}

// Save upserts the user's document.
func (b *Backend) Save(ctx context.Context, user string, data []byte) error {
	var settings bson.Raw
	if err := bson.UnmarshalExtJSON(data, false, &settings); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	rec := record{ID: user, Settings: settings, UpdatedAt: time.Now().UTC()}
	_, err := b.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: user}}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return classify(fmt.Errorf("replace settings: %w", err))
	}
	return nil
}

// Close disconnects the client.
func (b *Backend) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return b.client.Disconnect(ctx)
}

func classify(err error) error {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return store.Retryable(err)
	}
	return err
}

var _ store.Backend = (*Backend)(nil)
