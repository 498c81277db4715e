package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sharedcustody/custody-calendar/internal/core/domain"
)

const (
	defaultTimeout = 10 * time.Second
	defaultAppName = "custody-calendar"
)

type Config struct {
	URI         string
	Database    string
	AppName     string
	MaxPoolSize uint64
	// Timeout bounds server selection, the initial ping and index setup.
	Timeout time.Duration
}

// Connect opens a client, pings the primary and makes sure the custody
// collections carry their indexes before any repository uses them.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	appName := cfg.AppName
	if appName == "" {
		appName = defaultAppName
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(timeout)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	setupCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(setupCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w: %w", domain.ErrTransport, err)
	}
	if err := client.Ping(setupCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w: %w", domain.ErrTransport, err)
	}

	db := client.Database(cfg.Database)
	if err := ensureIndexes(setupCtx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	return client, db, nil
}

// ensureIndexes is idempotent. Lookups by username go through _id.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string]mongo.IndexModel{
		documentCollection: {
			Keys:    bson.D{{Key: "updated_at", Value: -1}},
			Options: options.Index().SetName("updated_at_desc"),
		},
		credentialCollection: {
			Keys:    bson.D{{Key: "created_at", Value: 1}},
			Options: options.Index().SetName("created_at_asc"),
		},
	}
	for coll, model := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("mongo index %s: %w: %w", coll, domain.ErrTransport, err)
		}
	}
	return nil
}
