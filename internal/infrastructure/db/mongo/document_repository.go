package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sharedcustody/custody-calendar/internal/core/domain"
)

const documentCollection = "documents"

type DocumentRepository struct {
	col *mongo.Collection
}

func NewDocumentRepository(db *mongo.Database) *DocumentRepository {
	return &DocumentRepository{col: db.Collection(documentCollection)}
}

type mongoDocument struct {
	Username  string                     `bson:"_id"`
	Entries   map[string]domain.DayEntry `bson:"entries"`
	UpdatedAt time.Time                  `bson:"updated_at"`
}

// Load returns an empty document when the user has never saved one.
func (r *DocumentRepository) Load(ctx context.Context, username string) (domain.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var md mongoDocument
	err := r.col.FindOne(ctx, bson.M{"_id": username}).Decode(&md)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Document{}, nil
		}
		return nil, fmt.Errorf("find document: %w: %w", domain.ErrTransport, err)
	}

	doc := make(domain.Document, len(md.Entries))
	for k, e := range md.Entries {
		doc[domain.DateKey(k)] = e
	}
	return doc, nil
}

// Save upserts the whole document; there is no merge with the stored copy.
func (r *DocumentRepository) Save(ctx context.Context, username string, doc domain.Document) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	entries := make(map[string]domain.DayEntry, len(doc))
	for k, e := range doc {
		entries[string(k)] = e
	}

	_, err := r.col.ReplaceOne(ctx,
		bson.M{"_id": username},
		mongoDocument{Username: username, Entries: entries, UpdatedAt: time.Now().UTC()},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("replace document: %w: %w", domain.ErrTransport, err)
	}
	return nil
}
