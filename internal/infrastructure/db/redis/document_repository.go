package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/sharedcustody/custody-calendar/internal/core/domain"
)

// DocumentRepository stores each document as one JSON value under data:<username>.
// Values written by the first deployment are upgraded to the A/B tags on load.
type DocumentRepository struct {
	client *redis.Client
}

func NewDocumentRepository(client *redis.Client) *DocumentRepository {
	return &DocumentRepository{client: client}
}

func (r *DocumentRepository) Load(ctx context.Context, username string) (domain.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	raw, err := r.client.Get(ctx, documentKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Document{}, nil
		}
		return nil, fmt.Errorf("load document: %w: %w", domain.ErrTransport, err)
	}

	doc := domain.Document{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", username, err)
	}
	doc, _ = domain.UpgradeLegacy(doc)
	return doc, nil
}

func (r *DocumentRepository) Save(ctx context.Context, username string, doc domain.Document) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := r.client.Set(ctx, documentKey(username), raw, 0).Err(); err != nil {
		return fmt.Errorf("save document: %w: %w", domain.ErrTransport, err)
	}
	return nil
}
