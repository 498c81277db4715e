package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sharedcustody/custody-calendar/internal/core/domain"
)

const credentialCollection = "credentials"

type CredentialRepository struct {
	coll *mongo.Collection
}

func NewCredentialRepository(db *mongo.Database) *CredentialRepository {
	return &CredentialRepository{coll: db.Collection(credentialCollection)}
}

// mongoCredential uses the canonical username as _id so inserts are unique.
type mongoCredential struct {
	Username    string `bson:"_id"`
	DisplayName string `bson:"display_name,omitempty"`
	PinHash     string `bson:"pin_hash"`
	CreatedAt   int64  `bson:"created_at"`
}

func (r *CredentialRepository) Create(ctx context.Context, cred *domain.Credential) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoCredential{
		Username:    cred.Username,
		DisplayName: cred.DisplayName,
		PinHash:     cred.PinHash,
		CreatedAt:   cred.CreatedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert credential: %w: %w", domain.ErrTransport, err)
	}
	return nil
}

func (r *CredentialRepository) Find(ctx context.Context, username string) (*domain.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoCredential
	if err := r.coll.FindOne(ctx, bson.M{"_id": username}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find credential: %w: %w", domain.ErrTransport, err)
	}

	return &domain.Credential{
		Username:    mc.Username,
		DisplayName: mc.DisplayName,
		PinHash:     mc.PinHash,
		CreatedAt:   unixToTime(mc.CreatedAt),
	}, nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
