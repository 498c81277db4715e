package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sharedcustody/custody-calendar/internal/core/domain"
)

// CredentialRepository stores credentials as JSON under user:<username>.
type CredentialRepository struct {
	client *redis.Client
}

func NewCredentialRepository(client *redis.Client) *CredentialRepository {
	return &CredentialRepository{client: client}
}

// redisCredential keeps the field names of records written by earlier
// deployments ({username, pin}).
type redisCredential struct {
	Username    string `json:"username"`
	Pin         string `json:"pin"`
	DisplayName string `json:"display_name,omitempty"`
	CreatedAt   int64  `json:"created_at,omitempty"`
}

func (r *CredentialRepository) Find(ctx context.Context, username string) (*domain.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	raw, err := r.client.Get(ctx, credentialKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find credential: %w: %w", domain.ErrTransport, err)
	}

	var rc redisCredential
	if err := json.Unmarshal(raw, &rc); err != nil {
		return nil, fmt.Errorf("decode credential %s: %w", username, err)
	}

	cred := &domain.Credential{
		Username:    username,
		DisplayName: rc.DisplayName,
		PinHash:     rc.Pin,
	}
	if cred.DisplayName == "" {
		cred.DisplayName = rc.Username
	}
	if rc.CreatedAt > 0 {
		cred.CreatedAt = time.Unix(rc.CreatedAt, 0).UTC()
	}
	return cred, nil
}

// Create writes the record only if the key is free (SETNX).
func (r *CredentialRepository) Create(ctx context.Context, cred *domain.Credential) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	raw, err := json.Marshal(redisCredential{
		Username:    cred.Username,
		Pin:         cred.PinHash,
		DisplayName: cred.DisplayName,
		CreatedAt:   cred.CreatedAt.Unix(),
	})
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}

	ok, err := r.client.SetNX(ctx, credentialKey(cred.Username), raw, 0).Result()
	if err != nil {
		return fmt.Errorf("create credential: %w: %w", domain.ErrTransport, err)
	}
	if !ok {
		return domain.ErrConflict
	}
	return nil
}
