package ports

import (
	"context"

	"github.com/sharedcustody/custody-calendar/internal/core/domain"
)

// CredentialRepository persists login records keyed by canonical username.
type CredentialRepository interface {
	// Find returns domain.ErrNotFound when no record exists.
	Find(ctx context.Context, username string) (*domain.Credential, error)
	// Create must fail with domain.ErrConflict when the username is taken.
	Create(ctx context.Context, cred *domain.Credential) error
}
