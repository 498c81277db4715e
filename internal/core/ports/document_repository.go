package ports

import (
	"context"

	"github.com/sharedcustody/custody-calendar/internal/core/domain"
)

// DocumentRepository stores one custody document per canonical username.
type DocumentRepository interface {
	// Load returns an empty document when nothing was ever saved.
	Load(ctx context.Context, username string) (domain.Document, error)
	// Save replaces the stored document wholesale.
	Save(ctx context.Context, username string, doc domain.Document) error
}
