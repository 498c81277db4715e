package ports

import (
	"context"
	"time"
)

// DocumentSavedEvent announces that a user's document was replaced.
type DocumentSavedEvent struct {
	Username string    `json:"username"`
	Entries  int       `json:"entries"`
	SavedAt  time.Time `json:"saved_at"`
}

// ChangeNotifier publishes DocumentSavedEvent to interested parties.
type ChangeNotifier interface {
	DocumentSaved(ctx context.Context, event DocumentSavedEvent) error
}
