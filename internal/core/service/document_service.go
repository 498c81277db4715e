package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sharedcustody/custody-calendar/internal/core/domain"
	"github.com/sharedcustody/custody-calendar/internal/core/ports"
)

// DocumentService serves the stored custody document of a user.
type DocumentService struct {
	repo     ports.DocumentRepository
	notifier ports.ChangeNotifier
	log      zerolog.Logger
	now      func() time.Time
}

// NewDocumentService returns a DocumentService. notifier may be nil.
func NewDocumentService(repo ports.DocumentRepository, notifier ports.ChangeNotifier, log zerolog.Logger) *DocumentService {
	return &DocumentService{repo: repo, notifier: notifier, log: log, now: time.Now}
}

// Load returns the stored document or an empty one.
func (s *DocumentService) Load(ctx context.Context, username string) (domain.Document, error) {
	canonical := domain.CanonicalUsername(username)
	if canonical == "" {
		return nil, domain.Invalid("Username is required.")
	}

	doc, err := s.repo.Load(ctx, canonical)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	if doc == nil {
		doc = domain.Document{}
	}
	return doc, nil
}

// Save normalises doc and replaces the stored document. The last writer wins.
func (s *DocumentService) Save(ctx context.Context, username string, doc domain.Document) error {
	canonical := domain.CanonicalUsername(username)
	if canonical == "" {
		return domain.Invalid("Username is required.")
	}

	clean, err := domain.Normalize(doc)
	if err != nil {
		return err
	}

	if err := s.repo.Save(ctx, canonical, clean); err != nil {
		return fmt.Errorf("save document: %w", err)
	}

	s.log.Info().Str("username", canonical).Int("entries", len(clean)).Msg("document saved")

	if s.notifier != nil {
		ev := ports.DocumentSavedEvent{Username: canonical, Entries: len(clean), SavedAt: s.now().UTC()}
		if err := s.notifier.DocumentSaved(ctx, ev); err != nil {
			s.log.Warn().Err(err).Str("username", canonical).Msg("document saved notification failed")
		}
	}
	return nil
}
