package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sharedcustody/custody-calendar/internal/core/domain"
	"github.com/sharedcustody/custody-calendar/internal/core/ports"
)

// DefaultDebounce is the quiet period after the last edit before a save goes out.
const DefaultDebounce = time.Second

// DocumentStore keeps the active user's document in memory and persists it
// through a debounced save. Every mutation replaces the pending save, so a
// burst of edits produces one save carrying the final state.
type DocumentStore struct {
	session *Session
	gateway ports.DocumentGateway
	queue   ports.SaveQueue
	window  time.Duration
	log     zerolog.Logger

	mu      sync.Mutex
	owner   string
	doc     domain.Document
	timer   *time.Timer
	gen     uint64
	pending *ports.SaveJob
}

// NewDocumentStore returns a store bound to session. A non-positive window
// falls back to DefaultDebounce.
func NewDocumentStore(session *Session, gateway ports.DocumentGateway, queue ports.SaveQueue, window time.Duration, log zerolog.Logger) *DocumentStore {
	if window <= 0 {
		window = DefaultDebounce
	}
	return &DocumentStore{
		session: session,
		gateway: gateway,
		queue:   queue,
		window:  window,
		log:     log,
		doc:     domain.Document{},
	}
}

// Activate loads the document of the session user. On failure the store
// stays inactive so an empty document is never saved over stored data.
func (s *DocumentStore) Activate(ctx context.Context) error {
	username, ok := s.session.Username()
	if !ok {
		return domain.ErrNoSession
	}

	doc, err := s.gateway.Load(ctx, username)
	if err != nil {
		return fmt.Errorf("activate %s: %w", username, err)
	}
	if doc == nil {
		doc = domain.Document{}
	}

	s.mu.Lock()
	s.owner = username
	s.doc = doc
	s.mu.Unlock()

	s.log.Debug().Str("username", username).Int("entries", len(doc)).Msg("document loaded")
	return nil
}

// Deactivate flushes any pending save and forgets the in-memory document.
func (s *DocumentStore) Deactivate() {
	s.Flush()
	s.mu.Lock()
	s.owner = ""
	s.doc = domain.Document{}
	s.mu.Unlock()
}

// Document returns a copy of the in-memory document.
func (s *DocumentStore) Document() domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Active reports whether a document is loaded for the current session user.
func (s *DocumentStore) Active() bool {
	username, ok := s.session.Username()
	s.mu.Lock()
	defer s.mu.Unlock()
	return ok && s.owner == username
}

// CycleCustodian advances the custodian at key. Without an active session the
// call is a no-op and returns the unchanged document.
func (s *DocumentStore) CycleCustodian(key domain.DateKey) domain.Document {
	return s.mutate(func(d domain.Document) domain.Document {
		return domain.CycleCustodian(d, key)
	})
}

// SetNotes replaces the notes at key. Without an active session the call is a
// no-op and returns the unchanged document.
func (s *DocumentStore) SetNotes(key domain.DateKey, text string) domain.Document {
	return s.mutate(func(d domain.Document) domain.Document {
		return domain.SetNotes(d, key, text)
	})
}

func (s *DocumentStore) mutate(op func(domain.Document) domain.Document) domain.Document {
	username, ok := s.session.Username()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !ok || s.owner != username {
		return s.doc.Clone()
	}

	s.doc = op(s.doc)
	s.schedule(ports.SaveJob{Username: username, Document: s.doc.Clone()})
	return s.doc.Clone()
}

// schedule must be called with s.mu held.
func (s *DocumentStore) schedule(job ports.SaveJob) {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	gen := s.gen
	s.pending = &job
	s.timer = time.AfterFunc(s.window, func() { s.fire(gen) })
}

// fire hands the pending job to the queue if gen is still the latest schedule.
// The queue is fed under s.mu so a later Flush cannot overtake this job.
func (s *DocumentStore) fire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen || s.pending == nil {
		return
	}
	job := *s.pending
	s.pending = nil
	s.timer = nil

	s.log.Debug().Str("username", job.Username).Int("entries", len(job.Document)).Msg("debounced save")
	s.queue.Enqueue(job)
}

// Flush sends a pending save immediately instead of waiting for the window.
func (s *DocumentStore) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
	if s.pending == nil {
		return
	}
	job := *s.pending
	s.pending = nil
	s.queue.Enqueue(job)
}
