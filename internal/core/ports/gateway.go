package ports

import (
	"context"

	"github.com/sharedcustody/custody-calendar/internal/core/domain"
)

// AuthGateway is the client-side view of the credential service.
type AuthGateway interface {
	Register(ctx context.Context, username, pin string) (AuthResult, error)
	Login(ctx context.Context, username, pin string) (AuthResult, error)
}

// DocumentGateway is the client-side view of document persistence.
type DocumentGateway interface {
	Load(ctx context.Context, username string) (domain.Document, error)
	Save(ctx context.Context, username string, doc domain.Document) error
}

// SaveJob is one debounced save handed off for asynchronous delivery.
type SaveJob struct {
	Username string
	Document domain.Document
}

// SaveQueue accepts save jobs. Jobs for the same username are delivered in order.
type SaveQueue interface {
	Enqueue(job SaveJob)
}
