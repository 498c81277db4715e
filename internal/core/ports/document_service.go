package ports

import (
	"context"

	"github.com/sharedcustody/custody-calendar/internal/core/domain"
)

type DocumentService interface {
	Load(ctx context.Context, username string) (domain.Document, error)
	Save(ctx context.Context, username string, doc domain.Document) error
}

type ReportService interface {
	Build(doc domain.Document, req domain.ReportRequest) (domain.Report, error)
}
