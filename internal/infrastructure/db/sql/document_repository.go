package sqldb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sharedcustody/custody-calendar/internal/core/domain"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Load(ctx context.Context, username string) (domain.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rec documentRecord
	if err := r.db.WithContext(ctx).Where("username = ?", username).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Document{}, nil
		}
		return nil, fmt.Errorf("find document: %w: %w", domain.ErrTransport, err)
	}

	doc := domain.Document{}
	if len(rec.Entries) > 0 {
		if err := json.Unmarshal(rec.Entries, &doc); err != nil {
			return nil, fmt.Errorf("decode document %s: %w", username, err)
		}
	}
	return doc, nil
}

// Save upserts the row for username, replacing the stored entries.
func (r *DocumentRepository) Save(ctx context.Context, username string, doc domain.Document) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if doc == nil {
		doc = domain.Document{}
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	rec := documentRecord{Username: username, Entries: datatypes.JSON(raw), UpdatedAt: time.Now().UTC()}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"entries", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("upsert document: %w: %w", domain.ErrTransport, err)
	}
	return nil
}
