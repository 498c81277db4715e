package sqldb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sharedcustody/custody-calendar/internal/core/domain"
)

type CredentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

func (r *CredentialRepository) Find(ctx context.Context, username string) (*domain.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rec credentialRecord
	if err := r.db.WithContext(ctx).Where("username = ?", username).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find credential: %w: %w", domain.ErrTransport, err)
	}

	return &domain.Credential{
		Username:    rec.Username,
		DisplayName: rec.DisplayName,
		PinHash:     rec.PinHash,
		CreatedAt:   rec.CreatedAt.UTC(),
	}, nil
}

// Create inserts with ON CONFLICT DO NOTHING; zero affected rows means the
// username is taken.
func (r *CredentialRepository) Create(ctx context.Context, cred *domain.Credential) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rec := credentialRecord{
		Username:    cred.Username,
		DisplayName: cred.DisplayName,
		PinHash:     cred.PinHash,
		CreatedAt:   cred.CreatedAt,
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rec)
	if res.Error != nil {
		return fmt.Errorf("insert credential: %w: %w", domain.ErrTransport, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrConflict
	}
	return nil
}
