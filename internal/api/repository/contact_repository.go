package repository

import (
	"context"

	"golang-asset-analytics/internal/entity"

	"gorm.io/gorm"
)

// ContactRepository persists contact form submissions.
type ContactRepository interface {
	Create(ctx context.Context, message *entity.ContactMessage) error
}

// NewContactRepository creates a new GORM-based contact repository.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

type contactRepository struct {
	db *gorm.DB
}

func (r *contactRepository) Create(ctx context.Context, message *entity.ContactMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}
