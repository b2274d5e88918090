package repository

import (
	"context"

	"golang-asset-analytics/internal/entity"

	"gorm.io/gorm"
)

// SentimentRepository stores generated sentiment rows.
type SentimentRepository interface {
	Create(ctx context.Context, sentiment *entity.Sentiment) error
}

// NewSentimentRepository creates a new GORM-based sentiment repository.
func NewSentimentRepository(db *gorm.DB) SentimentRepository {
	return &sentimentRepository{db: db}
}

type sentimentRepository struct {
	db *gorm.DB
}

// Create appends a sentiment row.
func (r *sentimentRepository) Create(ctx context.Context, sentiment *entity.Sentiment) error {
	return r.db.WithContext(ctx).Create(sentiment).Error
}
