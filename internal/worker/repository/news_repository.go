package repository

import (
	"context"

	"golang-asset-analytics/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewsRepository stores ingested articles.
type NewsRepository interface {
	CreateIgnoreConflict(ctx context.Context, news *entity.News) error
	FindExistingHashes(ctx context.Context, hashes []string) (map[string]bool, error)
	FindRecentByAssetID(ctx context.Context, assetID uint, limit int) ([]entity.News, error)
}

// NewNewsRepository creates a new GORM-based news repository.
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

type newsRepository struct {
	db *gorm.DB
}

// CreateIgnoreConflict inserts an article, silently skipping duplicates on the
// hash identifier.
func (r *newsRepository) CreateIgnoreConflict(ctx context.Context, news *entity.News) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "hash_identifier"}},
		DoNothing: true,
	}).Create(news).Error
}

// FindExistingHashes reports which of the given hash identifiers are already
// stored.
func (r *newsRepository) FindExistingHashes(ctx context.Context, hashes []string) (map[string]bool, error) {
	existing := make(map[string]bool)
	if len(hashes) == 0 {
		return existing, nil
	}

	var stored []entity.News
	if err := r.db.WithContext(ctx).
		Select("id", "hash_identifier").
		Where("hash_identifier IN ?", hashes).
		Find(&stored).Error; err != nil {
		return nil, err
	}

	for _, news := range stored {
		existing[news.HashIdentifier] = true
	}
	return existing, nil
}

// FindRecentByAssetID retrieves the latest articles linked to an asset.
func (r *newsRepository) FindRecentByAssetID(ctx context.Context, assetID uint, limit int) ([]entity.News, error) {
	var news []entity.News
	if err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("published_at DESC").
		Limit(limit).
		Find(&news).Error; err != nil {
		return nil, err
	}
	return news, nil
}
