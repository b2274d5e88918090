package repository

import (
	"context"

	"golang-asset-analytics/internal/entity"

	"gorm.io/gorm"
)

// NewsRepository is the read-side access to ingested articles and sentiment.
type NewsRepository interface {
	FindLatest(ctx context.Context, limit int) ([]entity.News, error)
	FindLatestByAssetID(ctx context.Context, assetID uint, limit int) ([]entity.News, error)
	FindLatestByAssetType(ctx context.Context, assetType entity.AssetType, limit int) ([]entity.News, error)
	FindLatestSentiments(ctx context.Context, limit int) ([]entity.Sentiment, error)
	FindSentimentsByAssetID(ctx context.Context, assetID uint, limit int) ([]entity.Sentiment, error)
}

// NewNewsRepository creates a new GORM-based news repository.
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

type newsRepository struct {
	db *gorm.DB
}

// FindLatest retrieves the newest articles with assets preloaded.
func (r *newsRepository) FindLatest(ctx context.Context, limit int) ([]entity.News, error) {
	var news []entity.News
	if err := r.db.WithContext(ctx).
		Preload("Asset").
		Order("published_at DESC").
		Limit(limit).
		Find(&news).Error; err != nil {
		return nil, err
	}
	return news, nil
}

// FindLatestByAssetID retrieves the newest articles linked to one asset.
func (r *newsRepository) FindLatestByAssetID(ctx context.Context, assetID uint, limit int) ([]entity.News, error) {
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

// FindLatestByAssetType retrieves the newest articles linked to assets of one
// type.
func (r *newsRepository) FindLatestByAssetType(ctx context.Context, assetType entity.AssetType, limit int) ([]entity.News, error) {
	var news []entity.News
	if err := r.db.WithContext(ctx).
		Preload("Asset").
		Joins("JOIN assets ON assets.id = news.asset_id").
		Where("assets.asset_type = ?", assetType).
		Order("news.published_at DESC").
		Limit(limit).
		Find(&news).Error; err != nil {
		return nil, err
	}
	return news, nil
}

// FindLatestSentiments retrieves the newest sentiment rows with assets
// preloaded.
func (r *newsRepository) FindLatestSentiments(ctx context.Context, limit int) ([]entity.Sentiment, error) {
	var sentiments []entity.Sentiment
	if err := r.db.WithContext(ctx).
		Preload("Asset").
		Order("analysis_date DESC").
		Limit(limit).
		Find(&sentiments).Error; err != nil {
		return nil, err
	}
	return sentiments, nil
}

// FindSentimentsByAssetID retrieves the newest sentiment rows for one asset.
func (r *newsRepository) FindSentimentsByAssetID(ctx context.Context, assetID uint, limit int) ([]entity.Sentiment, error) {
	var sentiments []entity.Sentiment
	if err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("analysis_date DESC").
		Limit(limit).
		Find(&sentiments).Error; err != nil {
		return nil, err
	}
	return sentiments, nil
}
