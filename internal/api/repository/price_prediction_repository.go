package repository

import (
	"context"

	"golang-asset-analytics/internal/entity"

	"gorm.io/gorm"
)

// PricePredictionRepository is the read-side access to generated predictions.
type PricePredictionRepository interface {
	FindByID(ctx context.Context, id uint) (*entity.PricePrediction, error)
	FindLatestByAssetID(ctx context.Context, assetID uint) ([]entity.PricePrediction, error)
	FindLatest(ctx context.Context, limit int) ([]entity.PricePrediction, error)
	FindLatestByAssetIDs(ctx context.Context, assetIDs []uint) ([]entity.PricePrediction, error)
}

// NewPricePredictionRepository creates a new GORM-based prediction repository.
func NewPricePredictionRepository(db *gorm.DB) PricePredictionRepository {
	return &pricePredictionRepository{db: db}
}

type pricePredictionRepository struct {
	db *gorm.DB
}

// FindByID retrieves one prediction with its asset preloaded.
func (r *pricePredictionRepository) FindByID(ctx context.Context, id uint) (*entity.PricePrediction, error) {
	var prediction entity.PricePrediction
	if err := r.db.WithContext(ctx).Preload("Asset").First(&prediction, id).Error; err != nil {
		return nil, err
	}
	return &prediction, nil
}

// FindLatestByAssetID retrieves the most recent prediction per horizon for one
// asset.
func (r *pricePredictionRepository) FindLatestByAssetID(ctx context.Context, assetID uint) ([]entity.PricePrediction, error) {
	var predictions []entity.PricePrediction
	err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Where(`id IN (
			SELECT DISTINCT ON (horizon) id FROM price_predictions
			WHERE asset_id = ? ORDER BY horizon, created_at DESC
		)`, assetID).
		Order("prediction_date ASC").
		Find(&predictions).Error
	if err != nil {
		return nil, err
	}
	return predictions, nil
}

// FindLatest retrieves the newest predictions across the catalog with assets
// preloaded.
func (r *pricePredictionRepository) FindLatest(ctx context.Context, limit int) ([]entity.PricePrediction, error) {
	var predictions []entity.PricePrediction
	if err := r.db.WithContext(ctx).
		Preload("Asset").
		Order("created_at DESC").
		Limit(limit).
		Find(&predictions).Error; err != nil {
		return nil, err
	}
	return predictions, nil
}

// FindLatestByAssetIDs retrieves the newest prediction per asset and horizon
// for the given set of assets.
func (r *pricePredictionRepository) FindLatestByAssetIDs(ctx context.Context, assetIDs []uint) ([]entity.PricePrediction, error) {
	var predictions []entity.PricePrediction
	if len(assetIDs) == 0 {
		return predictions, nil
	}
	err := r.db.WithContext(ctx).
		Preload("Asset").
		Where(`id IN (
			SELECT DISTINCT ON (asset_id, horizon) id FROM price_predictions
			WHERE asset_id IN ? ORDER BY asset_id, horizon, created_at DESC
		)`, assetIDs).
		Order("asset_id ASC, prediction_date ASC").
		Find(&predictions).Error
	if err != nil {
		return nil, err
	}
	return predictions, nil
}
