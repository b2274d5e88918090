package repository

import (
	"context"

	"golang-asset-analytics/internal/entity"

	"gorm.io/gorm"
)

// AssetRepository provides read access to the asset catalog for the worker
// strategies.
type AssetRepository interface {
	FindAll(ctx context.Context) ([]entity.Asset, error)
	FindByType(ctx context.Context, assetType entity.AssetType) ([]entity.Asset, error)
	FindByTicker(ctx context.Context, ticker string) (*entity.Asset, error)
}

// NewAssetRepository creates a new GORM-based asset repository.
func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepository{db: db}
}

type assetRepository struct {
	db *gorm.DB
}

// FindAll retrieves every asset ordered by ticker.
func (r *assetRepository) FindAll(ctx context.Context) ([]entity.Asset, error) {
	var assets []entity.Asset
	if err := r.db.WithContext(ctx).Order("ticker ASC").Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// FindByType retrieves every asset of one type ordered by ticker.
func (r *assetRepository) FindByType(ctx context.Context, assetType entity.AssetType) ([]entity.Asset, error) {
	var assets []entity.Asset
	if err := r.db.WithContext(ctx).Where("asset_type = ?", assetType).Order("ticker ASC").Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// FindByTicker retrieves a single asset by its ticker.
func (r *assetRepository) FindByTicker(ctx context.Context, ticker string) (*entity.Asset, error) {
	var asset entity.Asset
	if err := r.db.WithContext(ctx).Where("ticker = ?", ticker).First(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}
