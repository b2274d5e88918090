package repository

import (
	"context"

	"golang-asset-analytics/internal/entity"

	"gorm.io/gorm"
)

// AssetRepository is the read-side access to the asset catalog and its
// derived rows.
type AssetRepository interface {
	FindAll(ctx context.Context) ([]entity.Asset, error)
	FindByType(ctx context.Context, assetType entity.AssetType) ([]entity.Asset, error)
	FindByTicker(ctx context.Context, ticker string) (*entity.Asset, error)
	FindByIDs(ctx context.Context, ids []uint) ([]entity.Asset, error)
	FindRecentPrices(ctx context.Context, assetID uint, limit int) ([]entity.HistoricalPrice, error)
	FindStats(ctx context.Context, assetID uint) (*entity.AssetStats, error)
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

// FindByIDs retrieves assets by primary key.
func (r *assetRepository) FindByIDs(ctx context.Context, ids []uint) ([]entity.Asset, error) {
	var assets []entity.Asset
	if len(ids) == 0 {
		return assets, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("ticker ASC").Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// FindRecentPrices retrieves the most recent price rows for an asset, newest
// first.
func (r *assetRepository) FindRecentPrices(ctx context.Context, assetID uint, limit int) ([]entity.HistoricalPrice, error) {
	var prices []entity.HistoricalPrice
	if err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("date DESC").
		Limit(limit).
		Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}

// FindStats retrieves the indicator row for an asset, or nil when none has
// been computed yet.
func (r *assetRepository) FindStats(ctx context.Context, assetID uint) (*entity.AssetStats, error) {
	var stats entity.AssetStats
	err := r.db.WithContext(ctx).Where("asset_id = ?", assetID).First(&stats).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
