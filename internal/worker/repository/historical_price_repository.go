package repository

import (
	"context"

	"golang-asset-analytics/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HistoricalPriceRepository stores and reads OHLCV rows.
type HistoricalPriceRepository interface {
	CreateIgnoreConflict(ctx context.Context, price *entity.HistoricalPrice) error
	FindRecentByAssetID(ctx context.Context, assetID uint, limit int) ([]entity.HistoricalPrice, error)
}

// NewHistoricalPriceRepository creates a new GORM-based price repository.
func NewHistoricalPriceRepository(db *gorm.DB) HistoricalPriceRepository {
	return &historicalPriceRepository{db: db}
}

type historicalPriceRepository struct {
	db *gorm.DB
}

// CreateIgnoreConflict inserts a price row, silently skipping rows that
// already exist for the same asset and date.
func (r *historicalPriceRepository) CreateIgnoreConflict(ctx context.Context, price *entity.HistoricalPrice) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "asset_id"}, {Name: "date"}},
		DoNothing: true,
	}).Create(price).Error
}

// FindRecentByAssetID retrieves the most recent price rows for an asset,
// newest first.
func (r *historicalPriceRepository) FindRecentByAssetID(ctx context.Context, assetID uint, limit int) ([]entity.HistoricalPrice, error) {
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
