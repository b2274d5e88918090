package repository

import (
	"context"

	"golang-asset-analytics/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssetStatsRepository overwrites the per-asset indicator row.
type AssetStatsRepository interface {
	Upsert(ctx context.Context, stats *entity.AssetStats) error
}

// NewAssetStatsRepository creates a new GORM-based stats repository.
func NewAssetStatsRepository(db *gorm.DB) AssetStatsRepository {
	return &assetStatsRepository{db: db}
}

type assetStatsRepository struct {
	db *gorm.DB
}

// Upsert inserts the stats row for an asset, or overwrites the existing one.
func (r *assetStatsRepository) Upsert(ctx context.Context, stats *entity.AssetStats) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "asset_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"volatility", "rsi", "moving_average_50", "moving_average_200", "last_updated"}),
	}).Create(stats).Error
}
