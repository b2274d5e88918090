package repository

import (
	"context"

	"golang-asset-analytics/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PricePredictionRepository upserts generated predictions.
type PricePredictionRepository interface {
	Upsert(ctx context.Context, prediction *entity.PricePrediction) error
}

// NewPricePredictionRepository creates a new GORM-based prediction repository.
func NewPricePredictionRepository(db *gorm.DB) PricePredictionRepository {
	return &pricePredictionRepository{db: db}
}

type pricePredictionRepository struct {
	db *gorm.DB
}

// Upsert inserts a prediction, or refreshes the existing row for the same
// asset, horizon and prediction date so regeneration stays idempotent.
func (r *pricePredictionRepository) Upsert(ctx context.Context, prediction *entity.PricePrediction) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "asset_id"}, {Name: "prediction_date"}, {Name: "horizon"}},
		DoUpdates: clause.AssignmentColumns([]string{"predicted_price", "confidence", "model_version"}),
	}).Create(prediction).Error
}
