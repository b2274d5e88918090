package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetStats holds recomputed technical indicators for one asset. One row per
// asset, overwritten on every recompute rather than historized.
type AssetStats struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	AssetID          uint             `gorm:"not null;uniqueIndex" json:"asset_id"`
	Asset            *Asset           `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE" json:"asset,omitempty"`
	Volatility       *float64         `json:"volatility,omitempty"`
	RSI              *float64         `json:"rsi,omitempty"`
	MovingAverage50  *decimal.Decimal `gorm:"type:numeric(20,8)" json:"moving_average_50,omitempty"`
	MovingAverage200 *decimal.Decimal `gorm:"type:numeric(20,8)" json:"moving_average_200,omitempty"`
	LastUpdated      time.Time        `gorm:"autoUpdateTime" json:"last_updated"`
}

// TableName specifies the table name for the AssetStats model.
func (AssetStats) TableName() string {
	return "asset_stats"
}
