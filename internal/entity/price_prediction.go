package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Horizon is the prediction look-ahead window.
type Horizon string

const (
	Horizon1D  Horizon = "1D"
	Horizon7D  Horizon = "7D"
	Horizon30D Horizon = "30D"
)

// Horizons lists every supported prediction window.
var Horizons = []Horizon{Horizon1D, Horizon7D, Horizon30D}

// Days returns the number of days the horizon looks ahead.
func (h Horizon) Days() int {
	switch h {
	case Horizon1D:
		return 1
	case Horizon7D:
		return 7
	case Horizon30D:
		return 30
	}
	return 0
}

// Valid reports whether the horizon is supported.
func (h Horizon) Valid() bool {
	return h.Days() > 0
}

// PricePrediction is a forward-looking price estimate for an asset.
type PricePrediction struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	AssetID        uint            `gorm:"not null;uniqueIndex:idx_predictions_asset_horizon_date" json:"asset_id"`
	Asset          *Asset          `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE" json:"asset,omitempty"`
	PredictionDate time.Time       `gorm:"not null;uniqueIndex:idx_predictions_asset_horizon_date" json:"prediction_date"`
	Horizon        Horizon         `gorm:"type:varchar(3);not null;uniqueIndex:idx_predictions_asset_horizon_date" json:"horizon"`
	PredictedPrice decimal.Decimal `gorm:"type:numeric(20,8);not null" json:"predicted_price"`
	Confidence     float64         `gorm:"not null" json:"confidence"`
	ModelVersion   string          `gorm:"type:varchar(50);not null" json:"model_version"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the PricePrediction model.
func (PricePrediction) TableName() string {
	return "price_predictions"
}

// Validate checks the horizon enum and the confidence bound.
func (p *PricePrediction) Validate() error {
	if !p.Horizon.Valid() {
		return fmt.Errorf("invalid horizon: %s", p.Horizon)
	}
	if p.Confidence < 0 || p.Confidence > 1 {
		return fmt.Errorf("confidence %f out of [0,1]", p.Confidence)
	}
	if p.PredictedPrice.IsNegative() {
		return fmt.Errorf("predicted price must not be negative")
	}
	return nil
}
