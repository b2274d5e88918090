package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// HistoricalPrice is an append-only OHLCV record keyed by asset and date.
type HistoricalPrice struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	AssetID    uint            `gorm:"not null;uniqueIndex:idx_prices_asset_date" json:"asset_id"`
	Asset      *Asset          `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE" json:"asset,omitempty"`
	Date       time.Time       `gorm:"not null;uniqueIndex:idx_prices_asset_date" json:"date"`
	OpenPrice  decimal.Decimal `gorm:"type:numeric(20,8);not null" json:"open_price"`
	HighPrice  decimal.Decimal `gorm:"type:numeric(20,8);not null" json:"high_price"`
	LowPrice   decimal.Decimal `gorm:"type:numeric(20,8);not null" json:"low_price"`
	ClosePrice decimal.Decimal `gorm:"type:numeric(20,8);not null" json:"close_price"`
	Volume     int64           `gorm:"not null" json:"volume"`
}

// TableName specifies the table name for the HistoricalPrice model.
func (HistoricalPrice) TableName() string {
	return "historical_prices"
}

// Validate enforces OHLC semantics: the high bounds open and close from above,
// the low from below, and volume is non-negative.
func (p *HistoricalPrice) Validate() error {
	if p.HighPrice.LessThan(p.OpenPrice) || p.HighPrice.LessThan(p.ClosePrice) {
		return fmt.Errorf("high price %s below open/close", p.HighPrice)
	}
	if p.LowPrice.GreaterThan(p.OpenPrice) || p.LowPrice.GreaterThan(p.ClosePrice) {
		return fmt.Errorf("low price %s above open/close", p.LowPrice)
	}
	if p.HighPrice.LessThan(p.LowPrice) {
		return fmt.Errorf("high price %s below low price %s", p.HighPrice, p.LowPrice)
	}
	if p.Volume < 0 {
		return fmt.Errorf("volume must not be negative")
	}
	return nil
}
