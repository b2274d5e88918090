package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AssetType classifies a tradable instrument.
type AssetType string

const (
	AssetTypeStock  AssetType = "STOCK"
	AssetTypeCrypto AssetType = "CRYPTO"
)

// Valid reports whether the asset type is one of the supported kinds.
func (t AssetType) Valid() bool {
	return t == AssetTypeStock || t == AssetTypeCrypto
}

// Asset holds reference data for a tradable instrument.
type Asset struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	Ticker    string           `gorm:"type:varchar(10);unique;not null" json:"ticker"`
	Name      string           `gorm:"type:varchar(100);not null" json:"name"`
	AssetType AssetType        `gorm:"type:varchar(10);not null" json:"asset_type"`
	MarketCap *decimal.Decimal `gorm:"type:numeric(20,2)" json:"market_cap,omitempty"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the Asset model.
func (Asset) TableName() string {
	return "assets"
}

// Validate checks the creation invariants: ticker present, type closed set.
func (a *Asset) Validate() error {
	if a.Ticker == "" {
		return fmt.Errorf("asset ticker must not be empty")
	}
	if !a.AssetType.Valid() {
		return fmt.Errorf("invalid asset type: %s", a.AssetType)
	}
	return nil
}
