package entity

import (
	"time"

	"github.com/lib/pq"
)

// News is an ingested article, optionally linked to one asset.
type News struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	AssetID        *uint          `gorm:"index" json:"asset_id,omitempty"`
	Asset          *Asset         `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE" json:"asset,omitempty"`
	Title          string         `gorm:"type:varchar(200);not null" json:"title"`
	Content        string         `gorm:"type:text" json:"content"`
	Source         string         `gorm:"type:varchar(500);not null" json:"source"`
	Keywords       pq.StringArray `gorm:"type:text[]" json:"keywords"`
	HashIdentifier string         `gorm:"type:varchar(64);unique;not null" json:"hash_identifier"`
	Commentary     string         `gorm:"type:text" json:"commentary"`
	PublishedAt    time.Time      `gorm:"not null;index" json:"published_at"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the News model.
func (News) TableName() string {
	return "news"
}
