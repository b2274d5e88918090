package entity

import (
	"fmt"
	"time"
)

// Sentiment source types mirror the channels the aggregator samples.
const (
	SentimentSourceTwitter  = "Twitter"
	SentimentSourceReddit   = "Reddit"
	SentimentSourceNews     = "News"
	SentimentSourceForum    = "Forum"
	SentimentSourceTelegram = "Telegram"
)

// SentimentSourceTypes lists every supported sentiment channel.
var SentimentSourceTypes = []string{
	SentimentSourceTwitter,
	SentimentSourceReddit,
	SentimentSourceNews,
	SentimentSourceForum,
	SentimentSourceTelegram,
}

// Sentiment is a normalized market-mood score for an asset.
type Sentiment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AssetID      uint      `gorm:"not null;index" json:"asset_id"`
	Asset        *Asset    `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE" json:"asset,omitempty"`
	Score        float64   `gorm:"not null" json:"score"`
	SourceType   string    `gorm:"type:varchar(50);not null" json:"source_type"`
	AnalysisDate time.Time `gorm:"not null;index" json:"analysis_date"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the Sentiment model.
func (Sentiment) TableName() string {
	return "sentiments"
}

// Validate checks the score bound and the source channel.
func (s *Sentiment) Validate() error {
	if s.Score < 0 || s.Score > 1 {
		return fmt.Errorf("sentiment score %f out of [0,1]", s.Score)
	}
	if s.SourceType == "" {
		return fmt.Errorf("sentiment source type must not be empty")
	}
	return nil
}
