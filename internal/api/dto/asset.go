package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetQuoteResponse is one catalog entry with its live quote and sparkline.
type AssetQuoteResponse struct {
	ID           uint             `json:"id"`
	Ticker       string           `json:"ticker"`
	Name         string           `json:"name"`
	AssetType    string           `json:"asset_type"`
	MarketCap    *decimal.Decimal `json:"market_cap,omitempty"`
	Price        *float64         `json:"price,omitempty"`
	ChangePct24h *float64         `json:"change_pct_24h,omitempty"`
	SparklineSVG string           `json:"sparkline_svg,omitempty"`
}

// AssetCatalogResponse splits the catalog by asset type.
type AssetCatalogResponse struct {
	Stocks  []AssetQuoteResponse `json:"stocks"`
	Cryptos []AssetQuoteResponse `json:"cryptos"`
}

// PriceResponse is one OHLCV row.
type PriceResponse struct {
	Date       time.Time       `json:"date"`
	OpenPrice  decimal.Decimal `json:"open_price"`
	HighPrice  decimal.Decimal `json:"high_price"`
	LowPrice   decimal.Decimal `json:"low_price"`
	ClosePrice decimal.Decimal `json:"close_price"`
	Volume     int64           `json:"volume"`
}

// PredictionResponse is one prediction, optionally classified against the
// current quote.
type PredictionResponse struct {
	ID             uint            `json:"id"`
	Ticker         string          `json:"ticker,omitempty"`
	Horizon        string          `json:"horizon"`
	PredictionDate time.Time       `json:"prediction_date"`
	PredictedPrice decimal.Decimal `json:"predicted_price"`
	Confidence     float64         `json:"confidence"`
	ModelVersion   string          `json:"model_version"`
	Direction      string          `json:"direction,omitempty"`
}

// StatsResponse is the recomputed indicator set for one asset.
type StatsResponse struct {
	Volatility       *float64         `json:"volatility,omitempty"`
	RSI              *float64         `json:"rsi,omitempty"`
	MovingAverage50  *decimal.Decimal `json:"moving_average_50,omitempty"`
	MovingAverage200 *decimal.Decimal `json:"moving_average_200,omitempty"`
	LastUpdated      time.Time        `json:"last_updated"`
}

// NewsResponse is one article.
type NewsResponse struct {
	ID          uint      `json:"id"`
	Ticker      string    `json:"ticker,omitempty"`
	Title       string    `json:"title"`
	Source      string    `json:"source"`
	Keywords    []string  `json:"keywords,omitempty"`
	Commentary  string    `json:"commentary,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// SentimentResponse is one sentiment sample.
type SentimentResponse struct {
	Ticker       string    `json:"ticker,omitempty"`
	Score        float64   `json:"score"`
	SourceType   string    `json:"source_type"`
	AnalysisDate time.Time `json:"analysis_date"`
}

// AssetDetailResponse is the full per-asset view.
type AssetDetailResponse struct {
	Asset       AssetQuoteResponse   `json:"asset"`
	Prices      []PriceResponse      `json:"prices"`
	Predictions []PredictionResponse `json:"predictions"`
	News        []NewsResponse       `json:"news"`
	Sentiments  []SentimentResponse  `json:"sentiments"`
	Stats       *StatsResponse       `json:"stats,omitempty"`
}

// HomeResponse is the landing view: highlighted assets and their latest
// classified predictions.
type HomeResponse struct {
	Highlights  []AssetQuoteResponse `json:"highlights"`
	Predictions []PredictionResponse `json:"predictions"`
}

// AnalyticsResponse is the combined news and sentiment feed.
type AnalyticsResponse struct {
	News       []NewsResponse      `json:"news"`
	Sentiments []SentimentResponse `json:"sentiments"`
}
