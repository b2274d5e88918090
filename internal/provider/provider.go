// Package provider contains the external market-data and news API clients
// shared by the worker and API services.
package provider

import (
	"context"
	"time"
)

// Quote is a current price snapshot for one symbol.
type Quote struct {
	Price        float64  `json:"price"`
	ChangePct24h *float64 `json:"change_pct_24h,omitempty"`
	PrevClose    *float64 `json:"prev_close,omitempty"`
	Timestamp    *int64   `json:"timestamp,omitempty"`
}

// Article is a news item as returned by a news provider.
type Article struct {
	Title       string
	Content     string
	Link        string
	Language    string
	Keywords    []string
	PublishedAt time.Time
}

// StockQuoteProvider fetches current stock quotes keyed by upper-cased symbol.
type StockQuoteProvider interface {
	StockQuotes(ctx context.Context, symbols []string) (map[string]Quote, error)
	Series24h(ctx context.Context, symbol string) ([]float64, error)
}

// CryptoQuoteProvider fetches current crypto quotes keyed by upper-cased symbol.
type CryptoQuoteProvider interface {
	CryptoQuotes(ctx context.Context, symbols []string, convert string) (map[string]Quote, error)
}

// CryptoSeriesProvider fetches a recent intraday price series for one symbol.
type CryptoSeriesProvider interface {
	Series24h(ctx context.Context, symbol, convert string) ([]float64, error)
}

// NewsProvider fetches recent articles.
type NewsProvider interface {
	FetchNews(ctx context.Context, category, language string, limit int) ([]Article, error)
}
