// Package quotes is the shared quote cache between the worker, which refreshes
// it on every price ingestion run, and the API, which reads it to serve live
// prices without hitting the upstream providers.
package quotes

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"golang-asset-analytics/internal/provider"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const (
	quoteKeyPrefix = "quote:"

	defaultRedisTTL = 15 * time.Minute
	localTTL        = 30 * time.Second
)

// Store keeps quotes in Redis with a short-lived in-process layer on top.
type Store struct {
	redisClient *redis.Client
	ttl         time.Duration
	local       *gocache.Cache
}

// NewStore creates a quote store. A non-positive ttl falls back to the
// default.
func NewStore(redisClient *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultRedisTTL
	}
	return &Store{
		redisClient: redisClient,
		ttl:         ttl,
		local:       gocache.New(localTTL, 2*localTTL),
	}
}

// SetQuotes writes all quotes in one pipeline.
func (s *Store) SetQuotes(ctx context.Context, quotes map[string]provider.Quote) error {
	pipe := s.redisClient.Pipeline()
	for symbol, quote := range quotes {
		payload, err := json.Marshal(quote)
		if err != nil {
			return err
		}
		pipe.Set(ctx, quoteKey(symbol), payload, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	for symbol, quote := range quotes {
		s.local.Set(quoteKey(symbol), quote, gocache.DefaultExpiration)
	}
	return nil
}

// GetQuote returns the cached quote for one symbol, or false when none is
// cached.
func (s *Store) GetQuote(ctx context.Context, symbol string) (provider.Quote, bool) {
	key := quoteKey(symbol)

	if cached, ok := s.local.Get(key); ok {
		return cached.(provider.Quote), true
	}

	payload, err := s.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		return provider.Quote{}, false
	}

	var quote provider.Quote
	if err := json.Unmarshal(payload, &quote); err != nil {
		return provider.Quote{}, false
	}

	s.local.Set(key, quote, gocache.DefaultExpiration)
	return quote, true
}

// GetQuotes returns the cached quotes for the given symbols, keyed by
// upper-cased symbol. Missing symbols are absent from the result.
func (s *Store) GetQuotes(ctx context.Context, symbols []string) map[string]provider.Quote {
	result := make(map[string]provider.Quote, len(symbols))
	for _, symbol := range symbols {
		if quote, ok := s.GetQuote(ctx, symbol); ok {
			result[strings.ToUpper(symbol)] = quote
		}
	}
	return result
}

func quoteKey(symbol string) string {
	return quoteKeyPrefix + strings.ToUpper(strings.TrimSpace(symbol))
}
