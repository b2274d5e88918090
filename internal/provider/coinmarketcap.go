package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang-asset-analytics/pkg/logger"

	"golang.org/x/time/rate"
)

// CoinMarketCapConfig holds the settings for the CoinMarketCap client.
type CoinMarketCapConfig struct {
	BaseURL             string `mapstructure:"base_url"`
	APIKey              string `mapstructure:"api_key"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

type cmcQuoteEntry struct {
	Quote map[string]struct {
		Price           float64 `json:"price"`
		PercentChange24 float64 `json:"percent_change_24h"`
	} `json:"quote"`
}

type cmcQuotesResponse struct {
	Data map[string]cmcQuoteEntry `json:"data"`
}

// CoinMarketCapClient fetches current crypto quotes from the CoinMarketCap
// quotes/latest endpoint.
type CoinMarketCapClient struct {
	client  *http.Client
	cfg     CoinMarketCapConfig
	limiter *rate.Limiter
	logger  *logger.Logger
}

// NewCoinMarketCapClient creates a CoinMarketCap client with request throttling.
func NewCoinMarketCapClient(cfg CoinMarketCapConfig, log *logger.Logger) *CoinMarketCapClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://pro-api.coinmarketcap.com/v1"
	}
	rpm := cfg.MaxRequestPerMinute
	if rpm <= 0 {
		rpm = 30
	}
	return &CoinMarketCapClient{
		client:  &http.Client{Timeout: 10 * time.Second},
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1),
		logger:  log,
	}
}

// CryptoQuotes fetches current quotes for the given symbols in one batch call.
// Without an API key it returns an empty map so price display degrades
// gracefully instead of erroring the page.
func (c *CoinMarketCapClient) CryptoQuotes(ctx context.Context, symbols []string, convert string) (map[string]Quote, error) {
	if c.cfg.APIKey == "" {
		c.logger.Debug("CoinMarketCap API key not set, skipping crypto quote fetch")
		return map[string]Quote{}, nil
	}

	symbols = dedupeUpper(symbols)
	if len(symbols) == 0 {
		return map[string]Quote{}, nil
	}
	if convert == "" {
		convert = "USD"
	}
	convert = strings.ToUpper(convert)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/cryptocurrency/quotes/latest?symbol=%s&convert=%s",
		c.cfg.BaseURL, url.QueryEscape(strings.Join(symbols, ",")), url.QueryEscape(convert))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "deflate, gzip")
	req.Header.Set("X-CMC_PRO_API_KEY", c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call coinmarketcap: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("coinmarketcap returned %d: %s", resp.StatusCode, string(body))
	}

	var payload cmcQuotesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode coinmarketcap response: %w", err)
	}

	result := make(map[string]Quote, len(symbols))
	for _, sym := range symbols {
		entry, ok := payload.Data[sym]
		if !ok {
			continue
		}
		quote, ok := entry.Quote[convert]
		if !ok {
			continue
		}
		change := quote.PercentChange24
		result[sym] = Quote{
			Price:        quote.Price,
			ChangePct24h: &change,
		}
	}
	return result, nil
}
