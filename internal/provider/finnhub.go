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

// FinnhubConfig holds the settings for the Finnhub client.
type FinnhubConfig struct {
	BaseURL             string `mapstructure:"base_url"`
	APIKey              string `mapstructure:"api_key"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// finnhubQuoteResponse mirrors the /quote payload: c (current), h, l, o,
// pc (previous close), t (timestamp).
type finnhubQuoteResponse struct {
	Current   float64 `json:"c"`
	High      float64 `json:"h"`
	Low       float64 `json:"l"`
	Open      float64 `json:"o"`
	PrevClose float64 `json:"pc"`
	Timestamp int64   `json:"t"`
}

// finnhubCandleResponse mirrors the /stock/candle payload.
type finnhubCandleResponse struct {
	Status     string    `json:"s"`
	Error      string    `json:"error"`
	Closes     []float64 `json:"c"`
	Timestamps []int64   `json:"t"`
}

// FinnhubClient fetches stock quotes and intraday candles from Finnhub.
type FinnhubClient struct {
	client  *http.Client
	cfg     FinnhubConfig
	limiter *rate.Limiter
	logger  *logger.Logger
}

// NewFinnhubClient creates a Finnhub client with request throttling.
func NewFinnhubClient(cfg FinnhubConfig, log *logger.Logger) *FinnhubClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://finnhub.io/api/v1"
	}
	rpm := cfg.MaxRequestPerMinute
	if rpm <= 0 {
		rpm = 60
	}
	return &FinnhubClient{
		client:  &http.Client{Timeout: 10 * time.Second},
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1),
		logger:  log,
	}
}

// StockQuotes fetches current quotes symbol by symbol. A failing symbol is
// logged and omitted from the result, matching the ingestion contract of
// skipping bad symbols rather than failing the batch.
func (c *FinnhubClient) StockQuotes(ctx context.Context, symbols []string) (map[string]Quote, error) {
	if c.cfg.APIKey == "" {
		c.logger.Debug("Finnhub API key not set, skipping stock quote fetch")
		return map[string]Quote{}, nil
	}

	result := make(map[string]Quote)
	for _, sym := range dedupeUpper(symbols) {
		if err := c.limiter.Wait(ctx); err != nil {
			return result, err
		}

		quote, err := c.fetchQuote(ctx, sym)
		if err != nil {
			c.logger.Debug("Failed to fetch Finnhub quote",
				logger.StringField("symbol", sym), logger.ErrorField(err))
			continue
		}
		result[sym] = quote
	}
	return result, nil
}

func (c *FinnhubClient) fetchQuote(ctx context.Context, symbol string) (Quote, error) {
	endpoint := fmt.Sprintf("%s/quote?symbol=%s&token=%s",
		c.cfg.BaseURL, url.QueryEscape(symbol), url.QueryEscape(c.cfg.APIKey))

	var payload finnhubQuoteResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return Quote{}, err
	}
	if payload.Current == 0 {
		return Quote{}, fmt.Errorf("no quote data for %s", symbol)
	}

	q := Quote{Price: payload.Current}
	if payload.PrevClose != 0 {
		change := (payload.Current - payload.PrevClose) / payload.PrevClose * 100
		q.ChangePct24h = &change
		prev := payload.PrevClose
		q.PrevClose = &prev
	}
	if payload.Timestamp != 0 {
		ts := payload.Timestamp
		q.Timestamp = &ts
	}
	return q, nil
}

// Series24h fetches the last 24 hours of 5-minute closes for a stock. The
// candle endpoint requires a paid plan on some tiers; a non-ok status is
// returned as an error so callers can fall back to stored prices.
func (c *FinnhubClient) Series24h(ctx context.Context, symbol string) ([]float64, error) {
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("finnhub api key not configured")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	to := time.Now().Unix()
	from := to - 24*3600
	endpoint := fmt.Sprintf("%s/stock/candle?symbol=%s&resolution=5&from=%d&to=%d&token=%s",
		c.cfg.BaseURL, url.QueryEscape(strings.ToUpper(symbol)), from, to, url.QueryEscape(c.cfg.APIKey))

	var payload finnhubCandleResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	if payload.Status != "ok" {
		return nil, fmt.Errorf("finnhub candle status %q: %s", payload.Status, payload.Error)
	}

	series := make([]float64, 0, len(payload.Closes))
	for _, close := range payload.Closes {
		if close != 0 {
			series = append(series, close)
		}
	}
	return series, nil
}

func (c *FinnhubClient) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call finnhub: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("finnhub returned %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode finnhub response: %w", err)
	}
	return nil
}

func dedupeUpper(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
