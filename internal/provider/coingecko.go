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

	"github.com/patrickmn/go-cache"
)

// CoinGeckoConfig holds the settings for the CoinGecko client.
type CoinGeckoConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// Manual symbol→id overrides for symbols with ambiguous matches in the full
// coin list.
var coinGeckoManualOverrides = map[string]string{
	"btc":  "bitcoin",
	"eth":  "ethereum",
	"usdt": "tether",
}

const coinGeckoMapCacheKey = "symbol_id_map"

type coinListItem struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
}

type marketChartResponse struct {
	Prices [][]float64 `json:"prices"`
}

type searchResponse struct {
	Coins []struct {
		ID     string `json:"id"`
		Symbol string `json:"symbol"`
	} `json:"coins"`
}

// CoinGeckoClient fetches intraday crypto price series. The public API needs
// no key; the symbol→id map is cached for an hour.
type CoinGeckoClient struct {
	client *http.Client
	cfg    CoinGeckoConfig
	cache  *cache.Cache
	logger *logger.Logger
}

// NewCoinGeckoClient creates a CoinGecko client.
func NewCoinGeckoClient(cfg CoinGeckoConfig, log *logger.Logger) *CoinGeckoClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.coingecko.com/api/v3"
	}
	return &CoinGeckoClient{
		client: &http.Client{Timeout: 10 * time.Second},
		cfg:    cfg,
		cache:  cache.New(time.Hour, 2*time.Hour),
		logger: log,
	}
}

// Series24h returns the last day of prices for the symbol, oldest first.
func (c *CoinGeckoClient) Series24h(ctx context.Context, symbol, convert string) ([]float64, error) {
	symbol = strings.ToLower(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("empty symbol")
	}
	if convert == "" {
		convert = "usd"
	}

	id, err := c.resolveID(ctx, symbol)
	if err != nil {
		return nil, err
	}

	series, err := c.fetchChart(ctx, id, convert)
	if err == nil && len(series) > 0 {
		return series, nil
	}

	// The id map occasionally points at a stale or wrong coin; retry through
	// the search endpoint before giving up.
	searchedID, searchErr := c.searchID(ctx, symbol)
	if searchErr != nil || searchedID == "" || searchedID == id {
		if err != nil {
			return nil, err
		}
		return series, nil
	}

	series, err = c.fetchChart(ctx, searchedID, convert)
	if err != nil {
		return nil, err
	}
	c.cacheID(symbol, searchedID)
	return series, nil
}

func (c *CoinGeckoClient) resolveID(ctx context.Context, symbol string) (string, error) {
	if id, ok := coinGeckoManualOverrides[symbol]; ok {
		return id, nil
	}

	idMap, err := c.symbolIDMap(ctx)
	if err != nil {
		return "", err
	}
	if id, ok := idMap[symbol]; ok {
		return id, nil
	}

	id, err := c.searchID(ctx, symbol)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("no coingecko id for symbol %s", symbol)
	}
	c.cacheID(symbol, id)
	return id, nil
}

func (c *CoinGeckoClient) symbolIDMap(ctx context.Context) (map[string]string, error) {
	if cached, ok := c.cache.Get(coinGeckoMapCacheKey); ok {
		return cached.(map[string]string), nil
	}

	var items []coinListItem
	if err := c.getJSON(ctx, c.cfg.BaseURL+"/coins/list", &items); err != nil {
		return nil, err
	}

	m := make(map[string]string, len(items))
	for _, item := range items {
		key := strings.ToLower(item.Symbol)
		if key == "" || item.ID == "" {
			continue
		}
		// First match wins, manual overrides win over everything.
		if _, ok := m[key]; !ok {
			m[key] = item.ID
		}
	}
	for k, v := range coinGeckoManualOverrides {
		m[k] = v
	}

	c.cache.Set(coinGeckoMapCacheKey, m, cache.DefaultExpiration)
	return m, nil
}

func (c *CoinGeckoClient) searchID(ctx context.Context, symbol string) (string, error) {
	endpoint := fmt.Sprintf("%s/search?query=%s", c.cfg.BaseURL, url.QueryEscape(symbol))

	var payload searchResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return "", err
	}

	for _, coin := range payload.Coins {
		if strings.EqualFold(coin.Symbol, symbol) {
			return coin.ID, nil
		}
	}
	if len(payload.Coins) > 0 {
		return payload.Coins[0].ID, nil
	}
	return "", nil
}

func (c *CoinGeckoClient) fetchChart(ctx context.Context, id, convert string) ([]float64, error) {
	endpoint := fmt.Sprintf("%s/coins/%s/market_chart?vs_currency=%s&days=1",
		c.cfg.BaseURL, url.PathEscape(id), url.QueryEscape(strings.ToLower(convert)))

	var payload marketChartResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	series := make([]float64, 0, len(payload.Prices))
	for _, point := range payload.Prices {
		if len(point) >= 2 {
			series = append(series, point[1])
		}
	}
	return series, nil
}

func (c *CoinGeckoClient) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call coingecko: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("coingecko returned %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode coingecko response: %w", err)
	}
	return nil
}

func (c *CoinGeckoClient) cacheID(symbol, id string) {
	idMap, err := c.symbolIDMap(context.Background())
	if err != nil {
		return
	}
	idMap[symbol] = id
	c.cache.Set(coinGeckoMapCacheKey, idMap, cache.DefaultExpiration)
}
