package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang-asset-analytics/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return log
}

func TestFinnhubStockQuotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quote", r.URL.Path)
		switch r.URL.Query().Get("symbol") {
		case "AAPL":
			fmt.Fprint(w, `{"c": 190.5, "h": 192.0, "l": 188.0, "o": 189.0, "pc": 185.0, "t": 1718000000}`)
		default:
			// Finnhub reports unknown symbols with zeroed fields.
			fmt.Fprint(w, `{"c": 0, "h": 0, "l": 0, "o": 0, "pc": 0, "t": 0}`)
		}
	}))
	defer server.Close()

	client := NewFinnhubClient(FinnhubConfig{BaseURL: server.URL, APIKey: "test"}, testLogger(t))
	quotes, err := client.StockQuotes(context.Background(), []string{"aapl", "AAPL", "BOGUS"})
	require.NoError(t, err)

	require.Contains(t, quotes, "AAPL")
	assert.NotContains(t, quotes, "BOGUS")

	q := quotes["AAPL"]
	assert.InDelta(t, 190.5, q.Price, 1e-9)
	require.NotNil(t, q.ChangePct24h)
	assert.InDelta(t, (190.5-185.0)/185.0*100, *q.ChangePct24h, 1e-9)
	require.NotNil(t, q.PrevClose)
	assert.InDelta(t, 185.0, *q.PrevClose, 1e-9)
}

func TestFinnhubStockQuotesNoAPIKey(t *testing.T) {
	client := NewFinnhubClient(FinnhubConfig{}, testLogger(t))
	quotes, err := client.StockQuotes(context.Background(), []string{"AAPL"})
	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestFinnhubSeries24hSkipsZeroCloses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stock/candle", r.URL.Path)
		fmt.Fprint(w, `{"s": "ok", "c": [100.0, 0, 101.5, 102.25], "t": [1, 2, 3, 4]}`)
	}))
	defer server.Close()

	client := NewFinnhubClient(FinnhubConfig{BaseURL: server.URL, APIKey: "test"}, testLogger(t))
	series, err := client.Series24h(context.Background(), "aapl")
	require.NoError(t, err)
	assert.Equal(t, []float64{100.0, 101.5, 102.25}, series)
}

func TestFinnhubSeries24hErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"s": "no_data", "error": "no data"}`)
	}))
	defer server.Close()

	client := NewFinnhubClient(FinnhubConfig{BaseURL: server.URL, APIKey: "test"}, testLogger(t))
	_, err := client.Series24h(context.Background(), "AAPL")
	assert.Error(t, err)
}

func TestCoinMarketCapCryptoQuotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-CMC_PRO_API_KEY"))
		fmt.Fprint(w, `{"data": {"BTC": {"quote": {"USD": {"price": 64250.12, "percent_change_24h": -1.8}}}}}`)
	}))
	defer server.Close()

	client := NewCoinMarketCapClient(CoinMarketCapConfig{BaseURL: server.URL, APIKey: "test-key"}, testLogger(t))
	quotes, err := client.CryptoQuotes(context.Background(), []string{"btc", "ETH"}, "usd")
	require.NoError(t, err)

	require.Contains(t, quotes, "BTC")
	assert.NotContains(t, quotes, "ETH")
	assert.InDelta(t, 64250.12, quotes["BTC"].Price, 1e-9)
	require.NotNil(t, quotes["BTC"].ChangePct24h)
	assert.InDelta(t, -1.8, *quotes["BTC"].ChangePct24h, 1e-9)
}

func TestCoinMarketCapNoAPIKey(t *testing.T) {
	client := NewCoinMarketCapClient(CoinMarketCapConfig{}, testLogger(t))
	quotes, err := client.CryptoQuotes(context.Background(), []string{"BTC"}, "USD")
	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestCoinGeckoSeries24hWithOverride(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The btc override must skip the /coins/list lookup entirely.
		assert.Equal(t, "/coins/bitcoin/market_chart", r.URL.Path)
		fmt.Fprint(w, `{"prices": [[1718000000000, 64000.5], [1718000300000, 64100.0]]}`)
	}))
	defer server.Close()

	client := NewCoinGeckoClient(CoinGeckoConfig{BaseURL: server.URL}, testLogger(t))
	series, err := client.Series24h(context.Background(), "BTC", "usd")
	require.NoError(t, err)
	assert.Equal(t, []float64{64000.5, 64100.0}, series)
}

func TestCoinGeckoSeries24hViaCoinList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/coins/list":
			fmt.Fprint(w, `[{"id": "solana", "symbol": "sol"}, {"id": "solana-clone", "symbol": "sol"}]`)
		case "/coins/solana/market_chart":
			fmt.Fprint(w, `{"prices": [[1, 150.0], [2, 151.0]]}`)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewCoinGeckoClient(CoinGeckoConfig{BaseURL: server.URL}, testLogger(t))
	series, err := client.Series24h(context.Background(), "sol", "usd")
	require.NoError(t, err)
	assert.Equal(t, []float64{150.0, 151.0}, series)
}

func TestNewsDataFetchNews(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "business", r.URL.Query().Get("category"))
		fmt.Fprint(w, `{"status": "success", "results": [
			{"title": "Bitcoin rallies", "description": "BTC gains", "link": "https://news.example/btc", "language": "en", "keywords": ["btc"], "pubDate": "2025-06-01 10:30:00"},
			{"title": "", "link": "https://news.example/none"},
			{"title": "Marché haussier", "link": "https://news.example/fr", "language": "fr"}
		]}`)
	}))
	defer server.Close()

	client := NewNewsDataClient(NewsDataConfig{BaseURL: server.URL, APIKey: "test"}, testLogger(t))
	articles, err := client.FetchNews(context.Background(), "business", "en", 10)
	require.NoError(t, err)

	// Titleless and wrong-language items are dropped.
	require.Len(t, articles, 1)
	assert.Equal(t, "Bitcoin rallies", articles[0].Title)
	assert.Equal(t, "BTC gains", articles[0].Content)
	assert.Equal(t, []string{"btc"}, articles[0].Keywords)
	assert.Equal(t, 2025, articles[0].PublishedAt.Year())
}

func TestNewsDataRetriesOn422(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("category") != "" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		fmt.Fprint(w, `{"status": "success", "results": [{"title": "Fallback", "link": "https://news.example/1", "pubDate": "2025-06-01 10:00:00"}]}`)
	}))
	defer server.Close()

	client := NewNewsDataClient(NewsDataConfig{BaseURL: server.URL, APIKey: "test"}, testLogger(t))
	articles, err := client.FetchNews(context.Background(), "finance", "", 5)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, 2, calls)
}
