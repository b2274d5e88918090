package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang-asset-analytics/internal/entity"
	"golang-asset-analytics/internal/provider"
	"golang-asset-analytics/internal/worker/repository"
	"golang-asset-analytics/pkg/logger"
	"golang-asset-analytics/pkg/utils"

	"github.com/shopspring/decimal"
)

// PriceIngestionStrategy fetches current quotes for the catalog and appends
// them to the price history.
type PriceIngestionStrategy struct {
	logger       *logger.Logger
	assetRepo    repository.AssetRepository
	priceRepo    repository.HistoricalPriceRepository
	stockQuotes  provider.StockQuoteProvider
	cryptoQuotes provider.CryptoQuoteProvider
	quoteCache   QuoteCache
	defaultFiat  string
}

// QuoteCache receives fresh quotes for the read-side API to serve without
// hitting providers.
type QuoteCache interface {
	SetQuotes(ctx context.Context, quotes map[string]provider.Quote) error
}

// PriceIngestionPayload is the job payload for price ingestion.
type PriceIngestionPayload struct {
	Tickers []string `json:"tickers"`
	Convert string   `json:"convert"`
}

type priceIngestionResult struct {
	Status  string   `json:"status"`
	Stored  []string `json:"stored"`
	Skipped []string `json:"skipped"`
}

// NewPriceIngestionStrategy creates a new PriceIngestionStrategy.
func NewPriceIngestionStrategy(
	log *logger.Logger,
	assetRepo repository.AssetRepository,
	priceRepo repository.HistoricalPriceRepository,
	stockQuotes provider.StockQuoteProvider,
	cryptoQuotes provider.CryptoQuoteProvider,
	quoteCache QuoteCache,
	defaultFiat string,
) *PriceIngestionStrategy {
	if defaultFiat == "" {
		defaultFiat = "USD"
	}
	return &PriceIngestionStrategy{
		logger:       log,
		assetRepo:    assetRepo,
		priceRepo:    priceRepo,
		stockQuotes:  stockQuotes,
		cryptoQuotes: cryptoQuotes,
		quoteCache:   quoteCache,
		defaultFiat:  defaultFiat,
	}
}

// GetType returns the job type this strategy handles.
func (s *PriceIngestionStrategy) GetType() entity.JobType {
	return entity.JobTypePriceIngestion
}

// Execute fetches quotes for every configured asset and appends one price row
// per asset for today. Symbols that fail are skipped and reported in the
// output rather than failing the whole run.
func (s *PriceIngestionStrategy) Execute(ctx context.Context, job *entity.Job) (string, error) {
	var payload PriceIngestionPayload
	if len(job.Payload) > 0 {
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return "", fmt.Errorf("failed to unmarshal job payload: %w", err)
		}
	}
	convert := payload.Convert
	if convert == "" {
		convert = s.defaultFiat
	}

	assets, err := s.loadAssets(ctx, payload.Tickers)
	if err != nil {
		return "", fmt.Errorf("failed to load assets: %w", err)
	}

	var stockSymbols, cryptoSymbols []string
	for _, asset := range assets {
		switch asset.AssetType {
		case entity.AssetTypeStock:
			stockSymbols = append(stockSymbols, asset.Ticker)
		case entity.AssetTypeCrypto:
			cryptoSymbols = append(cryptoSymbols, asset.Ticker)
		}
	}

	quotes := make(map[string]provider.Quote)
	if len(stockSymbols) > 0 {
		stockQuotes, err := s.stockQuotes.StockQuotes(ctx, stockSymbols)
		if err != nil {
			s.logger.Error("Failed to fetch stock quotes", logger.ErrorField(err))
		}
		for sym, q := range stockQuotes {
			quotes[sym] = q
		}
	}
	if len(cryptoSymbols) > 0 {
		cryptoQuotes, err := s.cryptoQuotes.CryptoQuotes(ctx, cryptoSymbols, convert)
		if err != nil {
			s.logger.Error("Failed to fetch crypto quotes", logger.ErrorField(err))
		}
		for sym, q := range cryptoQuotes {
			quotes[sym] = q
		}
	}

	if s.quoteCache != nil && len(quotes) > 0 {
		if err := s.quoteCache.SetQuotes(ctx, quotes); err != nil {
			s.logger.Warn("Failed to refresh quote cache", logger.ErrorField(err))
		}
	}

	result := priceIngestionResult{Stored: []string{}, Skipped: []string{}}
	today := utils.TruncateToDay(utils.TimeNowUTC())

	for _, asset := range assets {
		if !utils.ShouldContinue(ctx) {
			break
		}

		quote, ok := quotes[strings.ToUpper(asset.Ticker)]
		if !ok {
			result.Skipped = append(result.Skipped, asset.Ticker)
			continue
		}

		price := buildPriceRow(asset.ID, today, quote)
		if err := price.Validate(); err != nil {
			s.logger.Warn("Skipping invalid price row",
				logger.StringField("ticker", asset.Ticker), logger.ErrorField(err))
			result.Skipped = append(result.Skipped, asset.Ticker)
			continue
		}

		if err := s.priceRepo.CreateIgnoreConflict(ctx, &price); err != nil {
			s.logger.Error("Failed to store price row",
				logger.StringField("ticker", asset.Ticker), logger.ErrorField(err))
			result.Skipped = append(result.Skipped, asset.Ticker)
			continue
		}
		result.Stored = append(result.Stored, asset.Ticker)
	}

	if len(result.Stored) == 0 && len(result.Skipped) > 0 {
		result.Status = FAILED
	} else {
		result.Status = SUCCESS
	}

	out, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	if result.Status == FAILED {
		return string(out), fmt.Errorf("no quotes stored for %d assets", len(result.Skipped))
	}
	return string(out), nil
}

func (s *PriceIngestionStrategy) loadAssets(ctx context.Context, tickers []string) ([]entity.Asset, error) {
	if len(tickers) == 0 {
		return s.assetRepo.FindAll(ctx)
	}

	var assets []entity.Asset
	for _, ticker := range tickers {
		asset, err := s.assetRepo.FindByTicker(ctx, strings.ToUpper(strings.TrimSpace(ticker)))
		if err != nil {
			s.logger.Warn("Unknown ticker in payload", logger.StringField("ticker", ticker))
			continue
		}
		assets = append(assets, *asset)
	}
	return assets, nil
}

// buildPriceRow derives a daily OHLCV row from a point-in-time quote: the
// previous close opens the day when available, and high/low bracket the two.
func buildPriceRow(assetID uint, date time.Time, quote provider.Quote) entity.HistoricalPrice {
	closePrice := decimal.NewFromFloat(quote.Price)
	openPrice := closePrice
	if quote.PrevClose != nil && *quote.PrevClose > 0 {
		openPrice = decimal.NewFromFloat(*quote.PrevClose)
	}

	high := decimal.Max(openPrice, closePrice)
	low := decimal.Min(openPrice, closePrice)

	return entity.HistoricalPrice{
		AssetID:    assetID,
		Date:       date,
		OpenPrice:  openPrice,
		HighPrice:  high,
		LowPrice:   low,
		ClosePrice: closePrice,
		Volume:     0,
	}
}
