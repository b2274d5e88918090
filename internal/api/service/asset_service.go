package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang-asset-analytics/internal/api/dto"
	"golang-asset-analytics/internal/api/repository"
	"golang-asset-analytics/internal/entity"
	"golang-asset-analytics/internal/provider"
	"golang-asset-analytics/pkg/logger"
	"golang-asset-analytics/pkg/sparkline"

	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

const (
	// directionBand is the relative move below which a prediction is
	// classified as neutral.
	directionBand = 0.01

	DirectionUp      = "up"
	DirectionDown    = "down"
	DirectionNeutral = "neutral"

	defaultConvertCurrency = "usd"

	sparklineWidth  = 120
	sparklineHeight = 36
	sparklineTTL    = 10 * time.Minute

	detailPriceLimit     = 90
	detailNewsLimit      = 10
	detailSentimentLimit = 10
	homeHighlightLimit   = 8
	homePredictionLimit  = 9
	fallbackSeriesLimit  = 30
)

// ErrAssetNotFound reports a favorite toggle against an asset that does not
// exist.
var ErrAssetNotFound = errors.New("asset not found")

// QuoteReader is the read side of the shared quote cache.
type QuoteReader interface {
	GetQuote(ctx context.Context, symbol string) (provider.Quote, bool)
	GetQuotes(ctx context.Context, symbols []string) map[string]provider.Quote
}

// AssetService serves the catalog, the per-asset detail view and the landing
// view.
type AssetService interface {
	GetCatalog(ctx context.Context) (*dto.AssetCatalogResponse, error)
	GetAssetDetail(ctx context.Context, ticker string) (*dto.AssetDetailResponse, error)
	GetHome(ctx context.Context) (*dto.HomeResponse, error)
	QuoteCards(ctx context.Context, assets []entity.Asset) []dto.AssetQuoteResponse
	ClassifyPredictions(ctx context.Context, predictions []entity.PricePrediction) []dto.PredictionResponse
}

// NewAssetService creates a new asset service.
func NewAssetService(
	assetRepo repository.AssetRepository,
	predictionRepo repository.PricePredictionRepository,
	newsRepo repository.NewsRepository,
	quotes QuoteReader,
	stockSeries provider.StockQuoteProvider,
	cryptoSeries provider.CryptoSeriesProvider,
	logger *logger.Logger,
) AssetService {
	return &assetService{
		assetRepo:      assetRepo,
		predictionRepo: predictionRepo,
		newsRepo:       newsRepo,
		quotes:         quotes,
		stockSeries:    stockSeries,
		cryptoSeries:   cryptoSeries,
		sparklines:     gocache.New(sparklineTTL, 2*sparklineTTL),
		logger:         logger,
	}
}

type assetService struct {
	assetRepo      repository.AssetRepository
	predictionRepo repository.PricePredictionRepository
	newsRepo       repository.NewsRepository
	quotes         QuoteReader
	stockSeries    provider.StockQuoteProvider
	cryptoSeries   provider.CryptoSeriesProvider
	sparklines     *gocache.Cache
	logger         *logger.Logger
}

// GetCatalog returns every asset split by type, each with its cached quote and
// a sparkline.
func (s *assetService) GetCatalog(ctx context.Context) (*dto.AssetCatalogResponse, error) {
	stocks, err := s.assetRepo.FindByType(ctx, entity.AssetTypeStock)
	if err != nil {
		return nil, err
	}
	cryptos, err := s.assetRepo.FindByType(ctx, entity.AssetTypeCrypto)
	if err != nil {
		return nil, err
	}

	return &dto.AssetCatalogResponse{
		Stocks:  s.QuoteCards(ctx, stocks),
		Cryptos: s.QuoteCards(ctx, cryptos),
	}, nil
}

// GetAssetDetail returns the full view for one ticker: quote, recent prices,
// latest prediction per horizon, news, sentiment and indicators.
func (s *assetService) GetAssetDetail(ctx context.Context, ticker string) (*dto.AssetDetailResponse, error) {
	asset, err := s.assetRepo.FindByTicker(ctx, strings.ToUpper(strings.TrimSpace(ticker)))
	if err != nil {
		return nil, err
	}

	cards := s.QuoteCards(ctx, []entity.Asset{*asset})

	prices, err := s.assetRepo.FindRecentPrices(ctx, asset.ID, detailPriceLimit)
	if err != nil {
		return nil, err
	}
	priceResponses := make([]dto.PriceResponse, 0, len(prices))
	// Rows come newest first; the chart wants them ascending.
	for i := len(prices) - 1; i >= 0; i-- {
		priceResponses = append(priceResponses, mapPriceResponse(prices[i]))
	}

	predictions, err := s.predictionRepo.FindLatestByAssetID(ctx, asset.ID)
	if err != nil {
		return nil, err
	}
	currentPrice := s.currentPriceFor(ctx, *asset)
	predictionResponses := make([]dto.PredictionResponse, 0, len(predictions))
	for _, p := range predictions {
		predictionResponses = append(predictionResponses, mapPredictionResponse(p, asset.Ticker, currentPrice))
	}

	news, err := s.newsRepo.FindLatestByAssetID(ctx, asset.ID, detailNewsLimit)
	if err != nil {
		return nil, err
	}
	newsResponses := make([]dto.NewsResponse, 0, len(news))
	for _, n := range news {
		newsResponses = append(newsResponses, mapNewsResponse(n, asset.Ticker))
	}

	sentiments, err := s.newsRepo.FindSentimentsByAssetID(ctx, asset.ID, detailSentimentLimit)
	if err != nil {
		return nil, err
	}
	sentimentResponses := make([]dto.SentimentResponse, 0, len(sentiments))
	for _, sample := range sentiments {
		sentimentResponses = append(sentimentResponses, mapSentimentResponse(sample, asset.Ticker))
	}

	stats, err := s.assetRepo.FindStats(ctx, asset.ID)
	if err != nil {
		return nil, err
	}

	return &dto.AssetDetailResponse{
		Asset:       cards[0],
		Prices:      priceResponses,
		Predictions: predictionResponses,
		News:        newsResponses,
		Sentiments:  sentimentResponses,
		Stats:       mapStatsResponse(stats),
	}, nil
}

// GetHome returns the landing view: highlighted assets and the newest
// predictions classified against current prices.
func (s *assetService) GetHome(ctx context.Context) (*dto.HomeResponse, error) {
	assets, err := s.assetRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(assets) > homeHighlightLimit {
		assets = assets[:homeHighlightLimit]
	}

	predictions, err := s.predictionRepo.FindLatest(ctx, homePredictionLimit)
	if err != nil {
		return nil, err
	}

	return &dto.HomeResponse{
		Highlights:  s.QuoteCards(ctx, assets),
		Predictions: s.ClassifyPredictions(ctx, predictions),
	}, nil
}

// QuoteCards builds catalog entries for the given assets from the shared quote
// cache, rendering a sparkline per asset.
func (s *assetService) QuoteCards(ctx context.Context, assets []entity.Asset) []dto.AssetQuoteResponse {
	tickers := make([]string, 0, len(assets))
	for _, a := range assets {
		tickers = append(tickers, a.Ticker)
	}
	quoteBySymbol := s.quotes.GetQuotes(ctx, tickers)

	cards := make([]dto.AssetQuoteResponse, 0, len(assets))
	for _, asset := range assets {
		card := dto.AssetQuoteResponse{
			ID:           asset.ID,
			Ticker:       asset.Ticker,
			Name:         asset.Name,
			AssetType:    string(asset.AssetType),
			MarketCap:    asset.MarketCap,
			SparklineSVG: s.sparklineFor(ctx, asset),
		}
		if quote, ok := quoteBySymbol[strings.ToUpper(asset.Ticker)]; ok {
			price := quote.Price
			card.Price = &price
			card.ChangePct24h = quote.ChangePct24h
		} else if fallback := s.latestStoredClose(ctx, asset.ID); fallback != nil {
			card.Price = fallback
		}
		cards = append(cards, card)
	}
	return cards
}

// ClassifyPredictions maps predictions to responses, attaching a direction
// derived from each asset's current price.
func (s *assetService) ClassifyPredictions(ctx context.Context, predictions []entity.PricePrediction) []dto.PredictionResponse {
	responses := make([]dto.PredictionResponse, 0, len(predictions))
	for _, p := range predictions {
		var ticker string
		var currentPrice *float64
		if p.Asset != nil {
			ticker = p.Asset.Ticker
			currentPrice = s.currentPriceFor(ctx, *p.Asset)
		}
		responses = append(responses, mapPredictionResponse(p, ticker, currentPrice))
	}
	return responses
}

// currentPriceFor resolves an asset's current price: cached quote first, then
// the latest stored close.
func (s *assetService) currentPriceFor(ctx context.Context, asset entity.Asset) *float64 {
	if quote, ok := s.quotes.GetQuote(ctx, asset.Ticker); ok && quote.Price > 0 {
		price := quote.Price
		return &price
	}
	return s.latestStoredClose(ctx, asset.ID)
}

func (s *assetService) latestStoredClose(ctx context.Context, assetID uint) *float64 {
	prices, err := s.assetRepo.FindRecentPrices(ctx, assetID, 1)
	if err != nil || len(prices) == 0 {
		return nil
	}
	closePrice := prices[0].ClosePrice.InexactFloat64()
	return &closePrice
}

func (s *assetService) sparklineFor(ctx context.Context, asset entity.Asset) string {
	cacheKey := "sparkline:" + asset.Ticker
	if cached, ok := s.sparklines.Get(cacheKey); ok {
		return cached.(string)
	}

	series := s.seriesFor(ctx, asset)
	svg := sparkline.Render(series, sparklineWidth, sparklineHeight)
	s.sparklines.Set(cacheKey, svg, gocache.DefaultExpiration)
	return svg
}

// seriesFor fetches the intraday series from the matching provider, falling
// back to stored daily closes when the provider is unavailable.
func (s *assetService) seriesFor(ctx context.Context, asset entity.Asset) []float64 {
	var (
		series []float64
		err    error
	)
	switch asset.AssetType {
	case entity.AssetTypeCrypto:
		series, err = s.cryptoSeries.Series24h(ctx, asset.Ticker, defaultConvertCurrency)
	default:
		series, err = s.stockSeries.Series24h(ctx, asset.Ticker)
	}
	if err != nil {
		s.logger.Warn("Failed to fetch sparkline series, falling back to stored prices",
			logger.StringField("ticker", asset.Ticker), logger.ErrorField(err))
	}
	if len(series) > 0 {
		return series
	}

	prices, err := s.assetRepo.FindRecentPrices(ctx, asset.ID, fallbackSeriesLimit)
	if err != nil {
		return nil
	}
	series = make([]float64, 0, len(prices))
	for i := len(prices) - 1; i >= 0; i-- {
		series = append(series, prices[i].ClosePrice.InexactFloat64())
	}
	return series
}

// classifyDirection compares the predicted price against the current one. A
// relative move inside the band either way is neutral, as is an unknown
// current price, since no direction can be read off it.
func classifyDirection(predicted decimal.Decimal, current *float64) string {
	if current == nil || *current <= 0 {
		return DirectionNeutral
	}
	change := predicted.Div(decimal.NewFromFloat(*current)).Sub(decimal.NewFromInt(1))
	band := decimal.NewFromFloat(directionBand)
	switch {
	case change.GreaterThan(band):
		return DirectionUp
	case change.LessThan(band.Neg()):
		return DirectionDown
	default:
		return DirectionNeutral
	}
}

func mapPriceResponse(p entity.HistoricalPrice) dto.PriceResponse {
	return dto.PriceResponse{
		Date:       p.Date,
		OpenPrice:  p.OpenPrice,
		HighPrice:  p.HighPrice,
		LowPrice:   p.LowPrice,
		ClosePrice: p.ClosePrice,
		Volume:     p.Volume,
	}
}

func mapPredictionResponse(p entity.PricePrediction, ticker string, current *float64) dto.PredictionResponse {
	return dto.PredictionResponse{
		ID:             p.ID,
		Ticker:         ticker,
		Horizon:        string(p.Horizon),
		PredictionDate: p.PredictionDate,
		PredictedPrice: p.PredictedPrice,
		Confidence:     p.Confidence,
		ModelVersion:   p.ModelVersion,
		Direction:      classifyDirection(p.PredictedPrice, current),
	}
}

func mapNewsResponse(n entity.News, ticker string) dto.NewsResponse {
	if ticker == "" && n.Asset != nil {
		ticker = n.Asset.Ticker
	}
	return dto.NewsResponse{
		ID:          n.ID,
		Ticker:      ticker,
		Title:       n.Title,
		Source:      n.Source,
		Keywords:    n.Keywords,
		Commentary:  n.Commentary,
		PublishedAt: n.PublishedAt,
	}
}

func mapSentimentResponse(s entity.Sentiment, ticker string) dto.SentimentResponse {
	if ticker == "" && s.Asset != nil {
		ticker = s.Asset.Ticker
	}
	return dto.SentimentResponse{
		Ticker:       ticker,
		Score:        s.Score,
		SourceType:   s.SourceType,
		AnalysisDate: s.AnalysisDate,
	}
}

func mapStatsResponse(stats *entity.AssetStats) *dto.StatsResponse {
	if stats == nil {
		return nil
	}
	return &dto.StatsResponse{
		Volatility:       stats.Volatility,
		RSI:              stats.RSI,
		MovingAverage50:  stats.MovingAverage50,
		MovingAverage200: stats.MovingAverage200,
		LastUpdated:      stats.LastUpdated,
	}
}
