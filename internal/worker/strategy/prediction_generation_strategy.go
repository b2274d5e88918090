package strategy

import (
	"context"
	"encoding/json"
	"fmt"

	"golang-asset-analytics/internal/entity"
	"golang-asset-analytics/internal/provider"
	"golang-asset-analytics/internal/worker/analysis"
	"golang-asset-analytics/internal/worker/repository"
	"golang-asset-analytics/pkg/logger"
	"golang-asset-analytics/pkg/utils"

	"github.com/shopspring/decimal"
)

// QuoteReader serves cached quotes to the generation strategies.
type QuoteReader interface {
	GetQuote(ctx context.Context, symbol string) (provider.Quote, bool)
}

// PredictionGenerationStrategy generates one prediction per horizon for every
// stock asset with a known current price.
type PredictionGenerationStrategy struct {
	logger         *logger.Logger
	assetRepo      repository.AssetRepository
	priceRepo      repository.HistoricalPriceRepository
	predictionRepo repository.PricePredictionRepository
	quoteReader    QuoteReader
	predictor      analysis.Predictor
}

type predictionGenerationResult struct {
	Status    string   `json:"status"`
	Generated int      `json:"generated"`
	Skipped   []string `json:"skipped"`
}

// NewPredictionGenerationStrategy creates a new PredictionGenerationStrategy.
func NewPredictionGenerationStrategy(
	log *logger.Logger,
	assetRepo repository.AssetRepository,
	priceRepo repository.HistoricalPriceRepository,
	predictionRepo repository.PricePredictionRepository,
	quoteReader QuoteReader,
	predictor analysis.Predictor,
) *PredictionGenerationStrategy {
	return &PredictionGenerationStrategy{
		logger:         log,
		assetRepo:      assetRepo,
		priceRepo:      priceRepo,
		predictionRepo: predictionRepo,
		quoteReader:    quoteReader,
		predictor:      predictor,
	}
}

// GetType returns the job type this strategy handles.
func (s *PredictionGenerationStrategy) GetType() entity.JobType {
	return entity.JobTypePredictionGeneration
}

// Execute generates predictions for all three horizons per stock asset.
// Regeneration on the same day overwrites the earlier rows.
func (s *PredictionGenerationStrategy) Execute(ctx context.Context, job *entity.Job) (string, error) {
	assets, err := s.assetRepo.FindByType(ctx, entity.AssetTypeStock)
	if err != nil {
		return "", fmt.Errorf("failed to load stock assets: %w", err)
	}

	result := predictionGenerationResult{Skipped: []string{}}
	now := utils.TimeNowUTC()

	for _, asset := range assets {
		if !utils.ShouldContinue(ctx) {
			break
		}

		currentPrice, ok := s.currentPrice(ctx, asset)
		if !ok {
			s.logger.Debug("No current price for asset, skipping",
				logger.StringField("ticker", asset.Ticker))
			result.Skipped = append(result.Skipped, asset.Ticker)
			continue
		}

		stored := 0
		for _, horizon := range entity.Horizons {
			prediction := s.predictor.Predict(asset.ID, currentPrice, horizon, now)
			if err := prediction.Validate(); err != nil {
				s.logger.Warn("Generated invalid prediction",
					logger.StringField("ticker", asset.Ticker), logger.ErrorField(err))
				continue
			}
			if err := s.predictionRepo.Upsert(ctx, &prediction); err != nil {
				s.logger.Error("Failed to store prediction",
					logger.StringField("ticker", asset.Ticker),
					logger.StringField("horizon", string(horizon)),
					logger.ErrorField(err))
				continue
			}
			stored++
		}

		if stored == 0 {
			result.Skipped = append(result.Skipped, asset.Ticker)
			continue
		}
		result.Generated += stored
	}

	if result.Generated == 0 && len(result.Skipped) > 0 {
		result.Status = SKIPPED
	} else {
		result.Status = SUCCESS
	}

	out, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(out), nil
}

// currentPrice reads the cached quote, falling back to the latest stored
// close.
func (s *PredictionGenerationStrategy) currentPrice(ctx context.Context, asset entity.Asset) (decimal.Decimal, bool) {
	if s.quoteReader != nil {
		if quote, ok := s.quoteReader.GetQuote(ctx, asset.Ticker); ok && quote.Price > 0 {
			return decimal.NewFromFloat(quote.Price), true
		}
	}

	prices, err := s.priceRepo.FindRecentByAssetID(ctx, asset.ID, 1)
	if err != nil || len(prices) == 0 {
		return decimal.Zero, false
	}
	return prices[0].ClosePrice, true
}
