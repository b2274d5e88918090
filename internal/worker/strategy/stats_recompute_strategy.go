package strategy

import (
	"context"
	"encoding/json"
	"fmt"

	"golang-asset-analytics/internal/entity"
	"golang-asset-analytics/internal/worker/analysis"
	"golang-asset-analytics/internal/worker/repository"
	"golang-asset-analytics/pkg/logger"
	"golang-asset-analytics/pkg/utils"
)

// statsHistoryWindow bounds how many daily rows feed the indicators; MA(200)
// is the longest lookback.
const statsHistoryWindow = 250

// StatsRecomputeStrategy recomputes the per-asset technical indicators from
// stored price history.
type StatsRecomputeStrategy struct {
	logger     *logger.Logger
	assetRepo  repository.AssetRepository
	priceRepo  repository.HistoricalPriceRepository
	statsRepo  repository.AssetStatsRepository
	calculator analysis.StatsCalculator
}

type statsRecomputeResult struct {
	Status     string   `json:"status"`
	Recomputed int      `json:"recomputed"`
	Skipped    []string `json:"skipped"`
}

// NewStatsRecomputeStrategy creates a new StatsRecomputeStrategy.
func NewStatsRecomputeStrategy(
	log *logger.Logger,
	assetRepo repository.AssetRepository,
	priceRepo repository.HistoricalPriceRepository,
	statsRepo repository.AssetStatsRepository,
	calculator analysis.StatsCalculator,
) *StatsRecomputeStrategy {
	return &StatsRecomputeStrategy{
		logger:     log,
		assetRepo:  assetRepo,
		priceRepo:  priceRepo,
		statsRepo:  statsRepo,
		calculator: calculator,
	}
}

// GetType returns the job type this strategy handles.
func (s *StatsRecomputeStrategy) GetType() entity.JobType {
	return entity.JobTypeStatsRecompute
}

// Execute recomputes and overwrites AssetStats for every asset with enough
// history. Assets with too little history are skipped.
func (s *StatsRecomputeStrategy) Execute(ctx context.Context, job *entity.Job) (string, error) {
	assets, err := s.assetRepo.FindAll(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load assets: %w", err)
	}

	result := statsRecomputeResult{Skipped: []string{}}

	for _, asset := range assets {
		if !utils.ShouldContinue(ctx) {
			break
		}

		prices, err := s.priceRepo.FindRecentByAssetID(ctx, asset.ID, statsHistoryWindow)
		if err != nil {
			s.logger.Error("Failed to load price history",
				logger.StringField("ticker", asset.Ticker), logger.ErrorField(err))
			result.Skipped = append(result.Skipped, asset.Ticker)
			continue
		}

		// Repository returns newest first; the calculator wants oldest first.
		reverse(prices)

		stats, err := s.calculator.Calculate(asset.ID, prices)
		if err != nil {
			s.logger.Debug("Skipping stats recompute",
				logger.StringField("ticker", asset.Ticker), logger.ErrorField(err))
			result.Skipped = append(result.Skipped, asset.Ticker)
			continue
		}

		if err := s.statsRepo.Upsert(ctx, stats); err != nil {
			s.logger.Error("Failed to store asset stats",
				logger.StringField("ticker", asset.Ticker), logger.ErrorField(err))
			result.Skipped = append(result.Skipped, asset.Ticker)
			continue
		}
		result.Recomputed++
	}

	if result.Recomputed == 0 && len(result.Skipped) > 0 {
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

func reverse(prices []entity.HistoricalPrice) {
	for i, j := 0, len(prices)-1; i < j; i, j = i+1, j-1 {
		prices[i], prices[j] = prices[j], prices[i]
	}
}
