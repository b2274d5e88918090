package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"golang-asset-analytics/internal/entity"
	"golang-asset-analytics/internal/worker/repository"
	"golang-asset-analytics/pkg/logger"
	"golang-asset-analytics/pkg/utils"
)

// SentimentGenerationStrategy emits one sentiment row per crypto asset, with
// the score normalized to [0,1] and the source channel sampled from the
// supported set.
type SentimentGenerationStrategy struct {
	logger        *logger.Logger
	assetRepo     repository.AssetRepository
	sentimentRepo repository.SentimentRepository

	mu  sync.Mutex
	rng *rand.Rand
}

type sentimentGenerationResult struct {
	Status    string `json:"status"`
	Generated int    `json:"generated"`
}

// NewSentimentGenerationStrategy creates a new SentimentGenerationStrategy.
func NewSentimentGenerationStrategy(
	log *logger.Logger,
	assetRepo repository.AssetRepository,
	sentimentRepo repository.SentimentRepository,
) *SentimentGenerationStrategy {
	return &SentimentGenerationStrategy{
		logger:        log,
		assetRepo:     assetRepo,
		sentimentRepo: sentimentRepo,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// GetType returns the job type this strategy handles.
func (s *SentimentGenerationStrategy) GetType() entity.JobType {
	return entity.JobTypeSentimentGeneration
}

// Execute appends one sentiment row per crypto asset.
func (s *SentimentGenerationStrategy) Execute(ctx context.Context, job *entity.Job) (string, error) {
	assets, err := s.assetRepo.FindByType(ctx, entity.AssetTypeCrypto)
	if err != nil {
		return "", fmt.Errorf("failed to load crypto assets: %w", err)
	}

	result := sentimentGenerationResult{}
	now := utils.TimeNowUTC()

	for _, asset := range assets {
		if !utils.ShouldContinue(ctx) {
			break
		}

		sentiment := s.sample(asset.ID, now)
		if err := sentiment.Validate(); err != nil {
			s.logger.Warn("Generated invalid sentiment",
				logger.StringField("ticker", asset.Ticker), logger.ErrorField(err))
			continue
		}

		if err := s.sentimentRepo.Create(ctx, &sentiment); err != nil {
			s.logger.Error("Failed to store sentiment",
				logger.StringField("ticker", asset.Ticker), logger.ErrorField(err))
			continue
		}
		result.Generated++
	}

	if result.Generated == 0 && len(assets) > 0 {
		result.Status = FAILED
	} else {
		result.Status = SUCCESS
	}

	out, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	if result.Status == FAILED {
		return string(out), fmt.Errorf("no sentiment stored for %d assets", len(assets))
	}
	return string(out), nil
}

func (s *SentimentGenerationStrategy) sample(assetID uint, now time.Time) entity.Sentiment {
	s.mu.Lock()
	score := s.rng.Float64()
	source := entity.SentimentSourceTypes[s.rng.Intn(len(entity.SentimentSourceTypes))]
	s.mu.Unlock()

	return entity.Sentiment{
		AssetID:      assetID,
		Score:        score,
		SourceType:   source,
		AnalysisDate: now,
	}
}
