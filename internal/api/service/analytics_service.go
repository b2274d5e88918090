package service

import (
	"context"

	"golang-asset-analytics/internal/api/dto"
	"golang-asset-analytics/internal/api/repository"
	"golang-asset-analytics/pkg/logger"
)

const (
	analyticsNewsLimit      = 30
	analyticsSentimentLimit = 30
)

// AnalyticsService serves the combined news and sentiment feed.
type AnalyticsService interface {
	GetAnalytics(ctx context.Context) (*dto.AnalyticsResponse, error)
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(newsRepo repository.NewsRepository, logger *logger.Logger) AnalyticsService {
	return &analyticsService{
		newsRepo: newsRepo,
		logger:   logger,
	}
}

type analyticsService struct {
	newsRepo repository.NewsRepository
	logger   *logger.Logger
}

// GetAnalytics returns the newest articles and sentiment samples across the
// whole catalog.
func (s *analyticsService) GetAnalytics(ctx context.Context) (*dto.AnalyticsResponse, error) {
	news, err := s.newsRepo.FindLatest(ctx, analyticsNewsLimit)
	if err != nil {
		return nil, err
	}
	newsResponses := make([]dto.NewsResponse, 0, len(news))
	for _, n := range news {
		newsResponses = append(newsResponses, mapNewsResponse(n, ""))
	}

	sentiments, err := s.newsRepo.FindLatestSentiments(ctx, analyticsSentimentLimit)
	if err != nil {
		return nil, err
	}
	sentimentResponses := make([]dto.SentimentResponse, 0, len(sentiments))
	for _, sample := range sentiments {
		sentimentResponses = append(sentimentResponses, mapSentimentResponse(sample, ""))
	}

	return &dto.AnalyticsResponse{
		News:       newsResponses,
		Sentiments: sentimentResponses,
	}, nil
}
