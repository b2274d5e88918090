package service

import (
	"context"

	"golang-asset-analytics/internal/api/dto"
	"golang-asset-analytics/internal/api/repository"
	"golang-asset-analytics/internal/entity"
	"golang-asset-analytics/pkg/logger"
)

const (
	dashboardRecentViewLimit = 10
	dashboardCryptoNewsLimit = 10
)

// DashboardService serves the personalized authenticated view.
type DashboardService interface {
	GetDashboard(ctx context.Context, userID uint) (*dto.DashboardResponse, error)
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(
	userRepo repository.UserRepository,
	predictionRepo repository.PricePredictionRepository,
	newsRepo repository.NewsRepository,
	assetService AssetService,
	logger *logger.Logger,
) DashboardService {
	return &dashboardService{
		userRepo:       userRepo,
		predictionRepo: predictionRepo,
		newsRepo:       newsRepo,
		assetService:   assetService,
		logger:         logger,
	}
}

type dashboardService struct {
	userRepo       repository.UserRepository
	predictionRepo repository.PricePredictionRepository
	newsRepo       repository.NewsRepository
	assetService   AssetService
	logger         *logger.Logger
}

// GetDashboard returns the user's favorites with quotes, the latest
// predictions for those favorites, the recent view log and a crypto news
// feed.
func (s *dashboardService) GetDashboard(ctx context.Context, userID uint) (*dto.DashboardResponse, error) {
	profile, err := s.userRepo.FindProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	favoriteIDs := make([]uint, 0, len(profile.FavoriteAssets))
	for _, asset := range profile.FavoriteAssets {
		favoriteIDs = append(favoriteIDs, asset.ID)
	}

	predictions, err := s.predictionRepo.FindLatestByAssetIDs(ctx, favoriteIDs)
	if err != nil {
		return nil, err
	}

	views, err := s.userRepo.FindRecentViews(ctx, userID, dashboardRecentViewLimit)
	if err != nil {
		return nil, err
	}
	viewResponses := make([]dto.PredictionViewResponse, 0, len(views))
	for _, view := range views {
		viewResponses = append(viewResponses, mapPredictionViewResponse(view))
	}

	cryptoNews, err := s.newsRepo.FindLatestByAssetType(ctx, entity.AssetTypeCrypto, dashboardCryptoNewsLimit)
	if err != nil {
		return nil, err
	}
	newsResponses := make([]dto.NewsResponse, 0, len(cryptoNews))
	for _, n := range cryptoNews {
		newsResponses = append(newsResponses, mapNewsResponse(n, ""))
	}

	return &dto.DashboardResponse{
		Favorites:   s.assetService.QuoteCards(ctx, profile.FavoriteAssets),
		Predictions: s.assetService.ClassifyPredictions(ctx, predictions),
		RecentViews: viewResponses,
		CryptoNews:  newsResponses,
	}, nil
}

func mapPredictionViewResponse(view entity.UserPredictionHistory) dto.PredictionViewResponse {
	var ticker string
	if view.Prediction != nil && view.Prediction.Asset != nil {
		ticker = view.Prediction.Asset.Ticker
	}
	return dto.PredictionViewResponse{
		ID:           view.ID,
		PredictionID: view.PredictionID,
		Ticker:       ticker,
		ViewedAt:     view.ViewedAt,
	}
}
