package service

import (
	"context"

	"golang-asset-analytics/internal/api/dto"
	"golang-asset-analytics/internal/api/repository"
	"golang-asset-analytics/internal/entity"
	"golang-asset-analytics/pkg/logger"
)

// ProfileService serves the authenticated user's profile, favorites and
// prediction view log.
type ProfileService interface {
	GetProfile(ctx context.Context, userID uint) (*dto.ProfileResponse, error)
	ToggleFavorite(ctx context.Context, userID, assetID uint) (*dto.FavoriteToggleResponse, error)
	RecordPredictionView(ctx context.Context, userID, predictionID uint) (*dto.PredictionViewResponse, error)
}

// NewProfileService creates a new profile service.
func NewProfileService(
	userRepo repository.UserRepository,
	assetRepo repository.AssetRepository,
	predictionRepo repository.PricePredictionRepository,
	assetService AssetService,
	logger *logger.Logger,
) ProfileService {
	return &profileService{
		userRepo:       userRepo,
		assetRepo:      assetRepo,
		predictionRepo: predictionRepo,
		assetService:   assetService,
		logger:         logger,
	}
}

type profileService struct {
	userRepo       repository.UserRepository
	assetRepo      repository.AssetRepository
	predictionRepo repository.PricePredictionRepository
	assetService   AssetService
	logger         *logger.Logger
}

// GetProfile returns the user's plan and favorite assets with quotes.
func (s *profileService) GetProfile(ctx context.Context, userID uint) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.userRepo.FindProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.ProfileResponse{
		UserID:           user.ID,
		Email:            user.Email,
		SubscriptionPlan: profile.SubscriptionPlan,
		Favorites:        s.assetService.QuoteCards(ctx, profile.FavoriteAssets),
	}, nil
}

// ToggleFavorite adds the asset to the user's favorites, or removes it when
// already present.
func (s *profileService) ToggleFavorite(ctx context.Context, userID, assetID uint) (*dto.FavoriteToggleResponse, error) {
	profile, err := s.userRepo.FindProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	assets, err := s.assetRepo.FindByIDs(ctx, []uint{assetID})
	if err != nil {
		return nil, err
	}
	if len(assets) == 0 {
		return nil, ErrAssetNotFound
	}

	favorited, err := s.userRepo.IsFavorite(ctx, profile.ID, assetID)
	if err != nil {
		return nil, err
	}

	if favorited {
		err = s.userRepo.RemoveFavorite(ctx, profile.ID, assetID)
	} else {
		err = s.userRepo.AddFavorite(ctx, profile.ID, assetID)
	}
	if err != nil {
		s.logger.Error("Failed to toggle favorite",
			logger.Field("user_id", userID), logger.Field("asset_id", assetID), logger.ErrorField(err))
		return nil, err
	}

	return &dto.FavoriteToggleResponse{
		AssetID:   assetID,
		Favorited: !favorited,
	}, nil
}

// RecordPredictionView appends the prediction to the user's view log.
func (s *profileService) RecordPredictionView(ctx context.Context, userID, predictionID uint) (*dto.PredictionViewResponse, error) {
	prediction, err := s.predictionRepo.FindByID(ctx, predictionID)
	if err != nil {
		return nil, err
	}

	view := &entity.UserPredictionHistory{
		UserID:       userID,
		PredictionID: prediction.ID,
	}
	if err := s.userRepo.RecordPredictionView(ctx, view); err != nil {
		return nil, err
	}

	var ticker string
	if prediction.Asset != nil {
		ticker = prediction.Asset.Ticker
	}
	return &dto.PredictionViewResponse{
		ID:           view.ID,
		PredictionID: prediction.ID,
		Ticker:       ticker,
		ViewedAt:     view.ViewedAt,
	}, nil
}
