package repository

import (
	"context"

	"golang-asset-analytics/internal/entity"

	"gorm.io/gorm"
)

// UserRepository owns accounts, profiles, favorites and the prediction view
// log.
type UserRepository interface {
	CreateWithProfile(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id uint) (*entity.User, error)
	FindProfileByUserID(ctx context.Context, userID uint) (*entity.UserProfile, error)
	AddFavorite(ctx context.Context, profileID, assetID uint) error
	RemoveFavorite(ctx context.Context, profileID, assetID uint) error
	IsFavorite(ctx context.Context, profileID, assetID uint) (bool, error)
	RecordPredictionView(ctx context.Context, view *entity.UserPredictionHistory) error
	FindRecentViews(ctx context.Context, userID uint, limit int) ([]entity.UserPredictionHistory, error)
}

// NewUserRepository creates a new GORM-based user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

type userRepository struct {
	db *gorm.DB
}

// CreateWithProfile creates the account and its single profile in one
// transaction.
func (r *userRepository) CreateWithProfile(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile := entity.UserProfile{
			UserID:           user.ID,
			SubscriptionPlan: entity.PlanFree,
		}
		return tx.Create(&profile).Error
	})
}

// FindByEmail retrieves an account by email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID retrieves an account by ID.
func (r *userRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindProfileByUserID retrieves a profile with favorites preloaded.
func (r *userRepository) FindProfileByUserID(ctx context.Context, userID uint) (*entity.UserProfile, error) {
	var profile entity.UserProfile
	if err := r.db.WithContext(ctx).
		Preload("FavoriteAssets").
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// AddFavorite links an asset to a profile.
func (r *userRepository) AddFavorite(ctx context.Context, profileID, assetID uint) error {
	profile := entity.UserProfile{ID: profileID}
	asset := entity.Asset{ID: assetID}
	return r.db.WithContext(ctx).Model(&profile).Association("FavoriteAssets").Append(&asset)
}

// RemoveFavorite unlinks an asset from a profile.
func (r *userRepository) RemoveFavorite(ctx context.Context, profileID, assetID uint) error {
	profile := entity.UserProfile{ID: profileID}
	asset := entity.Asset{ID: assetID}
	return r.db.WithContext(ctx).Model(&profile).Association("FavoriteAssets").Delete(&asset)
}

// IsFavorite reports whether the pair is linked.
func (r *userRepository) IsFavorite(ctx context.Context, profileID, assetID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("favorite_assets").
		Where("user_profile_id = ? AND asset_id = ?", profileID, assetID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// RecordPredictionView appends to the view log.
func (r *userRepository) RecordPredictionView(ctx context.Context, view *entity.UserPredictionHistory) error {
	return r.db.WithContext(ctx).Create(view).Error
}

// FindRecentViews retrieves the latest view log entries for a user with
// predictions and their assets preloaded.
func (r *userRepository) FindRecentViews(ctx context.Context, userID uint, limit int) ([]entity.UserPredictionHistory, error) {
	var views []entity.UserPredictionHistory
	if err := r.db.WithContext(ctx).
		Preload("Prediction").
		Preload("Prediction.Asset").
		Where("user_id = ?", userID).
		Order("viewed_at DESC").
		Limit(limit).
		Find(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}
