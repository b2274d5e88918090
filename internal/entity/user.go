package entity

import (
	"time"
)

// Subscription plans gate feature access.
const (
	PlanFree    = "free"
	PlanPremium = "premium"
)

// User is an authenticated account.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(255);unique;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// UserProfile holds per-user subscription tier and the favorites set. Exactly
// one profile exists per user.
type UserProfile struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	User             *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	SubscriptionPlan string    `gorm:"type:varchar(50);not null;default:free" json:"subscription_plan"`
	FavoriteAssets   []Asset   `gorm:"many2many:favorite_assets" json:"favorite_assets,omitempty"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the UserProfile model.
func (UserProfile) TableName() string {
	return "user_profiles"
}

// UserPredictionHistory is the append-only log of predictions a user viewed.
type UserPredictionHistory struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	UserID       uint             `gorm:"not null;index" json:"user_id"`
	User         *User            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	PredictionID uint             `gorm:"not null;index" json:"prediction_id"`
	Prediction   *PricePrediction `gorm:"foreignKey:PredictionID;constraint:OnDelete:CASCADE" json:"prediction,omitempty"`
	ViewedAt     time.Time        `gorm:"autoCreateTime" json:"viewed_at"`
}

// TableName specifies the table name for the UserPredictionHistory model.
func (UserPredictionHistory) TableName() string {
	return "user_prediction_history"
}
