package dto

import "time"

// ProfileResponse is the authenticated user's profile view.
type ProfileResponse struct {
	UserID           uint                 `json:"user_id"`
	Email            string               `json:"email"`
	SubscriptionPlan string               `json:"subscription_plan"`
	Favorites        []AssetQuoteResponse `json:"favorites"`
}

// FavoriteToggleResponse reports the state of a favorite after toggling.
type FavoriteToggleResponse struct {
	AssetID   uint `json:"asset_id"`
	Favorited bool `json:"favorited"`
}

// PredictionViewResponse is one recorded prediction view.
type PredictionViewResponse struct {
	ID           uint      `json:"id"`
	PredictionID uint      `json:"prediction_id"`
	Ticker       string    `json:"ticker,omitempty"`
	ViewedAt     time.Time `json:"viewed_at"`
}

// DashboardResponse is the personalized authenticated view.
type DashboardResponse struct {
	Favorites   []AssetQuoteResponse     `json:"favorites"`
	Predictions []PredictionResponse     `json:"predictions"`
	RecentViews []PredictionViewResponse `json:"recent_views"`
	CryptoNews  []NewsResponse           `json:"crypto_news"`
}

// ContactRequest is the DTO for the contact form.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Topic   string `json:"topic"`
	Message string `json:"message"`
}
