package ratingdto

import "time"

type TraderSummary struct {
	ID               uint    `json:"id"`
	Username         string  `json:"username"`
	TelegramHandle   string  `json:"telegram_handle,omitempty"`
	TrustScore       float64 `json:"trust_score"`
	TotalTrades      int     `json:"total_trades"`
	SuccessfulTrades int     `json:"successful_trades"`
	IsVerified       bool    `json:"is_verified"`
}

type TraderStats struct {
	UserID           uint      `json:"user_id"`
	TotalTrades      int       `json:"total_trades"`
	SuccessfulTrades int       `json:"successful_trades"`
	SuccessRate      float64   `json:"success_rate"`
	AverageRating    float64   `json:"average_rating"`
	TotalRatings     int64     `json:"total_ratings"`
	RecentTrades     int64     `json:"recent_trades_30d"`
	TrustScore       float64   `json:"trust_score"`
	IsVerified       bool      `json:"is_verified"`
	MemberSince      time.Time `json:"member_since"`
}

type TraderVerification struct {
	Trader TraderSummary `json:"trader"`
	Stats  TraderStats   `json:"stats"`
}
