package domain

import (
	"context"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Rating struct {
	ID                  uint
	RaterID             uint
	RatedUserID         uint
	TradeID             uint
	Rating              int
	Comment             string
	CommunicationRating *int
	ReliabilityRating   *int
	SpeedRating         *int
	CreatedAt           time.Time
}

// RatingSummary aggregates every rating received by one user.
type RatingSummary struct {
	Count   int64
	Average float64
}

type RatingRepository interface {
	// CreateRating returns ErrAlreadyRated when (rater, trade) already exists.
	CreateRating(ctx context.Context, rating *Rating) error
	HasRated(ctx context.Context, raterID, tradeID uint) (bool, error)
	ListRatingsForUser(ctx context.Context, userID uint, limit, offset int) ([]*Rating, error)
	SummaryForUser(ctx context.Context, userID uint) (RatingSummary, error)
}
