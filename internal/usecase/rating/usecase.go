// Package rating records post-trade ratings and misconduct reports and
// serves the trader reputation queries built on them.
package rating

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
	recentTradesWindow = 30 * 24 * time.Hour
)

// TrustRecomputer refreshes a stored trust score, inline or through a queue.
type TrustRecomputer interface {
	RequestRecompute(ctx context.Context, userID uint) error
}

// TrustScorer computes a score from current data without storing it.
type TrustScorer interface {
	Score(ctx context.Context, userID uint) (float64, error)
}

type DefaultRatingUsecase struct {
	Trades  domain.TradeRepository
	Users   domain.UserRepository
	Ratings domain.RatingRepository
	Reports domain.ReportRepository
	Trust   TrustRecomputer
	Scorer  TrustScorer
	Metrics *metrics.EscrowMetrics
	Logger  *zap.Logger

	Now func() time.Time
}

func NewDefaultRatingUsecase(
	trades domain.TradeRepository,
	users domain.UserRepository,
	ratings domain.RatingRepository,
	reports domain.ReportRepository,
	trust TrustRecomputer,
	scorer TrustScorer,
	escrowMetrics *metrics.EscrowMetrics,
	log *zap.Logger,
) *DefaultRatingUsecase {
	return &DefaultRatingUsecase{
		Trades:  trades,
		Users:   users,
		Ratings: ratings,
		Reports: reports,
		Trust:   trust,
		Scorer:  scorer,
		Metrics: escrowMetrics,
		Logger:  logger.OrNop(log),
		Now:     func() time.Time { return time.Now().UTC() },
	}
}

func (uc *DefaultRatingUsecase) now() time.Time {
	if uc.Now == nil {
		return time.Now().UTC()
	}
	return uc.Now()
}
