package trust

import (
	"context"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

type Service struct {
	Users   domain.UserRepository
	Ratings domain.RatingRepository
	Metrics *metrics.EscrowMetrics
	Logger  *zap.Logger
}

func NewService(users domain.UserRepository, ratings domain.RatingRepository, m *metrics.EscrowMetrics, log *zap.Logger) *Service {
	return &Service{
		Users:   users,
		Ratings: ratings,
		Metrics: m,
		Logger:  logger.OrNop(log),
	}
}

// Recompute stores a fresh score for userID. The repository locks the user
// row and re-reads the whole rating aggregate, so the last writer always
// works from the latest data.
func (s *Service) Recompute(ctx context.Context, userID uint) (float64, error) {
	started := time.Now()
	score, err := s.Users.UpdateTrustScore(ctx, userID, ComputeTrustScore)
	s.Metrics.RecordTrustRecompute(started, err)
	if err != nil {
		return 0, fmt.Errorf("recompute trust score for user %d: %w", userID, err)
	}

	s.Logger.Debug("trust score recomputed", zap.Uint("user_id", userID), zap.Float64("trust_score", score))
	return score, nil
}

// RequestRecompute runs the recomputation inline.
func (s *Service) RequestRecompute(ctx context.Context, userID uint) error {
	_, err := s.Recompute(ctx, userID)
	return err
}

// Score computes the current score without storing it.
func (s *Service) Score(ctx context.Context, userID uint) (float64, error) {
	user, err := s.Users.GetUserByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	summary, err := s.Ratings.SummaryForUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return ComputeTrustScore(user, summary), nil
}
