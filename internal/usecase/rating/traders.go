package rating

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	ratingdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/rating"
)

func (uc *DefaultRatingUsecase) GetTraderStats(ctx context.Context, userID uint) (*ratingdto.TraderStats, error) {
	user, err := uc.Users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.stats(ctx, user)
}

func (uc *DefaultRatingUsecase) SearchTraders(ctx context.Context, query string, limit int) ([]ratingdto.TraderSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is required: %w", domain.ErrInvalidInput)
	}
	users, err := uc.Users.SearchUsers(ctx, query, searchLimit(limit))
	if err != nil {
		return nil, err
	}
	return summaries(users), nil
}

// TopTraders lists active traders by stored trust score.
func (uc *DefaultRatingUsecase) TopTraders(ctx context.Context, limit int) ([]ratingdto.TraderSummary, error) {
	users, err := uc.Users.TopTraders(ctx, searchLimit(limit))
	if err != nil {
		return nil, err
	}
	return summaries(users), nil
}

// VerifyTrader looks a trader up by username, telegram handle or wallet
// address and returns their reputation.
func (uc *DefaultRatingUsecase) VerifyTrader(ctx context.Context, identifier string) (*ratingdto.TraderVerification, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, fmt.Errorf("trader identifier is required: %w", domain.ErrInvalidInput)
	}
	user, err := uc.Users.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	stats, err := uc.stats(ctx, user)
	if err != nil {
		return nil, err
	}
	return &ratingdto.TraderVerification{Trader: summary(user), Stats: *stats}, nil
}

func (uc *DefaultRatingUsecase) stats(ctx context.Context, user *domain.User) (*ratingdto.TraderStats, error) {
	ratings, err := uc.Ratings.SummaryForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	recent, err := uc.Trades.CountUserTradesSince(ctx, user.ID, uc.now().Add(-recentTradesWindow))
	if err != nil {
		return nil, err
	}

	score := user.TrustScore
	if uc.Scorer != nil {
		if score, err = uc.Scorer.Score(ctx, user.ID); err != nil {
			return nil, err
		}
	}

	var successRate float64
	if user.TotalTrades > 0 {
		successRate = float64(user.SuccessfulTrades) / float64(user.TotalTrades) * 100
	}

	return &ratingdto.TraderStats{
		UserID:           user.ID,
		TotalTrades:      user.TotalTrades,
		SuccessfulTrades: user.SuccessfulTrades,
		SuccessRate:      round2(successRate),
		AverageRating:    round2(ratings.Average),
		TotalRatings:     ratings.Count,
		RecentTrades:     recent,
		TrustScore:       score,
		IsVerified:       user.IsVerified,
		MemberSince:      user.CreatedAt,
	}, nil
}

func searchLimit(limit int) int {
	if limit <= 0 {
		return defaultSearchLimit
	}
	if limit > maxSearchLimit {
		return maxSearchLimit
	}
	return limit
}

func summary(u *domain.User) ratingdto.TraderSummary {
	return ratingdto.TraderSummary{
		ID:               u.ID,
		Username:         u.Username,
		TelegramHandle:   u.TelegramHandle,
		TrustScore:       u.TrustScore,
		TotalTrades:      u.TotalTrades,
		SuccessfulTrades: u.SuccessfulTrades,
		IsVerified:       u.IsVerified,
	}
}

func summaries(users []*domain.User) []ratingdto.TraderSummary {
	out := make([]ratingdto.TraderSummary, 0, len(users))
	for _, u := range users {
		out = append(out, summary(u))
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
