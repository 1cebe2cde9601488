package rating

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/usecase"
	ratingdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/rating"
	"go.uber.org/zap"
)

// CreateRating stores one rating per rater and trade, then refreshes the
// rated user's trust score.
func (uc *DefaultRatingUsecase) CreateRating(ctx context.Context, raterID uint, input *ratingdto.CreateRatingInput) (*domain.Rating, error) {
	if err := validateRatings(input); err != nil {
		return nil, err
	}

	trade, err := uc.Trades.GetTradeByCode(ctx, strings.ToUpper(strings.TrimSpace(input.TradeCode)))
	if err != nil {
		return nil, err
	}
	if !trade.IsParticipant(raterID) {
		return nil, fmt.Errorf("user %d did not take part in trade %s: %w", raterID, trade.Code, domain.ErrForbidden)
	}

	ratedID := trade.Counterparty(raterID)
	if input.RatedUserID != 0 && input.RatedUserID != ratedID {
		return nil, fmt.Errorf("user %d is not the counterparty of trade %s: %w", input.RatedUserID, trade.Code, domain.ErrInvalidParties)
	}

	rated, err := uc.Ratings.HasRated(ctx, raterID, trade.ID)
	if err != nil {
		return nil, err
	}
	if rated {
		return nil, fmt.Errorf("trade %s: %w", trade.Code, domain.ErrAlreadyRated)
	}

	rating := &domain.Rating{
		RaterID:             raterID,
		RatedUserID:         ratedID,
		TradeID:             trade.ID,
		Rating:              input.Rating,
		Comment:             strings.TrimSpace(input.Comment),
		CommunicationRating: input.CommunicationRating,
		ReliabilityRating:   input.ReliabilityRating,
		SpeedRating:         input.SpeedRating,
		CreatedAt:           uc.now(),
	}
	if err := uc.Ratings.CreateRating(ctx, rating); err != nil {
		return nil, err
	}
	uc.Metrics.RecordRatingCreated(strconv.Itoa(rating.Rating))

	// The rating is already stored, so a failed recompute is only logged.
	if uc.Trust != nil {
		if err := uc.Trust.RequestRecompute(ctx, ratedID); err != nil {
			uc.Logger.Error("failed to request trust recompute",
				zap.Uint("user_id", ratedID),
				zap.String("trade_code", trade.Code),
				zap.Error(err),
			)
		}
	}

	uc.Logger.Info("rating created",
		zap.String("trade_code", trade.Code),
		zap.Uint("rater_id", raterID),
		zap.Uint("rated_user_id", ratedID),
		zap.Int("rating", rating.Rating),
	)
	return rating, nil
}

func (uc *DefaultRatingUsecase) GetUserRatings(ctx context.Context, userID uint, limit, offset int) ([]*domain.Rating, error) {
	limit, offset = usecase.Page(limit, offset)
	return uc.Ratings.ListRatingsForUser(ctx, userID, limit, offset)
}

func validateRatings(input *ratingdto.CreateRatingInput) error {
	if strings.TrimSpace(input.TradeCode) == "" {
		return fmt.Errorf("trade code is required: %w", domain.ErrInvalidInput)
	}
	if !inRange(input.Rating) {
		return fmt.Errorf("rating %d outside [%d,%d]: %w", input.Rating, domain.MinRating, domain.MaxRating, domain.ErrInvalidInput)
	}

	subs := map[string]*int{
		"communication": input.CommunicationRating,
		"reliability":   input.ReliabilityRating,
		"speed":         input.SpeedRating,
	}
	for name, v := range subs {
		if v != nil && !inRange(*v) {
			return fmt.Errorf("%s rating %d outside [%d,%d]: %w", name, *v, domain.MinRating, domain.MaxRating, domain.ErrInvalidInput)
		}
	}
	return nil
}

func inRange(v int) bool {
	return v >= domain.MinRating && v <= domain.MaxRating
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
