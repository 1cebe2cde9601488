package usecase

import (
	"context"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	ratingdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/rating"
)

type RatingUsecase interface {
	CreateRating(ctx context.Context, raterID uint, input *ratingdto.CreateRatingInput) (*domain.Rating, error)
	GetUserRatings(ctx context.Context, userID uint, limit, offset int) ([]*domain.Rating, error)
	CreateReport(ctx context.Context, reporterID uint, input *ratingdto.CreateReportInput) (*domain.Report, error)
	GetUserReports(ctx context.Context, reporterID uint, limit, offset int) ([]*domain.Report, error)
}

// TraderUsecase serves public reputation lookups.
type TraderUsecase interface {
	GetTraderStats(ctx context.Context, userID uint) (*ratingdto.TraderStats, error)
	SearchTraders(ctx context.Context, query string, limit int) ([]ratingdto.TraderSummary, error)
	TopTraders(ctx context.Context, limit int) ([]ratingdto.TraderSummary, error)
	VerifyTrader(ctx context.Context, identifier string) (*ratingdto.TraderVerification, error)
}
