package repository

import (
	"context"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type DefaultRatingRepository struct {
	DB *gorm.DB
}

func NewDefaultRatingRepository(db *gorm.DB) *DefaultRatingRepository {
	return &DefaultRatingRepository{DB: db}
}

func (r *DefaultRatingRepository) CreateRating(ctx context.Context, rating *domain.Rating) error {
	model := mappers.ToGORMRating(rating)
	if err := r.DB.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyRated
		}
		return errors.Wrap(err, "failed to create rating")
	}
	rating.ID = model.ID
	rating.CreatedAt = model.CreatedAt
	return nil
}

func (r *DefaultRatingRepository) HasRated(ctx context.Context, raterID, tradeID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.RatingModel{}).
		Where("rater_id = ? AND trade_id = ?", raterID, tradeID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check existing rating")
	}
	return count > 0, nil
}

func (r *DefaultRatingRepository) ListRatingsForUser(ctx context.Context, userID uint, limit, offset int) ([]*domain.Rating, error) {
	var ratingModels []models.RatingModel
	err := r.DB.WithContext(ctx).
		Where("rated_user_id = ?", userID).
		Order("created_at desc, id desc").
		Offset(offset).
		Limit(limit).
		Find(&ratingModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list ratings")
	}

	ratings := make([]*domain.Rating, len(ratingModels))
	for i := range ratingModels {
		ratings[i] = mappers.ToDomainRating(&ratingModels[i])
	}
	return ratings, nil
}

func (r *DefaultRatingRepository) SummaryForUser(ctx context.Context, userID uint) (domain.RatingSummary, error) {
	return ratingSummary(r.DB.WithContext(ctx), userID)
}

func ratingSummary(tx *gorm.DB, userID uint) (domain.RatingSummary, error) {
	var row struct {
		Count   int64
		Average float64
	}
	err := tx.Model(&models.RatingModel{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS average").
		Where("rated_user_id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return domain.RatingSummary{}, errors.Wrapf(err, "failed to aggregate ratings for user %d", userID)
	}
	return domain.RatingSummary{Count: row.Count, Average: row.Average}, nil
}

type DefaultReportRepository struct {
	DB *gorm.DB
}

func NewDefaultReportRepository(db *gorm.DB) *DefaultReportRepository {
	return &DefaultReportRepository{DB: db}
}

func (r *DefaultReportRepository) CreateReport(ctx context.Context, report *domain.Report) error {
	model := mappers.ToGORMReport(report)
	if err := r.DB.WithContext(ctx).Create(model).Error; err != nil {
		return errors.Wrap(err, "failed to create report")
	}
	report.ID = model.ID
	report.CreatedAt = model.CreatedAt
	return nil
}

func (r *DefaultReportRepository) ListReportsByReporter(ctx context.Context, reporterID uint, limit, offset int) ([]*domain.Report, error) {
	var reportModels []models.ReportModel
	err := r.DB.WithContext(ctx).
		Where("reporter_id = ?", reporterID).
		Order("created_at desc, id desc").
		Offset(offset).
		Limit(limit).
		Find(&reportModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reports")
	}

	reports := make([]*domain.Report, len(reportModels))
	for i := range reportModels {
		reports[i] = mappers.ToDomainReport(&reportModels[i])
	}
	return reports, nil
}
