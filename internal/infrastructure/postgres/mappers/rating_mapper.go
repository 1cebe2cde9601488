package mappers

import (
	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/models"
)

func ToDomainRating(model *models.RatingModel) *domain.Rating {
	return &domain.Rating{
		ID:                  model.ID,
		RaterID:             model.RaterID,
		RatedUserID:         model.RatedUserID,
		TradeID:             model.TradeID,
		Rating:              model.Rating,
		Comment:             model.Comment,
		CommunicationRating: model.CommunicationRating,
		ReliabilityRating:   model.ReliabilityRating,
		SpeedRating:         model.SpeedRating,
		CreatedAt:           model.CreatedAt,
	}
}

func ToGORMRating(rating *domain.Rating) *models.RatingModel {
	return &models.RatingModel{
		ID:                  rating.ID,
		RaterID:             rating.RaterID,
		RatedUserID:         rating.RatedUserID,
		TradeID:             rating.TradeID,
		Rating:              rating.Rating,
		Comment:             rating.Comment,
		CommunicationRating: rating.CommunicationRating,
		ReliabilityRating:   rating.ReliabilityRating,
		SpeedRating:         rating.SpeedRating,
		CreatedAt:           rating.CreatedAt,
	}
}

func ToDomainReport(model *models.ReportModel) *domain.Report {
	return &domain.Report{
		ID:             model.ID,
		ReporterID:     model.ReporterID,
		ReportedUserID: model.ReportedUserID,
		TradeID:        model.TradeID,
		Type:           model.Type,
		Title:          model.Title,
		Description:    model.Description,
		Evidence:       model.Evidence,
		Status:         model.Status,
		CreatedAt:      model.CreatedAt,
	}
}

func ToGORMReport(report *domain.Report) *models.ReportModel {
	return &models.ReportModel{
		ID:             report.ID,
		ReporterID:     report.ReporterID,
		ReportedUserID: report.ReportedUserID,
		TradeID:        report.TradeID,
		Type:           report.Type,
		Title:          report.Title,
		Description:    report.Description,
		Evidence:       report.Evidence,
		Status:         report.Status,
		CreatedAt:      report.CreatedAt,
	}
}
