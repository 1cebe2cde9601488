package rating

import (
	"context"
	"fmt"
	"strings"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/usecase"
	ratingdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/rating"
	"go.uber.org/zap"
)

// CreateReport files an OPEN report for external moderation. Reports never
// touch trust scores.
func (uc *DefaultRatingUsecase) CreateReport(ctx context.Context, reporterID uint, input *ratingdto.CreateReportInput) (*domain.Report, error) {
	reportType := domain.ReportType(strings.ToUpper(strings.TrimSpace(input.Type)))
	if !reportType.Valid() {
		return nil, fmt.Errorf("report type %q: %w", input.Type, domain.ErrInvalidInput)
	}
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, fmt.Errorf("report title and description are required: %w", domain.ErrInvalidInput)
	}
	if input.ReportedUserID == reporterID {
		return nil, fmt.Errorf("cannot report yourself: %w", domain.ErrInvalidParties)
	}

	if _, err := uc.Users.GetUserByID(ctx, reporterID); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("reporter %d: %w", reporterID, domain.ErrForbidden)
		}
		return nil, err
	}
	if _, err := uc.Users.GetUserByID(ctx, input.ReportedUserID); err != nil {
		return nil, err
	}

	report := &domain.Report{
		ReporterID:     reporterID,
		ReportedUserID: input.ReportedUserID,
		Type:           reportType,
		Title:          title,
		Description:    description,
		Evidence:       strings.TrimSpace(input.Evidence),
		Status:         domain.ReportOpen,
		CreatedAt:      uc.now(),
	}
	if code := strings.TrimSpace(input.TradeCode); code != "" {
		trade, err := uc.Trades.GetTradeByCode(ctx, strings.ToUpper(code))
		if err != nil {
			return nil, err
		}
		report.TradeID = &trade.ID
	}

	if err := uc.Reports.CreateReport(ctx, report); err != nil {
		return nil, err
	}
	uc.Metrics.RecordReportCreated(string(reportType))
	uc.Logger.Info("report filed",
		zap.Uint("report_id", report.ID),
		zap.Uint("reporter_id", reporterID),
		zap.Uint("reported_user_id", input.ReportedUserID),
		zap.String("type", string(reportType)),
	)
	return report, nil
}

// GetUserReports lists reports filed by reporterID, newest first.
func (uc *DefaultRatingUsecase) GetUserReports(ctx context.Context, reporterID uint, limit, offset int) ([]*domain.Report, error) {
	limit, offset = usecase.Page(limit, offset)
	return uc.Reports.ListReportsByReporter(ctx, reporterID, limit, offset)
}
