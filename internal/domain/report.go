package domain

import (
	"context"
	"time"
)

type ReportType string

const (
	ReportFraud       ReportType = "FRAUD"
	ReportScam        ReportType = "SCAM"
	ReportHarassment  ReportType = "HARASSMENT"
	ReportFakePayment ReportType = "FAKE_PAYMENT"
	ReportOther       ReportType = "OTHER"
)

func (t ReportType) Valid() bool {
	switch t {
	case ReportFraud, ReportScam, ReportHarassment, ReportFakePayment, ReportOther:
		return true
	}
	return false
}

type ReportStatus string

const (
	ReportOpen        ReportStatus = "OPEN"
	ReportUnderReview ReportStatus = "UNDER_REVIEW"
	ReportResolved    ReportStatus = "RESOLVED"
)

type Report struct {
	ID             uint
	ReporterID     uint
	ReportedUserID uint
	TradeID        *uint
	Type           ReportType
	Title          string
	Description    string
	Evidence       string
	Status         ReportStatus
	CreatedAt      time.Time
}

type ReportRepository interface {
	CreateReport(ctx context.Context, report *Report) error
	ListReportsByReporter(ctx context.Context, reporterID uint, limit, offset int) ([]*Report, error)
}
