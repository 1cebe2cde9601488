package models

import (
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

type RatingModel struct {
	ID                  uint `gorm:"primaryKey"`
	RaterID             uint `gorm:"not null;uniqueIndex:idx_rating_rater_trade"`
	TradeID             uint `gorm:"not null;uniqueIndex:idx_rating_rater_trade"`
	RatedUserID         uint `gorm:"not null;index"`
	Rating              int  `gorm:"not null"`
	Comment             string
	CommunicationRating *int
	ReliabilityRating   *int
	SpeedRating         *int
	CreatedAt           time.Time `gorm:"index"`
}

func (RatingModel) TableName() string {
	return "ratings"
}

type ReportModel struct {
	ID             uint `gorm:"primaryKey"`
	ReporterID     uint `gorm:"not null;index"`
	ReportedUserID uint `gorm:"not null;index"`
	TradeID        *uint
	Type           domain.ReportType   `gorm:"size:32;not null"`
	Title          string              `gorm:"size:200;not null"`
	Description    string              `gorm:"not null"`
	Evidence       string
	Status         domain.ReportStatus `gorm:"size:32;not null"`
	CreatedAt      time.Time           `gorm:"index"`
}

func (ReportModel) TableName() string {
	return "reports"
}
