package response

import (
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

type RatingResponse struct {
	ID                  uint      `json:"id"`
	RaterID             uint      `json:"rater_id"`
	RatedUserID         uint      `json:"rated_user_id"`
	TradeID             uint      `json:"trade_id"`
	Rating              int       `json:"rating"`
	Comment             string    `json:"comment,omitempty"`
	CommunicationRating *int      `json:"communication_rating,omitempty"`
	ReliabilityRating   *int      `json:"reliability_rating,omitempty"`
	SpeedRating         *int      `json:"speed_rating,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

func FromRating(r *domain.Rating) RatingResponse {
	return RatingResponse{
		ID:                  r.ID,
		RaterID:             r.RaterID,
		RatedUserID:         r.RatedUserID,
		TradeID:             r.TradeID,
		Rating:              r.Rating,
		Comment:             r.Comment,
		CommunicationRating: r.CommunicationRating,
		ReliabilityRating:   r.ReliabilityRating,
		SpeedRating:         r.SpeedRating,
		CreatedAt:           r.CreatedAt,
	}
}

type ReportResponse struct {
	ID             uint      `json:"id"`
	ReporterID     uint      `json:"reporter_id"`
	ReportedUserID uint      `json:"reported_user_id"`
	TradeID        *uint     `json:"trade_id,omitempty"`
	ReportType     string    `json:"report_type"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Evidence       string    `json:"evidence,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromReport(r *domain.Report) ReportResponse {
	return ReportResponse{
		ID:             r.ID,
		ReporterID:     r.ReporterID,
		ReportedUserID: r.ReportedUserID,
		TradeID:        r.TradeID,
		ReportType:     string(r.Type),
		Title:          r.Title,
		Description:    r.Description,
		Evidence:       r.Evidence,
		Status:         string(r.Status),
		CreatedAt:      r.CreatedAt,
	}
}
