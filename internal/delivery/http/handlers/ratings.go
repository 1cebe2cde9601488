package handlers

import (
	"net/http"

	"github.com/LavaJover/shvark-escrow-service/internal/delivery/http/dto/request"
	"github.com/LavaJover/shvark-escrow-service/internal/delivery/http/dto/response"
	ratingdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/rating"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) CreateRating(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req request.CreateRatingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rating, err := h.ratings.CreateRating(r.Context(), userID, &ratingdto.CreateRatingInput{
		TradeCode:           req.TradeCode,
		RatedUserID:         req.RatedUserID,
		Rating:              req.Rating,
		Comment:             req.Comment,
		CommunicationRating: req.CommunicationRating,
		ReliabilityRating:   req.ReliabilityRating,
		SpeedRating:         req.SpeedRating,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, response.FromRating(rating))
}

func (h *Handler) UserRatings(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	limit, okLimit := queryInt(r, "limit")
	offset, okOffset := queryInt(r, "offset")
	if !okLimit || !okOffset {
		respondError(w, http.StatusBadRequest, "limit and offset must be integers")
		return
	}

	ratings, err := h.ratings.GetUserRatings(r.Context(), userID, limit, offset)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]response.RatingResponse, 0, len(ratings))
	for _, rating := range ratings {
		out = append(out, response.FromRating(rating))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req request.CreateReportRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	report, err := h.ratings.CreateReport(r.Context(), userID, &ratingdto.CreateReportInput{
		ReportedUserID: req.ReportedUserID,
		TradeCode:      req.TradeCode,
		Type:           req.ReportType,
		Title:          req.Title,
		Description:    req.Description,
		Evidence:       req.Evidence,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, response.FromReport(report))
}

func (h *Handler) MyReports(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	limit, _ := queryInt(r, "limit")
	offset, _ := queryInt(r, "offset")

	reports, err := h.ratings.GetUserReports(r.Context(), userID, limit, offset)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]response.ReportResponse, 0, len(reports))
	for _, report := range reports {
		out = append(out, response.FromReport(report))
	}
	respondJSON(w, http.StatusOK, out)
}
