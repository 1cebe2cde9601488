package handlers

import (
	"net/http"

	"github.com/LavaJover/shvark-escrow-service/internal/delivery/http/dto/request"
	"github.com/LavaJover/shvark-escrow-service/internal/delivery/http/dto/response"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) FundEscrow(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req request.FundEscrowRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	trade, err := h.escrow.FundEscrow(r.Context(), chi.URLParam(r, "code"), userID, req.TxHash)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, response.FromTrade(trade))
}

func (h *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req request.ConfirmPaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	trade, err := h.escrow.ConfirmPayment(r.Context(), chi.URLParam(r, "code"), userID, req.PaymentReference, req.PaymentProof)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, response.FromTrade(trade))
}

func (h *Handler) ReleaseEscrow(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	trade, err := h.escrow.ReleaseEscrow(r.Context(), chi.URLParam(r, "code"), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, response.FromTrade(trade))
}

func (h *Handler) EscrowStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	status, err := h.escrow.GetEscrowStatus(r.Context(), chi.URLParam(r, "code"), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, status)
}
