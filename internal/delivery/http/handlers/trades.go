package handlers

import (
	"net/http"

	"github.com/LavaJover/shvark-escrow-service/internal/delivery/http/dto/request"
	"github.com/LavaJover/shvark-escrow-service/internal/delivery/http/dto/response"
	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	tradedto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/trade"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) CreateTrade(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req request.CreateTradeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	trade, err := h.trades.CreateTrade(r.Context(), &tradedto.CreateTradeInput{
		InitiatorID:    userID,
		Direction:      domain.TradeDirection(req.Direction),
		CounterpartyID: req.CounterpartyID,
		CryptoAmount:   req.CryptoAmount,
		CryptoCurrency: req.CryptoCurrency,
		FiatAmount:     req.FiatAmount,
		FiatCurrency:   req.FiatCurrency,
		ExchangeRate:   req.ExchangeRate,
		PaymentMethod:  req.PaymentMethod,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, response.FromTrade(trade))
}

func (h *Handler) ListTrades(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	limit, okLimit := queryInt(r, "limit")
	offset, okOffset := queryInt(r, "offset")
	if !okLimit || !okOffset {
		respondError(w, http.StatusBadRequest, "limit and offset must be integers")
		return
	}

	out, err := h.trades.ListTradesForUser(r.Context(), &tradedto.ListTradesInput{
		UserID: userID,
		Status: r.URL.Query().Get("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := response.TradeListResponse{
		Trades: make([]response.TradeResponse, 0, len(out.Trades)),
		Total:  out.Total,
		Limit:  out.Limit,
		Offset: out.Offset,
	}
	for _, t := range out.Trades {
		resp.Trades = append(resp.Trades, response.FromTrade(t))
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetTrade(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	trade, err := h.trades.GetTradeForUser(r.Context(), chi.URLParam(r, "code"), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, response.FromTrade(trade))
}

// UpdateTrade takes a flat JSON object of editable fields.
func (h *Handler) UpdateTrade(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var fields map[string]string
	if !decodeJSON(w, r, &fields) {
		return
	}

	trade, err := h.trades.UpdateTrade(r.Context(), &tradedto.UpdateTradeInput{
		Code:   chi.URLParam(r, "code"),
		UserID: userID,
		Fields: fields,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, response.FromTrade(trade))
}

func (h *Handler) CancelTrade(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req request.CancelTradeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	trade, err := h.trades.CancelTrade(r.Context(), chi.URLParam(r, "code"), userID, req.Reason)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, response.FromTrade(trade))
}

func (h *Handler) DisputeTrade(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req request.DisputeTradeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	trade, err := h.trades.DisputeTrade(r.Context(), chi.URLParam(r, "code"), userID, req.Reason, req.Evidence)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, response.FromTrade(trade))
}
