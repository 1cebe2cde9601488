package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) SearchTraders(w http.ResponseWriter, r *http.Request) {
	limit, _ := queryInt(r, "limit")
	traders, err := h.traders.SearchTraders(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, traders)
}

func (h *Handler) TopTraders(w http.ResponseWriter, r *http.Request) {
	limit, _ := queryInt(r, "limit")
	traders, err := h.traders.TopTraders(r.Context(), limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, traders)
}

func (h *Handler) TraderStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	stats, err := h.traders.GetTraderStats(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *Handler) VerifyTrader(w http.ResponseWriter, r *http.Request) {
	result, err := h.traders.VerifyTrader(r.Context(), chi.URLParam(r, "identifier"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
