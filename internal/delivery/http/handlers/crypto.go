package handlers

import (
	"net/http"
	"strconv"

	"github.com/LavaJover/shvark-escrow-service/internal/delivery/http/dto/request"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) SupportedCryptos(w http.ResponseWriter, r *http.Request) {
	options, err := h.catalog.ListActive(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, options)
}

func (h *Handler) TradingPairs(w http.ResponseWriter, r *http.Request) {
	pairs, err := h.catalog.SupportedPairs(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, pairs)
}

func (h *Handler) CryptoConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.catalog.GetConfig(r.Context(), chi.URLParam(r, "symbol"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"symbol":           cfg.Symbol,
		"name":             cfg.Name,
		"network":          cfg.Network,
		"decimals":         cfg.Decimals,
		"min_amount":       cfg.MinAmount,
		"max_amount":       cfg.MaxAmount,
		"fee_percent":      cfg.FeePercent,
		"contract_address": cfg.ContractAddress,
		"is_testnet":       cfg.IsTestnet,
	})
}

func (h *Handler) CryptoNetworkInfo(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.catalog.GetConfig(r.Context(), chi.URLParam(r, "symbol"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"symbol":           cfg.Symbol,
		"network":          cfg.Network,
		"contract_address": cfg.ContractAddress,
		"is_testnet":       cfg.IsTestnet,
		"decimals":         cfg.Decimals,
	})
}

func (h *Handler) CryptoFee(w http.ResponseWriter, r *http.Request) {
	amount, err := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "amount must be a number")
		return
	}
	quote, err := h.catalog.QuoteFee(r.Context(), chi.URLParam(r, "symbol"), amount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, quote)
}

func (h *Handler) ValidateAmount(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}
	var req request.ValidateAmountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.catalog.ValidateAmount(r.Context(), chi.URLParam(r, "symbol"), req.Amount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *Handler) SeedDefaults(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}
	n, err := h.catalog.SeedDefaults(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"seeded": n})
}
