package response

import (
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type TradeResponse struct {
	Code             string     `json:"trade_code"`
	BuyerID          uint       `json:"buyer_id"`
	SellerID         uint       `json:"seller_id"`
	CryptoAmount     float64    `json:"crypto_amount"`
	CryptoCurrency   string     `json:"crypto_currency"`
	FiatAmount       float64    `json:"fiat_amount"`
	FiatCurrency     string     `json:"fiat_currency"`
	ExchangeRate     float64    `json:"exchange_rate"`
	PaymentMethod    string     `json:"payment_method,omitempty"`
	Status           string     `json:"status"`
	EscrowTxHash     string     `json:"escrow_tx_hash,omitempty"`
	ReleaseTxHash    string     `json:"release_tx_hash,omitempty"`
	PaymentReference string     `json:"payment_reference,omitempty"`
	PaymentProof     string     `json:"payment_proof,omitempty"`
	IsDisputed       bool       `json:"is_disputed"`
	DisputeReason    string     `json:"dispute_reason,omitempty"`
	DisputeEvidence  string     `json:"dispute_evidence,omitempty"`
	CancelReason     string     `json:"cancel_reason,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	ExpiresAt        time.Time  `json:"expires_at"`
	PaymentDeadline  time.Time  `json:"payment_deadline"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

func FromTrade(t *domain.Trade) TradeResponse {
	return TradeResponse{
		Code:             t.Code,
		BuyerID:          t.BuyerID,
		SellerID:         t.SellerID,
		CryptoAmount:     t.CryptoAmount,
		CryptoCurrency:   t.CryptoCurrency,
		FiatAmount:       t.FiatAmount,
		FiatCurrency:     t.FiatCurrency,
		ExchangeRate:     t.ExchangeRate,
		PaymentMethod:    t.PaymentMethod,
		Status:           string(t.Status),
		EscrowTxHash:     t.EscrowTxHash,
		ReleaseTxHash:    t.ReleaseTxHash,
		PaymentReference: t.PaymentReference,
		PaymentProof:     t.PaymentProof,
		IsDisputed:       t.IsDisputed,
		DisputeReason:    t.DisputeReason,
		DisputeEvidence:  t.DisputeEvidence,
		CancelReason:     t.CancelReason,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
		ExpiresAt:        t.ExpiresAt,
		PaymentDeadline:  t.PaymentDeadline,
		CompletedAt:      t.CompletedAt,
	}
}

type TradeListResponse struct {
	Trades []TradeResponse `json:"trades"`
	Total  int64           `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}
