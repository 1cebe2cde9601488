package mappers

import (
	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/models"
)

func ToDomainTrade(model *models.TradeModel) *domain.Trade {
	return &domain.Trade{
		ID:               model.ID,
		Code:             model.Code,
		BuyerID:          model.BuyerID,
		SellerID:         model.SellerID,
		CryptoAmount:     model.CryptoAmount,
		CryptoCurrency:   model.CryptoCurrency,
		FiatAmount:       model.FiatAmount,
		FiatCurrency:     model.FiatCurrency,
		ExchangeRate:     model.ExchangeRate,
		PaymentMethod:    model.PaymentMethod,
		Status:           model.Status,
		EscrowTxHash:     model.EscrowTxHash,
		ReleaseTxHash:    model.ReleaseTxHash,
		PaymentReference: model.PaymentReference,
		PaymentProof:     model.PaymentProof,
		IsDisputed:       model.IsDisputed,
		DisputeReason:    model.DisputeReason,
		DisputeEvidence:  model.DisputeEvidence,
		CancelReason:     model.CancelReason,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
		ExpiresAt:        model.ExpiresAt,
		PaymentDeadline:  model.PaymentDeadline,
		CompletedAt:      model.CompletedAt,
		Version:          model.Version,
	}
}

func ToGORMTrade(trade *domain.Trade) *models.TradeModel {
	return &models.TradeModel{
		ID:               trade.ID,
		Code:             trade.Code,
		BuyerID:          trade.BuyerID,
		SellerID:         trade.SellerID,
		CryptoAmount:     trade.CryptoAmount,
		CryptoCurrency:   trade.CryptoCurrency,
		FiatAmount:       trade.FiatAmount,
		FiatCurrency:     trade.FiatCurrency,
		ExchangeRate:     trade.ExchangeRate,
		PaymentMethod:    trade.PaymentMethod,
		Status:           trade.Status,
		EscrowTxHash:     trade.EscrowTxHash,
		ReleaseTxHash:    trade.ReleaseTxHash,
		PaymentReference: trade.PaymentReference,
		PaymentProof:     trade.PaymentProof,
		IsDisputed:       trade.IsDisputed,
		DisputeReason:    trade.DisputeReason,
		DisputeEvidence:  trade.DisputeEvidence,
		CancelReason:     trade.CancelReason,
		CreatedAt:        trade.CreatedAt,
		UpdatedAt:        trade.UpdatedAt,
		ExpiresAt:        trade.ExpiresAt,
		PaymentDeadline:  trade.PaymentDeadline,
		CompletedAt:      trade.CompletedAt,
		Version:          trade.Version,
	}
}

// TradeMutableColumns lists the columns a versioned update may write.
func TradeMutableColumns(trade *domain.Trade) map[string]interface{} {
	return map[string]interface{}{
		"payment_method":    trade.PaymentMethod,
		"status":            trade.Status,
		"escrow_tx_hash":    trade.EscrowTxHash,
		"release_tx_hash":   trade.ReleaseTxHash,
		"payment_reference": trade.PaymentReference,
		"payment_proof":     trade.PaymentProof,
		"is_disputed":       trade.IsDisputed,
		"dispute_reason":    trade.DisputeReason,
		"dispute_evidence":  trade.DisputeEvidence,
		"cancel_reason":     trade.CancelReason,
		"completed_at":      trade.CompletedAt,
		"updated_at":        trade.UpdatedAt,
	}
}
