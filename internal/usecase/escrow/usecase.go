// Package escrow sequences funding, payment and release on top of the
// trade state machine.
package escrow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/logger"
	escrowdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/escrow"
	"github.com/LavaJover/shvark-escrow-service/internal/usecase/trade"
	nanoid "github.com/jaevor/go-nanoid"
	"go.uber.org/zap"
)

const releaseIDLength = 16

var (
	fundedStates = statusSet(domain.TradeEscrowFunded, domain.TradePaymentSent, domain.TradePaymentConfirmed, domain.TradeCompleted)
	sentStates   = statusSet(domain.TradePaymentSent, domain.TradePaymentConfirmed, domain.TradeCompleted)
	paidStates   = statusSet(domain.TradePaymentConfirmed, domain.TradeCompleted)
)

type DefaultEscrowUsecase struct {
	Trades trade.Transitioner
	Logger *zap.Logger

	// NewReleaseID produces the unique suffix of release tx hashes.
	NewReleaseID func() string
}

func NewDefaultEscrowUsecase(trades trade.Transitioner, log *zap.Logger) (*DefaultEscrowUsecase, error) {
	gen, err := nanoid.Standard(releaseIDLength)
	if err != nil {
		return nil, fmt.Errorf("release id generator: %w", err)
	}
	return &DefaultEscrowUsecase{
		Trades:       trades,
		Logger:       logger.OrNop(log),
		NewReleaseID: gen,
	}, nil
}

// FundEscrow records the seller's deposit transaction.
func (uc *DefaultEscrowUsecase) FundEscrow(ctx context.Context, code string, userID uint, txHash string) (*domain.Trade, error) {
	txHash = strings.TrimSpace(txHash)
	if txHash == "" {
		return nil, fmt.Errorf("escrow tx hash is required: %w", domain.ErrInvalidInput)
	}

	return uc.Trades.ApplyTransition(ctx, trade.Transition{
		Code:      code,
		ActorID:   userID,
		Event:     domain.EventFund,
		Authorize: trade.SellerOnly("fund escrow"),
		Apply: func(t *domain.Trade, _ time.Time) {
			t.EscrowTxHash = txHash
		},
	})
}

// ConfirmPayment records that the buyer sent the fiat payment.
func (uc *DefaultEscrowUsecase) ConfirmPayment(ctx context.Context, code string, userID uint, reference, proof string) (*domain.Trade, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, fmt.Errorf("payment reference is required: %w", domain.ErrInvalidInput)
	}
	proof = strings.TrimSpace(proof)

	return uc.Trades.ApplyTransition(ctx, trade.Transition{
		Code:      code,
		ActorID:   userID,
		Event:     domain.EventConfirmPayment,
		Authorize: trade.BuyerOnly("confirm payment"),
		Apply: func(t *domain.Trade, _ time.Time) {
			t.PaymentReference = reference
			t.PaymentProof = proof
		},
	})
}

// ReleaseEscrow confirms receipt and completes the trade in the same write.
func (uc *DefaultEscrowUsecase) ReleaseEscrow(ctx context.Context, code string, userID uint) (*domain.Trade, error) {
	released, err := uc.Trades.ApplyTransition(ctx, trade.Transition{
		Code:        code,
		ActorID:     userID,
		Event:       domain.EventRelease,
		Authorize:   trade.SellerOnly("release escrow"),
		AndComplete: true,
		Apply: func(t *domain.Trade, _ time.Time) {
			t.ReleaseTxHash = fmt.Sprintf("release_%s_%s", t.Code, uc.NewReleaseID())
		},
	})
	if err != nil {
		return nil, err
	}

	uc.Logger.Info("escrow released",
		zap.String("trade_code", released.Code),
		zap.String("release_tx_hash", released.ReleaseTxHash),
	)
	return released, nil
}

func (uc *DefaultEscrowUsecase) GetEscrowStatus(ctx context.Context, code string, userID uint) (*escrowdto.EscrowStatusOutput, error) {
	t, err := uc.Trades.GetTrade(ctx, code)
	if err != nil {
		return nil, err
	}
	if !t.IsParticipant(userID) {
		return nil, fmt.Errorf("user %d is not a participant of trade %s: %w", userID, t.Code, domain.ErrForbidden)
	}
	return Project(t), nil
}

// Project derives the escrow view from the trade status alone.
func Project(t *domain.Trade) *escrowdto.EscrowStatusOutput {
	return &escrowdto.EscrowStatusOutput{
		TradeCode:        t.Code,
		Status:           string(t.Status),
		EscrowFunded:     fundedStates[t.Status],
		PaymentSent:      sentStates[t.Status],
		PaymentConfirmed: paidStates[t.Status],
		Completed:        t.Status == domain.TradeCompleted,
		EscrowTxHash:     t.EscrowTxHash,
		ReleaseTxHash:    t.ReleaseTxHash,
		ExpiresAt:        t.ExpiresAt,
		PaymentDeadline:  t.PaymentDeadline,
	}
}

func statusSet(statuses ...domain.TradeStatus) map[domain.TradeStatus]bool {
	set := make(map[domain.TradeStatus]bool, len(statuses))
	for _, s := range statuses {
		set[s] = true
	}
	return set
}
