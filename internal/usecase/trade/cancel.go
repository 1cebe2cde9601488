package trade

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"go.uber.org/zap"
)

// CancelTrade lets either participant cancel before payment is sent.
func (uc *DefaultTradeUsecase) CancelTrade(ctx context.Context, code string, userID uint, reason string) (*domain.Trade, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("cancel reason is required: %w", domain.ErrInvalidInput)
	}

	return uc.ApplyTransition(ctx, Transition{
		Code:    code,
		ActorID: userID,
		Event:   domain.EventCancel,
		Apply: func(trade *domain.Trade, _ time.Time) {
			trade.CancelReason = reason
		},
	})
}

// CancelExpiredTrades cancels one batch of trades past expires_at, or still
// unpaid past payment_deadline, as the system actor. Trades that moved on
// since the scan are skipped.
func (uc *DefaultTradeUsecase) CancelExpiredTrades(ctx context.Context) (int, error) {
	trades, err := uc.TradeRepo.FindExpiredTrades(ctx, uc.now(), uc.ExpiryBatchSize)
	if err != nil {
		return 0, err
	}

	var (
		cancelled int
		firstErr  error
	)
	for _, t := range trades {
		_, err := uc.ApplyTransition(ctx, Transition{
			Code:    t.Code,
			ActorID: domain.SystemActorID,
			Event:   domain.EventCancel,
			System:  true,
			Check:   stillExpired,
			Apply: func(trade *domain.Trade, _ time.Time) {
				trade.CancelReason = ExpiredReason
			},
		})
		switch {
		case err == nil:
			cancelled++
		case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrConflict):
			uc.Logger.Debug("expired trade moved on, skipping", zap.String("trade_code", t.Code), zap.Error(err))
		default:
			uc.Logger.Error("failed to cancel expired trade", zap.String("trade_code", t.Code), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	uc.Metrics.RecordExpiredCancelled(cancelled)
	if cancelled > 0 {
		uc.Logger.Info("expired trades cancelled", zap.Int("count", cancelled))
	}
	return cancelled, firstErr
}

func stillExpired(trade *domain.Trade, now time.Time) error {
	switch {
	case trade.Status == domain.TradeInitiated && now.After(trade.ExpiresAt):
		return nil
	case trade.Status == domain.TradeEscrowFunded && (now.After(trade.ExpiresAt) || now.After(trade.PaymentDeadline)):
		return nil
	}
	return fmt.Errorf("trade %s is no longer expired: %w", trade.Code, domain.ErrInvalidTransition)
}
