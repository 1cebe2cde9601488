package trade

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

// DisputeTrade moves a non-terminal trade into DISPUTED. Disputing again
// replaces the reason and evidence.
func (uc *DefaultTradeUsecase) DisputeTrade(ctx context.Context, code string, userID uint, reason, evidence string) (*domain.Trade, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("dispute reason is required: %w", domain.ErrInvalidInput)
	}
	evidence = strings.TrimSpace(evidence)

	return uc.ApplyTransition(ctx, Transition{
		Code:    code,
		ActorID: userID,
		Event:   domain.EventDispute,
		Apply: func(trade *domain.Trade, _ time.Time) {
			trade.DisputeReason = reason
			trade.DisputeEvidence = evidence
		},
	})
}
