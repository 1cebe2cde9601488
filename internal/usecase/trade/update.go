package trade

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	tradedto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/trade"
	"go.uber.org/zap"
)

type patchRule struct {
	status    domain.TradeStatus
	buyerOnly bool
	allowZero bool
	apply     func(trade *domain.Trade, value string)
}

// patchRules is the allow-list of fields a participant may edit and the
// status each field is editable in.
var patchRules = map[string]patchRule{
	"payment_method": {
		status: domain.TradeInitiated,
		apply:  func(t *domain.Trade, v string) { t.PaymentMethod = v },
	},
	"payment_reference": {
		status:    domain.TradePaymentSent,
		buyerOnly: true,
		apply:     func(t *domain.Trade, v string) { t.PaymentReference = v },
	},
	"payment_proof": {
		status:    domain.TradePaymentSent,
		buyerOnly: true,
		allowZero: true,
		apply:     func(t *domain.Trade, v string) { t.PaymentProof = v },
	},
}

// UpdateTrade applies a partial update of allow-listed, non-status fields.
func (uc *DefaultTradeUsecase) UpdateTrade(ctx context.Context, input *tradedto.UpdateTradeInput) (*domain.Trade, error) {
	if len(input.Fields) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrInvalidInput)
	}

	fields := make([]string, 0, len(input.Fields))
	values := make(map[string]string, len(input.Fields))
	for name, value := range input.Fields {
		rule, ok := patchRules[name]
		if !ok {
			return nil, fmt.Errorf("field %q is not editable: %w", name, domain.ErrInvalidInput)
		}
		value = strings.TrimSpace(value)
		if value == "" && !rule.allowZero {
			return nil, fmt.Errorf("field %q must not be empty: %w", name, domain.ErrInvalidInput)
		}
		fields = append(fields, name)
		values[name] = value
	}
	sort.Strings(fields)

	code := normalizeCode(input.Code)
	started := time.Now()

	var result *domain.Trade
	err := uc.retryOnConflict(ctx, domain.EventUpdate, func() error {
		trade, err := uc.TradeRepo.GetTradeByCode(ctx, code)
		if err != nil {
			return err
		}
		if !trade.IsParticipant(input.UserID) {
			return fmt.Errorf("user %d is not a participant of trade %s: %w", input.UserID, trade.Code, domain.ErrForbidden)
		}

		for _, name := range fields {
			rule := patchRules[name]
			if rule.buyerOnly && trade.BuyerID != input.UserID {
				return fmt.Errorf("only buyer can set %s: %w", name, domain.ErrForbidden)
			}
			if trade.Status != rule.status {
				return fmt.Errorf("cannot set %s on trade %s in status %s: %w", name, trade.Code, trade.Status, domain.ErrInvalidTransition)
			}
			rule.apply(trade, values[name])
		}

		trade.UpdatedAt = uc.now()
		if err := uc.TradeRepo.UpdateTrade(ctx, trade); err != nil {
			return err
		}
		result = trade
		return nil
	})
	if err != nil {
		uc.Metrics.RecordTransitionError(string(domain.EventUpdate), errorKind(err))
		return nil, err
	}

	uc.emit(ctx, []domain.TransitionRecord{newRecord(result, domain.EventUpdate, result.Status, input.UserID, result.UpdatedAt)}, started)
	uc.Logger.Info("trade updated",
		zap.String("trade_code", result.Code),
		zap.Strings("fields", fields),
		zap.Uint("user_id", input.UserID),
	)
	return result, nil
}
