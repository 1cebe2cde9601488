package trade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Authorizer checks the role of a participant for one transition.
type Authorizer func(trade *domain.Trade, actorID uint) error

// Transition is one atomic read-modify-write of a trade's status.
type Transition struct {
	Code    string
	ActorID uint
	Event   domain.TradeEvent

	// Authorize narrows the participant check to a role. Nil allows either participant.
	Authorize Authorizer
	// Check runs after authorization against the freshly read trade.
	Check func(trade *domain.Trade, now time.Time) error
	// Apply records the event's artifacts after the state machine accepted it.
	Apply func(trade *domain.Trade, now time.Time)
	// AndComplete fires the internal completion in the same write and
	// bumps both participants' counters.
	AndComplete bool
	// System skips participant checks for service-initiated transitions.
	System bool
}

// Transitioner is what the escrow coordinator needs from this package.
type Transitioner interface {
	ApplyTransition(ctx context.Context, op Transition) (*domain.Trade, error)
	GetTrade(ctx context.Context, code string) (*domain.Trade, error)
}

var _ Transitioner = (*DefaultTradeUsecase)(nil)

func SellerOnly(action string) Authorizer {
	return func(trade *domain.Trade, actorID uint) error {
		if trade.SellerID != actorID {
			return fmt.Errorf("only seller can %s: %w", action, domain.ErrForbidden)
		}
		return nil
	}
}

func BuyerOnly(action string) Authorizer {
	return func(trade *domain.Trade, actorID uint) error {
		if trade.BuyerID != actorID {
			return fmt.Errorf("only buyer can %s: %w", action, domain.ErrForbidden)
		}
		return nil
	}
}

func authorize(trade *domain.Trade, op Transition) error {
	if op.System {
		return nil
	}
	if !trade.IsParticipant(op.ActorID) {
		return fmt.Errorf("user %d is not a participant of trade %s: %w", op.ActorID, trade.Code, domain.ErrForbidden)
	}
	if op.Authorize != nil {
		return op.Authorize(trade, op.ActorID)
	}
	return nil
}

// ApplyTransition reads the trade, checks actor then state, fires the event
// and writes the result guarded by the version it read. Conflicts are
// retried from a fresh read; a state that moved on in the meantime surfaces
// as ErrInvalidTransition.
func (uc *DefaultTradeUsecase) ApplyTransition(ctx context.Context, op Transition) (*domain.Trade, error) {
	started := time.Now()
	op.Code = normalizeCode(op.Code)

	var (
		result  *domain.Trade
		records []domain.TransitionRecord
	)
	err := uc.retryOnConflict(ctx, op.Event, func() error {
		trade, err := uc.TradeRepo.GetTradeByCode(ctx, op.Code)
		if err != nil {
			return err
		}
		if err := authorize(trade, op); err != nil {
			return err
		}

		now := uc.now()
		if op.Check != nil {
			if err := op.Check(trade, now); err != nil {
				return err
			}
		}

		sm := newTradeStateMachine(trade)
		from := trade.Status
		if err := sm.FireCtx(ctx, op.Event); err != nil {
			return err
		}
		if op.Apply != nil {
			op.Apply(trade, now)
		}
		applied := []domain.TransitionRecord{newRecord(trade, op.Event, from, op.ActorID, now)}

		if op.AndComplete {
			confirmed := trade.Status
			if err := sm.FireCtx(ctx, domain.EventComplete); err != nil {
				return err
			}
			trade.CompletedAt = &now
			applied = append(applied, newRecord(trade, domain.EventComplete, confirmed, domain.SystemActorID, now))
		}
		trade.UpdatedAt = now

		if op.AndComplete {
			err = uc.TradeRepo.CompleteTrade(ctx, trade)
		} else {
			err = uc.TradeRepo.UpdateTrade(ctx, trade)
		}
		if err != nil {
			return err
		}

		result, records = trade, applied
		return nil
	})
	if err != nil {
		uc.Metrics.RecordTransitionError(string(op.Event), errorKind(err))
		return nil, err
	}

	uc.emit(ctx, records, started)
	if op.AndComplete {
		uc.Metrics.RecordTradeCompleted(result.CryptoCurrency, result.CryptoAmount)
	}
	uc.Logger.Info("trade transition applied",
		zap.String("trade_code", result.Code),
		zap.String("event", string(op.Event)),
		zap.String("status", string(result.Status)),
		zap.Uint("actor_id", op.ActorID),
	)
	return result, nil
}

// retryOnConflict reruns fn while it fails with ErrConflict, up to
// MaxConflictRetries extra attempts. Any other error stops immediately.
func (uc *DefaultTradeUsecase) retryOnConflict(ctx context.Context, event domain.TradeEvent, fn func() error) error {
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = 5 * time.Millisecond
	expo.MaxInterval = 100 * time.Millisecond
	expo.MaxElapsedTime = 2 * time.Second

	policy := backoff.WithContext(backoff.WithMaxRetries(expo, uc.MaxConflictRetries), ctx)
	return backoff.Retry(func() error {
		err := fn()
		if err == nil {
			return nil
		}
		if errors.Is(err, domain.ErrConflict) {
			uc.Metrics.RecordConflictRetry(string(event))
			uc.Logger.Debug("trade write conflict, retrying", zap.String("event", string(event)))
			return err
		}
		return backoff.Permanent(err)
	}, policy)
}

func newRecord(trade *domain.Trade, event domain.TradeEvent, from domain.TradeStatus, actorID uint, at time.Time) domain.TransitionRecord {
	return domain.TransitionRecord{
		TradeCode:      trade.Code,
		Event:          event,
		From:           from,
		To:             trade.Status,
		ActorID:        actorID,
		BuyerID:        trade.BuyerID,
		SellerID:       trade.SellerID,
		CryptoAmount:   trade.CryptoAmount,
		CryptoCurrency: trade.CryptoCurrency,
		FiatAmount:     trade.FiatAmount,
		FiatCurrency:   trade.FiatCurrency,
		At:             at,
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	}
	return "internal"
}
