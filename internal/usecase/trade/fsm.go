package trade

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/qmuntal/stateless"
)

// newTradeStateMachine binds a state machine to trade.Status.
//
// DISPUTED only permits another dispute: funding, payment, release and
// cancellation are frozen until moderation resolves the trade outside this
// service. COMPLETED and CANCELLED permit nothing.
func newTradeStateMachine(trade *domain.Trade) *stateless.StateMachine {
	sm := stateless.NewStateMachineWithExternalStorage(
		func(_ context.Context) (stateless.State, error) {
			return trade.Status, nil
		},
		func(_ context.Context, state stateless.State) error {
			status, ok := state.(domain.TradeStatus)
			if !ok {
				return fmt.Errorf("unexpected trade state %v", state)
			}
			trade.Status = status
			return nil
		},
		stateless.FiringImmediate,
	)

	sm.OnUnhandledTrigger(func(_ context.Context, state stateless.State, trigger stateless.Trigger, _ []string) error {
		return fmt.Errorf("cannot %v trade %s in status %v: %w", trigger, trade.Code, state, domain.ErrInvalidTransition)
	})

	sm.Configure(domain.TradeInitiated).
		Permit(domain.EventFund, domain.TradeEscrowFunded).
		Permit(domain.EventCancel, domain.TradeCancelled).
		Permit(domain.EventDispute, domain.TradeDisputed)

	sm.Configure(domain.TradeEscrowFunded).
		Permit(domain.EventConfirmPayment, domain.TradePaymentSent).
		Permit(domain.EventCancel, domain.TradeCancelled).
		Permit(domain.EventDispute, domain.TradeDisputed)

	sm.Configure(domain.TradePaymentSent).
		Permit(domain.EventRelease, domain.TradePaymentConfirmed).
		Permit(domain.EventDispute, domain.TradeDisputed)

	sm.Configure(domain.TradePaymentConfirmed).
		Permit(domain.EventComplete, domain.TradeCompleted).
		Permit(domain.EventDispute, domain.TradeDisputed)

	sm.Configure(domain.TradeDisputed).
		PermitReentry(domain.EventDispute).
		OnEntry(func(_ context.Context, _ ...interface{}) error {
			trade.IsDisputed = true
			return nil
		})

	return sm
}
