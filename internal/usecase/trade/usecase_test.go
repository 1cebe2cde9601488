package trade

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/repository"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/sqlitetest"
	"github.com/LavaJover/shvark-escrow-service/internal/usecase/catalog"
	tradedto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu      sync.Mutex
	records []domain.TransitionRecord
}

func (p *recordingPublisher) PublishTradeEvent(_ context.Context, rec domain.TransitionRecord) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.records = append(p.records, rec)
	return nil
}

func (p *recordingPublisher) events() []domain.TradeEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.TradeEvent, 0, len(p.records))
	for _, rec := range p.records {
		out = append(out, rec.Event)
	}
	return out
}

// conflictingRepo fails the first n versioned writes with ErrConflict.
type conflictingRepo struct {
	domain.TradeRepository
	mu        sync.Mutex
	conflicts int
	writes    int
}

func (r *conflictingRepo) UpdateTrade(ctx context.Context, trade *domain.Trade) error {
	r.mu.Lock()
	r.writes++
	if r.conflicts > 0 {
		r.conflicts--
		r.mu.Unlock()
		return fmt.Errorf("stale version: %w", domain.ErrConflict)
	}
	r.mu.Unlock()
	return r.TradeRepository.UpdateTrade(ctx, trade)
}

type fixture struct {
	db        *gorm.DB
	uc        *DefaultTradeUsecase
	publisher *recordingPublisher
	audit     *logger.PGTradeEventLogger
	users     domain.UserRepository
	buyer     *domain.User
	seller    *domain.User
	outsider  *domain.User
	clock     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := sqlitetest.Open(t)

	catalogUC := catalog.NewDefaultCatalogUsecase(repository.NewDefaultCryptoConfigRepository(db), nil)
	_, err := catalogUC.SeedDefaults(ctx)
	require.NoError(t, err)

	users := repository.NewDefaultUserRepository(db)
	mkUser := func(name string) *domain.User {
		u := &domain.User{Username: name, IsActive: true}
		require.NoError(t, users.CreateUser(ctx, u))
		return u
	}

	f := &fixture{
		db:        db,
		publisher: &recordingPublisher{},
		audit:     logger.NewPGTradeEventLogger(db),
		users:     users,
		buyer:     mkUser("buyer"),
		seller:    mkUser("seller"),
		outsider:  mkUser("outsider"),
		clock:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.uc = NewDefaultTradeUsecase(repository.NewDefaultTradeRepository(db), users, catalogUC, f.publisher, f.audit, nil, nil)
	f.uc.Now = func() time.Time { return f.clock }
	return f
}

func (f *fixture) createTrade(t *testing.T) *domain.Trade {
	t.Helper()
	trade, err := f.uc.CreateTrade(context.Background(), &tradedto.CreateTradeInput{
		InitiatorID:    f.buyer.ID,
		Direction:      domain.DirectionBuy,
		CounterpartyID: f.seller.ID,
		CryptoAmount:   100,
		CryptoCurrency: "usdt",
		FiatAmount:     160000,
		ExchangeRate:   1600,
		PaymentMethod:  "bank_transfer",
	})
	require.NoError(t, err)
	return trade
}

func (f *fixture) fire(t *testing.T, code string, actor uint, event domain.TradeEvent, andComplete bool) *domain.Trade {
	t.Helper()
	trade, err := f.uc.ApplyTransition(context.Background(), Transition{Code: code, ActorID: actor, Event: event, AndComplete: andComplete})
	require.NoError(t, err)
	return trade
}

func TestCreateTradeAssignsRolesAndDefaults(t *testing.T) {
	f := newFixture(t)
	trade := f.createTrade(t)

	assert.True(t, IsTradeCode(trade.Code), trade.Code)
	assert.Equal(t, domain.TradeInitiated, trade.Status)
	assert.Equal(t, f.buyer.ID, trade.BuyerID)
	assert.Equal(t, f.seller.ID, trade.SellerID)
	assert.Equal(t, "USDT", trade.CryptoCurrency)
	assert.Equal(t, "NGN", trade.FiatCurrency)
	assert.Equal(t, f.clock.Add(24*time.Hour), trade.ExpiresAt)
	assert.Equal(t, f.clock.Add(2*time.Hour), trade.PaymentDeadline)

	sell, err := f.uc.CreateTrade(context.Background(), &tradedto.CreateTradeInput{
		InitiatorID:    f.buyer.ID,
		Direction:      "sell",
		CounterpartyID: f.seller.ID,
		CryptoAmount:   0.5,
		CryptoCurrency: "BTC",
		FiatAmount:     50000,
		FiatCurrency:   "usd",
		ExchangeRate:   100000,
	})
	require.NoError(t, err)
	assert.Equal(t, f.seller.ID, sell.BuyerID)
	assert.Equal(t, f.buyer.ID, sell.SellerID)
	assert.Equal(t, "USD", sell.FiatCurrency)

	assert.Eventually(t, func() bool { return len(f.publisher.events()) == 2 }, time.Second, 10*time.Millisecond)
	history, err := f.audit.History(context.Background(), trade.Code)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, string(domain.EventCreate), history[0].Event)
}

func TestCreateTradeValidation(t *testing.T) {
	f := newFixture(t)
	valid := func() *tradedto.CreateTradeInput {
		return &tradedto.CreateTradeInput{
			InitiatorID:    f.buyer.ID,
			Direction:      domain.DirectionBuy,
			CounterpartyID: f.seller.ID,
			CryptoAmount:   100,
			CryptoCurrency: "USDT",
			FiatAmount:     160000,
			ExchangeRate:   1600,
		}
	}

	tests := []struct {
		name   string
		mutate func(in *tradedto.CreateTradeInput)
		want   error
	}{
		{"bad direction", func(in *tradedto.CreateTradeInput) { in.Direction = "HOLD" }, domain.ErrInvalidInput},
		{"zero crypto", func(in *tradedto.CreateTradeInput) { in.CryptoAmount = 0 }, domain.ErrInvalidAmount},
		{"below minimum", func(in *tradedto.CreateTradeInput) { in.CryptoAmount = 9.99 }, domain.ErrInvalidAmount},
		{"above maximum", func(in *tradedto.CreateTradeInput) { in.CryptoAmount = 100000.01 }, domain.ErrInvalidAmount},
		{"unknown currency", func(in *tradedto.CreateTradeInput) { in.CryptoCurrency = "DOGE" }, domain.ErrInvalidAmount},
		{"zero fiat", func(in *tradedto.CreateTradeInput) { in.FiatAmount = 0 }, domain.ErrInvalidAmount},
		{"negative rate", func(in *tradedto.CreateTradeInput) { in.ExchangeRate = -1 }, domain.ErrInvalidAmount},
		{"self trade", func(in *tradedto.CreateTradeInput) { in.CounterpartyID = f.buyer.ID }, domain.ErrInvalidParties},
		{"no counterparty", func(in *tradedto.CreateTradeInput) { in.CounterpartyID = 0 }, domain.ErrInvalidParties},
		{"missing counterparty", func(in *tradedto.CreateTradeInput) { in.CounterpartyID = 9999 }, domain.ErrInvalidParties},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid()
			tt.mutate(in)
			_, err := f.uc.CreateTrade(context.Background(), in)
			require.ErrorIs(t, err, tt.want)
		})
	}

	boundary := valid()
	boundary.CryptoAmount = 10
	_, err := f.uc.CreateTrade(context.Background(), boundary)
	require.NoError(t, err)

	list, err := f.uc.ListTradesForUser(context.Background(), &tradedto.ListTradesInput{UserID: f.buyer.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.Total)
}

func TestCreateTradeRetriesCodeCollision(t *testing.T) {
	f := newFixture(t)
	first := f.createTrade(t)

	codes := []string{first.Code, first.Code, "TP00C0FFEE"}
	f.uc.NewCode = func() string {
		code := codes[0]
		codes = codes[1:]
		return code
	}
	second := f.createTrade(t)
	assert.Equal(t, "TP00C0FFEE", second.Code)

	f.uc.NewCode = func() string { return first.Code }
	_, err := f.uc.CreateTrade(context.Background(), &tradedto.CreateTradeInput{
		InitiatorID: f.buyer.ID, Direction: domain.DirectionBuy, CounterpartyID: f.seller.ID,
		CryptoAmount: 100, FiatAmount: 160000, ExchangeRate: 1600,
	})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestTransitionsFollowStateMachine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	trade := f.createTrade(t)

	_, err := f.uc.ApplyTransition(ctx, Transition{Code: trade.Code, ActorID: f.buyer.ID, Event: domain.EventRelease})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.uc.ApplyTransition(ctx, Transition{Code: trade.Code, ActorID: f.outsider.ID, Event: domain.EventFund})
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.ApplyTransition(ctx, Transition{Code: trade.Code, ActorID: f.buyer.ID, Event: domain.EventFund, Authorize: SellerOnly("fund escrow")})
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.ApplyTransition(ctx, Transition{Code: "TP99999999", ActorID: f.buyer.ID, Event: domain.EventFund})
	require.ErrorIs(t, err, domain.ErrNotFound)

	f.fire(t, trade.Code, f.seller.ID, domain.EventFund, false)
	f.fire(t, trade.Code, f.buyer.ID, domain.EventConfirmPayment, false)

	_, err = f.uc.CancelTrade(ctx, trade.Code, f.buyer.ID, "changed my mind")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	done := f.fire(t, strings.ToLower(trade.Code), f.seller.ID, domain.EventRelease, true)
	assert.Equal(t, domain.TradeCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)

	buyer, err := f.users.GetUserByID(ctx, f.buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, buyer.TotalTrades)
	assert.Equal(t, 1, buyer.SuccessfulTrades)

	_, err = f.uc.DisputeTrade(ctx, trade.Code, f.buyer.ID, "late", "")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	history, err := f.audit.History(ctx, trade.Code)
	require.NoError(t, err)
	var events []string
	for _, h := range history {
		events = append(events, h.Event)
	}
	assert.Equal(t, []string{"create", "fund_escrow", "confirm_payment", "release_escrow", "complete"}, events)
	assert.Equal(t, string(domain.TradePaymentConfirmed), history[3].ToStatus)
	assert.EqualValues(t, domain.SystemActorID, history[4].ActorID)
}

func TestCancelAndDispute(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.CancelTrade(ctx, "TP00000000", f.buyer.ID, " ")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	cancelled := f.createTrade(t)
	got, err := f.uc.CancelTrade(ctx, cancelled.Code, f.seller.ID, "no longer selling")
	require.NoError(t, err)
	assert.Equal(t, domain.TradeCancelled, got.Status)
	assert.Equal(t, "no longer selling", got.CancelReason)
	assert.Empty(t, got.DisputeReason)

	disputed := f.createTrade(t)
	f.fire(t, disputed.Code, f.seller.ID, domain.EventFund, false)

	_, err = f.uc.DisputeTrade(ctx, disputed.Code, f.outsider.ID, "scam", "")
	require.ErrorIs(t, err, domain.ErrForbidden)

	got, err = f.uc.DisputeTrade(ctx, disputed.Code, f.buyer.ID, "seller unresponsive", "chat.png")
	require.NoError(t, err)
	assert.Equal(t, domain.TradeDisputed, got.Status)
	assert.True(t, got.IsDisputed)

	got, err = f.uc.DisputeTrade(ctx, disputed.Code, f.seller.ID, "buyer never paid", "")
	require.NoError(t, err)
	assert.Equal(t, "buyer never paid", got.DisputeReason)
	assert.Empty(t, got.DisputeEvidence)

	for _, event := range []domain.TradeEvent{domain.EventFund, domain.EventConfirmPayment, domain.EventRelease, domain.EventCancel} {
		_, err := f.uc.ApplyTransition(ctx, Transition{Code: disputed.Code, ActorID: f.seller.ID, Event: event})
		require.ErrorIs(t, err, domain.ErrInvalidTransition, event)
	}
}

func TestUpdateTradeAllowList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	trade := f.createTrade(t)

	update := func(user uint, fields map[string]string) (*domain.Trade, error) {
		return f.uc.UpdateTrade(ctx, &tradedto.UpdateTradeInput{Code: trade.Code, UserID: user, Fields: fields})
	}

	_, err := update(f.buyer.ID, nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = update(f.buyer.ID, map[string]string{"status": "COMPLETED"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = update(f.buyer.ID, map[string]string{"crypto_amount": "1"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = update(f.outsider.ID, map[string]string{"payment_method": "cash"})
	require.ErrorIs(t, err, domain.ErrForbidden)

	got, err := update(f.seller.ID, map[string]string{"payment_method": "mobile_money"})
	require.NoError(t, err)
	assert.Equal(t, "mobile_money", got.PaymentMethod)
	assert.Equal(t, domain.TradeInitiated, got.Status)

	_, err = update(f.buyer.ID, map[string]string{"payment_reference": "REF-1"})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	f.fire(t, trade.Code, f.seller.ID, domain.EventFund, false)
	f.fire(t, trade.Code, f.buyer.ID, domain.EventConfirmPayment, false)

	_, err = update(f.seller.ID, map[string]string{"payment_reference": "REF-1"})
	require.ErrorIs(t, err, domain.ErrForbidden)
	got, err = update(f.buyer.ID, map[string]string{"payment_reference": "REF-1", "payment_proof": ""})
	require.NoError(t, err)
	assert.Equal(t, "REF-1", got.PaymentReference)
	assert.Equal(t, domain.TradePaymentSent, got.Status)
}

func TestApplyTransitionRetriesConflicts(t *testing.T) {
	f := newFixture(t)
	trade := f.createTrade(t)

	repo := &conflictingRepo{TradeRepository: f.uc.TradeRepo, conflicts: 2}
	f.uc.TradeRepo = repo
	got := f.fire(t, trade.Code, f.seller.ID, domain.EventFund, false)
	assert.Equal(t, domain.TradeEscrowFunded, got.Status)
	assert.Equal(t, 3, repo.writes)

	repo.conflicts = 100
	f.uc.MaxConflictRetries = 2
	_, err := f.uc.ApplyTransition(context.Background(), Transition{Code: trade.Code, ActorID: f.buyer.ID, Event: domain.EventConfirmPayment})
	require.ErrorIs(t, err, domain.ErrConflict)

	stored, err := f.uc.GetTrade(context.Background(), trade.Code)
	require.NoError(t, err)
	assert.Equal(t, domain.TradeEscrowFunded, stored.Status)
}

func TestConcurrentTransitionsApplyOnce(t *testing.T) {
	f := newFixture(t)
	trade := f.createTrade(t)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for _, actor := range []uint{f.buyer.ID, f.seller.ID, f.buyer.ID, f.seller.ID} {
		wg.Add(1)
		go func(actor uint) {
			defer wg.Done()
			_, err := f.uc.CancelTrade(context.Background(), trade.Code, actor, "race")
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		}(actor)
	}
	wg.Wait()
	assert.Equal(t, 1, succeeded)
}

func TestCancelExpiredTrades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stale := f.createTrade(t)
	unpaid := f.createTrade(t)
	f.fire(t, unpaid.Code, f.seller.ID, domain.EventFund, false)
	paid := f.createTrade(t)
	f.fire(t, paid.Code, f.seller.ID, domain.EventFund, false)
	f.fire(t, paid.Code, f.buyer.ID, domain.EventConfirmPayment, false)

	f.clock = f.clock.Add(3 * time.Hour)
	fresh := f.createTrade(t)

	n, err := f.uc.CancelExpiredTrades(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := f.uc.GetTrade(ctx, unpaid.Code)
	require.NoError(t, err)
	assert.Equal(t, domain.TradeCancelled, got.Status)
	assert.Equal(t, ExpiredReason, got.CancelReason)

	f.clock = f.clock.Add(22 * time.Hour)
	n, err = f.uc.CancelExpiredTrades(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	for code, want := range map[string]domain.TradeStatus{
		stale.Code: domain.TradeCancelled,
		paid.Code:  domain.TradePaymentSent,
		fresh.Code: domain.TradeInitiated,
	} {
		got, err := f.uc.GetTrade(ctx, code)
		require.NoError(t, err)
		assert.Equal(t, want, got.Status, code)
	}

	history, err := f.audit.History(ctx, stale.Code)
	require.NoError(t, err)
	assert.EqualValues(t, domain.SystemActorID, history[len(history)-1].ActorID)
}

func TestQueries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.createTrade(t)
	f.clock = f.clock.Add(time.Minute)
	second := f.createTrade(t)
	_, err := f.uc.CancelTrade(ctx, first.Code, f.buyer.ID, "dup")
	require.NoError(t, err)

	_, err = f.uc.GetTradeForUser(ctx, first.Code, f.outsider.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)
	got, err := f.uc.GetTradeForUser(ctx, strings.ToLower(first.Code), f.seller.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Code, got.Code)

	list, err := f.uc.ListTradesForUser(ctx, &tradedto.ListTradesInput{UserID: f.seller.ID, Limit: 500})
	require.NoError(t, err)
	assert.EqualValues(t, 2, list.Total)
	assert.Equal(t, 100, list.Limit)
	require.Len(t, list.Trades, 2)
	assert.Equal(t, second.Code, list.Trades[0].Code)

	list, err = f.uc.ListTradesForUser(ctx, &tradedto.ListTradesInput{UserID: f.buyer.ID, Status: "cancelled"})
	require.NoError(t, err)
	require.Len(t, list.Trades, 1)
	assert.Equal(t, first.Code, list.Trades[0].Code)

	_, err = f.uc.ListTradesForUser(ctx, &tradedto.ListTradesInput{UserID: f.buyer.ID, Status: "LOST"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err = f.uc.ListTradesForUser(ctx, &tradedto.ListTradesInput{UserID: f.outsider.ID})
	require.NoError(t, err)
	assert.Empty(t, list.Trades)
}
