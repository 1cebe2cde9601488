package escrow

import (
	"context"
	"testing"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/repository"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/sqlitetest"
	"github.com/LavaJover/shvark-escrow-service/internal/usecase/catalog"
	tradedto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/trade"
	"github.com/LavaJover/shvark-escrow-service/internal/usecase/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	escrow *DefaultEscrowUsecase
	trades *trade.DefaultTradeUsecase
	users  domain.UserRepository
	buyer  uint
	seller uint
	other  uint
}

func setup(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	db := sqlitetest.Open(t)

	catalogUC := catalog.NewDefaultCatalogUsecase(repository.NewDefaultCryptoConfigRepository(db), nil)
	_, err := catalogUC.SeedDefaults(ctx)
	require.NoError(t, err)

	users := repository.NewDefaultUserRepository(db)
	ids := make([]uint, 0, 3)
	for _, name := range []string{"ada", "bola", "chidi"} {
		u := &domain.User{Username: name, IsActive: true}
		require.NoError(t, users.CreateUser(ctx, u))
		ids = append(ids, u.ID)
	}

	trades := trade.NewDefaultTradeUsecase(repository.NewDefaultTradeRepository(db), users, catalogUC, nil, nil, nil, nil)
	escrowUC, err := NewDefaultEscrowUsecase(trades, nil)
	require.NoError(t, err)
	escrowUC.NewReleaseID = func() string { return "abc123" }

	return &env{escrow: escrowUC, trades: trades, users: users, buyer: ids[0], seller: ids[1], other: ids[2]}
}

func (e *env) newTrade(t *testing.T) string {
	t.Helper()
	created, err := e.trades.CreateTrade(context.Background(), &tradedto.CreateTradeInput{
		InitiatorID:    e.buyer,
		Direction:      domain.DirectionBuy,
		CounterpartyID: e.seller,
		CryptoAmount:   250,
		CryptoCurrency: "USDT",
		FiatAmount:     400000,
		ExchangeRate:   1600,
	})
	require.NoError(t, err)
	return created.Code
}

func TestEscrowHappyPath(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	code := e.newTrade(t)

	status, err := e.escrow.GetEscrowStatus(ctx, code, e.buyer)
	require.NoError(t, err)
	assert.False(t, status.EscrowFunded)

	funded, err := e.escrow.FundEscrow(ctx, code, e.seller, "0xdeadbeef")
	require.NoError(t, err)
	assert.Equal(t, domain.TradeEscrowFunded, funded.Status)
	assert.Equal(t, "0xdeadbeef", funded.EscrowTxHash)

	sent, err := e.escrow.ConfirmPayment(ctx, code, e.buyer, "BANK-778", "")
	require.NoError(t, err)
	assert.Equal(t, domain.TradePaymentSent, sent.Status)
	assert.Equal(t, "BANK-778", sent.PaymentReference)

	status, err = e.escrow.GetEscrowStatus(ctx, code, e.seller)
	require.NoError(t, err)
	assert.True(t, status.EscrowFunded)
	assert.True(t, status.PaymentSent)
	assert.False(t, status.PaymentConfirmed)
	assert.False(t, status.Completed)

	released, err := e.escrow.ReleaseEscrow(ctx, code, e.seller)
	require.NoError(t, err)
	assert.Equal(t, domain.TradeCompleted, released.Status)
	assert.Equal(t, "release_"+code+"_abc123", released.ReleaseTxHash)
	require.NotNil(t, released.CompletedAt)

	for _, id := range []uint{e.buyer, e.seller} {
		u, err := e.users.GetUserByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 1, u.TotalTrades)
		assert.Equal(t, 1, u.SuccessfulTrades)
	}

	status, err = e.escrow.GetEscrowStatus(ctx, code, e.buyer)
	require.NoError(t, err)
	assert.True(t, status.PaymentConfirmed)
	assert.True(t, status.Completed)
	assert.Equal(t, released.ReleaseTxHash, status.ReleaseTxHash)

	_, err = e.escrow.ReleaseEscrow(ctx, code, e.seller)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = e.trades.CancelTrade(ctx, code, e.buyer, "too late")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestEscrowRoleChecks(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	code := e.newTrade(t)

	_, err := e.escrow.FundEscrow(ctx, code, e.buyer, "0x1")
	require.ErrorIs(t, err, domain.ErrForbidden)
	_, err = e.escrow.FundEscrow(ctx, code, e.other, "0x1")
	require.ErrorIs(t, err, domain.ErrForbidden)
	_, err = e.escrow.FundEscrow(ctx, code, e.seller, "  ")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.escrow.ConfirmPayment(ctx, code, e.buyer, "REF", "")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = e.escrow.FundEscrow(ctx, code, e.seller, "0x1")
	require.NoError(t, err)
	_, err = e.escrow.FundEscrow(ctx, code, e.seller, "0x2")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = e.escrow.ConfirmPayment(ctx, code, e.seller, "REF", "")
	require.ErrorIs(t, err, domain.ErrForbidden)
	_, err = e.escrow.ReleaseEscrow(ctx, code, e.seller)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = e.escrow.ConfirmPayment(ctx, code, e.buyer, "REF", "receipt.jpg")
	require.NoError(t, err)
	_, err = e.escrow.ReleaseEscrow(ctx, code, e.buyer)
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = e.escrow.GetEscrowStatus(ctx, code, e.other)
	require.ErrorIs(t, err, domain.ErrForbidden)
	_, err = e.escrow.GetEscrowStatus(ctx, "TP00000000", e.buyer)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEscrowFrozenByDispute(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	code := e.newTrade(t)

	_, err := e.escrow.FundEscrow(ctx, code, e.seller, "0x1")
	require.NoError(t, err)
	_, err = e.escrow.ConfirmPayment(ctx, code, e.buyer, "REF", "")
	require.NoError(t, err)
	_, err = e.trades.DisputeTrade(ctx, code, e.buyer, "seller stalling", "")
	require.NoError(t, err)

	_, err = e.escrow.ReleaseEscrow(ctx, code, e.seller)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	status, err := e.escrow.GetEscrowStatus(ctx, code, e.buyer)
	require.NoError(t, err)
	assert.Equal(t, string(domain.TradeDisputed), status.Status)
	assert.False(t, status.EscrowFunded)
}

func TestProjectForwardClosedSets(t *testing.T) {
	tests := []struct {
		status                          domain.TradeStatus
		funded, sent, confirmed, closed bool
	}{
		{domain.TradeInitiated, false, false, false, false},
		{domain.TradeEscrowFunded, true, false, false, false},
		{domain.TradePaymentSent, true, true, false, false},
		{domain.TradePaymentConfirmed, true, true, true, false},
		{domain.TradeCompleted, true, true, true, true},
		{domain.TradeCancelled, false, false, false, false},
		{domain.TradeDisputed, false, false, false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			out := Project(&domain.Trade{Code: "TP12345678", Status: tt.status})
			assert.Equal(t, tt.funded, out.EscrowFunded)
			assert.Equal(t, tt.sent, out.PaymentSent)
			assert.Equal(t, tt.confirmed, out.PaymentConfirmed)
			assert.Equal(t, tt.closed, out.Completed)
		})
	}
}
