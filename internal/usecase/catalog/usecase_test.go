package catalog

import (
	"context"
	"testing"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/repository"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/sqlitetest"
	catalogdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededCatalog(t *testing.T) *DefaultCatalogUsecase {
	t.Helper()
	uc := NewDefaultCatalogUsecase(repository.NewDefaultCryptoConfigRepository(sqlitetest.Open(t)), nil)
	n, err := uc.SeedDefaults(context.Background())
	require.NoError(t, err)
	require.Equal(t, 10, n)
	return uc
}

func TestIsAmountValid(t *testing.T) {
	uc := newSeededCatalog(t)
	ctx := context.Background()

	tests := []struct {
		symbol string
		amount float64
		want   bool
	}{
		{"BTC", 0.0001, false},
		{"BTC", 0.001, true},
		{"btc", 10, true},
		{"BTC", 10.0001, false},
		{"USDT", 100, true},
		{"USDT", 9.99, false},
	}
	for _, tt := range tests {
		got, err := uc.IsAmountValid(ctx, tt.symbol, tt.amount)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s %v", tt.symbol, tt.amount)
	}

	_, err := uc.IsAmountValid(ctx, "DOGE", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInactiveSymbolIsUnknown(t *testing.T) {
	uc := newSeededCatalog(t)
	ctx := context.Background()

	cfg, err := uc.GetConfig(ctx, "ADA")
	require.NoError(t, err)
	cfg.IsActive = false
	require.NoError(t, uc.Repo.Upsert(ctx, cfg))

	_, err = uc.GetConfig(ctx, "ADA")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	options, err := uc.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, options, 9)
}

func TestFeeQuote(t *testing.T) {
	uc := newSeededCatalog(t)

	quote, err := uc.QuoteFee(context.Background(), "USDT", 1000)
	require.NoError(t, err)
	assert.True(t, quote.Fee.Equal(decimal.NewFromInt(1)), quote.Fee.String())
	assert.True(t, quote.Total.Equal(decimal.NewFromInt(1001)), quote.Total.String())

	_, err = uc.QuoteFee(context.Background(), "USDT", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	v, err := uc.ValidateAmount(context.Background(), "BTC", 0.0001)
	require.NoError(t, err)
	assert.False(t, v.Valid)
}

func TestSupportedPairsAndIdempotentSeed(t *testing.T) {
	uc := newSeededCatalog(t)
	ctx := context.Background()

	n, err := uc.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	pairs, err := uc.SupportedPairs(ctx)
	require.NoError(t, err)
	assert.Len(t, pairs, 10*len(SupportedFiat))
	assert.Contains(t, pairs, catalogdto.TradingPair{Crypto: "BTC", Fiat: "NGN", Pair: "BTC/NGN"})
}

func TestReseedKeepsEditedRows(t *testing.T) {
	uc := newSeededCatalog(t)
	ctx := context.Background()

	btc, err := uc.Repo.GetBySymbol(ctx, "BTC")
	require.NoError(t, err)
	btc.IsActive = false
	require.NoError(t, uc.Repo.Upsert(ctx, btc))

	usdt, err := uc.Repo.GetBySymbol(ctx, "USDT")
	require.NoError(t, err)
	usdt.MaxAmount = decimal.NewFromInt(500)
	require.NoError(t, uc.Repo.Upsert(ctx, usdt))

	n, err := uc.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	got, err := uc.Repo.GetBySymbol(ctx, "BTC")
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	_, err = uc.GetConfig(ctx, "BTC")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err = uc.Repo.GetBySymbol(ctx, "USDT")
	require.NoError(t, err)
	assert.True(t, got.MaxAmount.Equal(decimal.NewFromInt(500)), got.MaxAmount.String())

	valid, err := uc.IsAmountValid(ctx, "USDT", 600)
	require.NoError(t, err)
	assert.False(t, valid)
}
