// Package catalog exposes per-currency trade limits and fees.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/logger"
	catalogdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/catalog"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var hundred = decimal.NewFromInt(100)

type DefaultCatalogUsecase struct {
	Repo   domain.CryptoConfigRepository
	Logger *zap.Logger
}

func NewDefaultCatalogUsecase(repo domain.CryptoConfigRepository, log *zap.Logger) *DefaultCatalogUsecase {
	return &DefaultCatalogUsecase{Repo: repo, Logger: logger.OrNop(log)}
}

func (uc *DefaultCatalogUsecase) GetConfig(ctx context.Context, symbol string) (*domain.CryptoConfig, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("crypto symbol: %w", domain.ErrNotFound)
	}
	cfg, err := uc.Repo.GetBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if !cfg.IsActive {
		return nil, fmt.Errorf("crypto %s is inactive: %w", symbol, domain.ErrNotFound)
	}
	return cfg, nil
}

// IsAmountValid reports min <= amount <= max, inclusive.
func (uc *DefaultCatalogUsecase) IsAmountValid(ctx context.Context, symbol string, amount float64) (bool, error) {
	cfg, err := uc.GetConfig(ctx, symbol)
	if err != nil {
		return false, err
	}
	return withinBounds(cfg, decimal.NewFromFloat(amount)), nil
}

func (uc *DefaultCatalogUsecase) ListActive(ctx context.Context) ([]catalogdto.CryptoOption, error) {
	configs, err := uc.Repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	options := make([]catalogdto.CryptoOption, 0, len(configs))
	for _, cfg := range configs {
		options = append(options, catalogdto.CryptoOption{
			Symbol:     cfg.Symbol,
			Name:       cfg.Name,
			Network:    cfg.Network,
			Decimals:   cfg.Decimals,
			MinAmount:  cfg.MinAmount,
			MaxAmount:  cfg.MaxAmount,
			FeePercent: cfg.FeePercent,
		})
	}
	return options, nil
}

func (uc *DefaultCatalogUsecase) SupportedPairs(ctx context.Context) ([]catalogdto.TradingPair, error) {
	configs, err := uc.Repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	pairs := make([]catalogdto.TradingPair, 0, len(configs)*len(SupportedFiat))
	for _, cfg := range configs {
		for _, fiat := range SupportedFiat {
			pairs = append(pairs, catalogdto.TradingPair{
				Crypto: cfg.Symbol,
				Fiat:   fiat,
				Pair:   cfg.Symbol + "/" + fiat,
			})
		}
	}
	return pairs, nil
}

// Fee is amount * feePercent / 100.
func Fee(cfg *domain.CryptoConfig, amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(cfg.FeePercent).Div(hundred)
}

func (uc *DefaultCatalogUsecase) QuoteFee(ctx context.Context, symbol string, amount float64) (*catalogdto.FeeQuote, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("fee amount must be positive: %w", domain.ErrInvalidAmount)
	}
	cfg, err := uc.GetConfig(ctx, symbol)
	if err != nil {
		return nil, err
	}
	amt := decimal.NewFromFloat(amount)
	fee := Fee(cfg, amt)
	return &catalogdto.FeeQuote{
		Symbol:     cfg.Symbol,
		Amount:     amt,
		FeePercent: cfg.FeePercent,
		Fee:        fee,
		Total:      amt.Add(fee),
	}, nil
}

func (uc *DefaultCatalogUsecase) ValidateAmount(ctx context.Context, symbol string, amount float64) (*catalogdto.AmountValidation, error) {
	cfg, err := uc.GetConfig(ctx, symbol)
	if err != nil {
		return nil, err
	}
	amt := decimal.NewFromFloat(amount)
	fee := Fee(cfg, amt)
	return &catalogdto.AmountValidation{
		Symbol:    cfg.Symbol,
		Amount:    amt,
		Valid:     withinBounds(cfg, amt),
		MinAmount: cfg.MinAmount,
		MaxAmount: cfg.MaxAmount,
		Fee:       fee,
		Total:     amt.Add(fee),
	}, nil
}

// SeedDefaults inserts the DefaultConfigs symbols that are missing and
// returns how many it added. Existing rows keep their limits and status.
func (uc *DefaultCatalogUsecase) SeedDefaults(ctx context.Context) (int, error) {
	added := 0
	for _, cfg := range DefaultConfigs() {
		created, err := uc.Repo.CreateIfAbsent(ctx, cfg)
		if err != nil {
			return added, err
		}
		if created {
			added++
		}
	}
	uc.Logger.Info("crypto catalog seeded", zap.Int("added", added))
	return added, nil
}

func withinBounds(cfg *domain.CryptoConfig, amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(cfg.MinAmount) && amount.LessThanOrEqual(cfg.MaxAmount)
}
