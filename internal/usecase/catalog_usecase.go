package usecase

import (
	"context"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	catalogdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/catalog"
)

type CatalogUsecase interface {
	GetConfig(ctx context.Context, symbol string) (*domain.CryptoConfig, error)
	ListActive(ctx context.Context) ([]catalogdto.CryptoOption, error)
	SupportedPairs(ctx context.Context) ([]catalogdto.TradingPair, error)
	QuoteFee(ctx context.Context, symbol string, amount float64) (*catalogdto.FeeQuote, error)
	ValidateAmount(ctx context.Context, symbol string, amount float64) (*catalogdto.AmountValidation, error)
	SeedDefaults(ctx context.Context) (int, error)
}
