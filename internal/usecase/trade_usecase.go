package usecase

import (
	"context"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	tradedto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/trade"
)

type TradeUsecase interface {
	CreateTrade(ctx context.Context, input *tradedto.CreateTradeInput) (*domain.Trade, error)
	GetTrade(ctx context.Context, code string) (*domain.Trade, error)
	GetTradeForUser(ctx context.Context, code string, userID uint) (*domain.Trade, error)
	ListTradesForUser(ctx context.Context, input *tradedto.ListTradesInput) (*tradedto.TradeListOutput, error)
	UpdateTrade(ctx context.Context, input *tradedto.UpdateTradeInput) (*domain.Trade, error)
	CancelTrade(ctx context.Context, code string, userID uint, reason string) (*domain.Trade, error)
	DisputeTrade(ctx context.Context, code string, userID uint, reason, evidence string) (*domain.Trade, error)
	CancelExpiredTrades(ctx context.Context) (int, error)
}
