package trade

import (
	"context"
	"fmt"
	"strings"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/usecase"
	tradedto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/trade"
)

func (uc *DefaultTradeUsecase) GetTrade(ctx context.Context, code string) (*domain.Trade, error) {
	return uc.TradeRepo.GetTradeByCode(ctx, normalizeCode(code))
}

// GetTradeForUser hides trades from non-participants.
func (uc *DefaultTradeUsecase) GetTradeForUser(ctx context.Context, code string, userID uint) (*domain.Trade, error) {
	trade, err := uc.GetTrade(ctx, code)
	if err != nil {
		return nil, err
	}
	if !trade.IsParticipant(userID) {
		return nil, fmt.Errorf("user %d is not a participant of trade %s: %w", userID, trade.Code, domain.ErrForbidden)
	}
	return trade, nil
}

// ListTradesForUser returns the user's trades on either side, newest first.
func (uc *DefaultTradeUsecase) ListTradesForUser(ctx context.Context, input *tradedto.ListTradesInput) (*tradedto.TradeListOutput, error) {
	filter := domain.TradeFilter{UserID: input.UserID}
	if s := strings.ToUpper(strings.TrimSpace(input.Status)); s != "" {
		status := domain.TradeStatus(s)
		if !status.Valid() {
			return nil, fmt.Errorf("unknown trade status %q: %w", input.Status, domain.ErrInvalidInput)
		}
		filter.Status = &status
	}
	filter.Limit, filter.Offset = usecase.Page(input.Limit, input.Offset)

	trades, total, err := uc.TradeRepo.ListTradesForUser(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &tradedto.TradeListOutput{
		Trades: trades,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}
