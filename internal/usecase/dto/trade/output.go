package tradedto

import "github.com/LavaJover/shvark-escrow-service/internal/domain"

type TradeListOutput struct {
	Trades []*domain.Trade
	Total  int64
	Limit  int
	Offset int
}
