package domain

import (
	"context"
	"time"
)

type TradeRepository interface {
	CreateTrade(ctx context.Context, trade *Trade) error
	TradeCodeExists(ctx context.Context, code string) (bool, error)
	GetTradeByCode(ctx context.Context, code string) (*Trade, error)
	GetTradeByID(ctx context.Context, id uint) (*Trade, error)
	ListTradesForUser(ctx context.Context, filter TradeFilter) ([]*Trade, int64, error)
	CountUserTradesSince(ctx context.Context, userID uint, since time.Time) (int64, error)
	// UpdateTrade writes the trade if its stored version still equals
	// trade.Version and returns ErrConflict otherwise.
	UpdateTrade(ctx context.Context, trade *Trade) error
	// CompleteTrade is UpdateTrade plus the completion counters of both
	// participants, applied in one transaction.
	CompleteTrade(ctx context.Context, trade *Trade) error
	FindExpiredTrades(ctx context.Context, now time.Time, limit int) ([]*Trade, error)
}

type TradeEventPublisher interface {
	PublishTradeEvent(ctx context.Context, record TransitionRecord) error
}

type TradeAuditLogger interface {
	LogTransition(ctx context.Context, record TransitionRecord) error
}
