package logger

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"gorm.io/gorm"
)

// TradeTransitionEvent is one row of the trade audit trail.
type TradeTransitionEvent struct {
	ID         uint   `gorm:"primaryKey"`
	TradeCode  string `gorm:"index:idx_transition_trade_code;size:16"`
	Event      string `gorm:"size:32"`
	FromStatus string `gorm:"size:32"`
	ToStatus   string `gorm:"size:32"`
	ActorID    uint
	Timestamp  time.Time `gorm:"index"`
}

type PGTradeEventLogger struct {
	db *gorm.DB
}

func NewPGTradeEventLogger(db *gorm.DB) *PGTradeEventLogger {
	return &PGTradeEventLogger{db: db}
}

func (l *PGTradeEventLogger) LogTransition(ctx context.Context, record domain.TransitionRecord) error {
	event := TradeTransitionEvent{
		TradeCode:  record.TradeCode,
		Event:      string(record.Event),
		FromStatus: string(record.From),
		ToStatus:   string(record.To),
		ActorID:    record.ActorID,
		Timestamp:  record.At,
	}
	return l.db.WithContext(ctx).Create(&event).Error
}

// History returns the audit rows of one trade, oldest first.
func (l *PGTradeEventLogger) History(ctx context.Context, tradeCode string) ([]TradeTransitionEvent, error) {
	var events []TradeTransitionEvent
	err := l.db.WithContext(ctx).
		Where("trade_code = ?", tradeCode).
		Order("timestamp asc, id asc").
		Find(&events).Error
	return events, err
}
