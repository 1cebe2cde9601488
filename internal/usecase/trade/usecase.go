// Package trade owns trade creation and every status transition.
package trade

import (
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

const (
	defaultConflictRetries = 5
	defaultExpiryBatch     = 100
	maxCodeAttempts        = 5

	// ExpiredReason is stored as the cancel reason by the expiry sweep.
	ExpiredReason = "expired"
)

type DefaultTradeUsecase struct {
	TradeRepo domain.TradeRepository
	UserRepo  domain.UserRepository
	Catalog   domain.CryptoCatalog
	Publisher domain.TradeEventPublisher
	Audit     domain.TradeAuditLogger
	Metrics   *metrics.EscrowMetrics
	Logger    *zap.Logger

	// NewCode and Now are replaceable in tests.
	NewCode func() string
	Now     func() time.Time

	MaxConflictRetries uint64
	ExpiryBatchSize    int
}

func NewDefaultTradeUsecase(
	tradeRepo domain.TradeRepository,
	userRepo domain.UserRepository,
	catalog domain.CryptoCatalog,
	publisher domain.TradeEventPublisher,
	audit domain.TradeAuditLogger,
	escrowMetrics *metrics.EscrowMetrics,
	log *zap.Logger,
) *DefaultTradeUsecase {
	return &DefaultTradeUsecase{
		TradeRepo:          tradeRepo,
		UserRepo:           userRepo,
		Catalog:            catalog,
		Publisher:          publisher,
		Audit:              audit,
		Metrics:            escrowMetrics,
		Logger:             logger.OrNop(log),
		NewCode:            NewTradeCode,
		Now:                func() time.Time { return time.Now().UTC() },
		MaxConflictRetries: defaultConflictRetries,
		ExpiryBatchSize:    defaultExpiryBatch,
	}
}

func (uc *DefaultTradeUsecase) now() time.Time {
	if uc.Now == nil {
		return time.Now().UTC()
	}
	return uc.Now()
}
