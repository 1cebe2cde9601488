package trade

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"go.uber.org/zap"
)

// emit records metrics, writes the audit trail and publishes each record.
// The write already succeeded, so failures here are logged only.
func (uc *DefaultTradeUsecase) emit(ctx context.Context, records []domain.TransitionRecord, started time.Time) {
	for _, rec := range records {
		uc.Metrics.RecordTransition(string(rec.Event), string(rec.From), string(rec.To), started)

		if uc.Audit != nil {
			if err := uc.Audit.LogTransition(ctx, rec); err != nil {
				uc.Logger.Warn("failed to write trade audit record",
					zap.String("trade_code", rec.TradeCode),
					zap.String("event", string(rec.Event)),
					zap.Error(err),
				)
			}
		}
	}

	if uc.Publisher == nil || len(records) == 0 {
		return
	}
	go func(ctx context.Context, records []domain.TransitionRecord) {
		for _, rec := range records {
			if err := uc.Publisher.PublishTradeEvent(ctx, rec); err != nil {
				uc.Logger.Error("failed to publish trade event",
					zap.String("trade_code", rec.TradeCode),
					zap.String("stage", string(rec.Event)),
					zap.Error(err),
				)
			}
		}
	}(context.WithoutCancel(ctx), records)
}
