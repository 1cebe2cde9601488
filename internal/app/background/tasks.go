package background

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/logger"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

const trustRecomputeAttempts = 3

type ExpiryCanceller interface {
	CancelExpiredTrades(ctx context.Context) (int, error)
}

type TrustRecomputer interface {
	Recompute(ctx context.Context, userID uint) (float64, error)
}

// BackgroundTasks runs the expiry sweep and the trust recompute consumer.
// A task whose dependencies are unset is not started.
type BackgroundTasks struct {
	Trades         ExpiryCanceller
	ExpiryInterval time.Duration

	Trust       TrustRecomputer
	Subscriber  domain.SubscriberPort
	TrustTopic  string
	TrustGroup  string
	RetryPolicy func() backoff.BackOff

	Logger *zap.Logger

	wg sync.WaitGroup
}

func NewBackgroundTasks(trades ExpiryCanceller, interval time.Duration, log *zap.Logger) *BackgroundTasks {
	return &BackgroundTasks{
		Trades:         trades,
		ExpiryInterval: interval,
		Logger:         logger.OrNop(log),
	}
}

// WithTrustConsumer enables consuming recompute requests from topic.
func (bt *BackgroundTasks) WithTrustConsumer(trust TrustRecomputer, sub domain.SubscriberPort, topic, group string) *BackgroundTasks {
	bt.Trust = trust
	bt.Subscriber = sub
	bt.TrustTopic = topic
	bt.TrustGroup = group
	return bt
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) error {
	if bt.Logger == nil {
		bt.Logger = zap.NewNop()
	}

	if bt.Trades != nil && bt.ExpiryInterval > 0 {
		bt.wg.Add(1)
		go func() {
			defer bt.wg.Done()
			bt.startExpirySweep(ctx)
		}()
	}

	if bt.Trust != nil && bt.Subscriber != nil {
		msgs, err := bt.Subscriber.Subscribe(ctx, bt.TrustTopic, bt.TrustGroup)
		if err != nil {
			return err
		}
		bt.wg.Add(1)
		go func() {
			defer bt.wg.Done()
			bt.consumeTrustRequests(ctx, msgs)
		}()
	}
	return nil
}

// Wait blocks until every started task has returned.
func (bt *BackgroundTasks) Wait() {
	bt.wg.Wait()
}

func (bt *BackgroundTasks) startExpirySweep(ctx context.Context) {
	ticker := time.NewTicker(bt.ExpiryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := bt.Trades.CancelExpiredTrades(ctx)
			if err != nil {
				if ctx.Err() == nil {
					bt.Logger.Error("expiry sweep failed", zap.Error(err))
				}
				continue
			}
			if n > 0 {
				bt.Logger.Info("expired trades cancelled", zap.Int("count", n))
			}
		}
	}
}

func (bt *BackgroundTasks) consumeTrustRequests(ctx context.Context, msgs <-chan domain.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			bt.handleTrustRequest(ctx, msg)
		}
	}
}

func (bt *BackgroundTasks) handleTrustRequest(ctx context.Context, msg domain.Message) {
	req, err := kafka.DecodeTrustRequest(msg)
	if err != nil {
		bt.Logger.Warn("dropping malformed trust request", zap.ByteString("key", msg.Key), zap.Error(err))
		return
	}

	op := func() error {
		_, err := bt.Trust.Recompute(ctx, req.UserID)
		if errors.Is(err, domain.ErrNotFound) {
			return backoff.Permanent(err)
		}
		return err
	}
	if err := backoff.Retry(op, backoff.WithContext(bt.retryPolicy(), ctx)); err != nil {
		bt.Logger.Error("trust recompute failed",
			zap.Uint("user_id", req.UserID),
			zap.Error(err),
		)
	}
}

func (bt *BackgroundTasks) retryPolicy() backoff.BackOff {
	if bt.RetryPolicy != nil {
		return bt.RetryPolicy()
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	return backoff.WithMaxRetries(b, trustRecomputeAttempts-1)
}
