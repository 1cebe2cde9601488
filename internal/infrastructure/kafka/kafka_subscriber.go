package kafka

import (
	"context"
	"errors"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type DefaultKafkaSubscriber struct {
	brokers []string
	logger  *zap.Logger
}

func NewDefaultKafkaSubscriber(brokers []string, log *zap.Logger) *DefaultKafkaSubscriber {
	if log == nil {
		log = zap.NewNop()
	}
	return &DefaultKafkaSubscriber{brokers: brokers, logger: log}
}

// Subscribe streams messages of topic for groupID until ctx is done, then
// closes the channel.
func (k *DefaultKafkaSubscriber) Subscribe(ctx context.Context, topic, groupID string) (<-chan domain.Message, error) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: k.brokers,
		Topic:   topic,
		GroupID: groupID,
	})

	out := make(chan domain.Message)
	go func() {
		defer close(out)
		defer reader.Close()
		for {
			m, err := reader.ReadMessage(ctx)
			if err != nil {
				if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
					k.logger.Error("kafka read failed", zap.String("topic", topic), zap.Error(err))
				}
				return
			}
			select {
			case out <- domain.Message{Key: m.Key, Value: m.Value}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
