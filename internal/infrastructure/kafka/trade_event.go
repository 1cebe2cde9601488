package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

// TradeEvent is the JSON payload of the trade lifecycle topic.
type TradeEvent struct {
	TradeCode      string    `json:"trade_code"`
	Event          string    `json:"event"`
	FromStatus     string    `json:"from_status,omitempty"`
	ToStatus       string    `json:"to_status"`
	ActorID        uint      `json:"actor_id"`
	BuyerID        uint      `json:"buyer_id"`
	SellerID       uint      `json:"seller_id"`
	CryptoAmount   float64   `json:"crypto_amount"`
	CryptoCurrency string    `json:"crypto_currency"`
	FiatAmount     float64   `json:"fiat_amount"`
	FiatCurrency   string    `json:"fiat_currency"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func NewTradeEvent(rec domain.TransitionRecord) TradeEvent {
	return TradeEvent{
		TradeCode:      rec.TradeCode,
		Event:          string(rec.Event),
		FromStatus:     string(rec.From),
		ToStatus:       string(rec.To),
		ActorID:        rec.ActorID,
		BuyerID:        rec.BuyerID,
		SellerID:       rec.SellerID,
		CryptoAmount:   rec.CryptoAmount,
		CryptoCurrency: rec.CryptoCurrency,
		FiatAmount:     rec.FiatAmount,
		FiatCurrency:   rec.FiatCurrency,
		OccurredAt:     rec.At,
	}
}

// TradeEventPublisher publishes transitions keyed by trade code.
type TradeEventPublisher struct {
	pub   domain.PublisherPort
	topic string
}

func NewTradeEventPublisher(pub domain.PublisherPort, topic string) *TradeEventPublisher {
	return &TradeEventPublisher{pub: pub, topic: topic}
}

func (p *TradeEventPublisher) PublishTradeEvent(ctx context.Context, rec domain.TransitionRecord) error {
	v, err := json.Marshal(NewTradeEvent(rec))
	if err != nil {
		return err
	}
	return p.pub.Publish(ctx, p.topic, domain.Message{Key: []byte(rec.TradeCode), Value: v})
}
