package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

// TrustRecomputeRequest asks the consumer to refresh one user's trust score.
type TrustRecomputeRequest struct {
	UserID      uint      `json:"user_id"`
	RequestedAt time.Time `json:"requested_at"`
}

// TrustQueue defers trust recomputation to the consumer group.
type TrustQueue struct {
	pub   domain.PublisherPort
	topic string
}

func NewTrustQueue(pub domain.PublisherPort, topic string) *TrustQueue {
	return &TrustQueue{pub: pub, topic: topic}
}

func (q *TrustQueue) RequestRecompute(ctx context.Context, userID uint) error {
	v, err := json.Marshal(TrustRecomputeRequest{UserID: userID, RequestedAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	key := []byte(strconv.FormatUint(uint64(userID), 10))
	return q.pub.Publish(ctx, q.topic, domain.Message{Key: key, Value: v})
}

func DecodeTrustRequest(msg domain.Message) (TrustRecomputeRequest, error) {
	var req TrustRecomputeRequest
	if err := json.Unmarshal(msg.Value, &req); err != nil {
		return req, fmt.Errorf("decode trust request: %w", err)
	}
	if req.UserID == 0 {
		return req, fmt.Errorf("trust request without user id: %w", domain.ErrInvalidInput)
	}
	return req, nil
}
