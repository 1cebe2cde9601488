package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsAreNoop(t *testing.T) {
	var m *EscrowMetrics
	assert.NotPanics(t, func() {
		m.RecordTradeCreated("BUY", "USDT")
		m.RecordTransition("fund_escrow", "INITIATED", "ESCROW_FUNDED", time.Now())
		m.RecordTransitionError("fund_escrow", "forbidden")
		m.RecordTrustRecompute(time.Now(), errors.New("boom"))
	})
}

func TestRecording(t *testing.T) {
	m := NewEscrowMetrics(prometheus.NewRegistry())

	m.RecordTradeCreated("BUY", "USDT")
	m.RecordTradeCreated("BUY", "USDT")
	m.RecordTransition("release_escrow", "PAYMENT_SENT", "PAYMENT_CONFIRMED", time.Now())
	m.RecordTradeCompleted("USDT", 100)
	m.RecordExpiredCancelled(3)
	m.RecordTrustRecompute(time.Now(), errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.TradesCreatedTotal.WithLabelValues("BUY", "USDT")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TradeTransitionsTotal.WithLabelValues("release_escrow", "PAYMENT_SENT", "PAYMENT_CONFIRMED")))
	assert.Equal(t, 100.0, testutil.ToFloat64(m.TradesCompletedVolume.WithLabelValues("USDT")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ExpiredTradesCancelled))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TrustRecomputeFailures))
}
