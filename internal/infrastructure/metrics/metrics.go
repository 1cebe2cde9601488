package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// EscrowMetrics holds the trade, escrow and reputation collectors. A nil
// *EscrowMetrics is valid and records nothing.
type EscrowMetrics struct {
	TradesCreatedTotal      *prometheus.CounterVec
	TradeTransitionsTotal   *prometheus.CounterVec
	TradeTransitionErrors   *prometheus.CounterVec
	TradeConflictRetries    *prometheus.CounterVec
	TradesCompletedVolume   *prometheus.CounterVec
	TradeTransitionDuration *prometheus.HistogramVec
	ExpiredTradesCancelled  prometheus.Counter

	RatingsCreatedTotal    *prometheus.CounterVec
	ReportsCreatedTotal    *prometheus.CounterVec
	TrustRecomputeDuration prometheus.Histogram
	TrustRecomputeFailures prometheus.Counter
}

func NewEscrowMetrics(reg prometheus.Registerer) *EscrowMetrics {
	factory := promauto.With(reg)

	return &EscrowMetrics{
		TradesCreatedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_trades_created_total",
				Help: "Trades created, by direction and crypto currency",
			},
			[]string{"direction", "crypto_currency"},
		),
		TradeTransitionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_trade_transitions_total",
				Help: "Applied trade state transitions",
			},
			[]string{"event", "from", "to"},
		),
		TradeTransitionErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_trade_transition_errors_total",
				Help: "Rejected or failed trade transitions, by error kind",
			},
			[]string{"event", "kind"},
		),
		TradeConflictRetries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_trade_conflict_retries_total",
				Help: "Optimistic concurrency conflicts retried with a fresh read",
			},
			[]string{"event"},
		),
		TradesCompletedVolume: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_trades_completed_crypto_volume_total",
				Help: "Crypto volume released through completed trades",
			},
			[]string{"crypto_currency"},
		),
		TradeTransitionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "escrow_trade_transition_duration_seconds",
				Help:    "Time to apply a trade transition including retries",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"event"},
		),
		ExpiredTradesCancelled: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "escrow_expired_trades_cancelled_total",
				Help: "Trades cancelled by the expiry sweep",
			},
		),
		RatingsCreatedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_ratings_created_total",
				Help: "Ratings recorded, by overall score",
			},
			[]string{"rating"},
		),
		ReportsCreatedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_reports_created_total",
				Help: "Misconduct reports filed, by type",
			},
			[]string{"type"},
		),
		TrustRecomputeDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "escrow_trust_recompute_duration_seconds",
				Help:    "Time to recompute and store one trust score",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
			},
		),
		TrustRecomputeFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "escrow_trust_recompute_failures_total",
				Help: "Trust recomputations that returned an error",
			},
		),
	}
}

func (m *EscrowMetrics) RecordTradeCreated(direction, crypto string) {
	if m == nil {
		return
	}
	m.TradesCreatedTotal.WithLabelValues(direction, crypto).Inc()
}

func (m *EscrowMetrics) RecordTransition(event, from, to string, started time.Time) {
	if m == nil {
		return
	}
	m.TradeTransitionsTotal.WithLabelValues(event, from, to).Inc()
	m.TradeTransitionDuration.WithLabelValues(event).Observe(time.Since(started).Seconds())
}

func (m *EscrowMetrics) RecordTransitionError(event, kind string) {
	if m == nil {
		return
	}
	m.TradeTransitionErrors.WithLabelValues(event, kind).Inc()
}

func (m *EscrowMetrics) RecordConflictRetry(event string) {
	if m == nil {
		return
	}
	m.TradeConflictRetries.WithLabelValues(event).Inc()
}

func (m *EscrowMetrics) RecordTradeCompleted(crypto string, amount float64) {
	if m == nil {
		return
	}
	m.TradesCompletedVolume.WithLabelValues(crypto).Add(amount)
}

func (m *EscrowMetrics) RecordExpiredCancelled(n int) {
	if m == nil {
		return
	}
	m.ExpiredTradesCancelled.Add(float64(n))
}

func (m *EscrowMetrics) RecordRatingCreated(rating string) {
	if m == nil {
		return
	}
	m.RatingsCreatedTotal.WithLabelValues(rating).Inc()
}

func (m *EscrowMetrics) RecordReportCreated(reportType string) {
	if m == nil {
		return
	}
	m.ReportsCreatedTotal.WithLabelValues(reportType).Inc()
}

func (m *EscrowMetrics) RecordTrustRecompute(started time.Time, err error) {
	if m == nil {
		return
	}
	m.TrustRecomputeDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		m.TrustRecomputeFailures.Inc()
	}
}
