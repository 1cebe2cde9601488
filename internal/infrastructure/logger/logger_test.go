package logger

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/config"
	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNewLogger(t *testing.T) {
	l, err := New(config.LogConfig{LogLevel: "debug", LogFormat: "console", LogOutput: "stdout"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(-1))

	file := filepath.Join(t.TempDir(), "escrow.log")
	l, err = New(config.LogConfig{LogLevel: "warn", LogFormat: "json", LogOutput: file})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(0))
	l.Warn("rotated sink")
	require.NoError(t, l.Sync())
}

func TestNewLoggerRejectsBadConfig(t *testing.T) {
	_, err := New(config.LogConfig{LogLevel: "loud"})
	require.Error(t, err)

	_, err = New(config.LogConfig{LogLevel: "info", LogFormat: "xml"})
	require.Error(t, err)
}

func TestPGTradeEventLoggerHistory(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&TradeTransitionEvent{}))

	audit := NewPGTradeEventLogger(db)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, audit.LogTransition(ctx, domain.TransitionRecord{
		TradeCode: "TPAAAA0001", Event: domain.EventFund,
		From: domain.TradeInitiated, To: domain.TradeEscrowFunded, ActorID: 2, At: now,
	}))
	require.NoError(t, audit.LogTransition(ctx, domain.TransitionRecord{
		TradeCode: "TPAAAA0001", Event: domain.EventConfirmPayment,
		From: domain.TradeEscrowFunded, To: domain.TradePaymentSent, ActorID: 1, At: now.Add(time.Second),
	}))
	require.NoError(t, audit.LogTransition(ctx, domain.TransitionRecord{
		TradeCode: "TPBBBB0002", Event: domain.EventCancel,
		From: domain.TradeInitiated, To: domain.TradeCancelled, ActorID: 3, At: now,
	}))

	history, err := audit.History(ctx, "TPAAAA0001")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "fund_escrow", history[0].Event)
	assert.Equal(t, "PAYMENT_SENT", history[1].ToStatus)
	assert.Equal(t, uint(1), history[1].ActorID)
}
