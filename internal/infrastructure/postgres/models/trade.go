package models

import (
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

type TradeModel struct {
	ID       uint   `gorm:"primaryKey"`
	Code     string `gorm:"uniqueIndex;size:16;not null"`
	BuyerID  uint   `gorm:"index;not null"`
	SellerID uint   `gorm:"index;not null"`

	CryptoAmount   float64 `gorm:"not null"`
	CryptoCurrency string  `gorm:"size:16;not null"`
	FiatAmount     float64 `gorm:"not null"`
	FiatCurrency   string  `gorm:"size:8;not null"`
	ExchangeRate   float64 `gorm:"not null"`
	PaymentMethod  string  `gorm:"size:64"`

	Status domain.TradeStatus `gorm:"size:32;not null;index:idx_trade_status_expires"`

	EscrowTxHash     string
	ReleaseTxHash    string
	PaymentReference string
	PaymentProof     string

	IsDisputed      bool `gorm:"not null"`
	DisputeReason   string
	DisputeEvidence string
	CancelReason    string

	ExpiresAt       time.Time `gorm:"not null;index:idx_trade_status_expires"`
	PaymentDeadline time.Time `gorm:"not null"`
	CompletedAt     *time.Time
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time

	Version int64 `gorm:"not null"`
}

func (TradeModel) TableName() string {
	return "trades"
}
