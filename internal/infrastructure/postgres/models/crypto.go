package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CryptoConfigModel struct {
	ID              uint            `gorm:"primaryKey"`
	Symbol          string          `gorm:"uniqueIndex;size:16;not null"`
	Name            string          `gorm:"size:64"`
	Network         string          `gorm:"size:64;not null"`
	Decimals        int             `gorm:"not null"`
	MinAmount       decimal.Decimal `gorm:"type:numeric(36,18);not null"`
	MaxAmount       decimal.Decimal `gorm:"type:numeric(36,18);not null"`
	FeePercent      decimal.Decimal `gorm:"type:numeric(10,4);not null"`
	ContractAddress string          `gorm:"size:128"`
	IsTestnet       bool            `gorm:"not null"`
	IsActive        bool            `gorm:"not null;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (CryptoConfigModel) TableName() string {
	return "crypto_configs"
}
