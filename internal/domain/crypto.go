package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type CryptoConfig struct {
	Symbol          string
	Name            string
	Network         string
	Decimals        int
	MinAmount       decimal.Decimal
	MaxAmount       decimal.Decimal
	FeePercent      decimal.Decimal
	ContractAddress string
	IsTestnet       bool
	IsActive        bool
}

type CryptoConfigRepository interface {
	GetBySymbol(ctx context.Context, symbol string) (*CryptoConfig, error)
	ListActive(ctx context.Context) ([]*CryptoConfig, error)
	// Upsert inserts or replaces the row keyed by symbol.
	Upsert(ctx context.Context, cfg *CryptoConfig) error
	// CreateIfAbsent inserts cfg unless its symbol exists and reports
	// whether a row was written. Existing rows are left untouched.
	CreateIfAbsent(ctx context.Context, cfg *CryptoConfig) (bool, error)
}

// CryptoCatalog is the read-only view trade creation validates against.
// Unknown or inactive symbols yield ErrNotFound.
type CryptoCatalog interface {
	GetConfig(ctx context.Context, symbol string) (*CryptoConfig, error)
	IsAmountValid(ctx context.Context, symbol string, amount float64) (bool, error)
}
