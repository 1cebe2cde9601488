package catalog

import (
	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/shopspring/decimal"
)

var SupportedFiat = []string{"NGN", "USD", "EUR", "GBP", "KES", "GHS", "ZAR"}

func entry(symbol, name, network string, decimals int, min, max, fee, contract string) *domain.CryptoConfig {
	return &domain.CryptoConfig{
		Symbol:          symbol,
		Name:            name,
		Network:         network,
		Decimals:        decimals,
		MinAmount:       decimal.RequireFromString(min),
		MaxAmount:       decimal.RequireFromString(max),
		FeePercent:      decimal.RequireFromString(fee),
		ContractAddress: contract,
		IsActive:        true,
	}
}

// DefaultConfigs is the catalog installed by SeedDefaults.
func DefaultConfigs() []*domain.CryptoConfig {
	return []*domain.CryptoConfig{
		entry("USDT", "Tether USD", "ethereum", 6, "10", "100000", "0.1", "0xdAC17F958D2ee523a2206206994597C13D831ec7"),
		entry("BTC", "Bitcoin", "bitcoin", 8, "0.001", "10", "0.15", ""),
		entry("ETH", "Ethereum", "ethereum", 18, "0.01", "100", "0.12", ""),
		entry("USDC", "USD Coin", "ethereum", 6, "10", "100000", "0.1", "0xA0b86a33E6441b8435b662303c0f218C8c7c8e37"),
		entry("BNB", "BNB", "binance-smart-chain", 18, "0.1", "1000", "0.12", ""),
		entry("ADA", "Cardano", "cardano", 6, "10", "10000", "0.12", ""),
		entry("SOL", "Solana", "solana", 9, "0.1", "1000", "0.12", ""),
		entry("DOT", "Polkadot", "polkadot", 10, "1", "1000", "0.12", ""),
		entry("MATIC", "Polygon", "polygon", 18, "10", "10000", "0.1", ""),
		entry("AVAX", "Avalanche", "avalanche", 18, "0.1", "1000", "0.12", ""),
	}
}
