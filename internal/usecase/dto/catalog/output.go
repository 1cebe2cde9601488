package catalogdto

import "github.com/shopspring/decimal"

type CryptoOption struct {
	Symbol     string          `json:"symbol"`
	Name       string          `json:"name"`
	Network    string          `json:"network"`
	Decimals   int             `json:"decimals"`
	MinAmount  decimal.Decimal `json:"min_amount"`
	MaxAmount  decimal.Decimal `json:"max_amount"`
	FeePercent decimal.Decimal `json:"fee_percent"`
}

type TradingPair struct {
	Crypto string `json:"crypto"`
	Fiat   string `json:"fiat"`
	Pair   string `json:"pair"`
}

type AmountValidation struct {
	Symbol    string          `json:"symbol"`
	Amount    decimal.Decimal `json:"amount"`
	Valid     bool            `json:"valid"`
	MinAmount decimal.Decimal `json:"min_amount"`
	MaxAmount decimal.Decimal `json:"max_amount"`
	Fee       decimal.Decimal `json:"fee"`
	Total     decimal.Decimal `json:"total"`
}

type FeeQuote struct {
	Symbol     string          `json:"symbol"`
	Amount     decimal.Decimal `json:"amount"`
	FeePercent decimal.Decimal `json:"fee_percent"`
	Fee        decimal.Decimal `json:"fee"`
	Total      decimal.Decimal `json:"total"`
}
