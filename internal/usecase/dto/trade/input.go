package tradedto

import "github.com/LavaJover/shvark-escrow-service/internal/domain"

type CreateTradeInput struct {
	InitiatorID    uint
	Direction      domain.TradeDirection
	CounterpartyID uint
	CryptoAmount   float64
	CryptoCurrency string
	FiatAmount     float64
	FiatCurrency   string
	ExchangeRate   float64
	PaymentMethod  string
}

// UpdateTradeInput carries a partial update keyed by column name. Only the
// allow-listed fields are accepted.
type UpdateTradeInput struct {
	Code   string
	UserID uint
	Fields map[string]string
}

type ListTradesInput struct {
	UserID uint
	Status string
	Limit  int
	Offset int
}
