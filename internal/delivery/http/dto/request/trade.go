package request

type CreateTradeRequest struct {
	Direction      string  `json:"direction"`
	CounterpartyID uint    `json:"counterparty_id"`
	CryptoAmount   float64 `json:"crypto_amount"`
	CryptoCurrency string  `json:"crypto_currency"`
	FiatAmount     float64 `json:"fiat_amount"`
	FiatCurrency   string  `json:"fiat_currency"`
	ExchangeRate   float64 `json:"exchange_rate"`
	PaymentMethod  string  `json:"payment_method"`
}

type CancelTradeRequest struct {
	Reason string `json:"reason"`
}

type DisputeTradeRequest struct {
	Reason   string `json:"reason"`
	Evidence string `json:"evidence"`
}
