package domain

import "time"

type TradeStatus string

const (
	TradeInitiated        TradeStatus = "INITIATED"
	TradeEscrowFunded     TradeStatus = "ESCROW_FUNDED"
	TradePaymentSent      TradeStatus = "PAYMENT_SENT"
	TradePaymentConfirmed TradeStatus = "PAYMENT_CONFIRMED"
	TradeCompleted        TradeStatus = "COMPLETED"
	TradeCancelled        TradeStatus = "CANCELLED"
	TradeDisputed         TradeStatus = "DISPUTED"
)

func (s TradeStatus) Valid() bool {
	switch s {
	case TradeInitiated, TradeEscrowFunded, TradePaymentSent, TradePaymentConfirmed,
		TradeCompleted, TradeCancelled, TradeDisputed:
		return true
	}
	return false
}

func (s TradeStatus) IsTerminal() bool {
	return s == TradeCompleted || s == TradeCancelled
}

type TradeDirection string

const (
	DirectionBuy  TradeDirection = "BUY"
	DirectionSell TradeDirection = "SELL"
)

func (d TradeDirection) Valid() bool {
	return d == DirectionBuy || d == DirectionSell
}

// TradeEvent is a trigger of the trade state machine.
type TradeEvent string

const (
	EventCreate         TradeEvent = "create"
	EventFund           TradeEvent = "fund_escrow"
	EventConfirmPayment TradeEvent = "confirm_payment"
	EventRelease        TradeEvent = "release_escrow"
	EventComplete       TradeEvent = "complete"
	EventCancel         TradeEvent = "cancel"
	EventDispute        TradeEvent = "dispute"
	EventUpdate         TradeEvent = "update"
)

// SystemActorID marks transitions performed by the service itself
// (internal completion, expiry sweep). Real users never have id 0.
const SystemActorID uint = 0

const (
	TradeExpiryWindow   = 24 * time.Hour
	PaymentWindow       = 2 * time.Hour
	DefaultCryptoSymbol = "USDT"
	DefaultFiatCurrency = "NGN"
)

type Trade struct {
	ID   uint
	Code string

	BuyerID  uint
	SellerID uint

	CryptoAmount   float64
	CryptoCurrency string
	FiatAmount     float64
	FiatCurrency   string
	ExchangeRate   float64
	PaymentMethod  string

	Status TradeStatus

	EscrowTxHash     string
	ReleaseTxHash    string
	PaymentReference string
	PaymentProof     string

	IsDisputed      bool
	DisputeReason   string
	DisputeEvidence string
	CancelReason    string

	CreatedAt       time.Time
	UpdatedAt       time.Time
	ExpiresAt       time.Time
	PaymentDeadline time.Time
	CompletedAt     *time.Time

	// Version is the optimistic concurrency token. Repositories bump it on
	// every successful write.
	Version int64
}

func (t *Trade) IsParticipant(userID uint) bool {
	return userID != SystemActorID && (t.BuyerID == userID || t.SellerID == userID)
}

// Counterparty returns the other participant, or 0 when userID is not part of the trade.
func (t *Trade) Counterparty(userID uint) uint {
	switch userID {
	case t.BuyerID:
		return t.SellerID
	case t.SellerID:
		return t.BuyerID
	}
	return 0
}

type TradeFilter struct {
	UserID uint
	Status *TradeStatus
	Limit  int
	Offset int
}

// TransitionRecord describes one applied state change. It feeds the audit
// log and the trade event stream.
type TransitionRecord struct {
	TradeCode      string
	Event          TradeEvent
	From           TradeStatus
	To             TradeStatus
	ActorID        uint
	BuyerID        uint
	SellerID       uint
	CryptoAmount   float64
	CryptoCurrency string
	FiatAmount     float64
	FiatCurrency   string
	At             time.Time
}
