package escrowdto

import "time"

// EscrowStatusOutput is the participant view of a trade's escrow progress.
type EscrowStatusOutput struct {
	TradeCode        string    `json:"trade_code"`
	Status           string    `json:"status"`
	EscrowFunded     bool      `json:"escrow_funded"`
	PaymentSent      bool      `json:"payment_sent"`
	PaymentConfirmed bool      `json:"payment_confirmed"`
	Completed        bool      `json:"completed"`
	EscrowTxHash     string    `json:"escrow_tx_hash,omitempty"`
	ReleaseTxHash    string    `json:"release_tx_hash,omitempty"`
	ExpiresAt        time.Time `json:"expires_at"`
	PaymentDeadline  time.Time `json:"payment_deadline"`
}
