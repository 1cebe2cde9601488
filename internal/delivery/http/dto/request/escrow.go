package request

type FundEscrowRequest struct {
	TxHash string `json:"tx_hash"`
}

type ConfirmPaymentRequest struct {
	PaymentReference string `json:"payment_reference"`
	PaymentProof     string `json:"payment_proof"`
}
