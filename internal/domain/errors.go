package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid trade transition")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidParties    = errors.New("invalid trade parties")
	ErrAlreadyRated      = errors.New("trade already rated by this user")
	ErrConflict          = errors.New("concurrent update conflict")
	ErrInvalidInput      = errors.New("invalid input")

	// ErrDuplicateTradeCode is returned by TradeRepository.CreateTrade when the
	// generated code is already taken.
	ErrDuplicateTradeCode = errors.New("duplicate trade code")
)
