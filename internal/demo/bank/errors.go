package bank

import "errors"

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAccountNotOpen    = errors.New("account not open")
	ErrAccountExists     = errors.New("account already opened")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrBalanceNotZero    = errors.New("balance must be zero to close")
)
