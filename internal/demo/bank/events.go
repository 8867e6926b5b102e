package bank

import "github.com/gmkumar2005/disintegrate/internal/event"

// Event is any bank domain event.
type Event interface {
	event.Event
	Account() int64
}

type AccountOpened struct {
	AccountID int64 `json:"account_id"`
}

type AmountDeposited struct {
	AccountID int64 `json:"account_id"`
	Amount    int64 `json:"amount"`
}

type AmountWithdrawn struct {
	AccountID int64 `json:"account_id"`
	Amount    int64 `json:"amount"`
}

type AccountClosed struct {
	AccountID int64 `json:"account_id"`
}

func (AccountOpened) EventType() string   { return "AccountOpened" }
func (AmountDeposited) EventType() string { return "AmountDeposited" }
func (AmountWithdrawn) EventType() string { return "AmountWithdrawn" }
func (AccountClosed) EventType() string   { return "AccountClosed" }

func (e AccountOpened) Account() int64   { return e.AccountID }
func (e AmountDeposited) Account() int64 { return e.AccountID }
func (e AmountWithdrawn) Account() int64 { return e.AccountID }
func (e AccountClosed) Account() int64   { return e.AccountID }

// Codec returns a codec for every bank event.
func Codec() *event.Codec[Event] {
	c := event.NewCodec[Event]()
	event.Register[AccountOpened](c)
	event.Register[AmountDeposited](c)
	event.Register[AmountWithdrawn](c)
	event.Register[AccountClosed](c)
	return c
}
