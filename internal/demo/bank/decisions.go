package bank

import (
	"github.com/gmkumar2005/disintegrate/internal/decision"
	"github.com/gmkumar2005/disintegrate/internal/state"
)

type OpenAccount struct {
	AccountID int64 `json:"account_id"`
}

func (d OpenAccount) StateQuery() state.Query[Event, state.Snapshot] {
	return Account(d.AccountID)
}

func (d OpenAccount) Process(s state.Snapshot) ([]Event, error) {
	if View(s).Status != StatusUnknown {
		return nil, ErrAccountExists
	}
	return []Event{AccountOpened{AccountID: d.AccountID}}, nil
}

type Deposit struct {
	AccountID int64 `json:"account_id"`
	Amount    int64 `json:"amount"`
}

func (d Deposit) StateQuery() state.Query[Event, state.Snapshot] {
	return Account(d.AccountID)
}

func (d Deposit) Process(s state.Snapshot) ([]Event, error) {
	if d.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if View(s).Status != StatusOpen {
		return nil, ErrAccountNotOpen
	}
	return []Event{AmountDeposited{AccountID: d.AccountID, Amount: d.Amount}}, nil
}

// Withdraw takes money out of an account. Funds are checked before status.
type Withdraw struct {
	AccountID int64 `json:"account_id"`
	Amount    int64 `json:"amount"`
}

func (d Withdraw) StateQuery() state.Query[Event, state.Snapshot] {
	return Account(d.AccountID)
}

func (d Withdraw) Process(s state.Snapshot) ([]Event, error) {
	acct := View(s)
	if d.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if acct.Balance < d.Amount {
		return nil, ErrInsufficientFunds
	}
	if acct.Status != StatusOpen {
		return nil, ErrAccountNotOpen
	}
	return []Event{AmountWithdrawn{AccountID: d.AccountID, Amount: d.Amount}}, nil
}

// CloseAccount closes an open account with a zero balance.
type CloseAccount struct {
	AccountID int64 `json:"account_id"`
}

func (d CloseAccount) StateQuery() state.Query[Event, state.Snapshot] {
	return Account(d.AccountID)
}

func (d CloseAccount) Process(s state.Snapshot) ([]Event, error) {
	acct := View(s)
	if acct.Status != StatusOpen {
		return nil, ErrAccountNotOpen
	}
	if acct.Balance != 0 {
		return nil, ErrBalanceNotZero
	}
	return []Event{AccountClosed{AccountID: d.AccountID}}, nil
}

// Registry names every bank decision for scenarios and the CLI.
func Registry() *decision.Registry[Event] {
	r := decision.NewRegistry[Event]()
	decision.Register[OpenAccount, Event, state.Snapshot](r, "OpenAccount")
	decision.Register[Deposit, Event, state.Snapshot](r, "Deposit")
	decision.Register[Withdraw, Event, state.Snapshot](r, "Withdraw")
	decision.Register[CloseAccount, Event, state.Snapshot](r, "CloseAccount")
	return r
}
