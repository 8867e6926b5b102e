package bank

import (
	"github.com/gmkumar2005/disintegrate/internal/event"
	"github.com/gmkumar2005/disintegrate/internal/state"
)

// Status is an account's lifecycle stage.
type Status string

const (
	StatusUnknown Status = ""
	StatusOpen    Status = "open"
	StatusClosed  Status = "closed"
)

const (
	accountPart = "account"
	balancePart = "balance"
)

func status(accountID int64) state.Part[Event, Status] {
	return state.NewPart(accountPart, nil, func(s Status, pe event.Persisted[Event]) Status {
		switch pe.Event().(type) {
		case AccountOpened:
			return StatusOpen
		case AccountClosed:
			return StatusClosed
		}
		return s
	}, "AccountOpened", "AccountClosed").Where(forAccount(accountID))
}

func balance(accountID int64) state.Part[Event, int64] {
	return state.NewPart(balancePart, nil, func(n int64, pe event.Persisted[Event]) int64 {
		switch e := pe.Event().(type) {
		case AmountDeposited:
			return n + e.Amount
		case AmountWithdrawn:
			return n - e.Amount
		}
		return n
	}, "AmountDeposited", "AmountWithdrawn").Where(forAccount(accountID))
}

// Account projects one account's status and balance as a composite state.
func Account(accountID int64) state.Multi[Event] {
	return state.NewMulti[Event](status(accountID), balance(accountID))
}

// AccountState is the typed view of an Account snapshot.
type AccountState struct {
	Status  Status
	Balance int64
}

// View reads an Account snapshot.
func View(s state.Snapshot) AccountState {
	return AccountState{
		Status:  state.MustValue[Status](s, accountPart),
		Balance: state.MustValue[int64](s, balancePart),
	}
}

// Summary projects the balance and status of every account.
func Summary() state.Multi[Event] {
	balances := state.NewPart("balances", func() map[int64]int64 {
		return map[int64]int64{}
	}, func(m map[int64]int64, pe event.Persisted[Event]) map[int64]int64 {
		switch e := pe.Event().(type) {
		case AmountDeposited:
			m[e.AccountID] += e.Amount
		case AmountWithdrawn:
			m[e.AccountID] -= e.Amount
		}
		return m
	}, "AmountDeposited", "AmountWithdrawn")

	statuses := state.NewPart("accounts", func() map[int64]Status {
		return map[int64]Status{}
	}, func(m map[int64]Status, pe event.Persisted[Event]) map[int64]Status {
		switch e := pe.Event().(type) {
		case AccountOpened:
			m[e.AccountID] = StatusOpen
		case AccountClosed:
			m[e.AccountID] = StatusClosed
		}
		return m
	}, "AccountOpened", "AccountClosed")

	return state.NewMulti[Event](statuses, balances)
}

func forAccount(accountID int64) func(Event) bool {
	return func(e Event) bool { return e.Account() == accountID }
}
