// Package bank is a minimal account domain used to exercise failure paths:
// withdrawals check the balance before the account status, so a withdrawal
// from an account with no history reports insufficient funds.
package bank
