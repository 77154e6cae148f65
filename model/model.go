// Package model defines the core data structures of the ATM application:
// the transaction ledger, the customer account, and the seed record a bank
// is bootstrapped from.
//
// All monetary values use "github.com/shopspring/decimal" rather than
// float64. Binary floating point cannot represent most decimal fractions
// exactly (0.1 + 0.2 != 0.3), and those rounding errors accumulate across
// chained balance updates. The decimal package keeps currency arithmetic
// exact for the whole lifetime of an account.
package model

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrOverdrawn is returned by Withdraw when the account balance is already
// negative before the withdrawal is attempted. No further withdrawals are
// permitted until a deposit brings the balance non-negative.
var ErrOverdrawn = errors.New("account overdrawn")

// OverdraftFee is the fixed fee charged, as its own transaction, whenever a
// withdrawal drives the balance negative.
var OverdraftFee = decimal.NewFromInt(5)

// Transaction is an immutable record of one balance-affecting event.
// Amount is the signed delta applied; Balance is the resulting account
// balance after that delta.
type Transaction struct {
	Amount    decimal.Decimal `json:"amount"`
	Balance   decimal.Decimal `json:"balance"`
	Timestamp time.Time       `json:"timestamp"`
}

// String renders the transaction as a single history line: timestamp, then
// the amount and resulting balance right-aligned with two decimal places.
func (t Transaction) String() string {
	return fmt.Sprintf("%s %8s %9s",
		t.Timestamp.Format("2006-01-02 15:04:05"),
		t.Amount.StringFixed(2),
		t.Balance.StringFixed(2))
}

// AccountRecord is one row of the bank bootstrap seed.
type AccountRecord struct {
	AccountID string          `json:"account_id"`
	PIN       string          `json:"pin"`
	Balance   decimal.Decimal `json:"balance"`
}

// Account is a bank account for a specific customer. The balance is never
// stored independently: it is always the Balance field of the newest
// transaction. Creation materializes the initial balance as a synthetic
// zero-amount opening transaction, so the list is never empty.
type Account struct {
	id           string
	pin          string
	transactions []Transaction // newest first; last entry is the opening one
}

// NewAccount creates an account holding only the synthetic opening
// transaction for the given initial balance.
func NewAccount(id, pin string, balance decimal.Decimal) *Account {
	return &Account{
		id:  id,
		pin: pin,
		transactions: []Transaction{{
			Amount:    decimal.Zero,
			Balance:   balance,
			Timestamp: time.Now().UTC(),
		}},
	}
}

// ID returns the account identifier.
func (a *Account) ID() string { return a.id }

// VerifyPIN reports whether the presented pin matches the account's pin.
// The comparison is constant time for equal-length inputs so a correct
// prefix cannot be probed through timing.
func (a *Account) VerifyPIN(pin string) bool {
	return subtle.ConstantTimeCompare([]byte(a.pin), []byte(pin)) == 1
}

// Balance is the newest transaction's resulting balance.
func (a *Account) Balance() decimal.Decimal {
	return a.transactions[0].Balance
}

// apply appends a new transaction for the given signed delta at the head of
// the ledger.
func (a *Account) apply(amount decimal.Decimal) {
	entry := Transaction{
		Amount:    amount,
		Balance:   a.Balance().Add(amount),
		Timestamp: time.Now().UTC(),
	}
	a.transactions = append([]Transaction{entry}, a.transactions...)
}

// Deposit applies value as a single signed delta. It always succeeds and
// records exactly one transaction.
func (a *Account) Deposit(value decimal.Decimal) {
	a.apply(value)
}

// Withdraw debits value from the account. If the balance is already
// negative the withdrawal is rejected with ErrOverdrawn and nothing is
// recorded. Otherwise one transaction with delta -value is appended; if
// that drives the balance negative, the overdraft fee is appended as a
// second transaction on top of it, so the fee is the most recent entry.
func (a *Account) Withdraw(value decimal.Decimal) error {
	if a.Balance().IsNegative() {
		return ErrOverdrawn
	}
	a.apply(value.Neg())
	if a.Balance().IsNegative() {
		a.apply(OverdraftFee.Neg())
	}
	return nil
}

// History returns the transactions in stored order (newest first),
// excluding the synthetic opening entry. The returned slice is a copy.
func (a *Account) History() []Transaction {
	history := make([]Transaction, len(a.transactions)-1)
	copy(history, a.transactions[:len(a.transactions)-1])
	return history
}

// Transactions returns a copy of the full ledger, opening entry included,
// newest first.
func (a *Account) Transactions() []Transaction {
	all := make([]Transaction, len(a.transactions))
	copy(all, a.transactions)
	return all
}
