// Package bank holds the account collection and the login that binds an
// ATM terminal to one account after PIN verification.
package bank

import (
	"errors"
	"fmt"

	"go-atm-example/model"
)

// ErrDuplicateAccount is returned when the seed contains two records with
// the same account id.
var ErrDuplicateAccount = errors.New("duplicate account id")

// Bank owns the customer accounts for the lifetime of the process. It is
// built once from a seed and only ever read afterwards; accounts themselves
// mutate through deposits and withdrawals.
type Bank struct {
	accounts map[string]*model.Account
}

// New builds a bank from seed records, one account per record with the
// record's starting balance and no prior history. Account ids must be
// unique across the seed.
func New(records []model.AccountRecord) (*Bank, error) {
	accounts := make(map[string]*model.Account, len(records))
	for _, rec := range records {
		if _, exists := accounts[rec.AccountID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAccount, rec.AccountID)
		}
		accounts[rec.AccountID] = model.NewAccount(rec.AccountID, rec.PIN, rec.Balance)
	}
	return &Bank{accounts: accounts}, nil
}

// Account returns the account with the given id, or nil when no such
// account exists. Lookup never fails with an error.
func (b *Bank) Account(id string) *model.Account {
	return b.accounts[id]
}

// Len reports how many accounts the bank holds.
func (b *Bank) Len() int {
	return len(b.accounts)
}
