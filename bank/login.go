package bank

import (
	"errors"

	"go-atm-example/model"
)

// ErrAuthentication is returned when a login cannot be established. It
// deliberately does not distinguish an unknown account from a wrong pin,
// so account ids cannot be enumerated through the terminal.
var ErrAuthentication = errors.New("authentication failed")

// Login links a terminal to a specific account after authentication. A
// login never re-authenticates once closed; a new one must be created.
type Login struct {
	account       *model.Account
	authenticated bool
}

// NewLogin authenticates the presented pin against the account and returns
// an authenticated login bound to it. A nil account or a pin mismatch
// yields ErrAuthentication and no login.
func NewLogin(account *model.Account, pin string) (*Login, error) {
	if account == nil || !account.VerifyPIN(pin) {
		return nil, ErrAuthentication
	}
	return &Login{account: account, authenticated: true}, nil
}

// Account returns the bound account. It stays set after Close.
func (l *Login) Account() *model.Account { return l.account }

// Authenticated reports whether the login is still active.
func (l *Login) Authenticated() bool { return l.authenticated }

// Close deactivates the login. Idempotent.
func (l *Login) Close() { l.authenticated = false }
