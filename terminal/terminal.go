// Package terminal implements a single ATM terminal: a cash reserve, at
// most one active login, and the line-oriented command protocol a customer
// interacts with.
//
// Normal responses go to the out writer; malformed commands and parameters
// go to the diagnostic writer. Business-rule failures (failed
// authorization, overdrawn account) are normal responses, not diagnostics.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go-atm-example/bank"
	"go-atm-example/model"

	"github.com/shopspring/decimal"
)

const prompt = "--> "

// Withdrawals must be dispensable in $20 bills.
var billSize = decimal.NewFromInt(20)

// ATM is one terminal attached to a bank. It holds the machine's physical
// cash reserve and the current login, if any. The cash reserve only ever
// decreases: there is no cash-deposit channel.
type ATM struct {
	bank   *bank.Bank
	cash   decimal.Decimal
	login  *bank.Login
	out    io.Writer
	errOut io.Writer
}

// New creates a terminal with the given starting cash reserve, writing
// normal responses to out and diagnostics to errOut.
func New(b *bank.Bank, cash decimal.Decimal, out, errOut io.Writer) *ATM {
	return &ATM{bank: b, cash: cash, out: out, errOut: errOut}
}

// Cash returns the remaining physical reserve.
func (a *ATM) Cash() decimal.Decimal { return a.cash }

// Account returns the currently authorized account, or nil when no login
// is active.
func (a *ATM) Account() *model.Account {
	if a.login == nil || !a.login.Authenticated() {
		return nil
	}
	return a.login.Account()
}

// Run reads commands from r one line at a time until an "end" command or
// end of input, fully processing each command before reading the next.
func (a *ATM) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(a.out, prompt)
		if !scanner.Scan() {
			return scanner.Err()
		}
		if !a.Dispatch(scanner.Text()) {
			return nil
		}
	}
}

// Dispatch parses one command line and runs it. It returns false only for
// the "end" command, which terminates the session loop.
func (a *ATM) Dispatch(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		fmt.Fprintln(a.errOut, "Invalid Command")
		return true
	}
	command, params := fields[0], fields[1:]

	switch command {
	case "end":
		return false
	case "authorize":
		a.authorize(params)
	case "withdraw":
		a.withdraw(params)
	case "deposit":
		a.deposit(params)
	case "balance":
		a.balance(params)
	case "history":
		a.history(params)
	case "logout":
		a.logout(params)
	default:
		fmt.Fprintln(a.errOut, "Invalid Command:", command)
	}
	return true
}

// authorize authenticates an account on this terminal. Success replaces
// any previous login silently; failure leaves the terminal unauthorized.
func (a *ATM) authorize(params []string) {
	if len(params) != 2 {
		fmt.Fprintln(a.errOut, "Authorize requires account id and pin")
		return
	}
	accountID, pin := params[0], params[1]

	// Any authorize attempt ends the previous session.
	if a.login != nil {
		a.login.Close()
		a.login = nil
	}

	login, err := bank.NewLogin(a.bank.Account(accountID), pin)
	if err != nil {
		fmt.Fprintln(a.out, "Authorization failed.")
		return
	}
	a.login = login
}

// logout ends the current login. Idempotent.
func (a *ATM) logout(_ []string) {
	if a.login == nil {
		fmt.Fprintln(a.out, "No account is currently authorized.")
		return
	}
	accountID := a.login.Account().ID()
	a.login.Close()
	a.login = nil
	fmt.Fprintf(a.out, "Account %s logged out.\n", accountID)
}

// withdraw dispenses cash from the authorized account. The amount must be
// a positive multiple of $20. When the reserve cannot cover the full
// amount, only the reserve is dispensed; an empty reserve dispenses $0.
func (a *ATM) withdraw(params []string) {
	acct := a.Account()
	if acct == nil {
		fmt.Fprintln(a.out, "Authorization required.")
		return
	}
	value, err := parseAmount(params)
	if err != nil {
		fmt.Fprintln(a.errOut, "Withdraw requires a numeric quantity")
		return
	}
	if !value.IsPositive() || !value.Mod(billSize).IsZero() {
		fmt.Fprintln(a.errOut, "Amount withdraw must be a multiple of $20")
		return
	}

	allowed := value
	if allowed.GreaterThan(a.cash) {
		allowed = a.cash
	}

	if err := acct.Withdraw(allowed); err != nil {
		fmt.Fprintln(a.out, "Your account is overdrawn! You may not make withdrawals at this time.")
		return
	}
	a.cash = a.cash.Sub(allowed)

	if allowed.LessThan(value) {
		fmt.Fprintln(a.out, "Unable to dispense full amount requested at this time.")
	}
	fmt.Fprintf(a.out, "Amount dispensed: $%s\n", allowed)
	if acct.Balance().IsNegative() {
		fmt.Fprintf(a.out, "You have been charged an overdraft fee of $%s. ", model.OverdraftFee)
	}
	a.printBalance(acct)
}

// deposit credits the authorized account. The terminal's cash reserve is
// unaffected: deposited funds are not dispensable.
func (a *ATM) deposit(params []string) {
	acct := a.Account()
	if acct == nil {
		fmt.Fprintln(a.out, "Authorization required.")
		return
	}
	value, err := parseAmount(params)
	if err != nil {
		fmt.Fprintln(a.errOut, "Deposit requires a numeric quantity")
		return
	}
	acct.Deposit(value)
	a.printBalance(acct)
}

func (a *ATM) balance(_ []string) {
	acct := a.Account()
	if acct == nil {
		fmt.Fprintln(a.out, "Authorization required.")
		return
	}
	a.printBalance(acct)
}

// history prints every transaction of the authorized account except the
// synthetic opening one, newest first.
func (a *ATM) history(_ []string) {
	acct := a.Account()
	if acct == nil {
		fmt.Fprintln(a.out, "Authorization required.")
		return
	}
	entries := acct.History()
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No history found")
		return
	}
	for _, tx := range entries {
		fmt.Fprintln(a.out, tx)
	}
}

func (a *ATM) printBalance(acct *model.Account) {
	fmt.Fprintf(a.out, "Current balance: %s\n", acct.Balance())
}

// parseAmount expects exactly one decimal token.
func parseAmount(params []string) (decimal.Decimal, error) {
	if len(params) != 1 {
		return decimal.Decimal{}, fmt.Errorf("expected one amount, got %d tokens", len(params))
	}
	return decimal.NewFromString(params[0])
}
