// Package storage supplies the account records a bank is bootstrapped
// from. The core never cares where the seed comes from; sources exist for
// an embedded demo list, a CSV file, and a Postgres table.
package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"go-atm-example/model"

	"github.com/shopspring/decimal"
)

// Source yields the seed records for bank construction.
type Source interface {
	LoadAccounts(ctx context.Context) ([]model.AccountRecord, error)
}

// Seed CSV column headers.
const (
	colAccountID = "ACCOUNT_ID"
	colPIN       = "PIN"
	colBalance   = "BALANCE"
)

// demoAccountsCSV is the fixed customer list used in test and demo mode.
// It is not meant for a production environment.
const demoAccountsCSV = `ACCOUNT_ID,PIN,BALANCE
2859459814,7386,10.24
1434597300,4557,90000.55
7089382418,0075,0.00
2001377812,5950,60.00
`

// DemoSource serves the embedded demo account list.
type DemoSource struct{}

func (DemoSource) LoadAccounts(_ context.Context) ([]model.AccountRecord, error) {
	return parseAccountsCSV(strings.NewReader(demoAccountsCSV))
}

// CSVSource reads seed records from a CSV file with ACCOUNT_ID, PIN and
// BALANCE columns.
type CSVSource struct {
	path string
}

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

func (s *CSVSource) LoadAccounts(_ context.Context) ([]model.AccountRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("could not open seed file: %w", err)
	}
	defer f.Close()

	records, err := parseAccountsCSV(f)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", s.path, err)
	}
	return records, nil
}

// parseAccountsCSV reads a header row followed by one record per line.
// Columns may appear in any order; extra columns are ignored.
func parseAccountsCSV(r io.Reader) ([]model.AccountRecord, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("could not read CSV header: %w", err)
	}
	index := map[string]int{}
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colAccountID, colPIN, colBalance} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("seed CSV is missing the %s column", required)
		}
	}

	var records []model.AccountRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not read CSV row: %w", err)
		}
		balance, err := decimal.NewFromString(row[index[colBalance]])
		if err != nil {
			return nil, fmt.Errorf("bad balance for account %s: %w", row[index[colAccountID]], err)
		}
		records = append(records, model.AccountRecord{
			AccountID: row[index[colAccountID]],
			PIN:       row[index[colPIN]],
			Balance:   balance,
		})
	}
	return records, nil
}
