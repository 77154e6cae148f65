package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go-atm-example/bank"
	"go-atm-example/model"
	"go-atm-example/storage"
	"go-atm-example/terminal"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// defaultCash is the reserve a freshly stocked machine starts with.
var defaultCash = decimal.NewFromInt(10000)

func main() {
	ctx := context.Background()

	// Optional .env file; real environment variables take precedence.
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file loaded", "err", err)
	}

	records, err := loadSeed(ctx)
	if err != nil {
		log.Fatal("could not load account seed", "err", err)
	}

	b, err := bank.New(records)
	if err != nil {
		log.Fatal("could not build bank from seed", "err", err)
	}
	log.Info("bank initialized", "accounts", b.Len())

	cash := defaultCash
	if v := os.Getenv("ATM_CASH"); v != "" {
		cash, err = decimal.NewFromString(v)
		if err != nil {
			log.Fatal("ATM_CASH is not a decimal amount", "value", v)
		}
	}

	atm := terminal.New(b, cash, os.Stdout, os.Stderr)
	if err := atm.Run(os.Stdin); err != nil {
		log.Fatal("terminal session failed", "err", err)
	}
}

// loadSeed picks the seed source from ATM_SEED: empty or "demo" for the
// embedded demo list, "postgres" for the accounts table at DATABASE_URL,
// anything else is treated as a CSV file path.
func loadSeed(ctx context.Context) ([]model.AccountRecord, error) {
	switch seed := os.Getenv("ATM_SEED"); seed {
	case "", "demo":
		return storage.DemoSource{}.LoadAccounts(ctx)
	case "postgres":
		connString := os.Getenv("DATABASE_URL")
		if connString == "" {
			return nil, errors.New("ATM_SEED=postgres requires DATABASE_URL")
		}
		source, err := storage.NewPostgresSource(ctx, connString)
		if err != nil {
			return nil, fmt.Errorf("postgres seed source: %w", err)
		}
		defer source.Close()
		return source.LoadAccounts(ctx)
	default:
		return storage.NewCSVSource(seed).LoadAccounts(ctx)
	}
}
