// storage/postgres.go

package storage

import (
	"context"
	"fmt"
	"time"

	"go-atm-example/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSource reads seed records from an accounts table. It only ever
// reads at bootstrap: account state during a session stays in memory, and
// nothing is written back (persistence across restarts is a non-goal).
type PostgresSource struct {
	db *pgxpool.Pool
}

// NewPostgresSource connects to the database and ensures the accounts
// table exists.
func NewPostgresSource(ctx context.Context, connString string) (*PostgresSource, error) {
	var pool *pgxpool.Pool
	var err error

	// Retry connecting to the database for a few seconds
	for i := 0; i < 5; i++ {
		pool, err = pgxpool.New(ctx, connString)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				break
			}
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("could not connect to database after retries: %w", err)
	}

	source := &PostgresSource{db: pool}
	if err := source.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("could not initialize schema: %w", err)
	}

	return source, nil
}

// initSchema creates the necessary tables if they don't exist.
func (s *PostgresSource) initSchema(ctx context.Context) error {
	query := `
    CREATE TABLE IF NOT EXISTS accounts (
        account_id TEXT PRIMARY KEY,
        pin TEXT NOT NULL,
        balance NUMERIC(19, 5) NOT NULL,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    );`
	_, err := s.db.Exec(ctx, query)
	return err
}

// InsertAccount provisions one seed record. It is idempotent: if a record
// with the same account id already exists, it does nothing and returns nil.
func (s *PostgresSource) InsertAccount(ctx context.Context, rec model.AccountRecord) error {
	query := `
		INSERT INTO accounts (account_id, pin, balance)
		VALUES ($1, $2, $3)
		ON CONFLICT (account_id) DO NOTHING`
	_, err := s.db.Exec(ctx, query, rec.AccountID, rec.PIN, rec.Balance)
	return err
}

// LoadAccounts returns every seed record in the accounts table.
func (s *PostgresSource) LoadAccounts(ctx context.Context) ([]model.AccountRecord, error) {
	query := "SELECT account_id, pin, balance FROM accounts ORDER BY account_id"
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not query accounts: %w", err)
	}
	defer rows.Close()

	var records []model.AccountRecord
	for rows.Next() {
		var rec model.AccountRecord
		if err := rows.Scan(&rec.AccountID, &rec.PIN, &rec.Balance); err != nil {
			return nil, fmt.Errorf("could not scan account row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not read account rows: %w", err)
	}
	return records, nil
}

// Close releases the connection pool.
func (s *PostgresSource) Close() {
	s.db.Close()
}
