package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Open connects to DATABASE_URL-style dsn and checks the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS cold_storages (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		mobile_number TEXT NOT NULL DEFAULT '',
		preferences JSONB NOT NULL DEFAULT '{}'
	)`,

	`CREATE TABLE IF NOT EXISTS store_admins (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL,
		mobile_number TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		cold_storage_id TEXT NOT NULL REFERENCES cold_storages(id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS ledgers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		opening_balance NUMERIC(18,2) NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	// Vouchers keep their ledger ids without foreign keys; balances skip
	// references that no longer resolve.
	`CREATE TABLE IF NOT EXISTS vouchers (
		id TEXT PRIMARY KEY,
		debit_ledger_id TEXT NOT NULL,
		credit_ledger_id TEXT NOT NULL,
		amount NUMERIC(18,2) NOT NULL,
		narration TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_store_admins_email ON store_admins(lower(email))`,
	`CREATE INDEX IF NOT EXISTS idx_vouchers_created_at ON vouchers(created_at)`,
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	for _, migration := range migrations {
		if _, err := db.ExecContext(ctx, migration); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}
