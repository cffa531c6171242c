package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/auth"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/models"
	"github.com/shopspring/decimal"
)

// Seed creates one cold storage, its admin and the starter chart of
// ledgers, but only when store_admins is empty. It reports whether
// anything was written.
func Seed(ctx context.Context, db *sql.DB, email, password string) (bool, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash seed password: %w", err)
	}
	prefs, err := json.Marshal(models.StarterPreferences())
	if err != nil {
		return false, fmt.Errorf("encode preferences: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	// Lock the admin table so two servers starting together seed once
	if _, err := tx.ExecContext(ctx, `LOCK TABLE store_admins IN EXCLUSIVE MODE`); err != nil {
		return false, fmt.Errorf("lock store_admins: %w", err)
	}

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM store_admins`).Scan(&count); err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	storageID := uuid.New().String()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO cold_storages (id, name, preferences) VALUES ($1, $2, $3)`,
		storageID, "Demo Cold Storage", string(prefs)); err != nil {
		return false, fmt.Errorf("insert cold storage: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO store_admins (id, name, email, password_hash, cold_storage_id) VALUES ($1, $2, $3, $4, $5)`,
		uuid.New().String(), "Store Admin", email, hash, storageID); err != nil {
		return false, fmt.Errorf("insert admin: %w", err)
	}

	for _, l := range models.StarterChart() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO ledgers (id, name, type, opening_balance) VALUES ($1, $2, $3, $4)`,
			uuid.New().String(), l.Name, string(l.Type), decimal.Zero); err != nil {
			return false, fmt.Errorf("insert ledger %s: %w", l.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}
