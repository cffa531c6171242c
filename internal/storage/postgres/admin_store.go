package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	interfaces "github.com/sheikh-saqib/cold-storage-ledger/internal/interfaces"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/models"
)

type PostgresAdminStore struct {
	db *sql.DB
}

func NewPostgresAdminStore(db *sql.DB) *PostgresAdminStore {
	return &PostgresAdminStore{db: db}
}

const adminColumns = `id, name, email, mobile_number, password_hash, cold_storage_id`

func scanAdmin(row *sql.Row) (models.StoreAdmin, bool, error) {
	var a models.StoreAdmin
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.Mobile, &a.PasswordHash, &a.ColdStorageID)
	if err == sql.ErrNoRows {
		return models.StoreAdmin{}, false, nil
	}
	if err != nil {
		return models.StoreAdmin{}, false, err
	}
	return a, true, nil
}

func (p *PostgresAdminStore) GetAdminByEmail(ctx context.Context, email string) (models.StoreAdmin, bool, error) {
	query := `SELECT ` + adminColumns + ` FROM store_admins WHERE lower(email) = lower($1)`
	return scanAdmin(p.db.QueryRowContext(ctx, query, email))
}

func (p *PostgresAdminStore) GetColdStorage(ctx context.Context, id string) (models.ColdStorage, models.Preferences, bool, error) {
	const query = `SELECT id, name, address, mobile_number, preferences FROM cold_storages WHERE id = $1`

	var cs models.ColdStorage
	var raw []byte
	err := p.db.QueryRowContext(ctx, query, id).Scan(&cs.ID, &cs.Name, &cs.Address, &cs.Mobile, &raw)
	if err == sql.ErrNoRows {
		return models.ColdStorage{}, models.Preferences{}, false, nil
	}
	if err != nil {
		return models.ColdStorage{}, models.Preferences{}, false, err
	}

	var prefs models.Preferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return models.ColdStorage{}, models.Preferences{}, false, fmt.Errorf("decode preferences: %w", err)
	}
	return cs, prefs, true, nil
}

var _ interfaces.AdminStore = (*PostgresAdminStore)(nil)
