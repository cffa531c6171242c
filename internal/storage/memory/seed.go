package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/auth"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/models"
	"github.com/shopspring/decimal"
)

// Seed fills empty in-memory stores with one cold storage, its admin and a
// starter chart of ledgers, so a server without a database is usable.
func Seed(ctx context.Context, admins *MemoryAdminStore, ledgers *MemoryLedgerStore, email, password string) (models.StoreAdmin, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.StoreAdmin{}, fmt.Errorf("hash seed password: %w", err)
	}

	storage := models.ColdStorage{ID: uuid.New().String(), Name: "Demo Cold Storage"}
	admins.AddColdStorage(storage, models.StarterPreferences())

	admin := models.StoreAdmin{
		ID:            uuid.New().String(),
		Name:          "Store Admin",
		Email:         email,
		ColdStorageID: storage.ID,
		PasswordHash:  hash,
	}
	admins.AddAdmin(admin)

	for _, l := range models.StarterChart() {
		l.ID = uuid.New().String()
		l.OpeningBalance = decimal.Zero
		if err := ledgers.SaveLedger(ctx, l); err != nil {
			return models.StoreAdmin{}, err
		}
	}
	return admin, nil
}
