package interfaces

import (
	"context"

	"github.com/sheikh-saqib/cold-storage-ledger/internal/models"
)

// AdminStore resolves a store admin and the cold storage they belong to.
// Lookups that find nothing return ok == false and a nil error.
type AdminStore interface {
	GetAdminByEmail(ctx context.Context, email string) (models.StoreAdmin, bool, error)
	GetColdStorage(ctx context.Context, id string) (models.ColdStorage, models.Preferences, bool, error)
}
