package memory

import (
	"context"
	"strings"
	"sync"

	interfaces "github.com/sheikh-saqib/cold-storage-ledger/internal/interfaces"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/models"
)

type coldStorageRecord struct {
	storage     models.ColdStorage
	preferences models.Preferences
}

// MemoryAdminStore holds store admins keyed by lower-cased email.
type MemoryAdminStore struct {
	mu       sync.RWMutex
	admins   map[string]models.StoreAdmin
	storages map[string]coldStorageRecord
}

func NewMemoryAdminStore() *MemoryAdminStore {
	return &MemoryAdminStore{
		admins:   make(map[string]models.StoreAdmin),
		storages: make(map[string]coldStorageRecord),
	}
}

func (m *MemoryAdminStore) AddColdStorage(storage models.ColdStorage, prefs models.Preferences) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storages[storage.ID] = coldStorageRecord{storage: storage, preferences: prefs}
}

func (m *MemoryAdminStore) AddAdmin(admin models.StoreAdmin) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.admins[strings.ToLower(admin.Email)] = admin
}

func (m *MemoryAdminStore) GetAdminByEmail(ctx context.Context, email string) (models.StoreAdmin, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	admin, ok := m.admins[strings.ToLower(email)]
	return admin, ok, nil
}

func (m *MemoryAdminStore) GetColdStorage(ctx context.Context, id string) (models.ColdStorage, models.Preferences, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.storages[id]
	return rec.storage, rec.preferences, ok, nil
}

var _ interfaces.AdminStore = (*MemoryAdminStore)(nil)
