package memory

import (
	"context"
	"sync"

	interfaces "github.com/sheikh-saqib/cold-storage-ledger/internal/interfaces"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/models"
)

// MemoryLedgerStore keeps ledgers and vouchers in memory, in insertion
// order. Safe for concurrent use.
type MemoryLedgerStore struct {
	mu       sync.RWMutex
	ledgers  []models.Ledger
	index    map[string]int
	vouchers []models.Voucher
}

func NewMemoryLedgerStore() *MemoryLedgerStore {
	return &MemoryLedgerStore{
		ledgers:  make([]models.Ledger, 0),
		index:    make(map[string]int),
		vouchers: make([]models.Voucher, 0),
	}
}

// SaveLedger inserts a ledger or replaces the one with the same id.
func (m *MemoryLedgerStore) SaveLedger(ctx context.Context, ledger models.Ledger) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Existing id: overwrite in place to keep insertion order
	if i, ok := m.index[ledger.ID]; ok {
		m.ledgers[i] = ledger
		return nil
	}
	m.index[ledger.ID] = len(m.ledgers)
	m.ledgers = append(m.ledgers, ledger)
	return nil
}

func (m *MemoryLedgerStore) GetLedger(ctx context.Context, id string) (models.Ledger, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.index[id]
	if !ok {
		return models.Ledger{}, false, nil
	}
	return m.ledgers[i], true, nil
}

// GetLedgers returns a copy so callers can't modify internal state.
func (m *MemoryLedgerStore) GetLedgers(ctx context.Context) ([]models.Ledger, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy so external code can't modify internal state
	copied := make([]models.Ledger, len(m.ledgers))
	copy(copied, m.ledgers)
	return copied, nil
}

func (m *MemoryLedgerStore) SaveVoucher(ctx context.Context, voucher models.Voucher) error {
	// Lock the mutex to prevent concurrent writes
	m.mu.Lock()
	defer m.mu.Unlock()

	m.vouchers = append(m.vouchers, voucher)
	return nil
}

func (m *MemoryLedgerStore) GetVouchers(ctx context.Context) ([]models.Voucher, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	copied := make([]models.Voucher, len(m.vouchers))
	copy(copied, m.vouchers)
	return copied, nil
}

var _ interfaces.LedgerStore = (*MemoryLedgerStore)(nil)
