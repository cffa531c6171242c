package memory

import (
	"sync"

	interfaces "github.com/sheikh-saqib/cold-storage-ledger/internal/interfaces"
)

// KVStore is an in-memory interfaces.KVStore, mostly for tests.
type KVStore struct {
	mu    sync.Mutex
	items map[string][]byte
}

func NewKVStore() *KVStore {
	return &KVStore{items: make(map[string][]byte)}
}

func (s *KVStore) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.items[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *KVStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = append([]byte(nil), value...)
	return nil
}

func (s *KVStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

var _ interfaces.KVStore = (*KVStore)(nil)
