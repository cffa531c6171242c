package session

import (
	"encoding/json"
	"fmt"
	"time"

	interfaces "github.com/sheikh-saqib/cold-storage-ledger/internal/interfaces"
	"go.uber.org/zap"
)

// DefaultMaxAge is how long a persisted entry stays readable after its
// last write.
const DefaultMaxAge = 7 * 24 * time.Hour

// envelope is the stored form of every entry.
type envelope struct {
	Timestamp int64           `json:"timestamp"`
	Value     json.RawMessage `json:"value"`
}

// ExpiringStorage stamps entries with their write time and drops them on
// read once they are older than maxAge. Reads never fail: a missing,
// corrupt, unreadable or expired entry is reported as absent.
type ExpiringStorage struct {
	kv     interfaces.KVStore
	maxAge time.Duration
	now    func() time.Time
	log    *zap.Logger
}

type StorageOption func(*ExpiringStorage)

func WithMaxAge(d time.Duration) StorageOption {
	return func(s *ExpiringStorage) { s.maxAge = d }
}

func WithClock(now func() time.Time) StorageOption {
	return func(s *ExpiringStorage) { s.now = now }
}

func WithStorageLogger(log *zap.Logger) StorageOption {
	return func(s *ExpiringStorage) { s.log = log }
}

func NewExpiringStorage(kv interfaces.KVStore, opts ...StorageOption) *ExpiringStorage {
	s := &ExpiringStorage{
		kv:     kv,
		maxAge: DefaultMaxAge,
		now:    time.Now,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Write stores value under key, stamped with the current time.
func (s *ExpiringStorage) Write(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	data, err := json.Marshal(envelope{Timestamp: s.now().UnixMilli(), Value: raw})
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Read decodes the value under key into dst and reports whether it was
// present and fresh. An entry older than maxAge is deleted.
func (s *ExpiringStorage) Read(key string, dst any) bool {
	data, ok, err := s.kv.Get(key)
	if err != nil {
		s.log.Warn("session storage read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil || len(env.Value) == 0 {
		s.log.Debug("session storage entry unreadable", zap.String("key", key), zap.Error(err))
		return false
	}

	age := s.now().UnixMilli() - env.Timestamp
	if age > s.maxAge.Milliseconds() {
		s.log.Debug("session storage entry expired", zap.String("key", key), zap.Duration("age", time.Duration(age)*time.Millisecond))
		if err := s.kv.Delete(key); err != nil {
			s.log.Warn("session storage delete failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}

	if err := json.Unmarshal(env.Value, dst); err != nil {
		s.log.Debug("session storage value unreadable", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Remove deletes the entry under key.
func (s *ExpiringStorage) Remove(key string) error {
	if err := s.kv.Delete(key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
