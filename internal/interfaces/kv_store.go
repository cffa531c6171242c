package interfaces

// KVStore is the durable medium a session is persisted to. Get reports
// ok == false for a missing key.
type KVStore interface {
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
	Delete(key string) error
}
