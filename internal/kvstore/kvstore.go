package kvstore

// Store is the durable key-value substrate the collection stores persist
// into. Writes are atomic per key: a concurrent read observes either the
// previous value or the new one, never a partial write.
type Store interface {
	// Get returns the value for key and whether the key exists.
	Get(key string) (string, bool, error)
	// Set overwrites the value for key entirely.
	Set(key, value string) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error
}
