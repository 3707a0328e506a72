// Package storage serializes ordered collections into the backing
// key-value store. It never fails its callers: an absent key, a corrupt
// payload or a storage fault all degrade to an empty collection or a
// no-op, logged but not propagated. User-visible failure handling, if
// any, belongs to the layers above.
package storage

import (
	"encoding/json"

	"storefront/internal/kvstore"

	"go.uber.org/zap"
)

// ReadCollection loads and decodes the collection stored under key.
// An absent key or undecodable payload reads as an empty collection.
func ReadCollection[T any](store kvstore.Store, key string, logger *zap.Logger) []T {
	raw, ok, err := store.Get(key)
	if err != nil {
		logger.Error("Failed to read collection",
			zap.String("key", key),
			zap.Error(err),
		)
		return []T{}
	}
	if !ok {
		return []T{}
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.Warn("Discarding corrupt collection",
			zap.String("key", key),
			zap.Error(err),
		)
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// WriteCollection serializes items and overwrites key entirely. On
// failure the previously persisted state is left untouched; the attempted
// mutation is lost and the next read reflects pre-mutation state.
func WriteCollection[T any](store kvstore.Store, key string, items []T, logger *zap.Logger) {
	data, err := json.Marshal(items)
	if err != nil {
		logger.Error("Failed to serialize collection",
			zap.String("key", key),
			zap.Error(err),
		)
		return
	}

	if err := store.Set(key, string(data)); err != nil {
		logger.Error("Failed to persist collection",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

// DeleteCollection removes the key; the collection reads as empty until
// the next write.
func DeleteCollection(store kvstore.Store, key string, logger *zap.Logger) {
	if err := store.Delete(key); err != nil {
		logger.Error("Failed to delete collection",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
