// Package wishlist owns the persisted liked-products collection: a set
// of product snapshots keyed by product id, in insertion order.
package wishlist

import (
	"sync"

	"storefront/internal/bus"
	"storefront/internal/domain"
	"storefront/internal/kvstore"
	"storefront/internal/storage"

	"go.uber.org/zap"
)

// StorageKey is where the wishlist collection lives in the backing store.
const StorageKey = "liked-products"

// Store mutates and queries the wishlist. Same read-modify-write
// discipline as the cart store: fresh read, mutate, full write-back,
// under a mutex.
type Store struct {
	mu     sync.Mutex
	kv     kvstore.Store
	bus    *bus.Bus
	logger *zap.Logger
}

// NewStore creates a wishlist store over the given backing store and bus.
func NewStore(kv kvstore.Store, b *bus.Bus, logger *zap.Logger) *Store {
	return &Store{
		kv:     kv,
		bus:    b,
		logger: logger,
	}
}

func (s *Store) load() []domain.Product {
	return storage.ReadCollection[domain.Product](s.kv, StorageKey, s.logger)
}

func (s *Store) persist(items []domain.Product) {
	storage.WriteCollection(s.kv, StorageKey, items, s.logger)
}

// All returns the liked products in insertion order. Pure read.
func (s *Store) All() []domain.Product {
	return s.load()
}

// IsLiked reports whether productID is in the wishlist.
func (s *Store) IsLiked(productID int) bool {
	return indexOf(s.load(), productID) >= 0
}

// Count returns the number of liked products.
func (s *Store) Count() int {
	return len(s.load())
}

// Add appends the product unless it is already liked. Adding an
// already-liked product is a silent no-op: nothing is persisted and no
// signal is emitted.
func (s *Store) Add(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load()
	if indexOf(items, p.ID) >= 0 {
		return
	}

	s.persist(append(items, p))
	s.bus.Publish(bus.WishlistChanged)
}

// Remove filters the product out if present. Emits a refresh signal
// unconditionally.
func (s *Store) Remove(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load()
	if idx := indexOf(items, productID); idx >= 0 {
		items = append(items[:idx:idx], items[idx+1:]...)
	}

	s.persist(items)
	s.bus.Publish(bus.WishlistChanged)
}

// Toggle flips the liked state of the product and reports the new state:
// true when it was just added, false when it was just removed. The whole
// flip runs under the store mutex, so two togglers cannot interleave.
func (s *Store) Toggle(p domain.Product) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load()
	if idx := indexOf(items, p.ID); idx >= 0 {
		s.persist(append(items[:idx:idx], items[idx+1:]...))
		s.bus.Publish(bus.WishlistChanged)
		return false
	}

	s.persist(append(items, p))
	s.bus.Publish(bus.WishlistChanged)
	return true
}

// Clear deletes the whole collection.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	storage.DeleteCollection(s.kv, StorageKey, s.logger)
	s.bus.Publish(bus.WishlistChanged)
}

func indexOf(items []domain.Product, productID int) int {
	for i, item := range items {
		if item.ID == productID {
			return i
		}
	}
	return -1
}
