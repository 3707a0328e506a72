// Package cart owns the persisted shopping cart collection: product
// snapshots with quantities, plus the monetary totals derived from them.
package cart

import (
	"sync"

	"storefront/internal/bus"
	"storefront/internal/domain"
	"storefront/internal/kvstore"
	"storefront/internal/storage"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StorageKey is where the cart collection lives in the backing store.
const StorageKey = "cart-items"

// Store mutates and queries the cart. The backing store is the single
// source of truth: every operation is a fresh read, an in-memory
// mutation and a full write-back, serialized by a mutex so concurrent
// callers cannot interleave read-modify-write sequences and lose updates.
type Store struct {
	mu     sync.Mutex
	kv     kvstore.Store
	bus    *bus.Bus
	logger *zap.Logger
}

// NewStore creates a cart store over the given backing store and bus.
func NewStore(kv kvstore.Store, b *bus.Bus, logger *zap.Logger) *Store {
	return &Store{
		kv:     kv,
		bus:    b,
		logger: logger,
	}
}

func (s *Store) load() []domain.CartItem {
	return storage.ReadCollection[domain.CartItem](s.kv, StorageKey, s.logger)
}

func (s *Store) persist(items []domain.CartItem) {
	storage.WriteCollection(s.kv, StorageKey, items, s.logger)
}

// Items returns the cart entries in insertion order. Pure read.
func (s *Store) Items() []domain.CartItem {
	return s.load()
}

// Count returns the sum of quantities across all entries, for badges.
func (s *Store) Count() int {
	count := 0
	for _, item := range s.load() {
		count += item.Quantity
	}
	return count
}

// Contains reports whether the cart holds an entry for productID.
func (s *Store) Contains(productID int) bool {
	return indexOf(s.load(), productID) >= 0
}

// Quantity returns the quantity for productID, 0 if absent.
func (s *Store) Quantity(productID int) int {
	items := s.load()
	if idx := indexOf(items, productID); idx >= 0 {
		return items[idx].Quantity
	}
	return 0
}

// Add increments the quantity of an existing entry for the product, or
// appends a new entry. The store trusts the caller's quantity; clamping
// against stock is the caller's policy.
func (s *Store) Add(p domain.Product, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load()
	if idx := indexOf(items, p.ID); idx >= 0 {
		items[idx].Quantity += quantity
	} else {
		items = append(items, domain.NewCartItem(p, quantity))
	}

	s.persist(items)
	s.bus.Publish(bus.CartChanged)
}

// SetQuantity sets the entry's quantity exactly; a quantity of zero or
// less removes the entry. Setting a positive quantity on an absent
// product does nothing. Callers may rely on a refresh signal even when
// the removal matched nothing.
func (s *Store) SetQuantity(productID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load()
	idx := indexOf(items, productID)
	if idx < 0 && quantity > 0 {
		return
	}
	if idx >= 0 {
		if quantity <= 0 {
			items = append(items[:idx:idx], items[idx+1:]...)
		} else {
			items[idx].Quantity = quantity
		}
	}

	s.persist(items)
	s.bus.Publish(bus.CartChanged)
}

// Remove deletes the entry for productID if present. Emits a refresh
// signal unconditionally.
func (s *Store) Remove(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load()
	if idx := indexOf(items, productID); idx >= 0 {
		items = append(items[:idx:idx], items[idx+1:]...)
	}

	s.persist(items)
	s.bus.Publish(bus.CartChanged)
}

// Clear deletes the whole collection.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	storage.DeleteCollection(s.kv, StorageKey, s.logger)
	s.bus.Publish(bus.CartChanged)
}

// Total returns the discounted sum over all entries.
func (s *Store) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.load() {
		total = total.Add(item.Subtotal())
	}
	return total
}

// OriginalTotal returns the pre-discount sum over all entries.
func (s *Store) OriginalTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.load() {
		total = total.Add(item.OriginalSubtotal())
	}
	return total
}

// Savings returns OriginalTotal minus Total. Zero when nothing is
// discounted, never negative for valid discounts.
func (s *Store) Savings() decimal.Decimal {
	savings := decimal.Zero
	for _, item := range s.load() {
		savings = savings.Add(item.OriginalSubtotal().Sub(item.Subtotal()))
	}
	return savings
}

func indexOf(items []domain.CartItem, productID int) int {
	for i, item := range items {
		if item.ID == productID {
			return i
		}
	}
	return -1
}
