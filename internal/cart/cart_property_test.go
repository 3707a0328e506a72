package cart

import (
	"testing"

	"storefront/internal/bus"
	"storefront/internal/kvstore"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
)

// cartOp is one randomly generated mutation, decoded from an int seed.
type cartOp struct {
	kind      int // 0 add, 1 setQuantity, 2 remove
	productID int
	quantity  int
}

func decodeOp(seed int) cartOp {
	return cartOp{
		kind:      seed % 3,
		productID: (seed / 3 % 8) + 1,
		quantity:  seed / 24 % 6,
	}
}

func genOpSeeds() gopter.Gen {
	return gen.SliceOf(gen.IntRange(0, 1000))
}

func applyOp(store *Store, op cartOp) {
	switch op.kind {
	case 0:
		if op.quantity > 0 {
			store.Add(randomProduct(op.productID), op.quantity)
		}
	case 1:
		store.SetQuantity(op.productID, op.quantity)
	case 2:
		store.Remove(op.productID)
	}
}

// No sequence of mutations may produce duplicate product ids or an entry
// with a non-positive quantity.
func TestProperty_CartInvariantsHoldUnderAnySequence(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("no duplicate ids and no quantity below one", prop.ForAll(
		func(seeds []int) bool {
			store := NewStore(kvstore.NewMemoryStore(), bus.New(), zap.NewNop())

			for _, seed := range seeds {
				applyOp(store, decodeOp(seed))

				seen := make(map[int]bool)
				for _, item := range store.Items() {
					if seen[item.ID] {
						t.Logf("FAIL: duplicate entry for product %d", item.ID)
						return false
					}
					seen[item.ID] = true

					if item.Quantity < 1 {
						t.Logf("FAIL: entry %d has quantity %d", item.ID, item.Quantity)
						return false
					}
				}
			}

			return true
		},
		genOpSeeds(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Count always equals the sum of quantities over Items.
func TestProperty_CountMatchesItems(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("count equals sum of quantities", prop.ForAll(
		func(seeds []int) bool {
			store := NewStore(kvstore.NewMemoryStore(), bus.New(), zap.NewNop())

			for _, seed := range seeds {
				applyOp(store, decodeOp(seed))

				sum := 0
				for _, item := range store.Items() {
					sum += item.Quantity
				}
				if store.Count() != sum {
					t.Logf("FAIL: count %d != sum %d", store.Count(), sum)
					return false
				}
			}

			return true
		},
		genOpSeeds(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Adding with a positive quantity never decreases the total.
func TestProperty_TotalMonotonicUnderAdd(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("total is non-decreasing under add", prop.ForAll(
		func(ids []int) bool {
			store := NewStore(kvstore.NewMemoryStore(), bus.New(), zap.NewNop())

			previous := store.Total()
			for _, id := range ids {
				store.Add(randomProduct(id), 1)

				current := store.Total()
				if current.LessThan(previous) {
					t.Logf("FAIL: total decreased from %s to %s", previous, current)
					return false
				}
				previous = current
			}

			return true
		},
		gen.SliceOf(gen.IntRange(1, 8)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Savings is never negative for valid discounts (0-90%).
func TestProperty_SavingsNeverNegative(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("savings >= 0", prop.ForAll(
		func(seeds []int) bool {
			store := NewStore(kvstore.NewMemoryStore(), bus.New(), zap.NewNop())

			for _, seed := range seeds {
				applyOp(store, decodeOp(seed))
			}

			return !store.Savings().IsNegative()
		},
		genOpSeeds(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
