package transport

import (
	"encoding/json"
	"net/http"
	"testing"

	"storefront/internal/bus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggle_LikesThenUnlikes(t *testing.T) {
	f := newFixture(t, testProduct(1, 549, 12, 94))

	w := f.do(t, "POST", "/api/wishlist/toggle", map[string]int{"product_id": 1})
	require.Equal(t, http.StatusOK, w.Code)

	var resp ToggleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Liked)
	assert.Equal(t, 1, resp.Count)

	w = f.do(t, "POST", "/api/wishlist/toggle", map[string]int{"product_id": 1})
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Liked)
	assert.Zero(t, resp.Count)
	assert.False(t, f.wishlist.IsLiked(1))
}

func TestToggle_UnknownProduct(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, "POST", "/api/wishlist/toggle", map[string]int{"product_id": 9})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, f.wishlist.Count())
}

func TestToggle_RejectsInvalidPayload(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, "POST", "/api/wishlist/toggle", map[string]int{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetWishlist_IncludesDescription(t *testing.T) {
	f := newFixture(t, testProduct(1, 549, 12, 94))
	f.do(t, "POST", "/api/wishlist/toggle", map[string]int{"product_id": 1})

	w := f.do(t, "GET", "/api/wishlist", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp WishlistResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "description", resp.Items[0].Description)
	assert.Equal(t, 1, resp.Count)
}

func TestWishlistRemove_SignalsEvenWhenAbsent(t *testing.T) {
	f := newFixture(t)

	signals := 0
	f.bus.Subscribe(bus.WishlistChanged, func() { signals++ })

	w := f.do(t, "DELETE", "/api/wishlist/items/99", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, signals)
}

func TestWishlistClear(t *testing.T) {
	f := newFixture(t, testProduct(1, 549, 12, 94))
	f.do(t, "POST", "/api/wishlist/toggle", map[string]int{"product_id": 1})

	w := f.do(t, "DELETE", "/api/wishlist", nil)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, f.wishlist.Count())
}

func TestWishlistCount(t *testing.T) {
	f := newFixture(t, testProduct(1, 549, 12, 94))
	f.do(t, "POST", "/api/wishlist/toggle", map[string]int{"product_id": 1})

	w := f.do(t, "GET", "/api/wishlist/count", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":1}`, w.Body.String())
}
