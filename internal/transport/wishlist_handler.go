package transport

import (
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/wishlist"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ToggleRequest represents the like-toggle request payload
type ToggleRequest struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
}

// ToggleResponse reports the liked state after the flip.
type ToggleResponse struct {
	Liked bool `json:"liked"`
	Count int  `json:"count"`
}

// WishlistResponse represents the wishlist contents.
type WishlistResponse struct {
	Items []domain.Product `json:"items"`
	Count int              `json:"count"`
}

// WishlistHandler handles HTTP requests for wishlist operations.
type WishlistHandler struct {
	wishlist *wishlist.Store
	catalog  catalog.Client
	logger   *zap.Logger
}

// NewWishlistHandler creates a new WishlistHandler
func NewWishlistHandler(wishlistStore *wishlist.Store, catalogClient catalog.Client, logger *zap.Logger) *WishlistHandler {
	return &WishlistHandler{
		wishlist: wishlistStore,
		catalog:  catalogClient,
		logger:   logger,
	}
}

// RegisterRoutes registers all wishlist routes
func (h *WishlistHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/wishlist", func(r chi.Router) {
		r.Get("/", h.GetWishlist)
		r.Get("/count", h.GetCount)
		r.Post("/toggle", h.Toggle)
		r.Delete("/items/{id}", h.RemoveItem)
		r.Delete("/", h.Clear)
	})
}

// GetWishlist returns the liked products in insertion order.
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, WishlistResponse{
		Items: h.wishlist.All(),
		Count: h.wishlist.Count(),
	})
}

// GetCount returns the badge count.
func (h *WishlistHandler) GetCount(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, map[string]int{"count": h.wishlist.Count()})
}

// Toggle fetches the product snapshot (including description, which the
// wishlist keeps) and flips its liked state.
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Wishlist toggle validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalog.Product(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}

		h.logger.Error("Catalog lookup failed",
			zap.Int("product_id", req.ProductID),
			zap.Error(err),
		)
		middleware.RespondWithError(w, http.StatusBadGateway, "catalog unavailable")
		return
	}

	liked := h.wishlist.Toggle(*product)

	middleware.RespondWithJSON(w, http.StatusOK, ToggleResponse{
		Liked: liked,
		Count: h.wishlist.Count(),
	})
}

// RemoveItem deletes a product from the wishlist.
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	h.wishlist.Remove(productID)

	middleware.RespondWithJSON(w, http.StatusOK, WishlistResponse{
		Items: h.wishlist.All(),
		Count: h.wishlist.Count(),
	})
}

// Clear deletes the whole collection.
func (h *WishlistHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.wishlist.Clear()
	w.WriteHeader(http.StatusNoContent)
}
