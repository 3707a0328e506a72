package transport

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AddItemRequest represents the add-to-cart request payload. Quantity 0
// means "use the default of one".
type AddItemRequest struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
	Quantity  int `json:"quantity" validate:"gte=0"`
}

// UpdateQuantityRequest represents the set-quantity request payload.
// A quantity of zero removes the entry.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// CartResponse represents the cart contents plus the badge count.
type CartResponse struct {
	Items []domain.CartItem `json:"items"`
	Count int               `json:"count"`
}

// CartSummary represents the derived totals over a selection of entries.
type CartSummary struct {
	Total         decimal.Decimal  `json:"total"`
	OriginalTotal decimal.Decimal  `json:"original_total"`
	Savings       decimal.Decimal  `json:"savings"`
	Formatted     FormattedSummary `json:"formatted"`
}

// FormattedSummary carries the display renditions of the totals.
type FormattedSummary struct {
	Total         string `json:"total"`
	OriginalTotal string `json:"original_total"`
	Savings       string `json:"savings"`
}

// CartHandler handles HTTP requests for cart operations. It plays the
// role the product pages play in a browser: fetch a catalog snapshot,
// apply stock policy, then hand the snapshot to the store.
type CartHandler struct {
	cart    *cart.Store
	catalog catalog.Client
	logger  *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartStore *cart.Store, catalogClient catalog.Client, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cart:    cartStore,
		catalog: catalogClient,
		logger:  logger,
	}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Get("/count", h.GetCount)
		r.Get("/summary", h.GetSummary)
		r.Post("/items", h.AddItem)
		r.Put("/items/{id}", h.UpdateQuantity)
		r.Delete("/items/{id}", h.RemoveItem)
		r.Delete("/", h.ClearCart)
	})
}

// GetCart returns the cart entries in insertion order.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, CartResponse{
		Items: h.cart.Items(),
		Count: h.cart.Count(),
	})
}

// GetCount returns the badge count.
func (h *CartHandler) GetCount(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, map[string]int{"count": h.cart.Count()})
}

// GetSummary returns totals and savings. An optional comma-separated
// "ids" query restricts the derivation to the selected entries; the
// selection is request-scoped and never persisted.
func (h *CartHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	items := h.cart.Items()

	if rawIDs := r.URL.Query().Get("ids"); rawIDs != "" {
		selected, err := parseIDList(rawIDs)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid ids parameter")
			return
		}
		filtered := items[:0:0]
		for _, item := range items {
			if _, ok := selected[item.ID]; ok {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	total := decimal.Zero
	originalTotal := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
		originalTotal = originalTotal.Add(item.OriginalSubtotal())
	}
	savings := originalTotal.Sub(total)

	middleware.RespondWithJSON(w, http.StatusOK, CartSummary{
		Total:         total,
		OriginalTotal: originalTotal,
		Savings:       savings,
		Formatted: FormattedSummary{
			Total:         domain.FormatPrice(total),
			OriginalTotal: domain.FormatPrice(originalTotal),
			Savings:       domain.FormatPrice(savings),
		},
	})
}

// AddItem fetches the product snapshot from the catalog, clamps the
// requested quantity to the remaining stock and adds it to the cart.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Add to cart validation failed", zap.Error(err))

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

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	// Stock clamping is this layer's policy; the store trusts us.
	remaining := product.Stock - h.cart.Quantity(product.ID)
	if remaining <= 0 {
		middleware.RespondWithError(w, http.StatusConflict, "insufficient stock")
		return
	}
	if quantity > remaining {
		quantity = remaining
	}

	h.cart.Add(*product, quantity)

	middleware.RespondWithJSON(w, http.StatusCreated, CartResponse{
		Items: h.cart.Items(),
		Count: h.cart.Count(),
	})
}

// UpdateQuantity sets an entry's quantity exactly; zero removes it.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req UpdateQuantityRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	quantity := req.Quantity
	for _, item := range h.cart.Items() {
		if item.ID == productID && quantity > item.Stock {
			quantity = item.Stock
		}
	}

	h.cart.SetQuantity(productID, quantity)

	middleware.RespondWithJSON(w, http.StatusOK, CartResponse{
		Items: h.cart.Items(),
		Count: h.cart.Count(),
	})
}

// RemoveItem deletes an entry from the cart.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	h.cart.Remove(productID)

	middleware.RespondWithJSON(w, http.StatusOK, CartResponse{
		Items: h.cart.Items(),
		Count: h.cart.Count(),
	})
}

// ClearCart deletes the whole collection.
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func parseIDList(raw string) (map[int]struct{}, error) {
	ids := make(map[int]struct{})
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	return ids, nil
}
