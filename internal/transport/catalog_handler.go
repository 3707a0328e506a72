package transport

import (
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/wishlist"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const defaultListLimit = 12

// ProductView is a catalog snapshot annotated with this session's cart
// and wishlist state, the way product cards render it.
type ProductView struct {
	domain.Product
	Liked        bool   `json:"liked"`
	InCart       bool   `json:"in_cart"`
	CartQuantity int    `json:"cart_quantity"`
	DisplayPrice string `json:"display_price"`
}

// ProductListResponse represents a page of annotated products.
type ProductListResponse struct {
	Products []ProductView `json:"products"`
	Total    int           `json:"total"`
}

// CatalogHandler proxies catalog reads and annotates them with local
// collection state.
type CatalogHandler struct {
	catalog  catalog.Client
	cart     *cart.Store
	wishlist *wishlist.Store
	logger   *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogClient catalog.Client, cartStore *cart.Store, wishlistStore *wishlist.Store, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog:  catalogClient,
		cart:     cartStore,
		wishlist: wishlistStore,
		logger:   logger,
	}
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.GetProduct)
		r.Get("/category/{category}", h.ByCategory)
	})
}

// List returns the catalog front page, up to an optional limit.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		limit = parsed
	}

	products, err := h.catalog.List(r.Context(), limit)
	if err != nil {
		h.logger.Error("Catalog list failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "catalog unavailable")
		return
	}

	h.respondWithProducts(w, products)
}

// GetProduct returns one annotated product.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.catalog.Product(r.Context(), productID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}

		h.logger.Error("Catalog lookup failed",
			zap.Int("product_id", productID),
			zap.Error(err),
		)
		middleware.RespondWithError(w, http.StatusBadGateway, "catalog unavailable")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.annotate(*product))
}

// ByCategory returns the annotated products of one category, as shown in
// the related-products strip.
func (h *CatalogHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	products, err := h.catalog.ByCategory(r.Context(), category)
	if err != nil {
		h.logger.Error("Catalog category lookup failed",
			zap.String("category", category),
			zap.Error(err),
		)
		middleware.RespondWithError(w, http.StatusBadGateway, "catalog unavailable")
		return
	}

	h.respondWithProducts(w, products)
}

func (h *CatalogHandler) respondWithProducts(w http.ResponseWriter, products []domain.Product) {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, h.annotate(p))
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{
		Products: views,
		Total:    len(views),
	})
}

func (h *CatalogHandler) annotate(p domain.Product) ProductView {
	quantity := h.cart.Quantity(p.ID)
	return ProductView{
		Product:      p,
		Liked:        h.wishlist.IsLiked(p.ID),
		InCart:       quantity > 0,
		CartQuantity: quantity,
		DisplayPrice: domain.FormatPrice(p.Price),
	}
}
