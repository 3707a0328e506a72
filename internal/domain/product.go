package domain

import (
	"github.com/shopspring/decimal"
)

// Product is an immutable snapshot of a catalog record, captured at the
// moment it is added to the cart or wishlist. It does not track later
// catalog changes; price and stock drift is intentionally not reflected.
type Product struct {
	ID                 int             `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Price              decimal.Decimal `json:"price"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	Rating             float64         `json:"rating"`
	Stock              int             `json:"stock"`
	Brand              string          `json:"brand"`
	Category           string          `json:"category"`
	Thumbnail          string          `json:"thumbnail"`
	Images             []string        `json:"images"`
}

// CartItem is a product snapshot plus a quantity. Description is dropped;
// the cart never displays it.
type CartItem struct {
	ID                 int             `json:"id"`
	Title              string          `json:"title"`
	Price              decimal.Decimal `json:"price"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	Rating             float64         `json:"rating"`
	Stock              int             `json:"stock"`
	Brand              string          `json:"brand"`
	Category           string          `json:"category"`
	Thumbnail          string          `json:"thumbnail"`
	Images             []string        `json:"images"`
	Quantity           int             `json:"quantity"`
}

// NewCartItem builds a cart entry from a product snapshot.
func NewCartItem(p Product, quantity int) CartItem {
	return CartItem{
		ID:                 p.ID,
		Title:              p.Title,
		Price:              p.Price,
		DiscountPercentage: p.DiscountPercentage,
		Rating:             p.Rating,
		Stock:              p.Stock,
		Brand:              p.Brand,
		Category:           p.Category,
		Thumbnail:          p.Thumbnail,
		Images:             p.Images,
		Quantity:           quantity,
	}
}

// Subtotal returns price * quantity at the discounted price.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OriginalSubtotal returns the pre-discount price * quantity, recovered
// from the discounted price: price / (1 - discount/100). A discount of
// exactly 100% is an invalid input and must be rejected upstream.
func (i CartItem) OriginalSubtotal() decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(i.DiscountPercentage.Div(decimal.NewFromInt(100)))
	return i.Price.Div(factor).Mul(decimal.NewFromInt(int64(i.Quantity)))
}
