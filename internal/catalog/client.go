// Package catalog is the read-only client for the remote product
// catalog. The stores never call it; only the HTTP layer fetches
// snapshots here before handing them to a store.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"storefront/internal/domain"

	"go.uber.org/zap"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// Client defines the catalog operations the storefront consumes.
type Client interface {
	Product(ctx context.Context, id int) (*domain.Product, error)
	ByCategory(ctx context.Context, category string) ([]domain.Product, error)
	List(ctx context.Context, limit int) ([]domain.Product, error)
}

type client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a catalog client against baseURL.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) Client {
	return &client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// productList mirrors the catalog's list envelope.
type productList struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
}

// Product fetches a single product snapshot by id.
func (c *client) Product(ctx context.Context, id int) (*domain.Product, error) {
	var product domain.Product
	if err := c.get(ctx, fmt.Sprintf("/products/%d", id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ByCategory fetches all products in a category.
func (c *client) ByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	var list productList
	if err := c.get(ctx, "/products/category/"+url.PathEscape(category), &list); err != nil {
		return nil, err
	}
	return list.Products, nil
}

// List fetches up to limit products from the catalog front page.
func (c *client) List(ctx context.Context, limit int) ([]domain.Product, error) {
	var list productList
	if err := c.get(ctx, fmt.Sprintf("/products?limit=%d", limit), &list); err != nil {
		return nil, err
	}
	return list.Products, nil
}

func (c *client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Catalog returned unexpected status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode catalog response: %w", err)
	}
	return nil
}
