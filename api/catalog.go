package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-storefront-client/products"
)

// Products lists the catalog. The endpoint is public; no token is sent.
func (c *Client) Products(ctx context.Context) ([]products.Product, error) {
	resp, err := c.do(ctx, http.MethodGet, RouteProducts, "", nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, errorFromResponse(resp)
	}

	var catalog []products.Product
	if err := decode(resp, &catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

// Product fetches a single catalog entry.
func (c *Client) Product(ctx context.Context, id int64) (*products.Product, error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf(RouteProductByID, id), "", nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, errorFromResponse(resp)
	}

	product := &products.Product{}
	if err := decode(resp, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Categories lists the catalog's categories.
func (c *Client) Categories(ctx context.Context) ([]products.Category, error) {
	resp, err := c.do(ctx, http.MethodGet, RouteProductCategories, "", nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, errorFromResponse(resp)
	}

	var categories []products.Category
	if err := decode(resp, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
