package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkg/errors"

	"github.com/jrsteele09/go-storefront-client/cart"
	interr "github.com/jrsteele09/go-storefront-client/internal/errors"
)

var _ cart.API = (*Client)(nil)

// Cart fetches the authenticated user's current cart snapshot.
func (c *Client) Cart(ctx context.Context, token string) (*cart.Cart, error) {
	resp, err := c.do(ctx, http.MethodGet, RouteCart, token, nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, errorFromResponse(resp)
	}

	snapshot := &cart.Cart{}
	if err := decode(resp, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// AddItem posts a new line item. The server embeds the fresh snapshot in the
// response, so no follow-up fetch is needed.
func (c *Client) AddItem(ctx context.Context, token string, productID int64, quantity int) (*cart.Cart, error) {
	resp, err := c.do(ctx, http.MethodPost, RouteCartAdd, token, map[string]any{
		"product_id": productID,
		"quantity":   quantity,
	})
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, errorFromResponse(resp)
	}

	var payload struct {
		Cart *cart.Cart `json:"cart"`
	}
	if err := decode(resp, &payload); err != nil {
		return nil, err
	}
	if payload.Cart == nil {
		return nil, errors.Wrap(interr.ErrServerResponse, "[Client.AddItem] missing cart snapshot")
	}
	return payload.Cart, nil
}

// UpdateItem sets a line's quantity. Callers refetch for the new totals.
func (c *Client) UpdateItem(ctx context.Context, token string, itemID int64, quantity int) error {
	resp, err := c.do(ctx, http.MethodPut, fmt.Sprintf(RouteCartUpdate, itemID), token, map[string]int{
		"quantity": quantity,
	})
	if err != nil {
		return err
	}
	if !resp.ok() {
		return errorFromResponse(resp)
	}
	return nil
}

// RemoveItem deletes a single line item.
func (c *Client) RemoveItem(ctx context.Context, token string, itemID int64) error {
	resp, err := c.do(ctx, http.MethodDelete, fmt.Sprintf(RouteCartRemove, itemID), token, nil)
	if err != nil {
		return err
	}
	if !resp.ok() {
		return errorFromResponse(resp)
	}
	return nil
}

// Clear deletes every line item in one call.
func (c *Client) Clear(ctx context.Context, token string) error {
	resp, err := c.do(ctx, http.MethodDelete, RouteCartClear, token, nil)
	if err != nil {
		return err
	}
	if !resp.ok() {
		return errorFromResponse(resp)
	}
	return nil
}
