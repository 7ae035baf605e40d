package api

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-storefront-client/checkout"
)

// CreateCheckoutSession asks the server to open a payment-provider checkout
// for a single product. The caller redirects the user to the returned
// session; the provider is never contacted directly.
func (c *Client) CreateCheckoutSession(ctx context.Context, token, productName, amount string) (*checkout.Session, error) {
	resp, err := c.do(ctx, http.MethodPost, RouteCheckoutSession, token, map[string]string{
		"product_name": productName,
		"amount":       amount,
	})
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, errorFromResponse(resp)
	}

	checkoutSession := &checkout.Session{}
	if err := decode(resp, checkoutSession); err != nil {
		return nil, err
	}
	return checkoutSession, nil
}

// CreateCartCheckoutSession opens a checkout covering the whole cart.
func (c *Client) CreateCartCheckoutSession(ctx context.Context, token string) (*checkout.Session, error) {
	resp, err := c.do(ctx, http.MethodPost, RouteCartCheckoutSession, token, nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, errorFromResponse(resp)
	}

	checkoutSession := &checkout.Session{}
	if err := decode(resp, checkoutSession); err != nil {
		return nil, err
	}
	return checkoutSession, nil
}

// PaymentHistory lists the user's past payments.
func (c *Client) PaymentHistory(ctx context.Context, token string) ([]checkout.Payment, error) {
	resp, err := c.do(ctx, http.MethodGet, RoutePaymentHistory, token, nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, errorFromResponse(resp)
	}

	var history []checkout.Payment
	if err := decode(resp, &history); err != nil {
		return nil, err
	}
	return history, nil
}
