package checkout

import "time"

// Session identifies a checkout hosted by the payment provider. The client
// only redirects to it; the provider itself is an opaque collaborator.
type Session struct {
	SessionID  string `json:"session_id"`
	SessionURL string `json:"session_url,omitempty"`
}

// Payment is one entry in the user's payment history.
type Payment struct {
	ID                int64     `json:"id"`
	CheckoutSessionID string    `json:"stripe_checkout_session_id,omitempty"`
	ProductName       string    `json:"product_name,omitempty"`
	Amount            string    `json:"amount"`
	Currency          string    `json:"currency,omitempty"`
	Status            string    `json:"status,omitempty"`
	CreatedAt         time.Time `json:"created_at,omitempty"`
	UpdatedAt         time.Time `json:"updated_at,omitempty"`
}
