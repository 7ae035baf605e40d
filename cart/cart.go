package cart

// Product is the product summary embedded in a cart line item.
type Product struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
	Stock int    `json:"stock"`
	Image string `json:"image,omitempty"`
}

// Item is a single cart line. Quantity and subtotal are server-computed.
type Item struct {
	ID       int64   `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Subtotal string  `json:"subtotal"`
}

// Cart is the server-authoritative snapshot. TotalItems and TotalPrice are
// computed by the server (pricing rules, stock clamps) and only mirrored
// here; the client never derives them from partial updates.
type Cart struct {
	Items      []Item `json:"items"`
	TotalItems int    `json:"total_items"`
	TotalPrice string `json:"total_price"`
}

// Empty returns the canonical empty cart shape.
func Empty() *Cart {
	return &Cart{Items: []Item{}, TotalItems: 0, TotalPrice: "0.00"}
}
